package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/memmaker/landingmarker/engine/ballistics"
	"golang.org/x/term"
)

type predictionRow struct {
	Yaw      float64
	Pitch    float64
	Origin   mgl64.Vec3
	Result   ballistics.PredictionResult
	OnTarget bool
	Target   string
}

type resultPrinter interface {
	Header()
	Print(row predictionRow)
	Flush() error
}

// newResultPrinter prints an aligned table on a terminal and JSON lines
// otherwise.
func newResultPrinter(file *os.File) resultPrinter {
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return &jsonPrinter{encoder: json.NewEncoder(file)}
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = 80
	}
	return &tablePrinter{writer: tabwriter.NewWriter(file, 0, 4, 2, ' ', 0), width: width}
}

type tablePrinter struct {
	writer *tabwriter.Writer
	width  int
}

func (t *tablePrinter) Header() {
	fmt.Fprintln(t.writer, "YAW\tPITCH\tX\tY\tZ\tHIT\tTIME\tSTEPS\tTARGET")
	fmt.Fprintln(t.writer, strings.Repeat("-", t.width-1))
}

func (t *tablePrinter) Print(row predictionRow) {
	target := "-"
	if row.OnTarget {
		target = row.Target
	}
	point := row.Result.Point
	fmt.Fprintf(t.writer, "%.1f\t%.1f\t%.2f\t%.2f\t%.2f\t%t\t%.3f\t%d\t%s\n",
		row.Yaw, row.Pitch, point.X(), point.Y(), point.Z(), row.Result.Hit, row.Result.Elapsed, row.Result.Steps, target)
}

func (t *tablePrinter) Flush() error {
	return t.writer.Flush()
}

type jsonRow struct {
	Yaw      float64    `json:"yaw"`
	Pitch    float64    `json:"pitch"`
	Origin   [3]float64 `json:"origin"`
	Point    [3]float64 `json:"point"`
	Hit      bool       `json:"hit"`
	Object   string     `json:"object,omitempty"`
	Elapsed  float64    `json:"elapsed"`
	Steps    int        `json:"steps"`
	OnTarget bool       `json:"on_target"`
	Target   string     `json:"target,omitempty"`
}

type jsonPrinter struct {
	encoder *json.Encoder
	err     error
}

func (j *jsonPrinter) Header() {}

func (j *jsonPrinter) Print(row predictionRow) {
	if j.err != nil {
		return
	}
	out := jsonRow{
		Yaw:      row.Yaw,
		Pitch:    row.Pitch,
		Origin:   row.Origin,
		Point:    row.Result.Point,
		Hit:      row.Result.Hit,
		Elapsed:  row.Result.Elapsed,
		Steps:    row.Result.Steps,
		OnTarget: row.OnTarget,
	}
	if row.Result.Hit && row.Result.Object != uuid.Nil {
		out.Object = row.Result.Object.String()
	}
	if row.OnTarget {
		out.Target = row.Target
	}
	j.err = j.encoder.Encode(out)
}

func (j *jsonPrinter) Flush() error {
	return j.err
}
