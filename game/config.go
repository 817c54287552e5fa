package game

import (
	"io"
	"math"
	"os"

	"github.com/memmaker/landingmarker/engine/ballistics"
	"github.com/memmaker/landingmarker/engine/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLabelText          = "TARGET"
	DefaultLabelPixelsPerUnit = 64.0
	DefaultLabelHeight        = 0.6
	DefaultMarkerSize         = 0.25
)

type Config struct {
	Simulation   ballistics.SimulationConfig `yaml:"simulation"`
	TargetLeeway float64                     `yaml:"target_leeway"`
	Label        LabelConfig                 `yaml:"label"`
	Scene        SceneConfig                 `yaml:"scene"`
	LogLevel     string                      `yaml:"log_level"`
	Sweep        SweepConfig                 `yaml:"sweep"`
	Window       WindowConfig                `yaml:"window"`
}

type LabelConfig struct {
	Text          string  `yaml:"text"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
	Height        float64 `yaml:"height"`
	MarkerSize    float64 `yaml:"marker_size"`
}

type SceneConfig struct {
	// File is an NBT scene description. Empty means a flat test range.
	File string `yaml:"file"`
	// Thrower names the actor whose eyes the arc starts from.
	Thrower string  `yaml:"thrower"`
	Yaw     float64 `yaml:"yaw"`
	Pitch   float64 `yaml:"pitch"`
}

type SweepConfig struct {
	Yaw      float64 `yaml:"yaw"`
	MinPitch float64 `yaml:"min_pitch"`
	MaxPitch float64 `yaml:"max_pitch"`
	Steps    int     `yaml:"steps"`
	Workers  int     `yaml:"workers"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func DefaultConfig() Config {
	return Config{
		Simulation:   ballistics.DefaultSimulationConfig(),
		TargetLeeway: ballistics.DefaultTargetLeeway,
		Label: LabelConfig{
			Text:          DefaultLabelText,
			PixelsPerUnit: DefaultLabelPixelsPerUnit,
			Height:        DefaultLabelHeight,
			MarkerSize:    DefaultMarkerSize,
		},
		Scene: SceneConfig{
			Thrower: "thrower",
		},
		LogLevel: "info",
		Sweep: SweepConfig{
			MinPitch: -10,
			MaxPitch: 60,
			Steps:    15,
			Workers:  4,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Landing Marker",
		},
	}
}

// LoadConfig reads YAML on top of DefaultConfig. An empty document yields the
// defaults.
func LoadConfig(reader io.Reader) (Config, error) {
	config := DefaultConfig()
	err := yaml.NewDecoder(reader).Decode(&config)
	if err != nil && err != io.EOF {
		return config, errors.Wrap(err, "decode config")
	}
	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func LoadConfigFile(filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return DefaultConfig(), errors.Wrapf(err, "open config %s", filename)
	}
	defer file.Close()
	config, err := LoadConfig(file)
	if err != nil {
		return config, errors.Wrapf(err, "config %s", filename)
	}
	util.LogIOInfo("[LoadConfigFile] loaded " + filename)
	return config, nil
}

func (c Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return errors.Wrap(err, "simulation")
	}
	if c.TargetLeeway < 0 || math.IsNaN(c.TargetLeeway) || math.IsInf(c.TargetLeeway, 0) {
		return errors.Errorf("target_leeway must be a finite value >= 0, got %v", c.TargetLeeway)
	}
	if c.Label.PixelsPerUnit <= 0 {
		return errors.Errorf("label.pixels_per_unit must be > 0, got %v", c.Label.PixelsPerUnit)
	}
	if c.Label.MarkerSize <= 0 {
		return errors.Errorf("label.marker_size must be > 0, got %v", c.Label.MarkerSize)
	}
	if err := c.Sweep.Validate(); err != nil {
		return errors.Wrap(err, "sweep")
	}
	if _, known := util.LookupLogLevel(c.LogLevel); c.LogLevel != "" && !known {
		return errors.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

func (s SweepConfig) Validate() error {
	if s.Steps < 1 {
		return errors.Errorf("steps must be >= 1, got %d", s.Steps)
	}
	if s.MinPitch > s.MaxPitch {
		return errors.Errorf("min_pitch %v above max_pitch %v", s.MinPitch, s.MaxPitch)
	}
	if s.Workers < 0 {
		return errors.Errorf("workers must be >= 0, got %d", s.Workers)
	}
	return nil
}
