package game

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/landingmarker/engine/util"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// BillboardLabel is camera facing text floating above the marker. It only
// knows its layout; drawing is left to whoever presents the marker.
type BillboardLabel struct {
	mutex         sync.RWMutex
	text          string
	visible       bool
	face          font.Face
	pixelsPerUnit float64
	offset        mgl64.Vec3
}

func NewBillboardLabel(pixelsPerUnit float64, offset mgl64.Vec3) *BillboardLabel {
	if pixelsPerUnit <= 0 {
		pixelsPerUnit = DefaultLabelPixelsPerUnit
	}
	return &BillboardLabel{
		face:          basicfont.Face7x13,
		pixelsPerUnit: pixelsPerUnit,
		offset:        offset,
	}
}

func (l *BillboardLabel) SetText(text string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.text = text
}

func (l *BillboardLabel) Text() string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.text
}

func (l *BillboardLabel) SetVisible(visible bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.visible = visible
}

func (l *BillboardLabel) IsVisible() bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.visible
}

// PixelSize is the bounding box of the text in the label font.
func (l *BillboardLabel) PixelSize() (int, int) {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	if l.text == "" {
		return 0, 0
	}
	width := font.MeasureString(l.face, l.text).Ceil()
	height := l.face.Metrics().Height.Ceil()
	return width, height
}

func (l *BillboardLabel) WorldSize() (float64, float64) {
	width, height := l.PixelSize()
	return float64(width) / l.pixelsPerUnit, float64(height) / l.pixelsPerUnit
}

func (l *BillboardLabel) Anchor(markerPosition mgl64.Vec3) mgl64.Vec3 {
	return markerPosition.Add(l.offset)
}

// Corners returns the quad of the label centered on its anchor, facing the
// camera: bottom left, bottom right, top right, top left.
func (l *BillboardLabel) Corners(markerPosition mgl64.Vec3, camera util.Camera) [4]mgl64.Vec3 {
	view := camera.GetViewMatrix()
	right := mgl64.Vec3{view[0], view[4], view[8]}
	up := mgl64.Vec3{view[1], view[5], view[9]}
	width, height := l.WorldSize()
	halfRight := right.Mul(width / 2)
	halfUp := up.Mul(height / 2)
	center := l.Anchor(markerPosition)
	return [4]mgl64.Vec3{
		center.Sub(halfRight).Sub(halfUp),
		center.Add(halfRight).Sub(halfUp),
		center.Add(halfRight).Add(halfUp),
		center.Sub(halfRight).Add(halfUp),
	}
}
