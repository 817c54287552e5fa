package client

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/landingmarker/engine/util"
	"github.com/memmaker/landingmarker/game"
)

// CursorRaySource turns the last known cursor position into a picking ray.
// It has no ray while the cursor is outside the window.
type CursorRaySource struct {
	mutex    sync.RWMutex
	picker   *game.CameraRaySource
	camera   *util.PerspectiveCamera
	width    int
	height   int
	inWindow bool
}

func NewCursorRaySource(camera *util.PerspectiveCamera, width, height int) *CursorRaySource {
	return &CursorRaySource{
		picker: game.NewCameraRaySource(camera),
		camera: camera,
		width:  width,
		height: height,
	}
}

func (c *CursorRaySource) OnMouseMoved(xpos, ypos float64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.inWindow = xpos >= 0 && ypos >= 0 && xpos < float64(c.width) && ypos < float64(c.height)
	c.picker.SetScreenPoint(util.ScreenToNormalized(xpos, ypos, c.width, c.height))
}

func (c *CursorRaySource) OnCursorEnter(entered bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.inWindow = entered
}

func (c *CursorRaySource) OnResize(width, height int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.width = width
	c.height = height
	c.camera.SetScreenSize(width, height)
}

func (c *CursorRaySource) Ray() (mgl64.Vec3, mgl64.Vec3, bool) {
	c.mutex.RLock()
	inWindow := c.inWindow
	c.mutex.RUnlock()
	if !inWindow {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return c.picker.Ray()
}
