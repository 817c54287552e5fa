package game

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/landingmarker/engine/util"
)

// RaySource supplies the aim ray once per tick. ok is false while no ray is
// available, e.g. the cursor left the window.
type RaySource interface {
	Ray() (origin, direction mgl64.Vec3, ok bool)
}

type RaySourceFunc func() (mgl64.Vec3, mgl64.Vec3, bool)

func (f RaySourceFunc) Ray() (mgl64.Vec3, mgl64.Vec3, bool) {
	return f()
}

// FixedRaySource always returns the same ray until Set is called.
type FixedRaySource struct {
	mutex     sync.RWMutex
	origin    mgl64.Vec3
	direction mgl64.Vec3
}

func NewFixedRaySource(origin, direction mgl64.Vec3) *FixedRaySource {
	return &FixedRaySource{origin: origin, direction: direction}
}

func (f *FixedRaySource) Set(origin, direction mgl64.Vec3) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.origin = origin
	f.direction = direction
}

func (f *FixedRaySource) Ray() (mgl64.Vec3, mgl64.Vec3, bool) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.origin, f.direction, true
}

// CameraRaySource picks through a normalized screen point of a camera.
type CameraRaySource struct {
	mutex   sync.RWMutex
	camera  util.Camera
	screenX float64
	screenY float64
}

func NewCameraRaySource(camera util.Camera) *CameraRaySource {
	return &CameraRaySource{camera: camera}
}

// SetScreenPoint takes normalized device coordinates in [-1, 1].
func (c *CameraRaySource) SetScreenPoint(x, y float64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.screenX = x
	c.screenY = y
}

func (c *CameraRaySource) Ray() (mgl64.Vec3, mgl64.Vec3, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if c.camera == nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	origin, direction := util.GetRayFromCameraPlane(c.camera, c.screenX, c.screenY)
	return origin, direction, direction.Len() > 0
}
