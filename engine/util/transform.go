package util

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform places an object in the world. It is safe for concurrent use so
// colliders can read it while the owner moves.
type Transform struct {
	mutex       sync.RWMutex
	translation mgl64.Vec3
	rotation    mgl64.Quat
	scale       mgl64.Vec3
	nameOfOwner string
}

func NewDefaultTransform(name string) *Transform {
	return &Transform{
		translation: mgl64.Vec3{0, 0, 0},
		rotation:    mgl64.QuatIdent(),
		scale:       mgl64.Vec3{1, 1, 1},
		nameOfOwner: name,
	}
}

func NewTransform(position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) *Transform {
	return &Transform{
		translation: position,
		rotation:    rotation,
		scale:       scale,
	}
}

// NewTransformFromYaw rotates around +Y by yawDegrees and scales uniformly.
func NewTransformFromYaw(name string, position mgl64.Vec3, yawDegrees, scale float64) *Transform {
	t := NewDefaultTransform(name)
	t.translation = position
	t.SetYRotationAngle(yawDegrees)
	if scale > 0 {
		t.scale = mgl64.Vec3{scale, scale, scale}
	}
	return t
}

func (t *Transform) GetName() string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.nameOfOwner
}

func (t *Transform) SetName(name string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.nameOfOwner = name
}

// GetTransformMatrix is T * R * S.
func (t *Transform) GetTransformMatrix() mgl64.Mat4 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	translation := mgl64.Translate3D(t.translation.X(), t.translation.Y(), t.translation.Z())
	rotation := t.rotation.Mat4()
	scale := mgl64.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	return translation.Mul4(rotation).Mul4(scale)
}

func (t *Transform) GetPosition() mgl64.Vec3 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.translation
}

func (t *Transform) SetPosition(position mgl64.Vec3) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.translation = position
}

func (t *Transform) GetRotation() mgl64.Quat {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.rotation
}

func (t *Transform) SetRotation(rotation mgl64.Quat) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.rotation = rotation
}

func (t *Transform) SetYRotationAngle(degrees float64) {
	t.SetRotation(mgl64.QuatRotate(mgl64.DegToRad(degrees), mgl64.Vec3{0, 1, 0}))
}

// GetForward is +Z rotated, matching the yaw convention of aim directions.
func (t *Transform) GetForward() mgl64.Vec3 {
	return t.GetRotation().Rotate(mgl64.Vec3{0, 0, 1})
}

// SetForward2D ignores the vertical part of direction.
func (t *Transform) SetForward2D(direction mgl64.Vec3) {
	flat, ok := NormalizeOrZero(mgl64.Vec3{direction.X(), 0, direction.Z()})
	if !ok {
		return
	}
	t.SetRotation(mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, flat))
}

func (t *Transform) GetScale() mgl64.Vec3 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.scale
}

func (t *Transform) SetScale(scale mgl64.Vec3) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.scale = scale
}
