package util

import (
	"github.com/go-gl/mathgl/mgl64"
)

type Camera interface {
	GetViewMatrix() mgl64.Mat4
	GetProjectionMatrix() mgl64.Mat4
	GetPosition() mgl64.Vec3
}

// PerspectiveCamera looks from Position at Target with +Y up.
type PerspectiveCamera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	FOV      float64 // vertical, degrees
	Aspect   float64
	Near     float64
	Far      float64
}

func NewPerspectiveCamera(position, target mgl64.Vec3, windowWidth, windowHeight int) *PerspectiveCamera {
	aspect := 1.0
	if windowHeight > 0 {
		aspect = float64(windowWidth) / float64(windowHeight)
	}
	return &PerspectiveCamera{
		Position: position,
		Target:   target,
		FOV:      45,
		Aspect:   aspect,
		Near:     0.1,
		Far:      1000,
	}
}

func (c *PerspectiveCamera) GetViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, mgl64.Vec3{0, 1, 0})
}

func (c *PerspectiveCamera) GetProjectionMatrix() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) GetPosition() mgl64.Vec3 {
	return c.Position
}

func (c *PerspectiveCamera) SetScreenSize(width, height int) {
	if height > 0 {
		c.Aspect = float64(width) / float64(height)
	}
}

// ScreenToNormalized maps window pixel coordinates to [-1, 1] with +Y up.
func ScreenToNormalized(x, y float64, screenWidth, screenHeight int) (float64, float64) {
	if screenWidth <= 0 || screenHeight <= 0 {
		return 0, 0
	}
	nx := (2*x)/float64(screenWidth) - 1
	ny := 1 - (2*y)/float64(screenHeight)
	return nx, ny
}

// GetRayFromCameraPlane unprojects a normalized screen point to a world space
// ray starting on the near plane. The direction is a unit vector.
func GetRayFromCameraPlane(cam Camera, normalizedX float64, normalizedY float64) (mgl64.Vec3, mgl64.Vec3) {
	normalizedNearPos := mgl64.Vec4{normalizedX, normalizedY, -1, 1}
	normalizedFarPos := mgl64.Vec4{normalizedX, normalizedY, 1, 1}

	proj := cam.GetProjectionMatrix()
	view := cam.GetViewMatrix()
	projViewInverted := proj.Mul4(view).Inv()

	// project point from clip space to world space
	nearWorldPos := projViewInverted.Mul4x1(normalizedNearPos)
	farWorldPos := projViewInverted.Mul4x1(normalizedFarPos)
	// perspective divide
	rayStart := nearWorldPos.Vec3().Mul(1 / nearWorldPos.W())
	farPosCorrected := farWorldPos.Vec3().Mul(1 / farWorldPos.W())
	dir, _ := NormalizeOrZero(farPosCorrected.Sub(rayStart))
	return rayStart, dir
}
