package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/landingmarker/engine/util"
)

type Int3 struct {
	X, Y, Z int32
}

func PositionToGridInt3(pos mgl64.Vec3) Int3 {
	return Int3{int32(math.Floor(pos.X())), int32(math.Floor(pos.Y())), int32(math.Floor(pos.Z()))}
}

func FromGridPos(pos util.GridPos) Int3 {
	return Int3{X: pos.X, Y: pos.Y, Z: pos.Z}
}
