package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type GridPos struct {
	X, Y, Z int32
}

type HitInfo3D struct {
	Distance               float64
	CollisionWorldPosition mgl64.Vec3
	CollisionGridPosition  GridPos
	Hit                    bool
}

// DDARaycast walks the unit grid cells touched by the segment rayStart->rayEnd
// in order and stops at the first cell for which stopRay returns true. The
// collision position is where the segment enters that cell, or rayStart when
// the segment starts inside it.
func DDARaycast(rayStart, rayEnd mgl64.Vec3, stopRay func(x, y, z int32) bool) HitInfo3D {
	// adapted from: https://github.com/fenomas/fast-voxel-raycast/blob/master/index.js
	ray := rayEnd.Sub(rayStart)
	maxRayLength := ray.Len()
	rayDir, ok := NormalizeOrZero(ray)
	if !ok {
		return HitInfo3D{Hit: false}
	}

	var cell [3]int32
	var step [3]int32
	var tDelta, tMax [3]float64
	for axis := 0; axis < 3; axis++ {
		cell[axis] = int32(math.Floor(rayStart[axis]))
		tDelta[axis] = math.Abs(1.0 / rayDir[axis])
		tMax[axis] = math.Inf(1)
		// distance to the next cell boundary along this axis
		boundary := rayStart[axis] - float64(cell[axis])
		step[axis] = -1
		if rayDir[axis] > 0 {
			step[axis] = 1
			boundary = float64(cell[axis]+1) - rayStart[axis]
		}
		if !math.IsInf(tDelta[axis], 1) {
			tMax[axis] = tDelta[axis] * boundary
		}
	}

	t := 0.0
	for t <= maxRayLength {
		if stopRay(cell[0], cell[1], cell[2]) {
			return HitInfo3D{
				Hit:                    true,
				Distance:               t,
				CollisionWorldPosition: rayStart.Add(rayDir.Mul(t)),
				CollisionGridPosition:  GridPos{X: cell[0], Y: cell[1], Z: cell[2]},
			}
		}
		axis := nearestBoundaryAxis(tMax)
		cell[axis] += step[axis]
		t = tMax[axis]
		tMax[axis] += tDelta[axis]
	}

	return HitInfo3D{Hit: false}
}

// ties go to z, then y
func nearestBoundaryAxis(tMax [3]float64) int {
	if tMax[0] < tMax[1] {
		if tMax[0] < tMax[2] {
			return 0
		}
		return 2
	}
	if tMax[1] < tMax[2] {
		return 1
	}
	return 2
}
