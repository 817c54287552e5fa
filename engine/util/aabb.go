package util

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type AABB struct {
	center  mgl64.Vec3
	extents mgl64.Vec3 // size in respective axis, they extend from the center to the max and min
}

func NewAABB(center, extents mgl64.Vec3) AABB {
	return AABB{
		center:  center,
		extents: extents,
	}
}

func NewAABBFromMin(min, extents mgl64.Vec3) AABB {
	return AABB{
		center:  min.Add(extents.Mul(0.5)),
		extents: extents,
	}
}

func NewAABBFromMinMax(min, max mgl64.Vec3) AABB {
	return NewAABBFromMin(min, max.Sub(min))
}

// NewAABBFromPoints returns the smallest box containing all points.
func NewAABBFromPoints(points []mgl64.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = mgl64.Vec3{math.Min(min.X(), p.X()), math.Min(min.Y(), p.Y()), math.Min(min.Z(), p.Z())}
		max = mgl64.Vec3{math.Max(max.X(), p.X()), math.Max(max.Y(), p.Y()), math.Max(max.Z(), p.Z())}
	}
	return NewAABBFromMinMax(min, max)
}

func (a AABB) Center() mgl64.Vec3 {
	return a.center
}

func (a AABB) Extents() mgl64.Vec3 {
	return a.extents
}

func (a AABB) Min() mgl64.Vec3 {
	return a.center.Sub(a.extents.Mul(0.5))
}

func (a AABB) Max() mgl64.Vec3 {
	return a.center.Add(a.extents.Mul(0.5))
}

func (a AABB) Union(other AABB) AABB {
	return NewAABBFromPoints([]mgl64.Vec3{a.Min(), a.Max(), other.Min(), other.Max()})
}

func (a AABB) ContainsPoint(p mgl64.Vec3) bool {
	min, max := a.Min(), a.Max()
	return p.X() >= min.X() && p.X() <= max.X() &&
		p.Y() >= min.Y() && p.Y() <= max.Y() &&
		p.Z() >= min.Z() && p.Z() <= max.Z()
}

// IntersectsSegment is a slab test. It returns the fraction along the segment
// at which the box is entered, 0 when the start is inside.
func (a AABB) IntersectsSegment(start, end mgl64.Vec3) (bool, float64) {
	min, max := a.Min(), a.Max()
	direction := end.Sub(start)
	tEnter := 0.0
	tExit := 1.0
	for axis := 0; axis < 3; axis++ {
		if direction[axis] == 0 {
			if start[axis] < min[axis] || start[axis] > max[axis] {
				return false, 0
			}
			continue
		}
		inv := 1.0 / direction[axis]
		t0 := (min[axis] - start[axis]) * inv
		t1 := (max[axis] - start[axis]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tEnter = math.Max(tEnter, t0)
		tExit = math.Min(tExit, t1)
		if tEnter > tExit {
			return false, 0
		}
	}
	return true, tEnter
}

func (a AABB) String() string {
	return fmt.Sprintf("AABB{min: %v, max: %v}", a.Min(), a.Max())
}
