package util

import "github.com/go-gl/mathgl/mgl64"

// intersectLineSegmentTriangle is Möller-Trumbore restricted to the segment
// rayStart->rayEnd. Both triangle faces count.
func intersectLineSegmentTriangle(rayStart, rayEnd mgl64.Vec3, v0, v1, v2 mgl64.Vec3) (bool, mgl64.Vec3) {
	const EPSILON = 1e-12

	direction := rayEnd.Sub(rayStart)
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	h := direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -EPSILON && a < EPSILON {
		return false, mgl64.Vec3{} // parallel
	}

	f := 1.0 / a
	s := rayStart.Sub(v0)
	u := f * s.Dot(h)

	if u < 0.0 || u > 1.0 {
		return false, mgl64.Vec3{}
	}

	q := s.Cross(edge1)
	v := f * direction.Dot(q)

	if v < 0.0 || u+v > 1.0 {
		return false, mgl64.Vec3{}
	}

	t := f * edge2.Dot(q)

	if t >= 0 && t <= 1 {
		return true, rayStart.Add(direction.Mul(t))
	}

	return false, mgl64.Vec3{} // line hits, segment does not
}
