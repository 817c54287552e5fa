package ballistics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTargetLeeway is added to every target radius.
const DefaultTargetLeeway = 0.2

func IsNearAnyTarget(point mgl64.Vec3, targets []Target) bool {
	return IsNearAnyTargetWithin(point, targets, DefaultTargetLeeway)
}

// IsNearAnyTargetWithin reports whether point lies within ReferenceRadius+leeway
// of any target. The caller removes its own entry if it should not count.
func IsNearAnyTargetWithin(point mgl64.Vec3, targets []Target, leeway float64) bool {
	for _, target := range targets {
		if point.Sub(target.ReferencePoint).Len() <= target.ReferenceRadius+leeway {
			return true
		}
	}
	return false
}

// NearestTarget returns the closest target whose threshold contains point.
func NearestTarget(point mgl64.Vec3, targets []Target, leeway float64) (Target, bool) {
	var nearest Target
	found := false
	minDistance := math.MaxFloat64
	for _, target := range targets {
		distance := point.Sub(target.ReferencePoint).Len()
		if distance > target.ReferenceRadius+leeway {
			continue
		}
		if distance < minDistance {
			minDistance = distance
			nearest = target
			found = true
		}
	}
	return nearest, found
}
