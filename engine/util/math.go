package util

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func Mix(a, b, factor float64) float64 {
	return a*(1-factor) + factor*b
}

func Lerp3(one, two mgl64.Vec3, factor float64) mgl64.Vec3 {
	return mgl64.Vec3{Mix(one.X(), two.X(), factor), Mix(one.Y(), two.Y(), factor), Mix(one.Z(), two.Z(), factor)}
}

// NormalizeOrZero avoids the NaNs mgl64 produces for zero vectors.
func NormalizeOrZero(v mgl64.Vec3) (mgl64.Vec3, bool) {
	length := v.Len()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / length), true
}

