package ballistics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsNearAnyTarget(t *testing.T) {
	head := Target{ID: uuid.New(), Name: "head", ReferencePoint: mgl64.Vec3{1, 2, 3}, ReferenceRadius: 0.5}
	far := Target{ID: uuid.New(), Name: "far", ReferencePoint: mgl64.Vec3{100, 0, 0}, ReferenceRadius: 1}

	cases := []struct {
		name    string
		point   mgl64.Vec3
		targets []Target
		want    bool
	}{
		{"at reference point", head.ReferencePoint, []Target{head}, true},
		{"inside radius", mgl64.Vec3{1.3, 2, 3}, []Target{head}, true},
		{"inside leeway", mgl64.Vec3{1, 2.65, 3}, []Target{head}, true},
		{"near threshold", mgl64.Vec3{1, 2, 3.69}, []Target{head}, true},
		{"just outside threshold", mgl64.Vec3{1, 2, 3.7 + 1e-9}, []Target{head}, false},
		{"outside", mgl64.Vec3{1, 4, 3}, []Target{head}, false},
		{"second target matches", mgl64.Vec3{100, 1, 0}, []Target{head, far}, true},
		{"order does not matter", mgl64.Vec3{100, 1, 0}, []Target{far, head}, true},
		{"empty", head.ReferencePoint, []Target{}, false},
		{"nil", head.ReferencePoint, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsNearAnyTarget(tc.point, tc.targets))
		})
	}
}

func TestIsNearAnyTargetWithinCustomLeeway(t *testing.T) {
	target := Target{ReferencePoint: mgl64.Vec3{}, ReferenceRadius: 1}
	point := mgl64.Vec3{1.5, 0, 0}

	assert.False(t, IsNearAnyTargetWithin(point, []Target{target}, 0))
	assert.True(t, IsNearAnyTargetWithin(point, []Target{target}, 0.5))
}

func TestNearestTarget(t *testing.T) {
	a := Target{Name: "a", ReferencePoint: mgl64.Vec3{0, 0, 0}, ReferenceRadius: 2}
	b := Target{Name: "b", ReferencePoint: mgl64.Vec3{1, 0, 0}, ReferenceRadius: 0.5}
	c := Target{Name: "c", ReferencePoint: mgl64.Vec3{50, 0, 0}, ReferenceRadius: 0.5}

	nearest, ok := NearestTarget(mgl64.Vec3{0.9, 0, 0}, []Target{a, b, c}, DefaultTargetLeeway)
	assert.True(t, ok)
	assert.Equal(t, "b", nearest.Name)

	nearest, ok = NearestTarget(mgl64.Vec3{-1, 0, 0}, []Target{a, b, c}, DefaultTargetLeeway)
	assert.True(t, ok)
	assert.Equal(t, "a", nearest.Name)

	_, ok = NearestTarget(mgl64.Vec3{25, 0, 0}, []Target{a, b, c}, DefaultTargetLeeway)
	assert.False(t, ok)
}
