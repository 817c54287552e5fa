package ballistics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// LaunchState is the cursor of a single simulation run.
type LaunchState struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// ExclusionSet holds the objects a ray cast has to look through.
// Usually the thrower itself and the marker object.
type ExclusionSet map[uuid.UUID]struct{}

func NewExclusionSet(ids ...uuid.UUID) ExclusionSet {
	e := make(ExclusionSet, len(ids))
	for _, id := range ids {
		e.Add(id)
	}
	return e
}

func (e ExclusionSet) Add(id uuid.UUID) {
	e[id] = struct{}{}
}

func (e ExclusionSet) Remove(id uuid.UUID) {
	delete(e, id)
}

// Contains is safe to call on a nil set.
func (e ExclusionSet) Contains(id uuid.UUID) bool {
	if e == nil {
		return false
	}
	_, ok := e[id]
	return ok
}

type Target struct {
	ID              uuid.UUID
	Name            string
	ReferencePoint  mgl64.Vec3
	ReferenceRadius float64
}

type PredictionResult struct {
	Point mgl64.Vec3
	Hit   bool
	// Object is uuid.Nil when the hit was static geometry or nothing was hit.
	Object  uuid.UUID
	Elapsed float64
	Steps   int
}

type RayHit struct {
	Hit      bool
	Position mgl64.Vec3
	Object   uuid.UUID
}

// RayCaster casts a ray of at most maxDistance along a unit direction.
// Objects in exclude are transparent. A zero maxDistance never hits.
type RayCaster interface {
	CastRay(origin, direction mgl64.Vec3, maxDistance float64, exclude ExclusionSet) (RayHit, error)
}

type RayCasterFunc func(origin, direction mgl64.Vec3, maxDistance float64, exclude ExclusionSet) (RayHit, error)

func (f RayCasterFunc) CastRay(origin, direction mgl64.Vec3, maxDistance float64, exclude ExclusionSet) (RayHit, error) {
	return f(origin, direction, maxDistance, exclude)
}

// EmptyScene never reports a hit.
var EmptyScene RayCaster = RayCasterFunc(func(mgl64.Vec3, mgl64.Vec3, float64, ExclusionSet) (RayHit, error) {
	return RayHit{}, nil
})
