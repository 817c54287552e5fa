package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/memmaker/landingmarker/engine/ballistics"
	"github.com/memmaker/landingmarker/engine/util"
)

const (
	DefaultBodyWidth  = 0.8
	DefaultBodyHeight = 1.6
	DefaultHeadHeight = 1.75
	DefaultHeadRadius = 0.3
)

// Actor stands at its foot position. Its body is a box collider, its head is
// the reference point used for on-target checks.
type Actor struct {
	id         uuid.UUID
	transform  *util.Transform
	bodyHeight float64
	headHeight float64
	headRadius float64
	collider   *util.MeshCollider
}

func NewActor(name string, position mgl64.Vec3) *Actor {
	return NewActorWithShape(name, position, DefaultBodyWidth, DefaultBodyHeight, DefaultHeadHeight, DefaultHeadRadius)
}

func NewActorWithShape(name string, position mgl64.Vec3, bodyWidth, bodyHeight, headHeight, headRadius float64) *Actor {
	transform := util.NewDefaultTransform(name)
	transform.SetPosition(position)
	a := &Actor{
		id:         uuid.New(),
		transform:  transform,
		bodyHeight: bodyHeight,
		headHeight: headHeight,
		headRadius: headRadius,
	}
	a.collider = util.NewBoxCollider(name, mgl64.Vec3{}, mgl64.Vec3{bodyWidth, bodyHeight, bodyWidth})
	a.collider.TransformFunc = a.bodyTransform
	return a
}

// the box is centered, lift it so it rests on the feet
func (a *Actor) bodyTransform() mgl64.Mat4 {
	return a.transform.GetTransformMatrix().Mul4(mgl64.Translate3D(0, a.bodyHeight/2, 0))
}

func (a *Actor) ID() uuid.UUID {
	return a.id
}

func (a *Actor) GetName() string {
	return a.transform.GetName()
}

func (a *Actor) GetCollider() util.Collider {
	return a.collider
}

func (a *Actor) GetTransform() *util.Transform {
	return a.transform
}

func (a *Actor) GetPosition() mgl64.Vec3 {
	return a.transform.GetPosition()
}

func (a *Actor) SetPosition(position mgl64.Vec3) {
	a.transform.SetPosition(position)
}

func (a *Actor) GetEyeOffset() mgl64.Vec3 {
	return mgl64.Vec3{0, a.headHeight, 0}
}

func (a *Actor) GetEyePosition() mgl64.Vec3 {
	return a.GetPosition().Add(a.GetEyeOffset())
}

func (a *Actor) Target() ballistics.Target {
	return ballistics.Target{
		ID:              a.id,
		Name:            a.GetName(),
		ReferencePoint:  a.GetEyePosition(),
		ReferenceRadius: a.headRadius,
	}
}

func (a *Actor) String() string {
	return fmt.Sprintf("Actor{%s at %v}", a.GetName(), a.GetPosition())
}
