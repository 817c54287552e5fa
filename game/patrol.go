package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/landingmarker/engine/util"
)

// Patrol walks an actor back and forth between two points, one leg every
// duration seconds, so targets move while the marker is tracking them.
type Patrol struct {
	actor        *Actor
	lerper       *util.Lerper[mgl64.Vec3]
	subscription *Subscription
}

func NewPatrol(actor *Actor, from, to mgl64.Vec3, duration float64) *Patrol {
	actor.SetPosition(from)
	p := &Patrol{actor: actor}
	p.lerper = util.NewLerper(util.Lerp3, p.moveTo, from, to, duration)
	actor.GetTransform().SetForward2D(to.Sub(from))
	return p
}

func (p *Patrol) moveTo(position mgl64.Vec3) {
	p.actor.SetPosition(position)
}

// Update advances the walk; at either end it turns around.
func (p *Patrol) Update(deltaTime float64) {
	if p.lerper.Update(deltaTime) {
		p.lerper.Reverse()
		forward := p.actor.GetTransform().GetForward()
		p.actor.GetTransform().SetForward2D(forward.Mul(-1))
	}
}

func (p *Patrol) Start(clock TickSource) {
	if p.subscription != nil {
		return
	}
	p.subscription = clock.Subscribe(p.Update)
}

func (p *Patrol) Stop() {
	p.subscription.Cancel()
	p.subscription = nil
}
