package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/memmaker/landingmarker/engine/ballistics"
)

// TargetSource is read once per prediction.
type TargetSource interface {
	Targets() []ballistics.Target
}

type TargetSourceFunc func() []ballistics.Target

func (f TargetSourceFunc) Targets() []ballistics.Target {
	return f()
}

// Registry keeps actors in insertion order.
type Registry struct {
	mutex  sync.RWMutex
	actors map[uuid.UUID]*Actor
	order  []uuid.UUID
}

func NewRegistry() *Registry {
	return &Registry{actors: make(map[uuid.UUID]*Actor)}
}

func (r *Registry) Add(actor *Actor) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, known := r.actors[actor.ID()]; !known {
		r.order = append(r.order, actor.ID())
	}
	r.actors[actor.ID()] = actor
}

func (r *Registry) Remove(id uuid.UUID) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, known := r.actors[id]; !known {
		return false
	}
	delete(r.actors, id)
	for i, orderedID := range r.order {
		if orderedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry) Get(id uuid.UUID) (*Actor, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	actor, ok := r.actors[id]
	return actor, ok
}

func (r *Registry) FindByName(name string) (*Actor, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	for _, id := range r.order {
		if r.actors[id].GetName() == name {
			return r.actors[id], true
		}
	}
	return nil, false
}

func (r *Registry) Actors() []*Actor {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	result := make([]*Actor, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.actors[id])
	}
	return result
}

func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.order)
}

func (r *Registry) Targets() []ballistics.Target {
	return r.TargetsExcept(uuid.Nil)
}

// TargetsExcept leaves out the actor with the given id, usually the thrower.
func (r *Registry) TargetsExcept(id uuid.UUID) []ballistics.Target {
	actors := r.Actors()
	result := make([]ballistics.Target, 0, len(actors))
	for _, actor := range actors {
		if actor.ID() == id {
			continue
		}
		result = append(result, actor.Target())
	}
	return result
}

// Except returns a TargetSource that never lists the given actor.
func (r *Registry) Except(id uuid.UUID) TargetSource {
	return TargetSourceFunc(func() []ballistics.Target {
		return r.TargetsExcept(id)
	})
}
