package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryTargets(t *testing.T) {
	registry := NewRegistry()
	thrower := NewActor("thrower", mgl64.Vec3{0, 1, 0})
	dummy := NewActor("dummy", mgl64.Vec3{0, 1, 10})
	registry.Add(thrower)
	registry.Add(dummy)
	registry.Add(dummy)
	assert.Equal(t, 2, registry.Len())

	targets := registry.Targets()
	require.Len(t, targets, 2)
	assert.Equal(t, thrower.ID(), targets[0].ID)
	assert.Equal(t, mgl64.Vec3{0, 1 + DefaultHeadHeight, 10}, targets[1].ReferencePoint)
	assert.Equal(t, DefaultHeadRadius, targets[1].ReferenceRadius)

	others := registry.Except(thrower.ID()).Targets()
	require.Len(t, others, 1)
	assert.Equal(t, "dummy", others[0].Name)

	found, ok := registry.FindByName("dummy")
	require.True(t, ok)
	assert.Equal(t, dummy, found)

	assert.True(t, registry.Remove(thrower.ID()))
	assert.False(t, registry.Remove(uuid.New()))
	_, ok = registry.Get(thrower.ID())
	assert.False(t, ok)
	assert.Len(t, registry.Actors(), 1)
}

func TestActorTargetFollowsPosition(t *testing.T) {
	actor := NewActor("dummy", mgl64.Vec3{1, 0, 1})
	actor.SetPosition(mgl64.Vec3{2, 0, 2})
	assert.Equal(t, mgl64.Vec3{2, DefaultHeadHeight, 2}, actor.Target().ReferencePoint)

	box := actor.GetCollider().GetAABB()
	assert.True(t, box.Min().ApproxEqual(mgl64.Vec3{2 - DefaultBodyWidth/2, 0, 2 - DefaultBodyWidth/2}))
	assert.True(t, box.Max().ApproxEqual(mgl64.Vec3{2 + DefaultBodyWidth/2, DefaultBodyHeight, 2 + DefaultBodyWidth/2}))
}
