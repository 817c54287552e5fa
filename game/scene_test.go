package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/memmaker/landingmarker/engine/ballistics"
	"github.com/memmaker/landingmarker/engine/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wallScene is one chunk with a solid wall filling the plane z = wallZ.
func wallScene(wallZ int32) *Scene {
	voxelMap := voxel.NewMap(1, 1, 1)
	voxelMap.FillBox(voxel.Int3{X: 0, Y: 0, Z: wallZ}, voxel.Int3{X: 31, Y: 31, Z: wallZ}, voxel.NewBlock(1))
	return NewScene(voxelMap)
}

var forward = mgl64.Vec3{0, 0, 1}

func TestSceneCastRayHitsVoxelWall(t *testing.T) {
	scene := wallScene(10)
	hit, err := scene.CastRay(mgl64.Vec3{4.5, 4.5, 0.5}, forward, 20, nil)
	require.NoError(t, err)
	require.True(t, hit.Hit)
	assert.True(t, hit.Position.ApproxEqualThreshold(mgl64.Vec3{4.5, 4.5, 10}, 1e-9))
	assert.Equal(t, uuid.Nil, hit.Object)

	hit, err = scene.CastRay(mgl64.Vec3{4.5, 4.5, 0.5}, forward, 9, nil)
	require.NoError(t, err)
	assert.False(t, hit.Hit)
}

func TestSceneCastRayZeroDistance(t *testing.T) {
	scene := wallScene(0)
	hit, err := scene.CastRay(mgl64.Vec3{4.5, 4.5, 0.5}, forward, 0, nil)
	require.NoError(t, err)
	assert.False(t, hit.Hit)

	hit, err = scene.CastRay(mgl64.Vec3{4.5, 4.5, 0.5}, mgl64.Vec3{}, 5, nil)
	require.NoError(t, err)
	assert.False(t, hit.Hit)
}

func TestSceneCastRayNearestObjectWins(t *testing.T) {
	scene := wallScene(10)
	crate := NewBoxObject("crate", mgl64.Vec3{4.5, 4.5, 5}, mgl64.Vec3{2, 2, 2})
	scene.Attach(crate)

	hit, err := scene.CastRay(mgl64.Vec3{4.7, 4.4, 0.5}, forward, 20, nil)
	require.NoError(t, err)
	require.True(t, hit.Hit)
	assert.Equal(t, crate.ID(), hit.Object)
	assert.InDelta(t, 4.0, hit.Position.Z(), 1e-9)

	hit, err = scene.CastRay(mgl64.Vec3{4.7, 4.4, 0.5}, forward, 20, ballistics.NewExclusionSet(crate.ID()))
	require.NoError(t, err)
	require.True(t, hit.Hit)
	assert.Equal(t, uuid.Nil, hit.Object)
	assert.InDelta(t, 10.0, hit.Position.Z(), 1e-9)

	assert.True(t, scene.Detach(crate.ID()))
	assert.False(t, scene.Detach(crate.ID()))
	hit, err = scene.CastRay(mgl64.Vec3{4.7, 4.4, 0.5}, forward, 20, nil)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, hit.Object)
}

func TestSceneCastRayWallInFrontOfObject(t *testing.T) {
	scene := wallScene(3)
	crate := NewBoxObject("crate", mgl64.Vec3{4.5, 4.5, 6}, mgl64.Vec3{2, 2, 2})
	scene.Attach(crate)

	hit, err := scene.CastRay(mgl64.Vec3{4.7, 4.4, 0.5}, forward, 20, nil)
	require.NoError(t, err)
	require.True(t, hit.Hit)
	assert.Equal(t, uuid.Nil, hit.Object)
	assert.InDelta(t, 3.0, hit.Position.Z(), 1e-9)
}

func TestSceneCastRayRejectsInvalidRay(t *testing.T) {
	scene := NewScene(nil)
	_, err := scene.CastRay(mgl64.Vec3{math.NaN(), 0, 0}, forward, 1, nil)
	assert.Error(t, err)

	hit, err := scene.CastRay(mgl64.Vec3{}, forward, 10, nil)
	require.NoError(t, err)
	assert.False(t, hit.Hit)
}

func TestPredictAgainstVoxelWall(t *testing.T) {
	scene := wallScene(20)
	config := ballistics.DefaultSimulationConfig()
	origin := mgl64.Vec3{16.5, 20, 0.5}

	result, err := ballistics.Predict(origin, forward, config, nil, scene)
	require.NoError(t, err)
	require.True(t, result.Hit)

	flightTime := (20 - origin.Z()) / config.Speed
	expectedY := origin.Y() - 0.5*config.Gravity*flightTime*flightTime
	stepError := 0.5 * config.Gravity * config.TimeStep * config.TimeStep
	assert.InDelta(t, 20.0, result.Point.Z(), 1e-9)
	assert.InDelta(t, expectedY, result.Point.Y(), stepError)
	assert.InDelta(t, origin.X(), result.Point.X(), 1e-9)
}

func TestPredictAgainstActorBody(t *testing.T) {
	scene := NewScene(nil)
	actor := NewActor("dummy", mgl64.Vec3{0, 0, 10})
	scene.Attach(actor)
	config := ballistics.SimulationConfig{Speed: 50, Gravity: 0, TimeStep: ballistics.DefaultTimeStep, MaxTime: 1}

	result, err := ballistics.Predict(mgl64.Vec3{0, 1, 0}, forward, config, nil, scene)
	require.NoError(t, err)
	require.True(t, result.Hit)
	assert.Equal(t, actor.ID(), result.Object)
	assert.InDelta(t, 10-DefaultBodyWidth/2, result.Point.Z(), 1e-9)

	actor.SetPosition(mgl64.Vec3{5, 0, 10})
	result, err = ballistics.Predict(mgl64.Vec3{0, 1, 0}, forward, config, nil, scene)
	require.NoError(t, err)
	assert.False(t, result.Hit)
}
