package game

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/landingmarker/engine/ballistics"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepPitches(t *testing.T) {
	assert.Equal(t, []float64{0, 10, 20}, SweepConfig{MinPitch: 0, MaxPitch: 20, Steps: 3}.Pitches())
	assert.Equal(t, []float64{5}, SweepConfig{MinPitch: 5, MaxPitch: 20, Steps: 1}.Pitches())
}

func TestPredictSweepMatchesSequentialPredictions(t *testing.T) {
	scene := wallScene(20)
	request := SweepRequest{
		Origin:       mgl64.Vec3{16.5, 10, 0.5},
		Sweep:        SweepConfig{Yaw: 0, MinPitch: -20, MaxPitch: 40, Steps: 7, Workers: 3},
		Simulation:   ballistics.DefaultSimulationConfig(),
		TargetLeeway: ballistics.DefaultTargetLeeway,
	}
	samples, err := PredictSweep(context.Background(), request, scene, NewRegistry())
	require.NoError(t, err)
	require.Len(t, samples, 7)

	for i, sample := range samples {
		assert.Equal(t, request.Sweep.Pitches()[i], sample.Pitch)
		expected, err := ballistics.Predict(request.Origin, sample.Direction, request.Simulation, nil, scene)
		require.NoError(t, err)
		assert.Equal(t, expected, sample.Result)
		assert.False(t, sample.OnTarget)
	}
}

func TestPredictSweepReportsTargets(t *testing.T) {
	origin := mgl64.Vec3{0, 10, 0}
	config := ballistics.SimulationConfig{Speed: 10, Gravity: 0, TimeStep: ballistics.DefaultTimeStep, MaxTime: 1}
	targets := TargetSourceFunc(func() []ballistics.Target {
		return []ballistics.Target{{Name: "straight ahead", ReferencePoint: mgl64.Vec3{0, 10, 10}, ReferenceRadius: 0.3}}
	})
	request := SweepRequest{
		Origin:       origin,
		Sweep:        SweepConfig{MinPitch: 0, MaxPitch: 30, Steps: 2},
		Simulation:   config,
		TargetLeeway: ballistics.DefaultTargetLeeway,
	}
	samples, err := PredictSweep(context.Background(), request, ballistics.EmptyScene, targets)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.True(t, samples[0].OnTarget)
	assert.Equal(t, "straight ahead", samples[0].Target.Name)
	assert.False(t, samples[1].OnTarget)
}

func TestPredictSweepWithoutTargets(t *testing.T) {
	request := SweepRequest{
		Origin:       mgl64.Vec3{0, 10, 0},
		Sweep:        SweepConfig{MinPitch: 0, MaxPitch: 30, Steps: 3, Workers: 2},
		Simulation:   ballistics.SimulationConfig{Speed: 10, Gravity: 0, TimeStep: ballistics.DefaultTimeStep, MaxTime: 1},
		TargetLeeway: ballistics.DefaultTargetLeeway,
	}
	samples, err := PredictSweep(context.Background(), request, ballistics.EmptyScene, nil)
	require.NoError(t, err)
	require.Len(t, samples, 3)
	for _, sample := range samples {
		assert.False(t, sample.OnTarget)
	}
}

func TestPredictSweepPropagatesErrors(t *testing.T) {
	failure := errors.New("lost scene")
	caster := ballistics.RayCasterFunc(func(mgl64.Vec3, mgl64.Vec3, float64, ballistics.ExclusionSet) (ballistics.RayHit, error) {
		return ballistics.RayHit{}, failure
	})
	request := SweepRequest{
		Sweep:      SweepConfig{MinPitch: 0, MaxPitch: 10, Steps: 4, Workers: 2},
		Simulation: ballistics.DefaultSimulationConfig(),
	}
	_, err := PredictSweep(context.Background(), request, caster, NewRegistry())
	require.Error(t, err)
	assert.Equal(t, failure, errors.Cause(err))
}

func TestPredictSweepHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	request := SweepRequest{
		Sweep:      SweepConfig{MinPitch: 0, MaxPitch: 10, Steps: 4},
		Simulation: ballistics.DefaultSimulationConfig(),
	}
	_, err := PredictSweep(ctx, request, ballistics.EmptyScene, NewRegistry())
	assert.ErrorIs(t, err, context.Canceled)
}
