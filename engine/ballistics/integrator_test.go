package ballistics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planeAtZ is an infinite wall facing -Z.
func planeAtZ(z float64, id uuid.UUID) RayCaster {
	return RayCasterFunc(func(origin, direction mgl64.Vec3, maxDistance float64, exclude ExclusionSet) (RayHit, error) {
		if maxDistance <= 0 || direction.Z() <= 0 || exclude.Contains(id) {
			return RayHit{}, nil
		}
		t := (z - origin.Z()) / direction.Z()
		if t < 0 || t > maxDistance {
			return RayHit{}, nil
		}
		return RayHit{Hit: true, Position: origin.Add(direction.Mul(t)), Object: id}, nil
	})
}

func TestPredictWithoutGravityFollowsStraightLine(t *testing.T) {
	cases := []struct {
		name      string
		origin    mgl64.Vec3
		direction mgl64.Vec3
		config    SimulationConfig
	}{
		{"along x", mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 0, 0}, SimulationConfig{Speed: 10, TimeStep: 0.25, MaxTime: 2}},
		{"along -z", mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, 0, -1}, SimulationConfig{Speed: 3, TimeStep: 0.125, MaxTime: 4}},
		{"diagonal", mgl64.Vec3{}, mgl64.Vec3{1, 0, 1}.Normalize(), SimulationConfig{Speed: 153, TimeStep: DefaultTimeStep, MaxTime: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Predict(tc.origin, tc.direction, tc.config, nil, EmptyScene)
			require.NoError(t, err)
			assert.False(t, result.Hit)
			expected := tc.origin.Add(tc.direction.Mul(tc.config.Speed * tc.config.MaxTime))
			assert.True(t, result.Point.ApproxEqualThreshold(expected, 1e-6), "got %v, want %v", result.Point, expected)
			assert.Equal(t, tc.config.StepCount(), result.Steps)
		})
	}
}

func TestPredictPathDescendsAfterApex(t *testing.T) {
	for _, gravity := range []float64{1, 9.81, 227} {
		config := SimulationConfig{Speed: 20, Gravity: gravity, TimeStep: DefaultTimeStep, MaxTime: 5}
		direction := DirectionFromAngles(45, 30)
		result, path, err := PredictPath(mgl64.Vec3{0, 1, 0}, direction, config, nil, EmptyScene)
		require.NoError(t, err)
		require.False(t, result.Hit)
		require.Len(t, path, config.StepCount()+1)

		apex := TimeToApex(direction, config)
		for i := 1; i < len(path); i++ {
			if float64(i-1)*config.TimeStep < apex {
				continue
			}
			assert.LessOrEqual(t, path[i].Y(), path[i-1].Y(), "gravity %v, step %d", gravity, i)
		}
		assert.Equal(t, result.Point, path[len(path)-1])
	}
}

func TestPredictHitsPlanarObstacle(t *testing.T) {
	wall := uuid.New()
	config := SimulationConfig{Speed: 50, Gravity: 9.81, TimeStep: DefaultTimeStep, MaxTime: 5}
	origin := mgl64.Vec3{0, 10, 0}
	distance := 20.0

	result, err := Predict(origin, mgl64.Vec3{0, 0, 1}, config, nil, planeAtZ(distance, wall))
	require.NoError(t, err)
	require.True(t, result.Hit)
	assert.Equal(t, wall, result.Object)

	impactTime := distance / config.Speed
	analyticY := origin.Y() - 0.5*config.Gravity*impactTime*impactTime
	stepError := 0.5 * config.Gravity * config.TimeStep * config.TimeStep
	assert.InDelta(t, distance, result.Point.Z(), 1e-9)
	assert.InDelta(t, analyticY, result.Point.Y(), stepError)
	assert.InDelta(t, impactTime, result.Elapsed, config.TimeStep)
}

func TestPredictIgnoresExcludedObstacle(t *testing.T) {
	wall := uuid.New()
	config := SimulationConfig{Speed: 50, TimeStep: 0.05, MaxTime: 1}

	result, err := Predict(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, config, NewExclusionSet(wall), planeAtZ(10, wall))
	require.NoError(t, err)
	assert.False(t, result.Hit)
	assert.InDelta(t, 50, result.Point.Z(), 1e-9)
}

func TestPredictStopsAtFirstHitSegment(t *testing.T) {
	calls := 0
	caster := RayCasterFunc(func(origin, direction mgl64.Vec3, maxDistance float64, exclude ExclusionSet) (RayHit, error) {
		calls++
		if calls == 3 {
			return RayHit{Hit: true, Position: origin}, nil
		}
		return RayHit{}, nil
	})
	config := SimulationConfig{Speed: 1, TimeStep: 0.5, MaxTime: 10}

	result, err := Predict(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, config, nil, caster)
	require.NoError(t, err)
	assert.True(t, result.Hit)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, result.Steps)
	assert.InDelta(t, 1.0, result.Point.X(), 1e-12)
}

func TestPredictPassesSegmentsToCaster(t *testing.T) {
	exclude := NewExclusionSet(uuid.New())
	config := SimulationConfig{Speed: 10, Gravity: 10, TimeStep: 0.1, MaxTime: 0.3}
	var origins []mgl64.Vec3
	caster := RayCasterFunc(func(origin, direction mgl64.Vec3, maxDistance float64, got ExclusionSet) (RayHit, error) {
		assert.Equal(t, exclude, got)
		assert.InDelta(t, 1.0, direction.Len(), 1e-12)
		origins = append(origins, origin)
		return RayHit{}, nil
	})

	_, path, err := PredictPath(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, config, exclude, caster)
	require.NoError(t, err)
	require.Len(t, origins, 3)
	for i, origin := range origins {
		assert.Equal(t, path[i], origin)
	}
}

func TestPredictZeroLengthSegments(t *testing.T) {
	caster := RayCasterFunc(func(origin, direction mgl64.Vec3, maxDistance float64, exclude ExclusionSet) (RayHit, error) {
		assert.Zero(t, maxDistance)
		return RayHit{}, nil
	})
	config := SimulationConfig{Speed: 0, Gravity: 0, TimeStep: 0.5, MaxTime: 1}

	result, err := Predict(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0, 1, 0}, config, nil, caster)
	require.NoError(t, err)
	assert.False(t, result.Hit)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, result.Point)
}

func TestPredictPropagatesCasterError(t *testing.T) {
	failure := errors.New("scene unavailable")
	caster := RayCasterFunc(func(mgl64.Vec3, mgl64.Vec3, float64, ExclusionSet) (RayHit, error) {
		return RayHit{}, failure
	})

	_, err := Predict(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, DefaultSimulationConfig(), nil, caster)
	assert.Equal(t, failure, err)

	_, _, err = PredictPath(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, DefaultSimulationConfig(), nil, caster)
	assert.Equal(t, failure, err)
}

func TestPredictDefaultScenarioInEmptyScene(t *testing.T) {
	config := SimulationConfig{Speed: 153, Gravity: 227, TimeStep: 1.0 / 240.0, MaxTime: 5}
	origin := mgl64.Vec3{0, 10, 0}

	result, err := Predict(origin, mgl64.Vec3{0, 0, 1}, config, nil, EmptyScene)
	require.NoError(t, err)
	assert.False(t, result.Hit)
	assert.Equal(t, 1200, result.Steps)
	assert.Less(t, result.Point.Y(), origin.Y()-1)
	assert.InDelta(t, origin.Y()-0.5*227*25, result.Point.Y(), 1e-6)
	assert.InDelta(t, 153*5, result.Point.Z(), 1e-6)
	assert.InDelta(t, 5, result.Elapsed, 1e-9)
}

func TestSimulationConfigValidate(t *testing.T) {
	require.NoError(t, DefaultSimulationConfig().Validate())

	invalid := []SimulationConfig{
		{Speed: 1, Gravity: 1, TimeStep: 0, MaxTime: 1},
		{Speed: 1, Gravity: 1, TimeStep: -0.1, MaxTime: 1},
		{Speed: 1, Gravity: 1, TimeStep: 0.1, MaxTime: 0},
		{Speed: 1, Gravity: 1, TimeStep: math.Inf(1), MaxTime: 1},
		{Speed: 1, Gravity: 1, TimeStep: 0.1, MaxTime: math.NaN()},
		{Speed: math.NaN(), Gravity: 1, TimeStep: 0.1, MaxTime: 1},
		{Speed: 1, Gravity: math.Inf(-1), TimeStep: 0.1, MaxTime: 1},
	}
	for _, config := range invalid {
		assert.Error(t, config.Validate(), "%+v", config)
	}
}

func TestSimulationConfigStepCount(t *testing.T) {
	assert.Equal(t, 1200, DefaultSimulationConfig().StepCount())
	assert.Equal(t, 3, SimulationConfig{TimeStep: 0.1, MaxTime: 0.3}.StepCount())
	assert.Equal(t, 4, SimulationConfig{TimeStep: 0.3, MaxTime: 1}.StepCount())
	assert.Zero(t, SimulationConfig{TimeStep: 0, MaxTime: 1}.StepCount())
	assert.Zero(t, SimulationConfig{TimeStep: 0.1, MaxTime: -1}.StepCount())
	assert.Equal(t, 1, SimulationConfig{TimeStep: 1, MaxTime: 1e-12}.StepCount())
	assert.Equal(t, 2, SimulationConfig{TimeStep: 1, MaxTime: 1 + 1e-6}.StepCount())
	assert.Equal(t, math.MaxInt, SimulationConfig{TimeStep: 1e-300, MaxTime: 1e300}.StepCount())
}

func TestPredictShortHorizonTakesOneStep(t *testing.T) {
	config := SimulationConfig{Speed: 1, TimeStep: 1, MaxTime: 1e-12}
	result, err := Predict(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, config, nil, EmptyScene)
	require.NoError(t, err)
	assert.False(t, result.Hit)
	assert.Equal(t, 1, result.Steps)
	assert.InDelta(t, 1.0, result.Point.X(), 1e-12)
}

func TestPredictPathFirstHitUnderHugeHorizon(t *testing.T) {
	config := SimulationConfig{Speed: 1, TimeStep: 1e-9, MaxTime: 1e9}
	require.NoError(t, config.Validate())
	wall := RayCasterFunc(func(origin, direction mgl64.Vec3, maxDistance float64, exclude ExclusionSet) (RayHit, error) {
		return RayHit{Hit: true, Position: origin}, nil
	})

	result, path, err := PredictPath(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{0, 0, 1}, config, nil, wall)
	require.NoError(t, err)
	assert.True(t, result.Hit)
	assert.Equal(t, 1, result.Steps)
	assert.Equal(t, []mgl64.Vec3{{1, 2, 3}, {1, 2, 3}}, path)
}

func TestDirectionFromAngles(t *testing.T) {
	assert.True(t, DirectionFromAngles(0, 0).ApproxEqual(mgl64.Vec3{0, 0, 1}))
	assert.True(t, DirectionFromAngles(90, 0).ApproxEqual(mgl64.Vec3{1, 0, 0}))
	assert.True(t, DirectionFromAngles(0, 90).ApproxEqual(mgl64.Vec3{0, 1, 0}))
	assert.InDelta(t, 1.0, DirectionFromAngles(33, -17).Len(), 1e-12)
}

// execute with: go test -bench=. -test.benchmem
func BenchmarkPredictEmptyScene(b *testing.B) {
	config := DefaultSimulationConfig()
	direction := DirectionFromAngles(0, 10)
	for i := 0; i < b.N; i++ {
		_, _ = Predict(mgl64.Vec3{0, 10, 0}, direction, config, nil, EmptyScene)
	}
}
