// Package ballistics predicts where a thrown or fired projectile comes down.
//
// The projectile is moved in fixed time steps under constant gravity and every
// step is tested as a segment against the scene, so thin geometry between two
// sample points is not skipped. The first segment that hits anything ends the
// simulation and the ray cast's own hit point is reported. There is no
// refinement of the impact time inside that segment.
package ballistics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Predict simulates a launch from origin along direction and returns the first
// impact. direction has to be a unit vector, it is scaled by config.Speed as is.
// Errors from caster are returned unchanged.
func Predict(origin, direction mgl64.Vec3, config SimulationConfig, exclude ExclusionSet, caster RayCaster) (PredictionResult, error) {
	return simulate(origin, direction, config, exclude, caster, nil)
}

// long horizons grow the path by append instead of reserving every step up front
const maxPathPrealloc = 1024

// PredictPath works like Predict and also returns the simulated arc: the origin,
// every committed step position and finally the impact or horizon point.
func PredictPath(origin, direction mgl64.Vec3, config SimulationConfig, exclude ExclusionSet, caster RayCaster) (PredictionResult, []mgl64.Vec3, error) {
	path := make([]mgl64.Vec3, 0, min(config.StepCount(), maxPathPrealloc)+2)
	path = append(path, origin)
	result, err := simulate(origin, direction, config, exclude, caster, func(pos mgl64.Vec3) {
		path = append(path, pos)
	})
	if err != nil {
		return result, path, err
	}
	if result.Hit {
		path = append(path, result.Point)
	}
	return result, path, nil
}

func simulate(origin, direction mgl64.Vec3, config SimulationConfig, exclude ExclusionSet, caster RayCaster, onStep func(mgl64.Vec3)) (PredictionResult, error) {
	dt := config.TimeStep
	state := LaunchState{
		Position: origin,
		Velocity: direction.Mul(config.Speed),
	}
	velocityStep := mgl64.Vec3{0, -config.Gravity * dt, 0}
	dropStep := mgl64.Vec3{0, -0.5 * config.Gravity * dt * dt, 0}

	steps := config.StepCount()
	elapsed := 0.0
	for i := 0; i < steps; i++ {
		nextVelocity := state.Velocity.Add(velocityStep)
		nextPosition := state.Position.Add(state.Velocity.Mul(dt)).Add(dropStep)

		segment := nextPosition.Sub(state.Position)
		length := segment.Len()
		var segmentDir mgl64.Vec3
		if length > 0 {
			segmentDir = segment.Mul(1 / length)
		}

		hit, err := caster.CastRay(state.Position, segmentDir, length, exclude)
		if err != nil {
			return PredictionResult{Point: state.Position, Elapsed: elapsed, Steps: i}, err
		}
		if hit.Hit {
			return PredictionResult{
				Point:   hit.Position,
				Hit:     true,
				Object:  hit.Object,
				Elapsed: elapsed + dt*hit.Position.Sub(state.Position).Len()/nonZero(length),
				Steps:   i + 1,
			}, nil
		}

		state.Position = nextPosition
		state.Velocity = nextVelocity
		elapsed += dt
		if onStep != nil {
			onStep(state.Position)
		}
	}
	return PredictionResult{Point: state.Position, Elapsed: elapsed, Steps: steps}, nil
}

func nonZero(f float64) float64 {
	if f == 0 {
		return math.Inf(1)
	}
	return f
}

// DirectionFromAngles returns the unit vector for a yaw around +Y (0 looks
// down +Z) and a pitch above the horizon, both in degrees.
func DirectionFromAngles(yawDegrees, pitchDegrees float64) mgl64.Vec3 {
	yaw := mgl64.DegToRad(yawDegrees)
	pitch := mgl64.DegToRad(pitchDegrees)
	return mgl64.Vec3{
		math.Cos(pitch) * math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch) * math.Cos(yaw),
	}
}

// TimeToApex is the time until the vertical velocity of a launch along
// direction reaches zero. It is zero for launches that start downwards.
func TimeToApex(direction mgl64.Vec3, config SimulationConfig) float64 {
	if config.Gravity <= 0 {
		return math.Inf(1)
	}
	return math.Max(0, direction.Y()*config.Speed/config.Gravity)
}
