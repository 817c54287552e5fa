package game

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/memmaker/landingmarker/engine/ballistics"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type SweepSample struct {
	Pitch     float64
	Direction mgl64.Vec3
	Result    ballistics.PredictionResult
	OnTarget  bool
	Target    ballistics.Target
}

// SweepRequest describes a fan of throws with a fixed yaw.
type SweepRequest struct {
	Origin       mgl64.Vec3
	Sweep        SweepConfig
	Simulation   ballistics.SimulationConfig
	TargetLeeway float64
	Exclude      ballistics.ExclusionSet
}

// Pitches spreads Steps values evenly over [MinPitch, MaxPitch].
func (s SweepConfig) Pitches() []float64 {
	if s.Steps <= 1 {
		return []float64{s.MinPitch}
	}
	pitches := make([]float64, s.Steps)
	stepSize := (s.MaxPitch - s.MinPitch) / float64(s.Steps-1)
	for i := range pitches {
		pitches[i] = s.MinPitch + stepSize*float64(i)
	}
	return pitches
}

// PredictSweep predicts every pitch of the request concurrently. The result is
// ordered by pitch. A nil targets source means no targets. The first failing
// prediction cancels the remaining ones.
func PredictSweep(ctx context.Context, request SweepRequest, caster ballistics.RayCaster, targets TargetSource) ([]SweepSample, error) {
	if err := request.Sweep.Validate(); err != nil {
		return nil, err
	}
	pitches := request.Sweep.Pitches()
	samples := make([]SweepSample, len(pitches))
	var targetList []ballistics.Target
	if targets != nil {
		targetList = targets.Targets()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if request.Sweep.Workers > 0 {
		group.SetLimit(request.Sweep.Workers)
	}
	for index, pitch := range pitches {
		index, pitch := index, pitch
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			direction := ballistics.DirectionFromAngles(request.Sweep.Yaw, pitch)
			result, err := ballistics.Predict(request.Origin, direction, request.Simulation, request.Exclude, caster)
			if err != nil {
				return errors.Wrapf(err, "pitch %.2f", pitch)
			}
			sample := SweepSample{Pitch: pitch, Direction: direction, Result: result}
			sample.Target, sample.OnTarget = ballistics.NearestTarget(result.Point, targetList, request.TargetLeeway)
			samples[index] = sample
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}
