package ballistics

import (
	"math"

	"github.com/pkg/errors"
)

const DefaultTimeStep = 1.0 / 240.0

// SimulationConfig is constant for one prediction. Gravity is the magnitude of
// the acceleration along -Y.
type SimulationConfig struct {
	Speed    float64 `yaml:"speed"`
	Gravity  float64 `yaml:"gravity"`
	TimeStep float64 `yaml:"time_step"`
	MaxTime  float64 `yaml:"max_time"`
}

func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Speed:    153,
		Gravity:  227,
		TimeStep: DefaultTimeStep,
		MaxTime:  5,
	}
}

func (c SimulationConfig) Validate() error {
	if !isFinite(c.Speed) {
		return errors.Errorf("speed must be finite, got %v", c.Speed)
	}
	if !isFinite(c.Gravity) {
		return errors.Errorf("gravity must be finite, got %v", c.Gravity)
	}
	if !isFinite(c.TimeStep) || c.TimeStep <= 0 {
		return errors.Errorf("time step must be finite and positive, got %v", c.TimeStep)
	}
	if !isFinite(c.MaxTime) || c.MaxTime <= 0 {
		return errors.Errorf("max time must be finite and positive, got %v", c.MaxTime)
	}
	return nil
}

// StepCount is the number of segments simulated before the horizon is reached,
// the step count of a loop running while elapsed < MaxTime. A last step that
// would start at MaxTime up to rounding is not taken, so 5/(1/240) gives 1200.
func (c SimulationConfig) StepCount() int {
	if c.TimeStep <= 0 || c.MaxTime <= 0 {
		return 0
	}
	steps := math.Ceil(c.MaxTime / c.TimeStep)
	if steps >= float64(math.MaxInt) {
		return math.MaxInt
	}
	if steps > 1 && (steps-1)*c.TimeStep >= c.MaxTime*(1-stepRoundingTolerance) {
		steps--
	}
	return int(steps)
}

const stepRoundingTolerance = 1e-9

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
