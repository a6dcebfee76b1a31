package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/framepace/parameter"
)

// Configuration errors, wrapped by FrameTimingConfig.Validate
var (
	ErrInvalidFixedDt        = errors.New("fixed dt must be a finite value > 0")
	ErrInvalidMaxDt          = errors.New("max dt must be a finite value > 0")
	ErrInvalidMaxAccumulator = errors.New("max accumulator must be a finite value >= fixed dt")
	ErrStepBudget            = errors.New("max accumulator / fixed dt exceeds the per-update step budget")
)

// FrameTimingConfig is the immutable timing policy of a MainLoop
// All durations are in seconds
type FrameTimingConfig struct {
	// FixedDt is the duration of one simulation tick
	FixedDt float64 `env:"FRAMEPACE_FIXED_DT"`

	// MaxDt clamps any single incoming wall-clock delta
	MaxDt float64 `env:"FRAMEPACE_MAX_DT"`

	// MaxAccumulator clamps unconsumed time, bounding catch-up steps after a stall
	MaxAccumulator float64 `env:"FRAMEPACE_MAX_ACCUMULATOR"`

	// EnableFixedStep selects fixed-step with interpolation, false selects legacy variable step
	EnableFixedStep bool `env:"FRAMEPACE_FIXED_STEP"`
}

// DefaultFrameTimingConfig returns the 60 TPS fixed-step defaults
func DefaultFrameTimingConfig() FrameTimingConfig {
	return FrameTimingConfig{
		FixedDt:         parameter.FixedDtSeconds,
		MaxDt:           parameter.MaxDtSeconds,
		MaxAccumulator:  parameter.MaxAccumulatorSeconds,
		EnableFixedStep: parameter.EnableFixedStep,
	}
}

// FrameTimingConfigForRate returns the defaults retuned to tps ticks per second
// MaxAccumulator is raised to one tick when the default would fall below it
func FrameTimingConfigForRate(tps int) FrameTimingConfig {
	cfg := DefaultFrameTimingConfig()
	if tps > 0 {
		cfg.FixedDt = 1.0 / float64(tps)
	}
	if cfg.MaxAccumulator < cfg.FixedDt {
		cfg.MaxAccumulator = cfg.FixedDt
	}
	return cfg
}

// Validate rejects configurations that break the loop's invariants
func (c FrameTimingConfig) Validate() error {
	if !finitePositive(c.FixedDt) {
		return fmt.Errorf("frame timing config: fixed dt %v: %w", c.FixedDt, ErrInvalidFixedDt)
	}
	if !finitePositive(c.MaxDt) {
		return fmt.Errorf("frame timing config: max dt %v: %w", c.MaxDt, ErrInvalidMaxDt)
	}
	if !finitePositive(c.MaxAccumulator) || c.MaxAccumulator < c.FixedDt {
		return fmt.Errorf("frame timing config: max accumulator %v (fixed dt %v): %w",
			c.MaxAccumulator, c.FixedDt, ErrInvalidMaxAccumulator)
	}
	// Also keeps accumulator -= FixedDt from stalling on float precision
	if ratio := c.MaxAccumulator / c.FixedDt; !(ratio <= parameter.MaxStepBudget) {
		return fmt.Errorf("frame timing config: %v ticks per update (max %d): %w",
			ratio, parameter.MaxStepBudget, ErrStepBudget)
	}
	return nil
}

// MaxStepsPerUpdate returns the most fixed ticks a single Update can produce
func (c FrameTimingConfig) MaxStepsPerUpdate() int {
	if !c.EnableFixedStep {
		return 1
	}
	n := math.Floor(c.MaxAccumulator / c.FixedDt)
	if !(n <= parameter.MaxStepBudget) {
		return parameter.MaxStepBudget
	}
	return int(n)
}

// TickRate returns ticks per second
func (c FrameTimingConfig) TickRate() float64 {
	return 1.0 / c.FixedDt
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
