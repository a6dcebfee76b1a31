package engine

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/lixenwraith/framepace/status"
)

// MainLoop converts wall-clock frame deltas into fixed simulation steps
// Call Update once per rendered frame, then run GetSimStepsThisFrame ticks and blend
// render state with GetInterpolationAlpha
// Not safe for concurrent use, one goroutine drives a loop
type MainLoop struct {
	config FrameTimingConfig

	accumulator        float64
	simTime            float64
	simStepsThisFrame  int
	stepDt             float64
	interpolationAlpha float64

	totalSteps    uint64
	frameCount    uint64
	clampedFrames uint64

	// Cached metric pointers, nil until AttachStatus
	statSteps       *atomic.Int64
	statTotalSteps  *atomic.Int64
	statFrames      *atomic.Int64
	statClamped     *atomic.Int64
	statSimTime     *status.AtomicFloat
	statAlpha       *status.AtomicFloat
	statAccumulator *status.AtomicFloat
	statMaxFrameDt  *status.AtomicFloat
}

// NewMainLoop creates a loop after validating config
func NewMainLoop(config FrameTimingConfig) (*MainLoop, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ml := &MainLoop{config: config}
	ml.Reset()
	return ml, nil
}

// MustNewMainLoop is NewMainLoop for configs known valid at compile time
func MustNewMainLoop(config FrameTimingConfig) *MainLoop {
	ml, err := NewMainLoop(config)
	if err != nil {
		panic(fmt.Sprintf("engine: %v", err))
	}
	return ml
}

// Reset returns the loop to its initial state, config and attached metrics are kept
func (ml *MainLoop) Reset() {
	ml.accumulator = 0
	ml.simTime = 0
	ml.simStepsThisFrame = 0
	ml.totalSteps = 0
	ml.frameCount = 0
	ml.clampedFrames = 0
	if ml.config.EnableFixedStep {
		ml.stepDt = ml.config.FixedDt
		ml.interpolationAlpha = 0
	} else {
		ml.stepDt = 0
		ml.interpolationAlpha = 1.0
	}
	if ml.statMaxFrameDt != nil {
		ml.statMaxFrameDt.Set(0)
	}
	ml.publish()
}

// Update advances the loop by one host frame of dtS seconds
// Negative and NaN deltas count as zero, deltas above MaxDt are clamped
func (ml *MainLoop) Update(dtS float64) {
	clamped := false

	dt := dtS
	if !(dt > 0) {
		dt = 0
	}
	if ml.statMaxFrameDt != nil && !math.IsInf(dt, 1) {
		ml.statMaxFrameDt.Max(dt)
	}
	if dt >= ml.config.MaxDt {
		clamped = dt > ml.config.MaxDt
		dt = ml.config.MaxDt
	}

	ml.frameCount++

	if !ml.config.EnableFixedStep {
		ml.simTime += dt
		ml.simStepsThisFrame = 1
		ml.stepDt = dt
		ml.interpolationAlpha = 1.0
		ml.totalSteps++
		if clamped {
			ml.clampedFrames++
		}
		ml.publish()
		return
	}

	ml.accumulator += dt
	if ml.accumulator > ml.config.MaxAccumulator {
		ml.accumulator = ml.config.MaxAccumulator
		clamped = true
	}

	steps := 0
	for ml.accumulator >= ml.config.FixedDt {
		ml.accumulator -= ml.config.FixedDt
		steps++
	}

	ml.simStepsThisFrame = steps
	ml.totalSteps += uint64(steps)
	// One multiply from the tick count keeps simTime an exact multiple of FixedDt
	ml.simTime = float64(ml.totalSteps) * ml.config.FixedDt

	alpha := ml.accumulator / ml.config.FixedDt
	if alpha >= 1 {
		alpha = math.Nextafter(1, 0)
	}
	ml.interpolationAlpha = alpha

	if clamped {
		ml.clampedFrames++
	}
	ml.publish()
}

// GetSimStepsThisFrame returns the fixed ticks produced by the last Update
func (ml *MainLoop) GetSimStepsThisFrame() int {
	return ml.simStepsThisFrame
}

// GetStepDt returns the seconds each tick of the last Update simulates
// FixedDt in fixed-step mode, the clamped frame delta in legacy mode
func (ml *MainLoop) GetStepDt() float64 {
	return ml.stepDt
}

// GetInterpolationAlpha returns the position inside the pending tick, [0,1) in fixed mode, 1 in legacy mode
func (ml *MainLoop) GetInterpolationAlpha() float64 {
	return ml.interpolationAlpha
}

// GetSimTime returns cumulative simulated seconds
func (ml *MainLoop) GetSimTime() float64 {
	return ml.simTime
}

// GetAccumulator returns the post-clamp, post-drain residual
func (ml *MainLoop) GetAccumulator() float64 {
	return ml.accumulator
}

// GetTotalSteps returns ticks produced across all Updates since Reset
func (ml *MainLoop) GetTotalSteps() uint64 {
	return ml.totalSteps
}

// GetFrameCount returns Update calls since Reset
func (ml *MainLoop) GetFrameCount() uint64 {
	return ml.frameCount
}

// GetClampedFrames returns Updates that hit the MaxDt or MaxAccumulator clamp
func (ml *MainLoop) GetClampedFrames() uint64 {
	return ml.clampedFrames
}

// Config returns the loop's timing policy
func (ml *MainLoop) Config() FrameTimingConfig {
	return ml.config
}

// MaxStepsPerUpdate returns the upper bound on GetSimStepsThisFrame
func (ml *MainLoop) MaxStepsPerUpdate() int {
	return ml.config.MaxStepsPerUpdate()
}

// AttachStatus publishes loop state into reg after every Update
// Must be called before the loop is driven; readers may poll reg from any goroutine
func (ml *MainLoop) AttachStatus(reg *status.Registry) {
	ml.statSteps = reg.Ints.Get("loop.steps")
	ml.statTotalSteps = reg.Ints.Get("loop.total_steps")
	ml.statFrames = reg.Ints.Get("loop.frames")
	ml.statClamped = reg.Ints.Get("loop.clamped_frames")
	ml.statSimTime = reg.Floats.Get("loop.sim_time")
	ml.statAlpha = reg.Floats.Get("loop.alpha")
	ml.statAccumulator = reg.Floats.Get("loop.accumulator")
	// High-water mark of raw incoming deltas, before the MaxDt clamp
	ml.statMaxFrameDt = reg.Floats.Get("loop.max_frame_dt")

	reg.Bools.Get("loop.fixed_step").Store(ml.config.EnableFixedStep)
	reg.Floats.Get("loop.tick_rate").Set(ml.config.TickRate())

	ml.publish()
}

func (ml *MainLoop) publish() {
	if ml.statSteps == nil {
		return
	}
	ml.statSteps.Store(int64(ml.simStepsThisFrame))
	ml.statTotalSteps.Store(int64(ml.totalSteps))
	ml.statFrames.Store(int64(ml.frameCount))
	ml.statClamped.Store(int64(ml.clampedFrames))
	ml.statSimTime.Set(ml.simTime)
	ml.statAlpha.Set(ml.interpolationAlpha)
	ml.statAccumulator.Set(ml.accumulator)
}
