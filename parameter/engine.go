package parameter

import "time"

// Frame Pacing & Simulation Timing
const (
	// SimTickRate is the default number of fixed simulation ticks per second
	SimTickRate = 60

	// FixedDtSeconds is the default duration of one simulation tick
	FixedDtSeconds = 1.0 / SimTickRate

	// MaxDtSeconds clamps a single wall-clock delta (debugger pause, frame stall)
	MaxDtSeconds = 0.25

	// MaxAccumulatorSeconds caps unconsumed time, bounding catch-up to 15 ticks at 60 TPS
	MaxAccumulatorSeconds = 0.25

	// EnableFixedStep selects fixed-step with interpolation over legacy variable step
	EnableFixedStep = true

	// MaxStepBudget caps MaxAccumulator/FixedDt, the worst-case ticks drained by one Update
	MaxStepBudget = 1 << 20
)

// Host Loop
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MinTickRate and MaxTickRate bound the -tps flag of host tools
	MinTickRate = 1
	MaxTickRate = 1000
)

// Replay Harness
const (
	// ReplayDefaultFrames is the number of host frames driven by a replay run
	ReplayDefaultFrames = 3600

	// ReplayDefaultSeed is the RNG seed used when none is given
	ReplayDefaultSeed = 0x5EED

	// ReplayDefaultJitter is the relative frame delta jitter of the synthetic trace
	ReplayDefaultJitter = 0.35

	// ReplayStallEvery injects a stall frame every N frames of the synthetic trace
	ReplayStallEvery = 600

	// ReplayStallSeconds is the delta reported by an injected stall frame
	ReplayStallSeconds = 1.5
)
