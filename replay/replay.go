// Package replay drives a MainLoop and a Swarm through a recorded or synthetic
// frame-delta trace and fingerprints the outcome, so two runs on different
// machines can be compared by checksum alone.
package replay

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/framepace/engine"
	"github.com/lixenwraith/framepace/parameter"
	"github.com/lixenwraith/framepace/sim"
	"github.com/lixenwraith/framepace/status"
	"github.com/lixenwraith/framepace/vmath"
)

// ErrEmptyTrace is returned when there is nothing to replay
var ErrEmptyTrace = errors.New("replay: empty delta trace")

// traceStream separates the trace RNG from the simulation RNG derived from the same seed
const traceStream = 0xD1B54A32D192ED03

// Options configures a replay run
type Options struct {
	Timing  engine.FrameTimingConfig
	Seed    uint64
	Walkers int
	Width   int
	Height  int
}

// DefaultOptions returns a 60 TPS run of 32 walkers on an 80x24 field
func DefaultOptions() Options {
	return Options{
		Timing:  engine.DefaultFrameTimingConfig(),
		Seed:    parameter.ReplayDefaultSeed,
		Walkers: 32,
		Width:   80,
		Height:  24,
	}
}

// Result summarizes a replay
type Result struct {
	Frames          int
	Steps           uint64
	SimTime         float64
	MaxStepsInFrame int
	ClampedFrames   uint64
	Draws           uint64
	Deterministic   bool
	// State fingerprints the final swarm only, Checksum covers the whole frame history
	State    string
	Checksum string
}

// String formats the result as a single report line
func (r Result) String() string {
	return fmt.Sprintf("frames=%d steps=%d sim_time=%.6f max_steps=%d clamped=%d draws=%d deterministic=%t checksum=%s",
		r.Frames, r.Steps, r.SimTime, r.MaxStepsInFrame, r.ClampedFrames, r.Draws, r.Deterministic, r.Checksum)
}

// SyntheticTrace builds frames deltas around a nominal 60 FPS frame with relative jitter
// in [0, 1), injecting a stall every stallEvery frames when stallEvery > 0
func SyntheticTrace(seed uint64, frames int, jitter float64, stallEvery int, stallSeconds float64) []float64 {
	const nominal = 1.0 / 60.0

	rng := vmath.NewDeterministicRNG(seed ^ traceStream)
	jitter = vmath.Clamp(jitter, 0, math.Nextafter(1, 0))

	trace := make([]float64, frames)
	for i := range trace {
		if stallEvery > 0 && i > 0 && i%stallEvery == 0 {
			trace[i] = stallSeconds
			continue
		}
		trace[i] = nominal * (1 + rng.NextFloat(-jitter, jitter))
	}
	return trace
}

// Run replays trace through a fresh MainLoop and Swarm
// mode is handed to the swarm and reported in the result; mode and reg may be nil
func Run(opts Options, trace []float64, mode *engine.DeterminismMode, reg *status.Registry) (Result, error) {
	if len(trace) == 0 {
		return Result{}, ErrEmptyTrace
	}
	if opts.Walkers < 0 || opts.Width < 1 || opts.Height < 1 {
		return Result{}, fmt.Errorf("replay: invalid field %dx%d with %d walkers", opts.Width, opts.Height, opts.Walkers)
	}

	loop, err := engine.NewMainLoop(opts.Timing)
	if err != nil {
		return Result{}, fmt.Errorf("replay: %w", err)
	}
	if reg != nil {
		loop.AttachStatus(reg)
	}

	swarm := sim.NewSwarm(opts.Walkers, sim.NewBounds(opts.Width, opts.Height), opts.Seed, mode)

	h := sha256.New()
	var frame [32]byte
	maxSteps := 0

	for _, dt := range trace {
		loop.Update(dt)

		steps := loop.GetSimStepsThisFrame()
		stepDt := loop.GetStepDt()
		for i := 0; i < steps; i++ {
			swarm.Step(stepDt)
		}
		maxSteps = max(maxSteps, steps)

		binary.LittleEndian.PutUint64(frame[0:], uint64(steps))
		binary.LittleEndian.PutUint64(frame[8:], math.Float64bits(loop.GetSimTime()))
		binary.LittleEndian.PutUint64(frame[16:], math.Float64bits(loop.GetInterpolationAlpha()))
		binary.LittleEndian.PutUint64(frame[24:], math.Float64bits(stepDt))
		h.Write(frame[:])
	}

	state := swarm.Checksum()
	h.Write(state[:])

	return Result{
		Frames:          len(trace),
		Steps:           loop.GetTotalSteps(),
		SimTime:         loop.GetSimTime(),
		MaxStepsInFrame: maxSteps,
		ClampedFrames:   loop.GetClampedFrames(),
		Draws:           swarm.Draws(),
		Deterministic:   mode.IsEnabled(),
		State:           hex.EncodeToString(state[:]),
		Checksum:        hex.EncodeToString(h.Sum(nil)),
	}, nil
}
