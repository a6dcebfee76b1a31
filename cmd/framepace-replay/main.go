package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/framepace/engine"
	"github.com/lixenwraith/framepace/parameter"
	"github.com/lixenwraith/framepace/replay"
	"github.com/lixenwraith/framepace/status"
)

var (
	framesFlag        = flag.Int("frames", parameter.ReplayDefaultFrames, "Host frames to replay")
	seedFlag          = flag.Uint64("seed", parameter.ReplayDefaultSeed, "Seed for the trace and the simulation")
	jitterFlag        = flag.Float64("jitter", parameter.ReplayDefaultJitter, "Relative frame delta jitter in [0, 1)")
	stallFlag         = flag.Int("stall-every", parameter.ReplayStallEvery, "Inject a stall every N frames, 0 disables")
	walkersFlag       = flag.Int("walkers", 32, "Number of simulated walkers")
	legacyFlag        = flag.Bool("legacy", false, "Use legacy variable-step mode")
	deterministicFlag = flag.Bool("deterministic", false, "Enable determinism mode")
	statusFlag        = flag.Bool("status", false, "Print final loop metrics")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "framepace-replay: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := engine.LoadHostConfig(engine.DefaultHostConfig())
	if err != nil {
		return err
	}
	if *legacyFlag {
		cfg.Timing.EnableFixedStep = false
	}
	if *framesFlag < 1 {
		return fmt.Errorf("-frames %d must be >= 1", *framesFlag)
	}

	mode := engine.ProcessDeterminism()
	mode.SetEnabled(cfg.Deterministic || *deterministicFlag)

	opts := replay.DefaultOptions()
	opts.Timing = cfg.Timing
	opts.Seed = *seedFlag
	opts.Walkers = *walkersFlag

	trace := replay.SyntheticTrace(opts.Seed, *framesFlag, *jitterFlag, *stallFlag, parameter.ReplayStallSeconds)

	reg := status.NewRegistry()
	res, err := replay.Run(opts, trace, mode, reg)
	if err != nil {
		return err
	}

	fmt.Println(res)
	if *statusFlag {
		for _, e := range reg.Snapshot() {
			fmt.Printf("  %-20s %s\n", e.Key, e.Value)
		}
	}
	return nil
}
