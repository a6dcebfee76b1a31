package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/framepace/audio"
	"github.com/lixenwraith/framepace/core"
	"github.com/lixenwraith/framepace/engine"
	"github.com/lixenwraith/framepace/parameter"
)

var (
	tpsFlag           = flag.Int("tps", parameter.SimTickRate, "Simulation ticks per second")
	legacyFlag        = flag.Bool("legacy", false, "Use legacy variable-step mode")
	seedFlag          = flag.Uint64("seed", 0, "Simulation RNG seed")
	walkersFlag       = flag.Int("walkers", 24, "Number of simulated walkers")
	audioFlag         = flag.Bool("audio", false, "Click once per simulation tick")
	debugFlag         = flag.Bool("debug", false, "Write logs to logs/framepace.log")
	deterministicFlag = flag.Bool("deterministic", false, "Start with determinism mode enabled")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "framepace-demo: %v\n", err)
		os.Exit(2)
	}
	log.Printf("config: %+v", cfg)

	mode := engine.ProcessDeterminism()
	mode.SetEnabled(cfg.Deterministic)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()

	// Recover main goroutine panics the same way as core.Go does for workers
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	var metronome *audio.Metronome
	if *audioFlag {
		metronome = audio.NewMetronome(int(cfg.Timing.TickRate()), cfg.Seed)
		if err := metronome.Initialize(); err != nil {
			// Non-fatal, the demo runs without sound
			log.Printf("audio initialization failed: %v", err)
			metronome = nil
		} else {
			defer metronome.Cleanup()
		}
	}

	h, err := newHost(screen, hostOptions{
		Timing:    cfg.Timing,
		Seed:      cfg.Seed,
		Walkers:   *walkersFlag,
		Clock:     engine.NewFrameClock(engine.MonotonicTimeSource{}),
		Mode:      mode,
		Metronome: metronome,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "framepace-demo: %v\n", err)
		os.Exit(2)
	}

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	for {
		select {
		case ev := <-events:
			if !h.handleEvent(ev) {
				log.Printf("exit: frames=%d steps=%d sim_time=%.3f", h.loop.GetFrameCount(), h.loop.GetTotalSteps(), h.loop.GetSimTime())
				return
			}
		case <-frameTicker.C:
			h.frame()
		}
	}
}

// loadConfig layers environment overrides on compile-time defaults, then explicit flags on top
func loadConfig() (engine.HostConfig, error) {
	base := engine.DefaultHostConfig()
	cfg, err := engine.LoadHostConfig(base)
	if err != nil {
		return engine.HostConfig{}, err
	}

	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tps":
			if *tpsFlag < parameter.MinTickRate || *tpsFlag > parameter.MaxTickRate {
				flagErr = fmt.Errorf("-tps %d outside [%d, %d]", *tpsFlag, parameter.MinTickRate, parameter.MaxTickRate)
				return
			}
			rated := engine.FrameTimingConfigForRate(*tpsFlag)
			cfg.Timing.FixedDt = rated.FixedDt
			cfg.Timing.MaxAccumulator = max(cfg.Timing.MaxAccumulator, rated.FixedDt)
		case "legacy":
			cfg.Timing.EnableFixedStep = !*legacyFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "deterministic":
			cfg.Deterministic = *deterministicFlag
		}
	})
	if flagErr != nil {
		return engine.HostConfig{}, flagErr
	}
	if *walkersFlag < 0 {
		return engine.HostConfig{}, fmt.Errorf("-walkers %d must be >= 0", *walkersFlag)
	}

	if err := cfg.Timing.Validate(); err != nil {
		return engine.HostConfig{}, err
	}
	return cfg, nil
}
