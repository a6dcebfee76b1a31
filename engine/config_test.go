package engine

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/lixenwraith/framepace/parameter"
)

func TestFrameTimingConfig_Validate(t *testing.T) {
	valid := DefaultFrameTimingConfig()

	tests := []struct {
		name    string
		mutate  func(*FrameTimingConfig)
		wantErr error
	}{
		{"defaults", func(c *FrameTimingConfig) {}, nil},
		{"legacy", func(c *FrameTimingConfig) { c.EnableFixedStep = false }, nil},
		{"accumulator equals tick", func(c *FrameTimingConfig) { c.MaxAccumulator = c.FixedDt }, nil},
		{"zero fixed dt", func(c *FrameTimingConfig) { c.FixedDt = 0 }, ErrInvalidFixedDt},
		{"negative fixed dt", func(c *FrameTimingConfig) { c.FixedDt = -0.01 }, ErrInvalidFixedDt},
		{"NaN fixed dt", func(c *FrameTimingConfig) { c.FixedDt = math.NaN() }, ErrInvalidFixedDt},
		{"zero max dt", func(c *FrameTimingConfig) { c.MaxDt = 0 }, ErrInvalidMaxDt},
		{"infinite max dt", func(c *FrameTimingConfig) { c.MaxDt = math.Inf(1) }, ErrInvalidMaxDt},
		{"accumulator below tick", func(c *FrameTimingConfig) { c.MaxAccumulator = c.FixedDt / 2 }, ErrInvalidMaxAccumulator},
		{"zero accumulator", func(c *FrameTimingConfig) { c.MaxAccumulator = 0 }, ErrInvalidMaxAccumulator},
		{"budget at limit", func(c *FrameTimingConfig) { c.FixedDt = 1.0 / (1 << 20); c.MaxAccumulator = 1 }, nil},
		{"budget exceeded", func(c *FrameTimingConfig) { c.FixedDt = 1.0 / (1 << 21); c.MaxAccumulator = 1 }, ErrStepBudget},
		{"tiny fixed dt", func(c *FrameTimingConfig) { c.FixedDt = 1e-20; c.MaxAccumulator = 1 }, ErrStepBudget},
		{"budget overflows", func(c *FrameTimingConfig) { c.FixedDt = 5e-324; c.MaxAccumulator = 1 }, ErrStepBudget},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Expected valid config, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFrameTimingConfig_MaxStepsPerUpdate(t *testing.T) {
	cfg := FrameTimingConfig{FixedDt: 0.25, MaxDt: 1, MaxAccumulator: 1.1, EnableFixedStep: true}
	if got := cfg.MaxStepsPerUpdate(); got != 4 {
		t.Errorf("Expected 4, got %d", got)
	}

	cfg.EnableFixedStep = false
	if got := cfg.MaxStepsPerUpdate(); got != 1 {
		t.Errorf("Expected 1 in legacy mode, got %d", got)
	}

	// Unvalidated configs saturate instead of overflowing int
	huge := FrameTimingConfig{FixedDt: 1e-20, MaxDt: 1, MaxAccumulator: 1, EnableFixedStep: true}
	if got := huge.MaxStepsPerUpdate(); got != parameter.MaxStepBudget {
		t.Errorf("Expected saturation at %d, got %d", parameter.MaxStepBudget, got)
	}
}

func TestFrameTimingConfigForRate(t *testing.T) {
	cfg := FrameTimingConfigForRate(2)
	if cfg.FixedDt != 0.5 {
		t.Errorf("Expected fixed dt 0.5, got %v", cfg.FixedDt)
	}
	if cfg.MaxAccumulator < cfg.FixedDt {
		t.Errorf("Expected accumulator raised to one tick, got %v", cfg.MaxAccumulator)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	if got := FrameTimingConfigForRate(0); got != DefaultFrameTimingConfig() {
		t.Errorf("Expected defaults for non-positive rate, got %+v", got)
	}
}

func TestLoadHostConfig_Defaults(t *testing.T) {
	cfg, err := LoadHostConfig(DefaultHostConfig())
	if err != nil {
		t.Fatalf("load host config: %v", err)
	}
	if cfg != DefaultHostConfig() {
		t.Errorf("Expected defaults untouched, got %+v", cfg)
	}
}

func TestLoadHostConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FRAMEPACE_FIXED_DT", "0.01")
	t.Setenv("FRAMEPACE_MAX_ACCUMULATOR", "0.5")
	t.Setenv("FRAMEPACE_FIXED_STEP", "false")
	t.Setenv("FRAMEPACE_DETERMINISTIC", "true")
	t.Setenv("FRAMEPACE_SEED", "987654321")

	cfg, err := LoadHostConfig(DefaultHostConfig())
	if err != nil {
		t.Fatalf("load host config: %v", err)
	}
	if cfg.Timing.FixedDt != 0.01 || cfg.Timing.MaxAccumulator != 0.5 || cfg.Timing.EnableFixedStep {
		t.Errorf("Expected timing overrides applied, got %+v", cfg.Timing)
	}
	if cfg.Timing.MaxDt != DefaultFrameTimingConfig().MaxDt {
		t.Errorf("Expected unset MaxDt to keep default, got %v", cfg.Timing.MaxDt)
	}
	if !cfg.Deterministic || cfg.Seed != 987654321 {
		t.Errorf("Expected deterministic=true seed=987654321, got %+v", cfg)
	}
}

func TestLoadHostConfig_ParseError(t *testing.T) {
	t.Setenv("FRAMEPACE_FIXED_DT", "not-a-float")

	_, err := LoadHostConfig(DefaultHostConfig())
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("Expected parse env prefix, got %v", err)
	}
}

func TestLoadHostConfig_InvalidTiming(t *testing.T) {
	t.Setenv("FRAMEPACE_MAX_ACCUMULATOR", "0.001")

	_, err := LoadHostConfig(DefaultHostConfig())
	if !errors.Is(err, ErrInvalidMaxAccumulator) {
		t.Fatalf("Expected ErrInvalidMaxAccumulator, got %v", err)
	}
}
