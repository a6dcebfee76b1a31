package engine

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// HostConfig is the environment-overridable setup of a simulation host
type HostConfig struct {
	Timing FrameTimingConfig

	// Deterministic is the initial value applied to the process DeterminismMode
	Deterministic bool `env:"FRAMEPACE_DETERMINISTIC"`

	// Seed seeds the host's root DeterministicRNG
	Seed uint64 `env:"FRAMEPACE_SEED"`
}

// DefaultHostConfig returns compile-time defaults with determinism off and seed 0
func DefaultHostConfig() HostConfig {
	return HostConfig{Timing: DefaultFrameTimingConfig()}
}

// ParseEnv overlays environment variables onto target
// Fields whose variable is unset keep their current value
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadHostConfig applies environment overrides to base and validates the timing section
func LoadHostConfig(base HostConfig) (HostConfig, error) {
	cfg := base
	if err := ParseEnv(&cfg); err != nil {
		return HostConfig{}, err
	}
	if err := cfg.Timing.Validate(); err != nil {
		return HostConfig{}, err
	}
	return cfg, nil
}
