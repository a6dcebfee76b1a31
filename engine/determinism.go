package engine

import "sync/atomic"

// DeterminismMode is a policy flag read by subsystems that can trade speed for
// reproducibility: fixed iteration order, no nondeterministic parallel work
// MainLoop and DeterministicRNG never consult it; they are deterministic regardless
// Safe for concurrent use, zero value and nil are disabled
type DeterminismMode struct {
	enabled atomic.Bool
}

var processDeterminism DeterminismMode

// ProcessDeterminism returns the process-wide handle, disabled at process start
// Pass the handle to consumers explicitly rather than calling this from deep inside them
func ProcessDeterminism() *DeterminismMode {
	return &processDeterminism
}

// SetEnabled stores the flag
func (d *DeterminismMode) SetEnabled(enabled bool) {
	d.enabled.Store(enabled)
}

// IsEnabled loads the flag
func (d *DeterminismMode) IsEnabled() bool {
	if d == nil {
		return false
	}
	return d.enabled.Load()
}
