package engine

import (
	"math"
	"sync/atomic"
	"time"
)

// MockTimeSource is a TimeSource that moves only when a test moves it
// Frame traces in seconds feed it through Step, so a FrameClock reports them back as deltas
type MockTimeSource struct {
	origin  time.Time
	elapsed atomic.Int64 // nanoseconds since origin
}

// NewMockTimeSource creates a source frozen at origin
func NewMockTimeSource(origin time.Time) *MockTimeSource {
	return &MockTimeSource{origin: origin}
}

// Now returns origin plus everything advanced so far
func (m *MockTimeSource) Now() time.Time {
	return m.origin.Add(time.Duration(m.elapsed.Load()))
}

// Advance moves the source forward by d, negative d is ignored
func (m *MockTimeSource) Advance(d time.Duration) {
	if d > 0 {
		m.elapsed.Add(int64(d))
	}
}

// Step moves the source forward by one host frame of dt seconds, rounded to the nanosecond
// Non-positive and NaN frames are ignored, wall time never runs backwards
func (m *MockTimeSource) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	m.Advance(time.Duration(math.Round(dt * float64(time.Second))))
}

// Elapsed returns total time advanced since origin
func (m *MockTimeSource) Elapsed() time.Duration {
	return time.Duration(m.elapsed.Load())
}
