package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// TimeSource supplies wall-clock readings to a FrameClock
type TimeSource interface {
	Now() time.Time
}

// MonotonicTimeSource reads time.Now, which carries a monotonic clock reading
type MonotonicTimeSource struct{}

// Now returns the current time with monotonic clock reading
func (MonotonicTimeSource) Now() time.Time {
	return time.Now()
}

// FrameClock measures host frame deltas for MainLoop.Update
// Time spent paused is never reported, so resuming does not produce a stall spike
type FrameClock struct {
	mu  sync.Mutex
	src TimeSource

	last        time.Time
	pauseStart  time.Time
	totalPaused time.Duration

	isPaused atomic.Bool
}

// NewFrameClock creates a clock whose first Tick measures from now
func NewFrameClock(src TimeSource) *FrameClock {
	if src == nil {
		src = MonotonicTimeSource{}
	}
	return &FrameClock{
		src:  src,
		last: src.Now(),
	}
}

// Tick returns seconds since the previous Tick, 0 while paused
func (c *FrameClock) Tick() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.src.Now()
	if c.isPaused.Load() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	return dt.Seconds()
}

// Pause stops delta reporting
func (c *FrameClock) Pause() {
	if c.isPaused.CompareAndSwap(false, true) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.pauseStart = c.src.Now()
	}
}

// Resume restarts delta reporting from the current instant
func (c *FrameClock) Resume() {
	if c.isPaused.CompareAndSwap(true, false) {
		c.mu.Lock()
		defer c.mu.Unlock()
		now := c.src.Now()
		c.totalPaused += now.Sub(c.pauseStart)
		c.pauseStart = time.Time{}
		c.last = now
	}
}

// Toggle flips the pause state and returns the new state
func (c *FrameClock) Toggle() bool {
	if c.isPaused.Load() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

// IsPaused returns current pause state
func (c *FrameClock) IsPaused() bool {
	return c.isPaused.Load()
}

// TotalPaused returns cumulative pause time, including a pause in progress
func (c *FrameClock) TotalPaused() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.totalPaused
	if c.isPaused.Load() && !c.pauseStart.IsZero() {
		total += c.src.Now().Sub(c.pauseStart)
	}
	return total
}
