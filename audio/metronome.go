package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	clickDuration = 12 * time.Millisecond
	clickFreq     = 1760.0
	accentFreq    = 880.0

	// maxClicksPerFrame keeps a catch-up burst from stacking into a single loud pop
	maxClicksPerFrame = 4
)

// Metronome makes simulation cadence audible: one click per fixed tick, accented every
// accentEvery ticks. Feed it GetSimStepsThisFrame after each MainLoop.Update
type Metronome struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	accentEvery uint64
	ticks       uint64
	seed        uint64
	initialized bool
}

// NewMetronome creates a metronome; accentEvery of 0 disables accents
func NewMetronome(accentEvery int, seed uint64) *Metronome {
	if accentEvery < 0 {
		accentEvery = 0
	}
	return &Metronome{
		mixer:       &beep.Mixer{},
		accentEvery: uint64(accentEvery),
		seed:        seed,
	}
}

// Initialize opens the speaker and starts playing the mixer
func (m *Metronome) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50)); err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup stops playback and closes the speaker
func (m *Metronome) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// OnTicks queues clicks for steps simulation ticks, returns the number queued
func (m *Metronome) OnTicks(steps int) int {
	if steps <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	queued := 0
	streamers := make([]beep.Streamer, 0, min(steps, maxClicksPerFrame))
	for i := 0; i < steps; i++ {
		m.ticks++
		if queued == maxClicksPerFrame {
			continue
		}
		freq := clickFreq
		if m.accentEvery > 0 && m.ticks%m.accentEvery == 0 {
			freq = accentFreq
		}
		// Offset each click inside the frame so a burst is heard as separate ticks
		offset := beep.Silence(sampleRate.N(time.Duration(queued) * 2 * clickDuration))
		click := NewClickGenerator(sampleRate, clickDuration, freq, m.seed^m.ticks)
		streamers = append(streamers, beep.Seq(offset, click))
		queued++
	}

	if m.initialized {
		speaker.Lock()
		m.mixer.Add(streamers...)
		speaker.Unlock()
	} else {
		m.mixer.Add(streamers...)
	}
	return queued
}

// Ticks returns the total ticks reported via OnTicks
func (m *Metronome) Ticks() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ticks
}

// Pending returns the number of clicks still in the mixer
func (m *Metronome) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return m.mixer.Len()
}
