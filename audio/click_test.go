package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 64)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

// TestClickGenerator_Length verifies the click ends after its duration
func TestClickGenerator_Length(t *testing.T) {
	rate := beep.SampleRate(48000)
	samples := drain(NewClickGenerator(rate, 10*time.Millisecond, 1000, 1))

	if len(samples) != rate.N(10*time.Millisecond) {
		t.Errorf("Expected %d samples, got %d", rate.N(10*time.Millisecond), len(samples))
	}
}

// TestClickGenerator_Range verifies samples stay within [-1, 1]
func TestClickGenerator_Range(t *testing.T) {
	samples := drain(NewClickGenerator(beep.SampleRate(44100), 50*time.Millisecond, 440, 99))

	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
			t.Fatalf("Sample %d invalid: %v", i, s)
		}
	}
}

// TestClickGenerator_Deterministic verifies the same seed renders identical audio
func TestClickGenerator_Deterministic(t *testing.T) {
	rate := beep.SampleRate(48000)
	a := drain(NewClickGenerator(rate, clickDuration, clickFreq, 42))
	b := drain(NewClickGenerator(rate, clickDuration, clickFreq, 42))
	c := drain(NewClickGenerator(rate, clickDuration, clickFreq, 43))

	if len(a) != len(b) {
		t.Fatalf("Length mismatch %d != %d", len(a), len(b))
	}
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Sample %d differs for identical seed", i)
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Error("Expected a different seed to change the noise component")
	}
}

// TestClickGenerator_Decays verifies the envelope fades the tail
func TestClickGenerator_Decays(t *testing.T) {
	samples := drain(NewClickGenerator(beep.SampleRate(48000), 20*time.Millisecond, 1000, 3))

	peak := func(part [][2]float64) float64 {
		m := 0.0
		for _, s := range part {
			if v := s[0]; v > m {
				m = v
			} else if -v > m {
				m = -v
			}
		}
		return m
	}

	quarter := len(samples) / 4
	if head, tail := peak(samples[:quarter]), peak(samples[3*quarter:]); tail >= head {
		t.Errorf("Expected tail peak %v below head peak %v", tail, head)
	}
}

// TestMetronome_OnTicks verifies tick counting and burst limiting without a speaker
func TestMetronome_OnTicks(t *testing.T) {
	m := NewMetronome(4, 7)

	if got := m.OnTicks(0); got != 0 {
		t.Errorf("Expected 0 clicks for 0 steps, got %d", got)
	}
	if got := m.OnTicks(2); got != 2 {
		t.Errorf("Expected 2 clicks, got %d", got)
	}
	if got := m.OnTicks(15); got != maxClicksPerFrame {
		t.Errorf("Expected burst capped at %d, got %d", maxClicksPerFrame, got)
	}

	if m.Ticks() != 17 {
		t.Errorf("Expected 17 ticks counted, got %d", m.Ticks())
	}
	if m.Pending() != 2+maxClicksPerFrame {
		t.Errorf("Expected %d pending clicks, got %d", 2+maxClicksPerFrame, m.Pending())
	}
}

// TestMetronome_CleanupWithoutInit verifies Cleanup is safe before Initialize
func TestMetronome_CleanupWithoutInit(t *testing.T) {
	m := NewMetronome(0, 0)
	m.Cleanup()
	if m.OnTicks(-3) != 0 {
		t.Error("Expected negative steps to queue nothing")
	}
}
