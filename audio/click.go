package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/framepace/vmath"
)

// ClickGenerator produces a short decaying noise burst with a pitched body
// Noise comes from a DeterministicRNG so the same seed renders the same samples
type ClickGenerator struct {
	sr       beep.SampleRate
	rng      *vmath.DeterministicRNG
	freq     float64
	gain     float64
	pos      int
	duration int
	decay    float64
}

// NewClickGenerator creates a click of the given duration, pitch and seed
func NewClickGenerator(sr beep.SampleRate, duration time.Duration, freq float64, seed uint64) *ClickGenerator {
	samples := sr.N(duration)
	if samples < 1 {
		samples = 1
	}
	return &ClickGenerator{
		sr:       sr,
		rng:      vmath.NewDeterministicRNG(seed),
		freq:     freq,
		gain:     0.35,
		duration: samples,
		// Envelope reaches ~1% at the end of the click
		decay: math.Log(100) / float64(samples),
	}
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.duration {
			return i, i > 0
		}

		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-g.decay * float64(g.pos))
		body := math.Sin(2 * math.Pi * g.freq * t)
		noise := g.rng.NextFloat(-1, 1)
		sample := g.gain * envelope * (0.6*body + 0.4*noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}
