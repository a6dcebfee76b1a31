package vmath

import (
	"math"
	"math/bits"
)

// xorshift64* output multiplier (Vigna)
const rngScrambler uint64 = 0x2545F4914F6CDD1D

// DeterministicRNG is a seeded xorshift64* stream
// Output depends only on seed and call count; no wall clock, no global state
// Not safe for concurrent use, one instance per simulation goroutine
type DeterministicRNG struct {
	state uint64
	calls uint64
}

// NewDeterministicRNG creates a stream from seed, any value including 0 is valid
func NewDeterministicRNG(seed uint64) *DeterministicRNG {
	return &DeterministicRNG{state: MixSeed(seed)}
}

// RestoreDeterministicRNG rebuilds a stream at the position reached after calls draws
func RestoreDeterministicRNG(seed, calls uint64) *DeterministicRNG {
	r := NewDeterministicRNG(seed)
	for r.calls < calls {
		r.Next()
	}
	return r
}

// MixSeed spreads seed bits with the splitmix64 finalizer
// Never returns 0, which is the fixed point of xorshift
func MixSeed(seed uint64) uint64 {
	z := seed + 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	if z == 0 {
		z = 0x9E3779B97F4A7C15
	}
	return z
}

// Next returns the next raw 64-bit value
func (r *DeterministicRNG) Next() uint64 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	r.calls++
	return x * rngScrambler
}

// Uint64 implements math/rand/v2 Source
func (r *DeterministicRNG) Uint64() uint64 {
	return r.Next()
}

// NextFloat01 returns a value in [0, 1) with 53 bits of precision
func (r *DeterministicRNG) NextFloat01() float64 {
	return float64(r.Next()>>11) * (1.0 / (1 << 53))
}

// NextFloat returns a value in [lo, hi)
// Empty or inverted range returns lo, state still advances once
func (r *DeterministicRNG) NextFloat(lo, hi float64) float64 {
	f := r.NextFloat01()
	if !(hi > lo) {
		return lo
	}
	var v float64
	if span := hi - lo; math.IsInf(span, 0) {
		v = (1-f)*lo + f*hi
	} else {
		v = lo + f*span
	}
	// lo + f*(hi-lo) can round up to hi when f is near 1
	if v >= hi {
		v = math.Nextafter(hi, lo)
	}
	if v < lo || math.IsNaN(v) {
		v = lo
	}
	return v
}

// Intn returns a value in [0, n) using Lemire's multiply-shift reduction
// n <= 0 returns 0, state still advances once
func (r *DeterministicRNG) Intn(n int) int {
	x := r.Next()
	if n <= 0 {
		return 0
	}
	hi, _ := bits.Mul64(x, uint64(n))
	return int(hi)
}

// Calls returns the number of values drawn since construction
func (r *DeterministicRNG) Calls() uint64 {
	return r.calls
}
