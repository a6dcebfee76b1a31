package vmath

import (
	"math"
	"math/bits"
)

// Q32.32 fixed point, used for simulation state that must be bit-stable across platforms
const (
	Shift = 32
	Scale = 1 << Shift
	Half  = 1 << (Shift - 1)
)

// --- Conversion ---

func FromInt(i int) int64       { return int64(i) << Shift }
func ToInt(f int64) int         { return int(f >> Shift) }
func FromFloat(f float64) int64 { return int64(f * Scale) }
func ToFloat(f int64) float64   { return float64(f) / Scale }

// --- Arithmetic ---

// Mul multiplies two Q32.32 values with a 128-bit intermediate
func Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		ua = uint64(-a)
	}
	if b < 0 {
		ub = uint64(-b)
	}

	hi, lo := bits.Mul64(ua, ub)
	result := int64((hi << 32) | (lo >> 32))

	if negative {
		return -result
	}
	return result
}

// Abs returns absolute value
func Abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Lerp performs linear interpolation between a and b
// t is in [0, Scale] where 0 returns a, Scale returns b
func Lerp(a, b, t int64) int64 {
	return a + Mul(b-a, t)
}

// AlphaToFixed converts an interpolation fraction to Q32.32, clamped to [0, Scale]
// NaN maps to 0
func AlphaToFixed(alpha float64) int64 {
	if !(alpha > 0) {
		return 0
	}
	if alpha >= 1 {
		return Scale
	}
	return FromFloat(alpha)
}

// --- Float helpers ---

// Clamp limits v to [lo, hi], NaN maps to lo
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
