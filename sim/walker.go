package sim

import (
	"github.com/lixenwraith/framepace/vmath"
)

// Walker is a bounded random-walk body in Q32.32 fixed point
// Integer state keeps trajectories bit-identical across platforms
type Walker struct {
	X, Y   int64
	VX, VY int64

	rng *vmath.DeterministicRNG
}

// Bounds is the Q32.32 box walkers bounce inside
type Bounds struct {
	MinX, MinY int64
	MaxX, MaxY int64
}

// NewBounds creates bounds from integer cell extents
func NewBounds(width, height int) Bounds {
	return Bounds{
		MaxX: vmath.FromInt(width - 1),
		MaxY: vmath.FromInt(height - 1),
	}
}

// Walker tuning, cells per second
const (
	walkerMaxSpeed   = 12.0
	walkerJitter     = 40.0
	walkerSpeedLimit = int64(walkerMaxSpeed * vmath.Scale)
)

// NewWalker places a walker uniformly inside b with a random heading, drawing from rng
func NewWalker(b Bounds, rng *vmath.DeterministicRNG) *Walker {
	return &Walker{
		X:   vmath.FromFloat(rng.NextFloat(vmath.ToFloat(b.MinX), vmath.ToFloat(b.MaxX))),
		Y:   vmath.FromFloat(rng.NextFloat(vmath.ToFloat(b.MinY), vmath.ToFloat(b.MaxY))),
		VX:  vmath.FromFloat(rng.NextFloat(-walkerMaxSpeed, walkerMaxSpeed)),
		VY:  vmath.FromFloat(rng.NextFloat(-walkerMaxSpeed, walkerMaxSpeed)),
		rng: rng,
	}
}

// Step advances the walker by one tick of dt (Q32.32 seconds)
func (w *Walker) Step(dt int64, b Bounds) {
	jitter := vmath.Mul(vmath.FromFloat(walkerJitter), dt)
	w.VX += vmath.Mul(vmath.FromFloat(w.rng.NextFloat(-1, 1)), jitter)
	w.VY += vmath.Mul(vmath.FromFloat(w.rng.NextFloat(-1, 1)), jitter)
	w.VX = clampSpeed(w.VX)
	w.VY = clampSpeed(w.VY)

	w.X += vmath.Mul(w.VX, dt)
	w.Y += vmath.Mul(w.VY, dt)

	w.X, w.VX = bounce(w.X, w.VX, b.MinX, b.MaxX)
	w.Y, w.VY = bounce(w.Y, w.VY, b.MinY, b.MaxY)
}

// Snapshot returns the walker's position
func (w *Walker) Snapshot() Point {
	return Point{X: w.X, Y: w.Y}
}

// Point is a Q32.32 position
type Point struct {
	X, Y int64
}

// Interpolate blends prev toward cur by alpha in [0,1]
func Interpolate(prev, cur Point, alpha float64) Point {
	t := vmath.AlphaToFixed(alpha)
	return Point{
		X: vmath.Lerp(prev.X, cur.X, t),
		Y: vmath.Lerp(prev.Y, cur.Y, t),
	}
}

func clampSpeed(v int64) int64 {
	if v > walkerSpeedLimit {
		return walkerSpeedLimit
	}
	if v < -walkerSpeedLimit {
		return -walkerSpeedLimit
	}
	return v
}

// bounce reflects p back inside [lo, hi] and flips v on contact
func bounce(p, v, lo, hi int64) (int64, int64) {
	if p < lo {
		p = lo + (lo - p)
		v = vmath.Abs(v)
	}
	if p > hi {
		p = hi - (p - hi)
		v = -vmath.Abs(v)
	}
	// Reflection overshoot on a degenerate box
	if p < lo {
		p = lo
	}
	return p, v
}
