package sim

import (
	"crypto/sha256"
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/lixenwraith/framepace/engine"
	"github.com/lixenwraith/framepace/vmath"
)

// Swarm is a set of walkers stepped once per simulation tick
// Each walker owns an RNG stream split from the root seed, so the outcome does not
// depend on update order; DeterminismMode still forces a sequential pass
type Swarm struct {
	walkers []*Walker
	prev    []Point
	bounds  Bounds
	mode    *engine.DeterminismMode
	workers int
}

// NewSwarm spawns count walkers inside bounds
// A nil mode behaves as disabled
func NewSwarm(count int, bounds Bounds, seed uint64, mode *engine.DeterminismMode) *Swarm {
	root := vmath.NewDeterministicRNG(seed)
	s := &Swarm{
		walkers: make([]*Walker, count),
		prev:    make([]Point, count),
		bounds:  bounds,
		mode:    mode,
		workers: runtime.GOMAXPROCS(0),
	}
	for i := range s.walkers {
		s.walkers[i] = NewWalker(bounds, vmath.NewDeterministicRNG(root.Next()))
		s.prev[i] = s.walkers[i].Snapshot()
	}
	return s
}

// Len returns the number of walkers
func (s *Swarm) Len() int {
	return len(s.walkers)
}

// Step advances every walker by one tick of dt seconds, keeping the pre-step positions
// for interpolation; hosts pass MainLoop.GetStepDt
func (s *Swarm) Step(dt float64) {
	if !(dt > 0) {
		dt = 0
	}
	step := vmath.FromFloat(dt)
	for i, w := range s.walkers {
		s.prev[i] = w.Snapshot()
	}

	if s.mode.IsEnabled() || s.workers < 2 || len(s.walkers) < 2*s.workers {
		for _, w := range s.walkers {
			w.Step(step, s.bounds)
		}
		return
	}

	chunk := (len(s.walkers) + s.workers - 1) / s.workers
	var wg sync.WaitGroup
	for start := 0; start < len(s.walkers); start += chunk {
		end := min(start+chunk, len(s.walkers))
		wg.Add(1)
		go func(part []*Walker) {
			defer wg.Done()
			for _, w := range part {
				w.Step(step, s.bounds)
			}
		}(s.walkers[start:end])
	}
	wg.Wait()
}

// Render returns walker i blended between its last two tick states
func (s *Swarm) Render(i int, alpha float64) Point {
	return Interpolate(s.prev[i], s.walkers[i].Snapshot(), alpha)
}

// Position returns walker i's current tick state
func (s *Swarm) Position(i int) Point {
	return s.walkers[i].Snapshot()
}

// Draws returns the RNG values consumed by all walkers since spawn
func (s *Swarm) Draws() uint64 {
	var n uint64
	for _, w := range s.walkers {
		n += w.rng.Calls()
	}
	return n
}

// Checksum hashes all walker state in index order
func (s *Swarm) Checksum() [sha256.Size]byte {
	h := sha256.New()
	var buf [32]byte
	for _, w := range s.walkers {
		binary.LittleEndian.PutUint64(buf[0:], uint64(w.X))
		binary.LittleEndian.PutUint64(buf[8:], uint64(w.Y))
		binary.LittleEndian.PutUint64(buf[16:], uint64(w.VX))
		binary.LittleEndian.PutUint64(buf[24:], uint64(w.VY))
		h.Write(buf[:])
	}
	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}
