package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMap_GetReturnsCachedPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	a := m.Get("loop.alpha")
	b := m.Get("loop.alpha")
	if a != b {
		t.Fatal("Expected Get to return the same pointer for the same key")
	}

	a.Set(0.25)
	if got := b.Get(); got != 0.25 {
		t.Errorf("Expected 0.25 through cached pointer, got %v", got)
	}

	if m.Count() != 1 {
		t.Errorf("Expected one registered metric, count=%d", m.Count())
	}
}

func TestMetricMap_ConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	var wg sync.WaitGroup
	ptrs := make([]*AtomicFloat, 16)
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = m.Get("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(ptrs); i++ {
		if ptrs[i] != ptrs[0] {
			t.Fatalf("Goroutine %d received a different pointer", i)
		}
	}
}

func TestAtomicFloat_AddAndMax(t *testing.T) {
	var f AtomicFloat

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()

	if got := f.Get(); got != 4000 {
		t.Errorf("Expected 4000 after concurrent adds, got %v", got)
	}

	if got := f.Max(10); got != 4000 {
		t.Errorf("Expected Max to keep larger value 4000, got %v", got)
	}
	if got := f.Max(5000); got != 5000 {
		t.Errorf("Expected Max to raise to 5000, got %v", got)
	}
}

func TestMetricMap_RangeSortedWhileRegistering(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	for _, k := range []string{"loop.steps", "loop.frames", "loop.total_steps", "loop.clamped_frames"} {
		m.Get(k)
	}

	var keys []string
	m.Range(func(key string, ptr *atomic.Int64) {
		keys = append(keys, key)
		// Registering during Range lands in the next table, not this pass
		m.Get("z." + key)
	})

	want := []string{"loop.clamped_frames", "loop.frames", "loop.steps", "loop.total_steps"}
	if len(keys) != len(want) {
		t.Fatalf("Expected %d keys, got %v", len(want), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Key %d: expected %q, got %q", i, want[i], keys[i])
		}
	}
	if m.Count() != 8 {
		t.Errorf("Expected 8 metrics after Range registrations, got %d", m.Count())
	}
}

func TestMetricMap_ConcurrentRegisterAndRange(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, k := range keys {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			m.Get(k).Set(1)
		}(k)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				prev := ""
				m.Range(func(key string, ptr *AtomicFloat) {
					if key <= prev {
						t.Errorf("Range out of order: %q after %q", key, prev)
					}
					prev = key
				})
			}
		}()
	}
	wg.Wait()

	if m.Count() != len(keys) {
		t.Errorf("Expected %d metrics, got %d", len(keys), m.Count())
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("loop.steps").Store(3)
	r.Floats.Get("loop.alpha").Set(0.5)
	r.Bools.Get("loop.fixed_step").Store(true)
	r.Bools.Get("determinism").Store(false)

	snap := r.Snapshot()
	if len(snap) != 4 || r.TotalCount() != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(snap))
	}

	want := []Entry{
		{"determinism", "false"},
		{"loop.fixed_step", "true"},
		{"loop.steps", "3"},
		{"loop.alpha", "0.500000"},
	}
	for i, e := range want {
		if snap[i] != e {
			t.Errorf("Entry %d: expected %+v, got %+v", i, e, snap[i])
		}
	}
}
