package status

import (
	"fmt"
	"sync/atomic"
)

// Registry is the central metrics facade
// Producers cache pointers at attach time; hot loops write directly to atomics
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Entry is a formatted metric reading
type Entry struct {
	Key   string
	Value string
}

// Snapshot formats every metric, grouped by type then sorted by key
// Allocates; intended for overlays and reports, not the per-frame path
func (r *Registry) Snapshot() []Entry {
	entries := make([]Entry, 0, r.TotalCount())
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		entries = append(entries, Entry{Key: key, Value: fmt.Sprintf("%t", ptr.Load())})
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		entries = append(entries, Entry{Key: key, Value: fmt.Sprintf("%d", ptr.Load())})
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		entries = append(entries, Entry{Key: key, Value: fmt.Sprintf("%.6f", ptr.Get())})
	})
	return entries
}
