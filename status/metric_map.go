package status

import (
	"slices"
	"sync"
	"sync/atomic"
)

// MetricMap holds metrics of type T by key
// Producers register once and keep the returned pointer; the table is copy-on-write,
// so overlay readers polling Range never block the frame loop
type MetricMap[T any] struct {
	mu    sync.Mutex // serializes registration
	table atomic.Pointer[metricTable[T]]
}

// metricTable is immutable once published
type metricTable[T any] struct {
	items map[string]*T
	keys  []string // sorted
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[T any]() *MetricMap[T] {
	m := &MetricMap[T]{}
	m.table.Store(&metricTable[T]{items: map[string]*T{}})
	return m
}

// Get returns the metric pointer for key, registering it on first use
func (m *MetricMap[T]) Get(key string) *T {
	if ptr, ok := m.table.Load().items[key]; ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cur := m.table.Load()
	if ptr, ok := cur.items[key]; ok {
		return ptr
	}

	next := &metricTable[T]{
		items: make(map[string]*T, len(cur.items)+1),
		keys:  make([]string, 0, len(cur.keys)+1),
	}
	for k, v := range cur.items {
		next.items[k] = v
	}
	ptr := new(T)
	next.items[key] = ptr

	i, _ := slices.BinarySearch(cur.keys, key)
	next.keys = append(next.keys, cur.keys[:i]...)
	next.keys = append(next.keys, key)
	next.keys = append(next.keys, cur.keys[i:]...)

	m.table.Store(next)
	return ptr
}

// Range visits metrics in key order over the table current at call time
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	t := m.table.Load()
	for _, k := range t.keys {
		fn(k, t.items[k])
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	return len(m.table.Load().keys)
}
