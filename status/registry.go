// Package status holds process-wide timer metrics
// Writers cache metric pointers once; updates are lock-free atomics
package status

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Metric keys written by the orchestrator
const (
	KeyTicks          = "timer.ticks"
	KeyStaleTicks     = "timer.stale_ticks"
	KeySegmentChanges = "timer.segment_changes"
	KeyCompletions    = "timer.completions"
	KeyRuns           = "timer.runs"
	KeyRunning        = "timer.running"
	KeyAudio          = "audio.available"
)

// Registry is the central metrics facade
type Registry struct {
	mu    sync.RWMutex
	ints  map[string]*atomic.Int64
	bools map[string]*atomic.Bool
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		ints:  make(map[string]*atomic.Int64),
		bools: make(map[string]*atomic.Bool),
	}
}

// Int returns the counter for key, creating it on first use
func (r *Registry) Int(key string) *atomic.Int64 {
	return lookup(&r.mu, r.ints, key)
}

// Bool returns the flag for key, creating it on first use
func (r *Registry) Bool(key string) *atomic.Bool {
	return lookup(&r.mu, r.bools, key)
}

func lookup[T any](mu *sync.RWMutex, items map[string]*T, key string) *T {
	mu.RLock()
	ptr, ok := items[key]
	mu.RUnlock()
	if ok {
		return ptr
	}

	mu.Lock()
	defer mu.Unlock()
	// Double-check after acquiring write lock
	if ptr, ok := items[key]; ok {
		return ptr
	}
	ptr = new(T)
	items[key] = ptr
	return ptr
}

// Metric is one rendered snapshot entry
type Metric struct {
	Key   string
	Value string
}

// Snapshot returns all metrics sorted by key
func (r *Registry) Snapshot() []Metric {
	r.mu.RLock()
	out := make([]Metric, 0, len(r.ints)+len(r.bools))
	for k, v := range r.ints {
		out = append(out, Metric{Key: k, Value: fmt.Sprintf("%d", v.Load())})
	}
	for k, v := range r.bools {
		out = append(out, Metric{Key: k, Value: fmt.Sprintf("%t", v.Load())})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Count returns total metrics across all types
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ints) + len(r.bools)
}
