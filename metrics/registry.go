package metrics

import (
	"sync"
	"sync/atomic"
)

// Counter is an int64 adjustable by any delta, safe for concurrent use.
type Counter struct{ v int64 }

// Inc adds delta (which may be negative) to the counter.
func (c *Counter) Inc(delta int64) { atomic.AddInt64(&c.v, delta) }

// Value returns the counter's current value.
func (c *Counter) Value() int64 { return atomic.LoadInt64(&c.v) }

// Registry is a process-local set of named counters. It has no export
// path of its own (spec's Non-goals exclude an observability layer);
// cmd/groupctl reads Snapshot and logs it through package log instead of
// standing up a scrape endpoint (see DESIGN.md).
type Registry struct {
	mu       sync.Mutex
	counters map[string]*Counter
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{counters: make(map[string]*Counter)}
}

// Counter returns the named counter, creating it on first use.
func (r *Registry) Counter(name string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.counters[name]
	if !ok {
		c = &Counter{}
		r.counters[name] = c
	}
	return c
}

// Snapshot returns a point-in-time copy of every counter's value,
// including the process's accumulated CPU time.
func (r *Registry) Snapshot() map[string]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int64, len(r.counters)+1)
	for name, c := range r.counters {
		out[name] = c.Value()
	}
	out["process.cputime"] = getProcessCPUTime()
	return out
}

// Default is the registry cmd/groupctl's interpret command records
// against when metrics are enabled.
var Default = NewRegistry()
