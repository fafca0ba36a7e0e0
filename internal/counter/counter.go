// Package counter implements the process-wide named-counter registry used
// by the conform engine's `incrementor` function (spec.md §4.1, §5: "The
// counter registry for incrementor is process-wide with one named integer
// per counter; initialization is lazy with a declared start value;
// increments are atomic").
package counter

import "sync"

// Registry is a set of independently-incrementing named counters.
type Registry struct {
	mu     sync.Mutex
	values map[string]int64
	steps  map[string]int64
}

// NewRegistry creates an empty counter registry. One Registry is shared by
// every conform chain invocation within a single pipeline run (spec.md
// describes it as process-wide, not per-table or per-mapping).
func NewRegistry() *Registry {
	return &Registry{
		values: make(map[string]int64),
		steps:  make(map[string]int64),
	}
}

// Next returns the current value of the named counter and advances it by
// step for the next call. On first use the counter is initialized to
// start. Subsequent calls for the same name ignore start/step changes —
// the counter, once created, owns its own step (matching the Python
// implementation's single ALTER TABLE ADD COLUMN per counter name).
func (r *Registry) Next(name string, start, step int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[name]; !ok {
		r.values[name] = start
		r.steps[name] = step
	}

	current := r.values[name]
	r.values[name] = current + r.steps[name]
	return current
}

// Reset clears every counter. Used between independent pipeline runs in
// the same process (e.g. CLI `ls` followed by `convert` in one invocation).
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[string]int64)
	r.steps = make(map[string]int64)
}
