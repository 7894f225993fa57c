package diagnostics

import (
	"context"
	"maps"
	"sync"
)

var _ Recorder = (*MemoryRecorder)(nil)

// MemoryRecorder keeps the latest Detail recorded by each caller.
// Callers are told apart by the ID set with WithCallerID; lookups without a caller ID are all
// kept under the empty ID. The zero value is ready to use.
type MemoryRecorder struct {
	mu      sync.RWMutex
	details map[string]Detail
}

// Record stores d as the latest detail of the caller.
func (r *MemoryRecorder) Record(ctx context.Context, d Detail) {
	id, _ := CallerID(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.details == nil {
		r.details = map[string]Detail{}
	}
	r.details[id] = d
}

// Detail returns the latest detail recorded by the caller.
func (r *MemoryRecorder) Detail(callerID string) (Detail, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.details[callerID]
	return d, ok
}

// Details returns a snapshot of the latest detail of every caller.
func (r *MemoryRecorder) Details() map[string]Detail {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.details)
}

// Count returns the number of callers whose latest detail satisfies pred.
func (r *MemoryRecorder) Count(pred func(Detail) bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int
	for _, d := range r.details {
		if pred(d) {
			n++
		}
	}
	return n
}

// Reset forgets every recorded detail.
func (r *MemoryRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.details)
}
