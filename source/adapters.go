package source

import (
	"context"
	"maps"
	"sync"
	"time"

	readthroughcache "github.com/karupanerura/readthrough-cache"
)

// MapSource is a data source that serves a fixed set of values.
// Keys missing from the map are absent.
type MapSource[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint] struct {
	values map[K]V
}

var _ readthroughcache.DataSource[uint8, struct{}] = (*MapSource[uint8, struct{}])(nil)

// NewMapSource creates a new MapSource serving a copy of values.
func NewMapSource[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint](values map[K]V) *MapSource[K, V] {
	return &MapSource[K, V]{values: maps.Clone(values)}
}

// Lookup returns the value for the key in the map.
func (s *MapSource[K, V]) Lookup(_ context.Context, key K) (V, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

// DelayedSource is a data source that waits for Delay before each lookup on Source.
// It simulates a slow backend.
type DelayedSource[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint] struct {
	Source readthroughcache.DataSource[K, V]
	Delay  time.Duration
}

var _ readthroughcache.DataSource[uint8, struct{}] = (*DelayedSource[uint8, struct{}])(nil)

// Lookup waits for the delay and then looks the key up on the underlying source.
// If ctx is done before the delay elapses, it returns the context error.
func (s *DelayedSource[K, V]) Lookup(ctx context.Context, key K) (V, bool, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			var zero V
			return zero, false, ctx.Err()
		case <-timer.C:
		}
	}
	return s.Source.Lookup(ctx, key)
}

// CountingSource is a data source that counts the lookups made on Source, per key.
type CountingSource[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint] struct {
	Source readthroughcache.DataSource[K, V]

	mu     sync.Mutex
	counts map[K]int
	total  int
}

var _ readthroughcache.DataSource[uint8, struct{}] = (*CountingSource[uint8, struct{}])(nil)

// NewCountingSource creates a new CountingSource wrapping source.
func NewCountingSource[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint](source readthroughcache.DataSource[K, V]) *CountingSource[K, V] {
	return &CountingSource[K, V]{Source: source, counts: map[K]int{}}
}

// Lookup counts the lookup and then performs it on the underlying source.
func (s *CountingSource[K, V]) Lookup(ctx context.Context, key K) (V, bool, error) {
	s.mu.Lock()
	if s.counts == nil {
		s.counts = map[K]int{}
	}
	s.counts[key]++
	s.total++
	s.mu.Unlock()

	return s.Source.Lookup(ctx, key)
}

// Count returns the number of lookups made for the key.
func (s *CountingSource[K, V]) Count(key K) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[key]
}

// Total returns the number of lookups made for all keys.
func (s *CountingSource[K, V]) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Counts returns a snapshot of the number of lookups per key.
func (s *CountingSource[K, V]) Counts() map[K]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.counts)
}
