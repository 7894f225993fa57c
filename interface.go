package readthroughcache

import (
	"context"
)

// KeyConstraint is an interface for key constraints.
type KeyConstraint interface {
	comparable
}

// ValueConstraint is an interface for value constraints.
type ValueConstraint interface {
	any
}

// Entry is a key-value pair.
type Entry[K KeyConstraint, V ValueConstraint] struct {
	// Key is the key of the entry.
	Key K

	// Value is the value associated with the key.
	Value V
}

// DataSource is the backing data source of a Cache.
// It may be slow or remote; the cache guarantees it is called at most once concurrently per key.
// Implementations must be safe for concurrent use.
type DataSource[K KeyConstraint, V ValueConstraint] interface {
	// Lookup retrieves the value for the key.
	// It returns false if the key has no value; such results are never cached.
	// A returned error is passed to the caller unchanged and nothing is cached.
	Lookup(context.Context, K) (V, bool, error)
}

// DataSourceFunc is a function type that implements the DataSource interface.
type DataSourceFunc[K KeyConstraint, V ValueConstraint] func(context.Context, K) (V, bool, error)

var _ DataSource[uint8, struct{}] = DataSourceFunc[uint8, struct{}](nil)

// Lookup calls the function.
func (f DataSourceFunc[K, V]) Lookup(ctx context.Context, key K) (V, bool, error) {
	return f(ctx, key)
}
