package readthroughcache

import (
	"log/slog"

	"github.com/karupanerura/readthrough-cache/diagnostics"
	"github.com/karupanerura/readthrough-cache/keylock"
	"github.com/karupanerura/readthrough-cache/store"
)

// Option is the interface for the options of the Cache.
type Option[K KeyConstraint, V ValueConstraint] interface {
	apply(*Cache[K, V])
}

type optionFunc[K KeyConstraint, V ValueConstraint] func(*Cache[K, V])

func (f optionFunc[K, V]) apply(c *Cache[K, V]) {
	f(c)
}

// WithStore sets the value store to the cache.
// The default store is a memstore.Store with the default number of buckets.
func WithStore[K KeyConstraint, V ValueConstraint](s store.Store[K, V]) Option[K, V] {
	return optionFunc[K, V](func(c *Cache[K, V]) {
		c.store = s
	})
}

// WithRegistry sets the keyed lock registry to the cache.
// It is mostly useful to observe the registry in tests.
func WithRegistry[K KeyConstraint, V ValueConstraint](r *keylock.Registry[K]) Option[K, V] {
	return optionFunc[K, V](func(c *Cache[K, V]) {
		c.registry = r
	})
}

// WithDiagnostics sets the recorder that receives the path taken by every lookup.
// The default recorder is diagnostics.Nop.
func WithDiagnostics[K KeyConstraint, V ValueConstraint](r diagnostics.Recorder) Option[K, V] {
	return optionFunc[K, V](func(c *Cache[K, V]) {
		c.diagnostics = r
	})
}

// WithCloner sets the value cloner to the cache.
// The default value cloner is NopValueCloner.
func WithCloner[K KeyConstraint, V ValueConstraint](cloner ValueCloner[V]) Option[K, V] {
	return optionFunc[K, V](func(c *Cache[K, V]) {
		c.cloner = cloner
	})
}

// WithLogger sets the logger to the cache.
// By default nothing is logged.
func WithLogger[K KeyConstraint, V ValueConstraint](logger *slog.Logger) Option[K, V] {
	return optionFunc[K, V](func(c *Cache[K, V]) {
		c.logger = logger
	})
}

// WithClock sets the clock used to measure load and wait durations.
// The default clock is SystemClock.
func WithClock[K KeyConstraint, V ValueConstraint](clock Clock) Option[K, V] {
	return optionFunc[K, V](func(c *Cache[K, V]) {
		c.clock = clock
	})
}
