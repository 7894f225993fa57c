package readthroughcache

import (
	"context"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/karupanerura/readthrough-cache/diagnostics"
	"github.com/karupanerura/readthrough-cache/internal/ctxsync"
	"github.com/karupanerura/readthrough-cache/internal/panicutil"
	"github.com/karupanerura/readthrough-cache/keylock"
	"github.com/karupanerura/readthrough-cache/store"
	"github.com/karupanerura/readthrough-cache/store/memstore"
)

// Cache is a read-through cache in front of a DataSource.
//
// A value loaded from the data source is kept forever. For each key at most one caller
// (the loader) calls the data source at a time; other callers of the same key (followers)
// wait for the loader and read what it stored. Callers of different keys never wait for each other.
// Absent keys and failed loads are not cached.
type Cache[K KeyConstraint, V ValueConstraint] struct {
	source      DataSource[K, V]
	store       store.Store[K, V]
	registry    *keylock.Registry[K]
	diagnostics diagnostics.Recorder
	cloner      ValueCloner[V]
	logger      *slog.Logger
	clock       Clock
}

// New creates a new Cache loading values from source.
func New[K KeyConstraint, V ValueConstraint](source DataSource[K, V], opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		source:      source,
		diagnostics: diagnostics.Nop,
		cloner:      NopValueCloner[V]{},
		clock:       SystemClock,
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.store == nil {
		c.store = memstore.NewInMemoryStore[K, V]()
	}
	if c.registry == nil {
		c.registry = keylock.NewRegistry[K]()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Get returns the value for the key, loading it from the data source if it is not cached yet.
// It returns false if the data source has no value for the key.
//
// An error returned by the data source is returned unchanged to the caller that performed the load;
// a panic of the data source is returned as *panics.ErrRecovered. Callers that were waiting for a
// failed load see the key as absent, and the next call starts a new load.
//
// The data source is called with a context that is never canceled. If ctx is done while waiting
// for another caller's load, Get returns ctx.Err() and the load keeps going.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	if v, ok := c.store.Load(key); ok {
		c.record(ctx, key, diagnostics.SourceCache, diagnostics.LockNone, 0)
		return c.cloner.CloneValue(v), true, nil
	}

	if l, ok := c.registry.Get(key); ok {
		return c.follow(ctx, key, l)
	}

	candidate := keylock.NewLock()
	l, won := c.registry.RegisterOrGet(key, candidate)
	if !won {
		candidate.Unlock()
		return c.follow(ctx, key, l)
	}
	return c.load(ctx, key, l)
}

// GetMulti returns the entries for the keys in the order of the keys, concurrently resolving each
// of them as Get does. The entry of an absent key is nil. If any key fails, GetMulti returns the
// error and no entries.
func (c *Cache[K, V]) GetMulti(ctx context.Context, keys []K) ([]*Entry[K, V], error) {
	entries, err := iter.MapErr(keys, func(key *K) (*Entry[K, V], error) {
		v, ok, err := c.Get(ctx, *key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return &Entry[K, V]{Key: *key, Value: v}, nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// load runs on the caller that installed l, holding its write side.
func (c *Cache[K, V]) load(ctx context.Context, key K, l *keylock.Lock) (value V, found bool, err error) {
	var stored bool
	defer func() {
		if !stored && !c.registry.Unregister(key, l) {
			c.logger.WarnContext(ctx, "lock was replaced during load", slog.Any("key", key))
		}
		l.Unlock()
	}()

	if v, ok := c.store.Load(key); ok {
		stored = true
		c.record(ctx, key, diagnostics.SourceCache, diagnostics.LockNone, 0)
		return c.cloner.CloneValue(v), true, nil
	}

	c.logger.DebugContext(ctx, "loading from data source", slog.Any("key", key))
	start := c.clock.Now()
	var v V
	err = panicutil.Call(func() (err error) {
		v, found, err = c.source.Lookup(context.WithoutCancel(ctx), key)
		return err
	})
	elapsed := c.clock.Now().Sub(start)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to load from data source", slog.Any("key", key), slog.Any("error", err))
		return value, false, err
	}
	if !found {
		c.logger.DebugContext(ctx, "data source has no value", slog.Any("key", key), slog.Duration("elapsed", elapsed))
		return value, false, nil
	}

	actual, _ := c.store.StoreIfAbsent(key, v)
	stored = true
	c.logger.DebugContext(ctx, "loaded from data source", slog.Any("key", key), slog.Duration("elapsed", elapsed))
	c.record(ctx, key, diagnostics.SourceDataSource, diagnostics.LockWrite, elapsed)
	return c.cloner.CloneValue(actual), true, nil
}

// follow waits for the loader holding the write side of l and reads what it stored.
func (c *Cache[K, V]) follow(ctx context.Context, key K, l *keylock.Lock) (value V, found bool, err error) {
	if v, ok := c.store.Load(key); ok {
		c.record(ctx, key, diagnostics.SourceCache, diagnostics.LockNone, 0)
		return c.cloner.CloneValue(v), true, nil
	}

	start := c.clock.Now()
	if err := (&ctxsync.CtxRLocker{RWLocker: l}).RLockCtx(ctx); err != nil {
		return value, false, err
	}
	v, ok := c.store.Load(key)
	l.RUnlock()
	c.record(ctx, key, diagnostics.SourceCache, diagnostics.LockRead, c.clock.Now().Sub(start))

	if !ok {
		return value, false, nil
	}
	return c.cloner.CloneValue(v), true, nil
}

func (c *Cache[K, V]) record(ctx context.Context, key K, source diagnostics.Source, mode diagnostics.LockMode, elapsed time.Duration) {
	c.diagnostics.Record(ctx, diagnostics.Detail{
		Key:      key,
		Source:   source,
		LockMode: mode,
		Elapsed:  elapsed,
	})
}
