// Package readthroughcache provides an in-memory read-through cache in front of a slow data source.
//
// Cache.Get returns the cached value of a key, or loads it from the DataSource when it is not
// cached yet. Concurrent callers of the same key share a single load: the first caller becomes
// the loader and the others wait for it and read what it stored. Callers of different keys never
// wait for each other.
//
// Loaded values are kept for the lifetime of the cache. Absent keys and failed loads are not
// cached, so the next caller of such a key starts a new load.
//
// The path taken by each lookup can be observed with a diagnostics.Recorder; see the
// diagnostics package and its promdiag, oteldiag and slogdiag subpackages.
package readthroughcache
