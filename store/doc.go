// Package store defines the value store used by the read-through cache.
//
// A Store is a write-once mapping from key to value: once a value is present for a key it is
// never overwritten or removed. This package also contains small Store implementations:
// SyncMapStore, built on sync.Map, and FunctionsStore, which builds a Store from callbacks.
// The default sharded implementation lives in the memstore sub-package.
package store
