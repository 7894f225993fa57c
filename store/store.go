package store

// Store is a write-once key-value store.
// Implementations must be safe for concurrent use, and a value written by StoreIfAbsent must be
// visible to every Load that happens after StoreIfAbsent returns.
type Store[K comparable, V any] interface {
	// Load returns the value stored for the key and whether it was found.
	Load(K) (V, bool)

	// StoreIfAbsent stores the value for the key unless a value is already present.
	// It returns the value in effect after the call, and whether the given value was stored.
	// An existing value is never overwritten.
	StoreIfAbsent(K, V) (actual V, stored bool)
}
