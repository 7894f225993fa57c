package store

import "sync"

var _ Store[uint8, struct{}] = (*SyncMapStore[uint8, struct{}])(nil)

// SyncMapStore is a Store backed by sync.Map.
// It suits write-once, read-many workloads over disjoint keys. The zero value is ready to use.
type SyncMapStore[K comparable, V any] struct {
	m sync.Map
}

// Load returns the value stored for the key.
func (s *SyncMapStore[K, V]) Load(key K) (V, bool) {
	v, ok := s.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true
}

// StoreIfAbsent stores the value unless the key already has one.
func (s *SyncMapStore[K, V]) StoreIfAbsent(key K, value V) (V, bool) {
	actual, loaded := s.m.LoadOrStore(key, value)
	return actual.(V), !loaded
}

var _ Store[uint8, struct{}] = (*FunctionsStore[uint8, struct{}])(nil)

// FunctionsStore is a Store implementation that uses functions to perform the store operations.
type FunctionsStore[K comparable, V any] struct {
	// LoadFunc returns the value stored for the key.
	LoadFunc func(K) (V, bool)

	// StoreIfAbsentFunc stores the value unless the key already has one.
	StoreIfAbsentFunc func(K, V) (V, bool)
}

// Load calls the LoadFunc function.
func (s *FunctionsStore[K, V]) Load(key K) (V, bool) {
	return s.LoadFunc(key)
}

// StoreIfAbsent calls the StoreIfAbsentFunc function.
func (s *FunctionsStore[K, V]) StoreIfAbsent(key K, value V) (V, bool) {
	return s.StoreIfAbsentFunc(key, value)
}
