package memstore

import (
	"sync"

	"github.com/karupanerura/readthrough-cache/store"
)

type bucket[K comparable, V any] struct {
	m  map[K]V
	mu sync.RWMutex
}

func newBucket[K comparable, V any]() *bucket[K, V] {
	return &bucket[K, V]{m: map[K]V{}}
}

func (b *bucket[K, V]) load(key K) (V, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.m[key]
	return v, ok
}

func (b *bucket[K, V]) storeIfAbsent(key K, value V) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.m[key]; ok {
		return v, false
	}
	b.m[key] = value
	return value, true
}

func (b *bucket[K, V]) len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.m)
}

// Store is a sharded, write-once in-memory store.
type Store[K comparable, V any] struct {
	buckets []*bucket[K, V]
	hashKey func(K) int
}

var _ store.Store[uint8, struct{}] = (*Store[uint8, struct{}])(nil)

// NewInMemoryStore creates a new in-memory store.
// The store is distributed across DefaultBucketsSize buckets unless WithBucketsSize is given.
func NewInMemoryStore[K comparable, V any](opts ...Option[K]) *Store[K, V] {
	options := defaultOptions[K]()
	for _, opt := range opts {
		opt.apply(&options)
	}
	options.resolveHashKey()

	buckets := make([]*bucket[K, V], options.bucketsSize)
	for i := range buckets {
		buckets[i] = newBucket[K, V]()
	}
	return &Store[K, V]{
		buckets: buckets,
		hashKey: options.hashKey,
	}
}

// resolveBucket returns the bucket that corresponds to the given key.
func (s *Store[K, V]) resolveBucket(key K) *bucket[K, V] {
	if len(s.buckets) == 1 {
		return s.buckets[0]
	}

	index := s.hashKey(key) % len(s.buckets)
	if index < 0 {
		index *= -1
	}
	return s.buckets[index]
}

// Load returns the value stored for the key.
func (s *Store[K, V]) Load(key K) (V, bool) {
	return s.resolveBucket(key).load(key)
}

// StoreIfAbsent stores the value unless the key already has one.
func (s *Store[K, V]) StoreIfAbsent(key K, value V) (V, bool) {
	return s.resolveBucket(key).storeIfAbsent(key, value)
}

// Len returns the number of stored values.
func (s *Store[K, V]) Len() int {
	var n int
	for _, b := range s.buckets {
		n += b.len()
	}
	return n
}
