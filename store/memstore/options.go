package memstore

import (
	"github.com/karupanerura/readthrough-cache/internal/keyhash"
)

// DefaultBucketsSize is the default number of buckets in the store.
var DefaultBucketsSize = 256

// Option is the interface for the options of the in-memory store.
type Option[K comparable] interface {
	apply(*options[K])
}

type optionFunc[K comparable] func(*options[K])

func (f optionFunc[K]) apply(o *options[K]) {
	f(o)
}

// WithKeyHash sets the key hash function to the store.
// The function may return negative values.
func WithKeyHash[K comparable](f func(K) int) Option[K] {
	return optionFunc[K](func(o *options[K]) {
		o.hashKey = f
	})
}

// WithBucketsSize sets the number of buckets in the store.
// The number of buckets must be a natural number.
func WithBucketsSize[K comparable](bucketsSize int) Option[K] {
	if bucketsSize <= 0 {
		panic("bucketSize must be natural number")
	}
	return optionFunc[K](func(o *options[K]) {
		o.bucketsSize = bucketsSize
	})
}

type options[K comparable] struct {
	hashKey     func(K) int
	bucketsSize int
}

func defaultOptions[K comparable]() options[K] {
	return options[K]{
		bucketsSize: DefaultBucketsSize,
	}
}

func (o *options[K]) resolveHashKey() {
	if o.hashKey == nil && o.bucketsSize > 1 {
		o.hashKey = keyhash.For[K]()
	}
}
