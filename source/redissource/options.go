package redissource

import readthroughcache "github.com/karupanerura/readthrough-cache"

// Option is the interface for the options of the Source.
type Option[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint] interface {
	apply(*Source[K, V])
}

type optionFunc[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint] func(*Source[K, V])

func (f optionFunc[K, V]) apply(s *Source[K, V]) {
	f(s)
}

// WithPrefix sets the prefix prepended to every Redis key.
func WithPrefix[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint](prefix string) Option[K, V] {
	return optionFunc[K, V](func(s *Source[K, V]) {
		s.prefix = prefix
	})
}

// WithKeyFormat sets the function turning the key into the Redis key, before the prefix is added.
func WithKeyFormat[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint](format func(K) string) Option[K, V] {
	return optionFunc[K, V](func(s *Source[K, V]) {
		s.keyFormat = format
	})
}

// WithDecode sets the function decoding the stored bytes.
func WithDecode[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint](decode DecodeFunc[V]) Option[K, V] {
	return optionFunc[K, V](func(s *Source[K, V]) {
		s.decode = decode
	})
}
