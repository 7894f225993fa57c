package sqlsource

import readthroughcache "github.com/karupanerura/readthrough-cache"

// Option is the interface for the options of the Source.
type Option[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint] interface {
	apply(*Source[K, V])
}

type optionFunc[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint] func(*Source[K, V])

func (f optionFunc[K, V]) apply(s *Source[K, V]) {
	f(s)
}

// WithScan sets the function reading the value from the row.
// It must return the error of Scan as is, so that sql.ErrNoRows is detected.
func WithScan[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint](scan ScanFunc[V]) Option[K, V] {
	return optionFunc[K, V](func(s *Source[K, V]) {
		s.scan = scan
	})
}

// WithKeyArgs sets the function turning the key into the arguments of the query.
func WithKeyArgs[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint](keyArgs func(K) []any) Option[K, V] {
	return optionFunc[K, V](func(s *Source[K, V]) {
		s.keyArgs = keyArgs
	})
}
