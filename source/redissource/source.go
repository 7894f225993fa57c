package redissource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	readthroughcache "github.com/karupanerura/readthrough-cache"
)

// Getter runs the Redis GET command.
// redis.UniversalClient and its implementations satisfy it.
type Getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// DecodeFunc decodes a value stored in Redis.
type DecodeFunc[V readthroughcache.ValueConstraint] func([]byte) (V, error)

// Source is a data source that reads the value of a key with GET.
// A missing Redis key means the key is absent.
type Source[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint] struct {
	client    Getter
	prefix    string
	keyFormat func(K) string
	decode    DecodeFunc[V]
}

var _ readthroughcache.DataSource[uint8, struct{}] = (*Source[uint8, struct{}])(nil)

// New creates a new Source reading from client.
// By default the Redis key is the key formatted with fmt.Sprint, and the stored bytes are
// used as is for string and []byte values and decoded as JSON for any other value type.
func New[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint](client Getter, opts ...Option[K, V]) *Source[K, V] {
	s := &Source[K, V]{
		client: client,
		keyFormat: func(key K) string {
			return fmt.Sprint(key)
		},
		decode: DecodeDefault[V],
	}
	for _, opt := range opts {
		opt.apply(s)
	}
	return s
}

// Lookup reads the value of the key from Redis.
func (s *Source[K, V]) Lookup(ctx context.Context, key K) (V, bool, error) {
	var zero V

	b, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	} else if err != nil {
		return zero, false, fmt.Errorf("redissource: get %q: %w", s.redisKey(key), err)
	}

	v, err := s.decode(b)
	if err != nil {
		return zero, false, fmt.Errorf("redissource: decode %q: %w", s.redisKey(key), err)
	}
	return v, true, nil
}

func (s *Source[K, V]) redisKey(key K) string {
	return s.prefix + s.keyFormat(key)
}

// DecodeDefault returns b as is for string and []byte values, and decodes it as JSON otherwise.
func DecodeDefault[V readthroughcache.ValueConstraint](b []byte) (v V, err error) {
	switch p := any(&v).(type) {
	case *string:
		*p = string(b)
	case *[]byte:
		*p = b
	default:
		err = json.Unmarshal(b, &v)
	}
	return v, err
}
