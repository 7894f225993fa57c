package sqlsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	readthroughcache "github.com/karupanerura/readthrough-cache"
)

// Querier runs a query expected to return at most one row.
// *sql.DB, *sql.Conn and *sql.Tx implement it.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ScanFunc reads the value from the row returned by the query.
type ScanFunc[V readthroughcache.ValueConstraint] func(*sql.Row) (V, error)

// Source is a data source that runs a query with the key as its arguments.
// A query returning no rows means the key is absent.
type Source[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint] struct {
	db      Querier
	query   string
	scan    ScanFunc[V]
	keyArgs func(K) []any
}

var _ readthroughcache.DataSource[uint8, struct{}] = (*Source[uint8, struct{}])(nil)

// New creates a new Source running query on db.
// By default the key is the only argument of the query and the value is scanned from the
// only column of the row.
func New[K readthroughcache.KeyConstraint, V readthroughcache.ValueConstraint](db Querier, query string, opts ...Option[K, V]) *Source[K, V] {
	s := &Source[K, V]{
		db:    db,
		query: query,
		scan: func(row *sql.Row) (v V, err error) {
			err = row.Scan(&v)
			return v, err
		},
		keyArgs: func(key K) []any {
			return []any{key}
		},
	}
	for _, opt := range opts {
		opt.apply(s)
	}
	return s
}

// Lookup runs the query for the key.
func (s *Source[K, V]) Lookup(ctx context.Context, key K) (V, bool, error) {
	v, err := s.scan(s.db.QueryRowContext(ctx, s.query, s.keyArgs(key)...))
	if errors.Is(err, sql.ErrNoRows) {
		var zero V
		return zero, false, nil
	} else if err != nil {
		var zero V
		return zero, false, fmt.Errorf("sqlsource: lookup %v: %w", key, err)
	}
	return v, true, nil
}
