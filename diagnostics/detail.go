package diagnostics

import (
	"context"
	"time"
)

// Source is where the returned value was read from.
type Source int

const (
	// SourceCache means the value store answered the lookup.
	SourceCache Source = iota + 1

	// SourceDataSource means the caller loaded the value from the data source itself.
	SourceDataSource
)

// String returns the name of the source.
func (s Source) String() string {
	switch s {
	case SourceCache:
		return "CACHE"
	case SourceDataSource:
		return "DATASOURCE"
	default:
		return "UNKNOWN"
	}
}

// LockMode is the side of the per-key lock taken by the caller.
type LockMode int

const (
	// LockNone means no per-key lock was taken.
	LockNone LockMode = iota + 1

	// LockRead means the caller waited on the read side for another caller's load.
	LockRead

	// LockWrite means the caller held the write side while loading.
	LockWrite
)

// String returns the name of the lock mode.
func (m LockMode) String() string {
	switch m {
	case LockNone:
		return "NONE"
	case LockRead:
		return "READ"
	case LockWrite:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// Detail describes the path taken by a single lookup.
type Detail struct {
	// Key is the looked up key.
	Key any

	// Source is where the value was read from.
	Source Source

	// LockMode is the side of the per-key lock taken.
	LockMode LockMode

	// Elapsed is the time spent loading (WRITE) or waiting for the loader (READ).
	// It is zero for NONE.
	Elapsed time.Duration
}

// Is reports whether the detail has the given source and lock mode.
func (d Detail) Is(source Source, mode LockMode) bool {
	return d.Source == source && d.LockMode == mode
}

// String returns "SOURCE/LOCKMODE".
func (d Detail) String() string {
	return d.Source.String() + "/" + d.LockMode.String()
}

// Recorder receives the Detail of every completed lookup.
// Implementations must be safe for concurrent use and must not block for long.
type Recorder interface {
	Record(context.Context, Detail)
}

// RecorderFunc is a function type that implements the Recorder interface.
type RecorderFunc func(context.Context, Detail)

// Record calls the function.
func (f RecorderFunc) Record(ctx context.Context, d Detail) {
	f(ctx, d)
}

// Nop is a Recorder that discards everything.
var Nop Recorder = RecorderFunc(func(context.Context, Detail) {})

// Multi returns a Recorder that forwards every Detail to all the given recorders in order.
// Nil recorders are skipped.
func Multi(recorders ...Recorder) Recorder {
	rs := make([]Recorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			rs = append(rs, r)
		}
	}
	return RecorderFunc(func(ctx context.Context, d Detail) {
		for _, r := range rs {
			r.Record(ctx, d)
		}
	})
}
