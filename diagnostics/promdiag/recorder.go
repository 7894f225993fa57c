// Package promdiag exports cache lookup diagnostics as Prometheus metrics.
package promdiag

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/karupanerura/readthrough-cache/diagnostics"
)

// ErrNilRegisterer is returned by New when no registerer is given.
var ErrNilRegisterer = errors.New("promdiag: registerer cannot be nil")

// Recorder counts lookups by path and observes how long loaders loaded and followers waited.
//
// Exported metrics:
//   - <namespace>_lookups_total{source, lock_mode}: counter of completed lookups.
//   - <namespace>_lock_held_seconds{source, lock_mode}: histogram of load (WRITE) and wait (READ) durations.
type Recorder struct {
	lookups  *prometheus.CounterVec
	lockHeld *prometheus.HistogramVec
}

var _ diagnostics.Recorder = (*Recorder)(nil)

// New creates a Recorder and registers its collectors to reg.
func New(reg prometheus.Registerer, opts ...Option) (*Recorder, error) {
	if reg == nil {
		return nil, ErrNilRegisterer
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}

	labels := []string{"source", "lock_mode"}
	r := &Recorder{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   o.namespace,
			Subsystem:   o.subsystem,
			Name:        "lookups_total",
			Help:        "Number of completed cache lookups by source and lock mode.",
			ConstLabels: o.constLabels,
		}, labels),
		lockHeld: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.namespace,
			Subsystem:   o.subsystem,
			Name:        "lock_held_seconds",
			Help:        "Time spent loading under the write lock or waiting on the read lock.",
			ConstLabels: o.constLabels,
			Buckets:     o.buckets,
		}, labels),
	}
	for _, c := range []prometheus.Collector{r.lookups, r.lockHeld} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Record implements diagnostics.Recorder.
func (r *Recorder) Record(_ context.Context, d diagnostics.Detail) {
	source, mode := d.Source.String(), d.LockMode.String()
	r.lookups.WithLabelValues(source, mode).Inc()
	if d.LockMode != diagnostics.LockNone {
		r.lockHeld.WithLabelValues(source, mode).Observe(d.Elapsed.Seconds())
	}
}
