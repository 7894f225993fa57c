package promdiag

import "github.com/prometheus/client_golang/prometheus"

// Option is the interface for the options of the Recorder.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) {
	f(o)
}

// WithNamespace sets the metric namespace. The default is "readthrough".
func WithNamespace(namespace string) Option {
	return optionFunc(func(o *options) {
		o.namespace = namespace
	})
}

// WithSubsystem sets the metric subsystem, e.g. the name of the cache.
func WithSubsystem(subsystem string) Option {
	return optionFunc(func(o *options) {
		o.subsystem = subsystem
	})
}

// WithConstLabels sets labels attached to every metric.
func WithConstLabels(labels prometheus.Labels) Option {
	return optionFunc(func(o *options) {
		o.constLabels = labels
	})
}

// WithBuckets sets the histogram buckets in seconds. The default is prometheus.DefBuckets.
func WithBuckets(buckets []float64) Option {
	return optionFunc(func(o *options) {
		o.buckets = buckets
	})
}

type options struct {
	namespace   string
	subsystem   string
	constLabels prometheus.Labels
	buckets     []float64
}

func defaultOptions() options {
	return options{
		namespace: "readthrough",
		buckets:   prometheus.DefBuckets,
	}
}
