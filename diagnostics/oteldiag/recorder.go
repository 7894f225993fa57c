// Package oteldiag reports cache lookup diagnostics as OpenTelemetry span events.
package oteldiag

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/karupanerura/readthrough-cache/diagnostics"
)

// DefaultEventName is the span event name used when Recorder.EventName is empty.
const DefaultEventName = "readthrough.lookup"

// Attribute keys attached to every event.
const (
	KeyKey      = attribute.Key("readthrough.key")
	KeySource   = attribute.Key("readthrough.source")
	KeyLockMode = attribute.Key("readthrough.lock_mode")
	KeyElapsed  = attribute.Key("readthrough.elapsed_ms")
	KeyCallerID = attribute.Key("readthrough.caller_id")
)

// Recorder adds an event describing the lookup to the span carried by the context.
// Lookups without a recording span are ignored. The zero value is ready to use.
type Recorder struct {
	// EventName overrides DefaultEventName.
	EventName string
}

var _ diagnostics.Recorder = (*Recorder)(nil)

// Record implements diagnostics.Recorder.
func (r *Recorder) Record(ctx context.Context, d diagnostics.Detail) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		KeyKey.String(fmt.Sprint(d.Key)),
		KeySource.String(d.Source.String()),
		KeyLockMode.String(d.LockMode.String()),
		KeyElapsed.Float64(float64(d.Elapsed.Microseconds()) / 1000),
	}
	if id, ok := diagnostics.CallerID(ctx); ok {
		attrs = append(attrs, KeyCallerID.String(id))
	}

	name := r.EventName
	if name == "" {
		name = DefaultEventName
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
