// Package slogdiag writes cache lookup diagnostics as structured log records.
package slogdiag

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/karupanerura/readthrough-cache/diagnostics"
)

// Message is the message of every record.
const Message = "readthrough lookup"

// Recorder logs one record per lookup.
// When the context carries a span, its trace and span IDs are attached so that
// records can be correlated with traces.
type Recorder struct {
	logger *slog.Logger
	level  slog.Level
}

var _ diagnostics.Recorder = (*Recorder)(nil)

// New creates a Recorder writing to logger at slog.LevelDebug.
// A nil logger means slog.Default().
func New(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the recorder logging at the given level.
func (r *Recorder) WithLevel(level slog.Level) *Recorder {
	return &Recorder{logger: r.logger, level: level}
}

// Record implements diagnostics.Recorder.
func (r *Recorder) Record(ctx context.Context, d diagnostics.Detail) {
	if !r.logger.Enabled(ctx, r.level) {
		return
	}

	attrs := []slog.Attr{
		slog.Any("key", d.Key),
		slog.String("source", d.Source.String()),
		slog.String("lock_mode", d.LockMode.String()),
		slog.Duration("elapsed", d.Elapsed),
	}
	if id, ok := diagnostics.CallerID(ctx); ok {
		attrs = append(attrs, slog.String("caller_id", id))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String("traceId", sc.TraceID().String()),
			slog.String("spanId", sc.SpanID().String()),
		)
	}
	r.logger.LogAttrs(ctx, r.level, Message, attrs...)
}
