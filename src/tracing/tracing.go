package tracing

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes and stops the installed tracer provider
type ShutdownFunc func(ctx context.Context) error

// InitTracing installs a global tracer provider that writes finished spans to
// the given logger. When disabled the global no-op provider is left in place.
func InitTracing(enabled bool, logger zerolog.Logger) ShutdownFunc {
	if !enabled {
		return func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(NewLogExporter(logger)),
	)
	otel.SetTracerProvider(tp)

	logger.Info().Msg("Tracing enabled")
	return tp.Shutdown
}

// LogExporter is a span exporter that emits one log event per span
type LogExporter struct {
	logger zerolog.Logger
}

// NewLogExporter creates a span exporter over a zerolog logger
func NewLogExporter(logger zerolog.Logger) *LogExporter {
	return &LogExporter{logger: logger}
}

func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		status := s.Status()
		event := e.logger.Info().
			Str("span", s.Name()).
			Str("trace_id", s.SpanContext().TraceID().String()).
			Str("span_id", s.SpanContext().SpanID().String()).
			Dur("duration", s.EndTime().Sub(s.StartTime())).
			Str("status", status.Code.String())
		if status.Description != "" {
			event = event.Str("status_description", status.Description)
		}
		for _, kv := range s.Attributes() {
			event = event.Str(string(kv.Key), kv.Value.Emit())
		}
		event.Msg("Span finished")
	}
	return nil
}

func (e *LogExporter) Shutdown(ctx context.Context) error {
	return nil
}
