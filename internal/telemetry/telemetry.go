// Package telemetry defines the logging, metrics, and tracing capability set
// used throughout the orchestration core. Components depend on the small
// Logger/Metrics/Tracer interfaces rather than a concrete backend so tests
// and the in-memory demo can supply no-op implementations.
package telemetry

import (
	"context"
	"time"
)

type (
	// Logger emits structured, leveled log messages scoped to a context.
	Logger interface {
		Debug(ctx context.Context, msg string, keyvals ...any)
		Info(ctx context.Context, msg string, keyvals ...any)
		Warn(ctx context.Context, msg string, keyvals ...any)
		Error(ctx context.Context, msg string, keyvals ...any)
	}

	// Metrics records counters and durations for orchestration operations.
	Metrics interface {
		IncCounter(ctx context.Context, name string, tags ...string)
		RecordDuration(ctx context.Context, name string, d time.Duration, tags ...string)
	}

	// Tracer creates spans for orchestration operations.
	Tracer interface {
		StartSpan(ctx context.Context, name string) (context.Context, Span)
	}

	// Span is an in-flight trace span.
	Span interface {
		End()
		SetError(err error)
	}
)

type (
	// NoopLogger discards all log messages.
	NoopLogger struct{}
	// NoopMetrics discards all metrics.
	NoopMetrics struct{}
	// NoopTracer produces spans that do nothing.
	NoopTracer struct{}
	noopSpan   struct{}
)

func (NoopLogger) Debug(context.Context, string, ...any) {}
func (NoopLogger) Info(context.Context, string, ...any)  {}
func (NoopLogger) Warn(context.Context, string, ...any)  {}
func (NoopLogger) Error(context.Context, string, ...any) {}

func (NoopMetrics) IncCounter(context.Context, string, ...string)                   {}
func (NoopMetrics) RecordDuration(context.Context, string, time.Duration, ...string) {}

func (NoopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, noopSpan{}
}

func (noopSpan) End()           {}
func (noopSpan) SetError(error) {}
