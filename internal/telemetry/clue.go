package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"goa.design/clue/log"
)

type (
	// ClueLogger wraps goa.design/clue/log for runtime logging. It reads
	// formatting and debug settings from the context, the same way the
	// teacher runtime's ClueLogger does.
	ClueLogger struct{}

	// OTELMetrics wraps an OpenTelemetry meter for runtime instrumentation.
	OTELMetrics struct {
		meter metric.Meter
	}

	// OTELTracer wraps an OpenTelemetry tracer for runtime tracing.
	OTELTracer struct {
		tracer trace.Tracer
	}

	otelSpan struct {
		span trace.Span
	}
)

// NewClueLogger constructs a Logger that delegates to goa.design/clue/log.
func NewClueLogger() Logger { return ClueLogger{} }

// NewOTELMetrics constructs a Metrics recorder backed by the global OTEL
// MeterProvider, scoped under the orchestration core's instrumentation name.
func NewOTELMetrics() Metrics {
	return &OTELMetrics{meter: otel.Meter("github.com/redaptive/agentcore")}
}

// NewOTELTracer constructs a Tracer backed by the global OTEL TracerProvider.
func NewOTELTracer() Tracer {
	return &OTELTracer{tracer: otel.Tracer("github.com/redaptive/agentcore")}
}

func (ClueLogger) Debug(ctx context.Context, msg string, keyvals ...any) {
	log.Debug(ctx, append([]log.Fielder{log.KV{K: "msg", V: msg}}, kvToClue(keyvals)...)...)
}

func (ClueLogger) Info(ctx context.Context, msg string, keyvals ...any) {
	log.Info(ctx, append([]log.Fielder{log.KV{K: "msg", V: msg}}, kvToClue(keyvals)...)...)
}

func (ClueLogger) Warn(ctx context.Context, msg string, keyvals ...any) {
	fielders := []log.Fielder{log.KV{K: "msg", V: msg}, log.KV{K: "severity", V: "warning"}}
	log.Warn(ctx, append(fielders, kvToClue(keyvals)...)...)
}

func (ClueLogger) Error(ctx context.Context, msg string, keyvals ...any) {
	log.Error(ctx, fmt.Errorf("%s", msg), kvToClue(keyvals)...)
}

func kvToClue(keyvals []any) []log.Fielder {
	fielders := make([]log.Fielder, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, _ := keyvals[i].(string)
		if key == "" {
			continue
		}
		fielders = append(fielders, log.KV{K: key, V: keyvals[i+1]})
	}
	return fielders
}

func (m *OTELMetrics) IncCounter(ctx context.Context, name string, tags ...string) {
	c, err := m.meter.Int64Counter(name)
	if err != nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(tagAttrs(tags)...))
}

func (m *OTELMetrics) RecordDuration(ctx context.Context, name string, d time.Duration, tags ...string) {
	h, err := m.meter.Float64Histogram(name + ".duration_ms")
	if err != nil {
		return
	}
	h.Record(ctx, float64(d.Milliseconds()), metric.WithAttributes(tagAttrs(tags)...))
}

func (t *OTELTracer) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	spanCtx, span := t.tracer.Start(ctx, name)
	return spanCtx, &otelSpan{span: span}
}

func (s *otelSpan) End() { s.span.End() }

func (s *otelSpan) SetError(err error) {
	if err == nil {
		return
	}
	s.span.SetStatus(codes.Error, err.Error())
	s.span.RecordError(err)
}

func tagAttrs(tags []string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(tags)/2)
	for i := 0; i+1 < len(tags); i += 2 {
		attrs = append(attrs, attribute.String(tags[i], tags[i+1]))
	}
	return attrs
}
