package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records cache lookup and compilation measurements.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records one cache lookup and whether it hit an
	// existing entry.
	RecordLookup(ctx context.Context, meta FunctionMeta, hit bool)

	// RecordCompilation records one compiler invocation with its
	// duration and error status.
	RecordCompilation(ctx context.Context, meta FunctionMeta, duration time.Duration, err error)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	lookupCount  metric.Int64Counter
	compileCount metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	lookupCount, err := meter.Int64Counter(
		"jit.cache.lookups",
		metric.WithDescription("Total number of compilation cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	compileCount, err := meter.Int64Counter(
		"jit.compile.total",
		metric.WithDescription("Total number of compiler invocations"),
		metric.WithUnit("{compilation}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"jit.compile.errors",
		metric.WithDescription("Total number of failed compilations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"jit.compile.duration_ms",
		metric.WithDescription("Compilation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		lookupCount:  lookupCount,
		compileCount: compileCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

func (m *metricsImpl) RecordLookup(ctx context.Context, meta FunctionMeta, hit bool) {
	m.lookupCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("function.id", meta.FunctionID()),
		attribute.Bool("cache.hit", hit),
	))
}

// RecordCompilation records metrics for one compiler invocation.
func (m *metricsImpl) RecordCompilation(ctx context.Context, meta FunctionMeta, duration time.Duration, err error) {
	// Build common attributes
	attrs := []attribute.KeyValue{
		attribute.String("function.id", meta.FunctionID()),
		attribute.String("function.name", meta.Name),
	}

	// Add namespace if present
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("function.namespace", meta.Namespace))
	}

	opt := metric.WithAttributes(attrs...)

	// Always increment total counter
	m.compileCount.Add(ctx, 1, opt)

	// Increment error counter on failure
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}

	// Record duration in milliseconds
	durationMs := float64(duration.Milliseconds())
	m.durationHist.Record(ctx, durationMs, opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics {
	return &noopMetrics{}
}

func (m *noopMetrics) RecordLookup(ctx context.Context, meta FunctionMeta, hit bool) {}

func (m *noopMetrics) RecordCompilation(ctx context.Context, meta FunctionMeta, duration time.Duration, err error) {
}
