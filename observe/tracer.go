package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// FunctionMeta contains metadata about a compiled function for
// telemetry purposes.
type FunctionMeta struct {
	ID        string   // Fully qualified function ID (namespace.name or just name)
	Namespace string   // Function namespace (may be empty)
	Name      string   // Function name (required)
	Version   string   // Function version (optional)
	Tags      []string // Function tags (optional)
}

// SpanName returns the deterministic span name for this function's
// compilation. Format: jit.compile.<namespace>.<name> or jit.compile.<name>
func (m FunctionMeta) SpanName() string {
	if m.Namespace != "" {
		return "jit.compile." + m.Namespace + "." + m.Name
	}
	return "jit.compile." + m.Name
}

// FunctionID returns the fully qualified function identifier.
// If ID field is set, returns it. Otherwise constructs from namespace and name.
func (m FunctionMeta) FunctionID() string {
	if m.ID != "" {
		return m.ID
	}
	if m.Namespace != "" {
		return m.Namespace + "." + m.Name
	}
	return m.Name
}

// Tracer wraps OpenTelemetry tracing with compilation-specific span
// management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for one compilation.
	StartSpan(ctx context.Context, meta FunctionMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with function metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta FunctionMeta) (context.Context, trace.Span) {
	spanName := meta.SpanName()

	// Build attributes
	attrs := []attribute.KeyValue{
		attribute.String("function.id", meta.FunctionID()),
		attribute.String("function.name", meta.Name),
		attribute.Bool("compile.error", false), // Will be updated in EndSpan if error
	}

	// Add namespace if present
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("function.namespace", meta.Namespace))
	}

	// Add optional attributes if present
	if meta.Version != "" {
		attrs = append(attrs, attribute.String("function.version", meta.Version))
	}
	if len(meta.Tags) > 0 {
		attrs = append(attrs, attribute.StringSlice("function.tags", meta.Tags))
	}

	ctx, span := t.tracer.Start(ctx, spanName,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("compile.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer that records nothing.
func NopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta FunctionMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
