package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// TestFunctionMeta_SpanName verifies span naming with and without namespace.
func TestFunctionMeta_SpanName(t *testing.T) {
	tests := []struct {
		name     string
		meta     FunctionMeta
		expected string
	}{
		{
			name:     "with namespace",
			meta:     FunctionMeta{Namespace: "model", Name: "matmul"},
			expected: "jit.compile.model.matmul",
		},
		{
			name:     "without namespace",
			meta:     FunctionMeta{Name: "relu"},
			expected: "jit.compile.relu",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.meta.SpanName(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// TestFunctionMeta_FunctionID verifies ID generation precedence.
func TestFunctionMeta_FunctionID(t *testing.T) {
	tests := []struct {
		name     string
		meta     FunctionMeta
		expected string
	}{
		{
			name:     "explicit ID wins",
			meta:     FunctionMeta{ID: "custom", Namespace: "model", Name: "matmul"},
			expected: "custom",
		},
		{
			name:     "with namespace",
			meta:     FunctionMeta{Namespace: "model", Name: "matmul"},
			expected: "model.matmul",
		},
		{
			name:     "without namespace",
			meta:     FunctionMeta{Name: "relu"},
			expected: "relu",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.meta.FunctionID(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// TestTracer_SpanAttributes verifies all attributes are present on span.
func TestTracer_SpanAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	tr := NewTracer(tp.Tracer("test"))
	meta := FunctionMeta{
		Namespace: "model",
		Name:      "matmul",
		Version:   "1.0.0",
		Tags:      []string{"gemm"},
	}

	_, span := tr.StartSpan(context.Background(), meta)
	tr.EndSpan(span, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	got := spans[0]
	if got.Name() != "jit.compile.model.matmul" {
		t.Errorf("span name = %q, want %q", got.Name(), "jit.compile.model.matmul")
	}

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range got.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if v := attrs["function.id"]; v.AsString() != "model.matmul" {
		t.Errorf("function.id = %q, want %q", v.AsString(), "model.matmul")
	}
	if v := attrs["function.version"]; v.AsString() != "1.0.0" {
		t.Errorf("function.version = %q, want %q", v.AsString(), "1.0.0")
	}
	if got.Status().Code != codes.Ok {
		t.Errorf("status = %v, want Ok", got.Status().Code)
	}
}

// TestTracer_EndSpanRecordsError verifies error status and event on failure.
func TestTracer_EndSpanRecordsError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	tr := NewTracer(tp.Tracer("test"))
	_, span := tr.StartSpan(context.Background(), FunctionMeta{Name: "broken"})
	tr.EndSpan(span, errors.New("compile failed"))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	got := spans[0]
	if got.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", got.Status().Code)
	}
	if got.Status().Description != "compile failed" {
		t.Errorf("status description = %q, want %q", got.Status().Description, "compile failed")
	}
	if len(got.Events()) == 0 {
		t.Error("expected a recorded error event")
	}
}

// TestNopTracer verifies the nop tracer produces usable spans.
func TestNopTracer(t *testing.T) {
	tr := NopTracer()

	ctx, span := tr.StartSpan(context.Background(), FunctionMeta{Name: "f"})
	if ctx == nil || span == nil {
		t.Fatal("nop tracer returned nil context or span")
	}
	tr.EndSpan(span, errors.New("ignored"))
}
