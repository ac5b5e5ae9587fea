package exporters

import (
	"context"
	"strings"
	"testing"
)

// TestExporter_InvalidName verifies unknown exporter name returns error.
func TestExporter_InvalidName(t *testing.T) {
	_, err := NewTracingExporter(context.Background(), "invalid")
	if err == nil {
		t.Fatal("expected error for invalid exporter name")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "unknown exporter") {
		t.Errorf("expected error to contain 'unknown exporter', got: %v", err)
	}

	if _, err := NewMetricsReader(context.Background(), "invalid"); err == nil {
		t.Fatal("expected error for invalid metrics exporter name")
	}
}

// TestExporter_Stdout verifies stdout exporters can be constructed.
func TestExporter_Stdout(t *testing.T) {
	exp, err := NewTracingExporter(context.Background(), "stdout")
	if err != nil {
		t.Fatalf("failed to create stdout tracing exporter: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}

	reader, err := NewMetricsReader(context.Background(), "stdout")
	if err != nil {
		t.Fatalf("failed to create stdout metrics reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}
}

// TestExporter_None verifies the discarded exporters can be constructed.
func TestExporter_None(t *testing.T) {
	for _, name := range []string{"none", ""} {
		if _, err := NewTracingExporter(context.Background(), name); err != nil {
			t.Errorf("NewTracingExporter(%q) failed: %v", name, err)
		}
		if _, err := NewMetricsReader(context.Background(), name); err != nil {
			t.Errorf("NewMetricsReader(%q) failed: %v", name, err)
		}
	}
}

// TestExporter_OTLPRequiresEndpoint verifies OTLP exporters demand an endpoint.
func TestExporter_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

	if _, err := NewTracingExporter(context.Background(), "otlp"); err == nil {
		t.Error("expected error when OTLP endpoint is not configured")
	}
	if _, err := NewMetricsReader(context.Background(), "otlp"); err == nil {
		t.Error("expected error when OTLP metrics endpoint is not configured")
	}
}
