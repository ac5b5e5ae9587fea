package observe

import (
	"context"
	"errors"
	"testing"
)

// TestConfig_Validate verifies configuration validation rules.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "missing service name",
			cfg:     Config{},
			wantErr: ErrMissingServiceName,
		},
		{
			name: "valid minimal",
			cfg:  Config{ServiceName: "jitcache"},
		},
		{
			name: "invalid tracing exporter",
			cfg: Config{
				ServiceName: "jitcache",
				Tracing:     TracingConfig{Enabled: true, Exporter: "bogus"},
			},
			wantErr: ErrInvalidTracingExporter,
		},
		{
			name: "sample pct out of range",
			cfg: Config{
				ServiceName: "jitcache",
				Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.5},
			},
			wantErr: ErrInvalidSamplePct,
		},
		{
			name: "invalid metrics exporter",
			cfg: Config{
				ServiceName: "jitcache",
				Metrics:     MetricsConfig{Enabled: true, Exporter: "bogus"},
			},
			wantErr: ErrInvalidMetricsExporter,
		},
		{
			name: "invalid log level",
			cfg: Config{
				ServiceName: "jitcache",
				Logging:     LoggingConfig{Enabled: true, Level: "loud"},
			},
			wantErr: ErrInvalidLogLevel,
		},
		{
			name: "valid full",
			cfg: Config{
				ServiceName: "jitcache",
				Version:     "0.1.0",
				Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 0.5},
				Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
				Logging:     LoggingConfig{Enabled: true, Level: "debug"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestNewObserver_Disabled verifies a fully-disabled observer still
// provides usable noop primitives.
func TestNewObserver_Disabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "jitcache"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	defer obs.Shutdown(context.Background())

	if obs.Tracer() == nil {
		t.Error("Tracer() is nil")
	}
	if obs.Meter() == nil {
		t.Error("Meter() is nil")
	}
	if obs.Logger() == nil {
		t.Error("Logger() is nil")
	}
}

// TestNewObserver_InvalidConfig verifies validation errors propagate.
func TestNewObserver_InvalidConfig(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("NewObserver = %v, want ErrMissingServiceName", err)
	}
}

// TestNewObserver_NoneExporters verifies the none exporters wire up
// real providers that can be shut down.
func TestNewObserver_NoneExporters(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "jitcache",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "error"},
	})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
	// Shutdown is idempotent.
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown failed: %v", err)
	}
}
