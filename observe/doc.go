// Package observe provides observability primitives for JIT
// compilation: structured logging, lookup/compilation metrics, and
// per-compilation tracing.
//
// It is a pure instrumentation library: no compilation, no transport,
// no I/O beyond exporter setup. The cache package consumes the
// Logger, Metrics, and Tracer interfaces; NewObserver wires the
// OpenTelemetry providers behind them.
package observe
