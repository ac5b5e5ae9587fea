package cache

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonwraymond/jitcache/observe"
	"github.com/jonwraymond/jitcache/signature"
	"github.com/jonwraymond/jitcache/tensor"
)

// Options configures a Cache.
type Options struct {
	// BuildExecutable requests a runnable executable for each
	// compilation in addition to the compilation result.
	// DefaultOptions sets it.
	BuildExecutable bool

	// MaxConcurrentCompiles bounds the number of compiler invocations
	// running at once across all signatures. 0 means unbounded.
	MaxConcurrentCompiles int

	// Logger receives structured log lines. Nil means no logging.
	Logger observe.Logger

	// Metrics receives lookup and compilation measurements.
	// Nil means no metrics.
	Metrics observe.Metrics

	// Tracer wraps each compiler invocation in a span.
	// Nil means no tracing.
	Tracer observe.Tracer
}

// DefaultOptions returns the default cache options: build executables,
// unbounded compile concurrency, no telemetry.
func DefaultOptions() Options {
	return Options{BuildExecutable: true}
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	// Entries is the number of distinct signatures seen.
	Entries int

	// Hits counts Compile calls that found an existing entry.
	Hits int64

	// Misses counts Compile calls that inserted a new entry.
	Misses int64

	// Compilations counts compiler invocations.
	Compilations int64

	// Failures counts compiler invocations that returned an error.
	Failures int64
}

// Cache maps call signatures to compiled artifacts. It retains every
// entry, successful or failed, for its whole lifetime; recovering
// from a permanently cached failure requires constructing a new Cache.
//
// Contract:
// - Concurrency: all methods are safe for concurrent use.
// - Ownership: returned CompilationResult and Executable references
//   are borrowed; they remain valid until Close and must not be
//   finalized by callers.
type Cache struct {
	compiler Compiler
	registry FunctionRegistry
	opts     Options

	logger  observe.Logger
	metrics observe.Metrics
	tracer  observe.Tracer

	// compileSem bounds concurrent compiler invocations when
	// Options.MaxConcurrentCompiles > 0.
	compileSem *semaphore.Weighted

	// mu guards only the structure of entries; it is never held
	// across a compilation.
	mu      sync.Mutex
	entries map[uint64][]*entry
	count   int
	closed  bool

	hits         atomic.Int64
	misses       atomic.Int64
	compilations atomic.Int64
	failures     atomic.Int64
}

// New creates a compilation cache over the given collaborators.
// The cache is an owned object: construct it where its lifetime is
// managed and inject it, rather than sharing a global instance.
func New(compiler Compiler, registry FunctionRegistry, opts Options) (*Cache, error) {
	if compiler == nil {
		return nil, ErrNilCompiler
	}
	if registry == nil {
		return nil, ErrNilRegistry
	}

	c := &Cache{
		compiler: compiler,
		registry: registry,
		opts:     opts,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		tracer:   opts.Tracer,
		entries:  make(map[uint64][]*entry),
	}
	if c.logger == nil {
		c.logger = observe.NopLogger()
	}
	if c.metrics == nil {
		c.metrics = observe.NopMetrics()
	}
	if c.tracer == nil {
		c.tracer = observe.NopTracer()
	}
	if n := opts.MaxConcurrentCompiles; n > 0 {
		c.compileSem = semaphore.NewWeighted(int64(n))
	}
	return c, nil
}

// Compile returns the compiled artifact for the call described by fn,
// numConstantArgs, variableArgs, and ectx, compiling it first if this
// is the first sighting of its signature.
//
// variableArgs snapshots the call's resource-variable arguments, one
// slot per such argument; an absent slot is an uninitialized
// variable. Snapshots affect the signature only through the type and
// shape already reported by ectx — their present/absent state and
// value are irrelevant unless the same argument index falls within
// the constant prefix.
//
// A signature whose compilation failed returns that same failure on
// every subsequent call, without re-invoking the compiler.
func (c *Cache) Compile(ctx context.Context, fn FunctionDescriptor, numConstantArgs int, variableArgs []tensor.OptionalTensor, ectx ExecutionContext) (*CompilationResult, Executable, error) {
	if ectx == nil {
		return nil, nil, ErrNilContext
	}
	if len(variableArgs) > ectx.NumArgs() {
		return nil, nil, fmt.Errorf("%w: %d snapshots for %d arguments",
			ErrTooManyVariableArgs, len(variableArgs), ectx.NumArgs())
	}

	meta := observe.FunctionMeta{Name: fn.Name}

	sig, err := signature.Build(fn.Name, numConstantArgs, ectx)
	if err != nil {
		// No entry is created for an unbuildable signature; the
		// caller may retry with corrected input.
		c.logger.Debug(ctx, "signature construction failed",
			observe.Field{Key: "function", Value: fn.Name},
			observe.Field{Key: "error", Value: err.Error()})
		return nil, nil, err
	}

	e, existing, err := c.lookupOrInsert(sig)
	if err != nil {
		return nil, nil, err
	}
	c.metrics.RecordLookup(ctx, meta, existing)
	if existing {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.compiled {
		if err := c.compileEntry(ctx, meta, fn, sig, e); err != nil {
			// The compile slot was never acquired; the entry stays
			// uncompiled and a later caller will attempt the compile.
			return nil, nil, err
		}
	} else {
		c.logger.Debug(ctx, "compilation cache hit",
			observe.Field{Key: "function", Value: fn.Name},
			observe.Field{Key: "signature", Value: sig.DebugString()})
	}

	if e.err != nil {
		return nil, nil, e.err
	}
	return e.result, e.executable, nil
}

// lookupOrInsert finds the entry for sig, inserting an empty entry on
// first sighting. The global lock is held only for the duration of
// the bucket scan and insert, never across a compilation.
func (c *Cache) lookupOrInsert(sig signature.Signature) (*entry, bool, error) {
	h := sig.Hash()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, false, ErrCacheClosed
	}

	// Hash buckets resolve collisions with exact structural equality.
	for _, e := range c.entries[h] {
		if e.sig.Equal(sig) {
			return e, true, nil
		}
	}
	e := &entry{sig: sig}
	c.entries[h] = append(c.entries[h], e)
	c.count++
	return e, false, nil
}

// compileEntry performs the entry's single compilation and publishes
// the terminal outcome. Caller holds e.mu. A non-nil return means the
// compilation never started (the entry remains uncompiled); outcomes
// of the compiler and registry, success or failure, are published
// into the entry instead.
func (c *Cache) compileEntry(ctx context.Context, meta observe.FunctionMeta, fn FunctionDescriptor, sig signature.Signature, e *entry) error {
	if c.compileSem != nil {
		if err := c.compileSem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("cache: waiting for compile slot: %w", err)
		}
		defer c.compileSem.Release(1)
	}

	ctx, span := c.tracer.StartSpan(ctx, meta)
	start := time.Now()

	var (
		result     *CompilationResult
		executable Executable
	)
	computation, err := c.registry.Resolve(fn)
	if err != nil {
		err = fmt.Errorf("cache: resolving %q: %w", fn.Name, err)
	} else {
		result, executable, err = c.compiler.Compile(ctx, computation, sig.ArgValues(),
			CompileOptions{BuildExecutable: c.opts.BuildExecutable})
	}
	duration := time.Since(start)

	c.tracer.EndSpan(span, err)
	c.metrics.RecordCompilation(ctx, meta, duration, err)
	c.compilations.Add(1)

	if err != nil {
		c.failures.Add(1)
		c.logger.Error(ctx, "compilation failed",
			observe.Field{Key: "function", Value: fn.Name},
			observe.Field{Key: "signature", Value: sig.DebugString()},
			observe.Field{Key: "duration_ms", Value: float64(duration.Milliseconds())},
			observe.Field{Key: "error", Value: err.Error()})
	} else {
		c.logger.Info(ctx, "compilation completed",
			observe.Field{Key: "function", Value: fn.Name},
			observe.Field{Key: "signature", Value: sig.DebugString()},
			observe.Field{Key: "duration_ms", Value: float64(duration.Milliseconds())})
	}

	e.publish(result, executable, err)
	return nil
}

// Client returns the underlying compiler's client handle.
func (c *Cache) Client() Client {
	return c.compiler.Client()
}

// Len returns the number of cached signatures.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Stats returns a snapshot of cache activity counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	entries := c.count
	c.mu.Unlock()

	return Stats{
		Entries:      entries,
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		Compilations: c.compilations.Load(),
		Failures:     c.failures.Load(),
	}
}

// DebugString returns a sorted listing of all cached signatures.
// It snapshots the key set under the global lock and never blocks on
// in-flight compilations.
func (c *Cache) DebugString() string {
	c.mu.Lock()
	sigs := make([]string, 0, c.count)
	for _, bucket := range c.entries {
		for _, e := range bucket {
			sigs = append(sigs, e.sig.DebugString())
		}
	}
	c.mu.Unlock()

	sort.Strings(sigs)

	var b strings.Builder
	fmt.Fprintf(&b, "compilation cache: %d entries\n", len(sigs))
	for _, s := range sigs {
		b.WriteString("  ")
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.String()
}

// Close finalizes every stored executable and marks the cache closed;
// subsequent Compile calls return ErrCacheClosed. Close waits for
// in-flight compilations to publish before finalizing their
// executables. It is idempotent.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	buckets := c.entries
	c.mu.Unlock()

	for _, bucket := range buckets {
		for _, e := range bucket {
			e.mu.Lock()
			if e.executable != nil {
				e.executable.Finalize()
				e.executable = nil
			}
			e.mu.Unlock()
		}
	}
	return nil
}
