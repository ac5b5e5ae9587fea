package cache

import (
	"context"

	"github.com/jonwraymond/jitcache/signature"
	"github.com/jonwraymond/jitcache/tensor"
)

// FunctionDescriptor names the callable to compile, together with the
// attributes that select among its instantiations.
type FunctionDescriptor struct {
	Name  string
	Attrs map[string]string
}

// Computation is a resolved computation ready to hand to a Compiler.
// It is opaque to the cache.
type Computation interface {
	// Name returns the computation's identifier.
	Name() string
}

// FunctionRegistry resolves a descriptor to the computation it names.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: resolution failures are treated as compilation failures
//   and cached permanently for the triggering signature.
type FunctionRegistry interface {
	Resolve(fn FunctionDescriptor) (Computation, error)
}

// ExecutionContext reports the runtime arguments of one call: the
// (type, shape) of every argument and host-accessible values for the
// compile-time constant prefix. It is exactly the argument view that
// signature building consumes.
type ExecutionContext interface {
	signature.ArgSource
}

// Client is the opaque handle to the compiler's backing client,
// exposed for downstream execution setup.
type Client interface{}

// CompileOptions selects what the Compiler should produce.
type CompileOptions struct {
	// BuildExecutable requests a runnable Executable in addition to
	// the CompilationResult. Even when set, the returned executable
	// may be nil if the computation has no non-constant outputs.
	BuildExecutable bool
}

// CompilationResult describes how to run a compiled computation.
type CompilationResult struct {
	// InputMapping maps compiled parameter positions to original
	// argument positions; constant arguments are folded away.
	InputMapping []int

	// InputShapes are the shapes of the compiled parameters.
	InputShapes []tensor.Shape

	// OutputShapes are the shapes of the computation's outputs.
	OutputShapes []tensor.Shape

	// HasSideEffects reports whether the computation updates any
	// resource variables.
	HasSideEffects bool
}

// Executable is a built runnable artifact. The cache owns every
// executable it stores and finalizes them on Close; callers borrow.
type Executable interface {
	// Name returns the executable's identifier.
	Name() string

	// Finalize releases resources held by the executable.
	Finalize()
}

// Compiler translates a computation plus its constant argument values
// into a compilation result and, if requested, an executable.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use; the
//   cache may compile distinct signatures in parallel.
// - Errors: a returned error is cached permanently for the signature
//   that triggered the compilation.
// - Context: implementations may honor cancellation, but the cache
//   treats a started compilation as running to completion.
type Compiler interface {
	Compile(ctx context.Context, computation Computation, constants []tensor.Tensor, opts CompileOptions) (*CompilationResult, Executable, error)

	// Client returns the compiler's backing client handle.
	Client() Client
}
