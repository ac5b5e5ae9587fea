package cache

import "errors"

// Sentinel errors for cache construction and Compile calls.
var (
	// ErrNilCompiler indicates New was given a nil Compiler.
	ErrNilCompiler = errors.New("cache: compiler is nil")

	// ErrNilRegistry indicates New was given a nil FunctionRegistry.
	ErrNilRegistry = errors.New("cache: function registry is nil")

	// ErrNilContext indicates Compile was given a nil ExecutionContext.
	ErrNilContext = errors.New("cache: execution context is nil")

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed = errors.New("cache: cache is closed")

	// ErrTooManyVariableArgs indicates more variable-argument snapshots
	// than the call has arguments.
	ErrTooManyVariableArgs = errors.New("cache: variable argument snapshots exceed arity")
)
