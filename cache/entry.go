package cache

import (
	"sync"

	"github.com/jonwraymond/jitcache/signature"
)

// entry holds the lazily-computed compilation outcome for one
// signature. An entry transitions at most once, under its own lock,
// from uncompiled to compiled (success or failure); both compiled
// states are terminal. All outcome fields publish together with
// compiled becoming true, so readers never observe a torn result.
type entry struct {
	sig signature.Signature

	mu sync.Mutex

	// compiled is true once a compilation attempt has finished.
	compiled bool

	// err is the terminal failure, nil on success. Valid only once
	// compiled is true.
	err error

	// result is the compilation artifact. Valid only on success.
	result *CompilationResult

	// executable is the built runnable artifact. May be nil even on
	// success, when none was requested or the computation has no
	// non-constant outputs.
	executable Executable
}

// publish records the terminal outcome. Caller must hold e.mu and
// must not have published before.
func (e *entry) publish(result *CompilationResult, executable Executable, err error) {
	e.err = err
	e.result = result
	e.executable = executable
	e.compiled = true
}
