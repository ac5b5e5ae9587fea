package signature

import (
	"fmt"

	"github.com/jonwraymond/jitcache/tensor"
)

// ArgSource reports the runtime arguments of one call. It is the
// narrow view of an execution context that signature building needs.
//
// Contract:
// - Ordering: index i is argument position i.
// - Arg must succeed for every index in [0, NumArgs), including
//   resource-variable arguments whose value is absent; such arguments
//   still report a well-defined type and shape placeholder.
// - ConstantValue must return a host-addressable tensor for any
//   argument designated compile-time constant.
type ArgSource interface {
	// NumArgs returns the call's arity.
	NumArgs() int

	// Arg returns the (type, shape) of argument i.
	Arg(i int) (ArgType, error)

	// ConstantValue returns the concrete value of argument i.
	ConstantValue(i int) (tensor.Tensor, error)
}

// Build constructs the signature for one call. The (type, shape) of
// every argument is captured unconditionally; concrete values are
// captured only for the constant prefix [0, numConstantArgs).
// Resource-variable snapshots outside that prefix contribute nothing
// beyond the type and shape already reported by src.
func Build(name string, numConstantArgs int, src ArgSource) (Signature, error) {
	if name == "" {
		return Signature{}, ErrEmptyName
	}
	if src == nil {
		return Signature{}, ErrNilSource
	}
	if numConstantArgs < 0 {
		return Signature{}, fmt.Errorf("%w: %d", ErrNegativeConstantArgs, numConstantArgs)
	}
	numArgs := src.NumArgs()
	if numConstantArgs > numArgs {
		return Signature{}, fmt.Errorf("%w: %d constants for %d arguments",
			ErrTooManyConstantArgs, numConstantArgs, numArgs)
	}

	sig := Signature{name: name}
	if numArgs > 0 {
		sig.argTypes = make([]ArgType, numArgs)
	}
	for i := 0; i < numArgs; i++ {
		at, err := src.Arg(i)
		if err != nil {
			return Signature{}, fmt.Errorf("signature: argument %d: %w", i, err)
		}
		sig.argTypes[i] = at
	}

	if numConstantArgs > 0 {
		sig.argValues = make([]tensor.Tensor, numConstantArgs)
	}
	for i := 0; i < numConstantArgs; i++ {
		v, err := src.ConstantValue(i)
		if err != nil {
			return Signature{}, fmt.Errorf("%w: argument %d: %v", ErrConstantUnavailable, i, err)
		}
		if err := v.Validate(); err != nil {
			return Signature{}, fmt.Errorf("signature: constant argument %d: %w", i, err)
		}
		if v.DType != sig.argTypes[i].DType || !v.Shape.Equal(sig.argTypes[i].Shape) {
			return Signature{}, fmt.Errorf("signature: constant argument %d: value %s%s does not match declared %s",
				i, v.DType, v.Shape, sig.argTypes[i])
		}
		sig.argValues[i] = v
	}
	return sig, nil
}
