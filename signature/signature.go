package signature

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/jonwraymond/jitcache/tensor"
)

// ArgType is the (data type, shape) pair of one runtime argument.
type ArgType struct {
	DType tensor.DataType
	Shape tensor.Shape
}

// Equal reports type and shape equality.
func (a ArgType) Equal(other ArgType) bool {
	return a.DType == other.DType && a.Shape.Equal(other.Shape)
}

// String renders the pair as "int32:[2x3]".
func (a ArgType) String() string {
	return a.DType.String() + ":" + a.Shape.String()
}

// Signature uniquely identifies a compilation output: the callable
// name, the type and shape of every argument in order, and the
// concrete values of the compile-time constant argument prefix.
//
// Contract:
// - Immutability: a Signature is never mutated after Build returns it.
// - Hash/Equal agreement: equal signatures hash identically; unequal
//   signatures may collide, so containers must confirm with Equal.
type Signature struct {
	name      string
	argTypes  []ArgType
	argValues []tensor.Tensor
}

// Name returns the callable name.
func (s Signature) Name() string { return s.name }

// NumArgs returns the number of runtime arguments.
func (s Signature) NumArgs() int { return len(s.argTypes) }

// NumConstantArgs returns the length of the constant value prefix.
func (s Signature) NumConstantArgs() int { return len(s.argValues) }

// ArgTypes returns the ordered argument (type, shape) pairs.
// The returned slice is shared; callers must not mutate it.
func (s Signature) ArgTypes() []ArgType { return s.argTypes }

// ArgValues returns the ordered constant argument values.
// The returned slice is shared; callers must not mutate it.
func (s Signature) ArgValues() []tensor.Tensor { return s.argValues }

// Equal reports structural equality: name, element-wise argument
// types, and element-wise constant value content.
func (s Signature) Equal(other Signature) bool {
	if s.name != other.name {
		return false
	}
	if len(s.argTypes) != len(other.argTypes) {
		return false
	}
	for i, at := range s.argTypes {
		if !at.Equal(other.argTypes[i]) {
			return false
		}
	}
	if len(s.argValues) != len(other.argValues) {
		return false
	}
	for i, v := range s.argValues {
		if !v.Equal(other.argValues[i]) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash consistent with Equal. Fields are
// folded into one incremental digest with length prefixes so that
// adjacent fields cannot alias across boundaries.
func (s Signature) Hash() uint64 {
	d := xxhash.New()
	writeUvarint(d, uint64(len(s.name)))
	d.WriteString(s.name)

	writeUvarint(d, uint64(len(s.argTypes)))
	for _, at := range s.argTypes {
		writeUvarint(d, uint64(at.DType))
		writeUvarint(d, uint64(at.Shape.Rank()))
		for _, dim := range at.Shape.Dims {
			writeUvarint(d, uint64(dim))
		}
	}

	writeUvarint(d, uint64(len(s.argValues)))
	for _, v := range s.argValues {
		writeUvarint(d, uint64(v.DType))
		writeUvarint(d, uint64(v.Shape.Rank()))
		for _, dim := range v.Shape.Dims {
			writeUvarint(d, uint64(dim))
		}
		writeUvarint(d, uint64(len(v.Data)))
		d.Write(v.Data)
	}
	return d.Sum64()
}

func writeUvarint(d *xxhash.Digest, v uint64) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	d.Write(buf[:n])
}

// DebugString renders the signature for diagnostics, e.g.
// "name=f argtypes=[int32:[2]] argvalues=[int32[]:03000000]".
func (s Signature) DebugString() string {
	var b strings.Builder
	b.WriteString("name=")
	b.WriteString(s.name)
	b.WriteString(" argtypes=[")
	for i, at := range s.argTypes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(at.String())
	}
	b.WriteString("] argvalues=[")
	for i, v := range s.argValues {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}
