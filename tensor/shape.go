package tensor

import (
	"strconv"
	"strings"
)

// Shape describes the static dimensions of a tensor.
// A Shape with no dimensions is a scalar.
//
// Contract:
// - Immutability: callers must not mutate Dims after handing a Shape
//   to signature or cache code; use Clone when in doubt.
type Shape struct {
	Dims []int64
}

// MakeShape builds a Shape from the given dimensions.
func MakeShape(dims ...int64) Shape {
	if len(dims) == 0 {
		return Shape{}
	}
	d := make([]int64, len(dims))
	copy(d, dims)
	return Shape{Dims: d}
}

// ScalarShape returns the shape of a scalar.
func ScalarShape() Shape {
	return Shape{}
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s.Dims)
}

// IsScalar reports whether the shape has rank 0.
func (s Shape) IsScalar() bool {
	return len(s.Dims) == 0
}

// NumElements returns the product of all dimensions; 1 for scalars.
func (s Shape) NumElements() int64 {
	n := int64(1)
	for _, d := range s.Dims {
		n *= d
	}
	return n
}

// Equal reports element-wise dimension equality.
func (s Shape) Equal(other Shape) bool {
	if len(s.Dims) != len(other.Dims) {
		return false
	}
	for i, d := range s.Dims {
		if d != other.Dims[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	return MakeShape(s.Dims...)
}

// String renders the shape as "[2x3]"; scalars render as "[]".
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, d := range s.Dims {
		if i > 0 {
			b.WriteByte('x')
		}
		b.WriteString(strconv.FormatInt(d, 10))
	}
	b.WriteByte(']')
	return b.String()
}
