package tensor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for tensor construction and validation.
var (
	ErrInvalidDataType = errors.New("tensor: invalid data type")
	ErrSizeMismatch    = errors.New("tensor: data length does not match shape")
)

// Tensor is a dense host-memory tensor: an element type, a static
// shape, and the raw little-endian element bytes. Tensors are
// content-addressable: two tensors compare equal iff their type,
// shape, and bytes all match.
type Tensor struct {
	DType DataType
	Shape Shape
	Data  []byte
}

// New builds a tensor from raw element bytes, validating the data
// length against the shape for fixed-width types.
func New(dtype DataType, shape Shape, data []byte) (Tensor, error) {
	t := Tensor{DType: dtype, Shape: shape, Data: data}
	if err := t.Validate(); err != nil {
		return Tensor{}, err
	}
	return t, nil
}

// FromBool returns a scalar bool tensor.
func FromBool(v bool) Tensor {
	b := byte(0)
	if v {
		b = 1
	}
	return Tensor{DType: Bool, Shape: ScalarShape(), Data: []byte{b}}
}

// FromInt32 returns a scalar int32 tensor.
func FromInt32(v int32) Tensor {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, uint32(v))
	return Tensor{DType: Int32, Shape: ScalarShape(), Data: data}
}

// FromInt64 returns a scalar int64 tensor.
func FromInt64(v int64) Tensor {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, uint64(v))
	return Tensor{DType: Int64, Shape: ScalarShape(), Data: data}
}

// FromFloat32 returns a scalar float32 tensor.
func FromFloat32(v float32) Tensor {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, math.Float32bits(v))
	return Tensor{DType: Float32, Shape: ScalarShape(), Data: data}
}

// FromFloat64 returns a scalar float64 tensor.
func FromFloat64(v float64) Tensor {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, math.Float64bits(v))
	return Tensor{DType: Float64, Shape: ScalarShape(), Data: data}
}

// Validate checks that the data type is known and, for fixed-width
// types, that the data length matches the shape's element count.
func (t Tensor) Validate() error {
	if !t.DType.IsValid() {
		return ErrInvalidDataType
	}
	if size := t.DType.Size(); size > 0 {
		want := t.Shape.NumElements() * int64(size)
		if int64(len(t.Data)) != want {
			return fmt.Errorf("%w: have %d bytes, want %d for %s%s",
				ErrSizeMismatch, len(t.Data), want, t.DType, t.Shape)
		}
	}
	return nil
}

// Equal reports content equality: type, shape, and bytes.
func (t Tensor) Equal(other Tensor) bool {
	return t.DType == other.DType &&
		t.Shape.Equal(other.Shape) &&
		bytes.Equal(t.Data, other.Data)
}

// String renders the tensor's type, shape, and a short byte preview.
func (t Tensor) String() string {
	const previewLen = 16
	data := t.Data
	suffix := ""
	if len(data) > previewLen {
		data = data[:previewLen]
		suffix = "..."
	}
	return fmt.Sprintf("%s%s:%x%s", t.DType, t.Shape, data, suffix)
}

// OptionalTensor represents a possibly-absent tensor, used to
// snapshot resource-variable arguments. An uninitialized variable is
// an absent snapshot; it still carries a well-defined type and shape
// through the execution context.
type OptionalTensor struct {
	Present bool
	Value   Tensor
}

// Some wraps a tensor in a present snapshot.
func Some(t Tensor) OptionalTensor {
	return OptionalTensor{Present: true, Value: t}
}

// None returns an absent snapshot.
func None() OptionalTensor {
	return OptionalTensor{}
}
