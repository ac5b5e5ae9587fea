package tensor

import (
	"errors"
	"testing"
)

func TestDataType_Size(t *testing.T) {
	tests := []struct {
		dtype DataType
		want  int
	}{
		{Bool, 1},
		{Int8, 1},
		{Int32, 4},
		{Int64, 8},
		{Float32, 4},
		{Float64, 8},
		{Complex128, 16},
		{String, 0},
		{Invalid, 0},
	}

	for _, tt := range tests {
		t.Run(tt.dtype.String(), func(t *testing.T) {
			if got := tt.dtype.Size(); got != tt.want {
				t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.want)
			}
		})
	}
}

func TestNew_ValidatesDataLength(t *testing.T) {
	if _, err := New(Int32, MakeShape(2), make([]byte, 8)); err != nil {
		t.Errorf("New with matching length failed: %v", err)
	}

	_, err := New(Int32, MakeShape(2), make([]byte, 7))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("New with short data = %v, want ErrSizeMismatch", err)
	}

	_, err = New(Invalid, ScalarShape(), nil)
	if !errors.Is(err, ErrInvalidDataType) {
		t.Errorf("New with invalid dtype = %v, want ErrInvalidDataType", err)
	}
}

func TestScalarConstructors(t *testing.T) {
	tests := []struct {
		name  string
		t     Tensor
		dtype DataType
	}{
		{"bool", FromBool(true), Bool},
		{"int32", FromInt32(3), Int32},
		{"int64", FromInt64(-1), Int64},
		{"float32", FromFloat32(1.5), Float32},
		{"float64", FromFloat64(2.5), Float64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.t.DType != tt.dtype {
				t.Errorf("DType = %s, want %s", tt.t.DType, tt.dtype)
			}
			if !tt.t.Shape.IsScalar() {
				t.Errorf("Shape = %s, want scalar", tt.t.Shape)
			}
			if err := tt.t.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestTensor_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Tensor
		want bool
	}{
		{"same value", FromInt32(3), FromInt32(3), true},
		{"different value", FromInt32(3), FromInt32(4), false},
		{"different dtype same bytes", FromInt32(3), Tensor{DType: Float32, Shape: ScalarShape(), Data: []byte{3, 0, 0, 0}}, false},
		{"different width", FromInt32(3), FromInt64(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptionalTensor(t *testing.T) {
	if None().Present {
		t.Error("None() is present")
	}

	v := Some(FromInt32(7))
	if !v.Present {
		t.Error("Some() is absent")
	}
	if !v.Value.Equal(FromInt32(7)) {
		t.Error("Some() lost its value")
	}
}
