package tensor

import (
	"math"
	"testing"
)

// RawTensor view tests

func TestRawTensorAsInt64(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Int64)
	data := raw.AsInt64()

	if len(data) != 6 {
		t.Errorf("AsInt64 length = %d, want 6", len(data))
	}

	// Views share the buffer
	data[0] = 42
	if raw.Int64At(0) != 42 {
		t.Error("AsInt64 should return zero-copy slice")
	}
}

func TestRawTensorAsUint8(t *testing.T) {
	raw, _ := NewRaw(Shape{4, 4}, Uint8)
	data := raw.AsUint8()

	if len(data) != 16 {
		t.Errorf("AsUint8 length = %d, want 16", len(data))
	}

	data[0] = 255
	if raw.Value(0) != uint8(255) {
		t.Error("AsUint8 should return zero-copy slice")
	}
}

func TestRawTensorAsBool(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Bool)
	data := raw.AsBool()

	if len(data) != 4 {
		t.Errorf("AsBool length = %d, want 4", len(data))
	}

	data[3] = true
	if raw.At(1, 1) != true {
		t.Error("AsBool should return zero-copy slice")
	}
}

func TestNewRawAllTypes(t *testing.T) {
	types := []struct {
		dtype       DataType
		elementSize int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
		{Uint8, 1},
		{Bool, 1},
	}

	shape := Shape{2, 3}
	for _, tt := range types {
		raw, err := NewRaw(shape, tt.dtype)
		if err != nil {
			t.Fatalf("NewRaw(%v, %v) failed: %v", shape, tt.dtype, err)
		}

		if raw.DType() != tt.dtype {
			t.Errorf("DType = %v, want %v", raw.DType(), tt.dtype)
		}

		expectedByteSize := 6 * tt.elementSize
		if raw.ByteSize() != expectedByteSize {
			t.Errorf("ByteSize = %d, want %d for type %v", raw.ByteSize(), expectedByteSize, tt.dtype)
		}
	}
}

func TestNewRawInvalidShape(t *testing.T) {
	invalidShapes := []Shape{
		{-1},
		{2, -3},
	}

	for _, shape := range invalidShapes {
		if _, err := NewRaw(shape, Float32); err == nil {
			t.Errorf("NewRaw(%v) should fail but didn't", shape)
		}
	}
}

func TestNewRawInvalidDType(t *testing.T) {
	if _, err := NewRaw(Shape{2}, DataType(99)); err == nil {
		t.Error("NewRaw with an unknown dtype should fail")
	}
}

func TestRawTensorAsWrongTypePanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32)
	_ = raw.AsFloat32()

	views := map[string]func(){
		"AsFloat64": func() { _ = raw.AsFloat64() },
		"AsInt32":   func() { _ = raw.AsInt32() },
		"AsInt64":   func() { _ = raw.AsInt64() },
		"AsUint8":   func() { _ = raw.AsUint8() },
		"AsBool":    func() { _ = raw.AsBool() },
	}
	for name, view := range views {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("%s on Float32 tensor should panic", name)
				}
			}()
			view()
		})
	}
}

func TestRawTensorScalar(t *testing.T) {
	raw, _ := NewRaw(Shape{}, Float32)

	if raw.NumElements() != 1 {
		t.Errorf("Scalar tensor NumElements = %d, want 1", raw.NumElements())
	}
	if raw.ByteSize() != 4 {
		t.Errorf("Scalar tensor ByteSize = %d, want 4", raw.ByteSize())
	}
	if len(raw.AsFloat32()) != 1 {
		t.Errorf("Scalar tensor data length = %d, want 1", len(raw.AsFloat32()))
	}
}

func TestRawTensorSetFloat64Converts(t *testing.T) {
	tests := []struct {
		dtype DataType
		in    float64
		want  any
	}{
		{Float32, 1.5, float32(1.5)},
		{Float64, math.Pi, math.Pi},
		{Int32, 2.9, int32(2)},
		{Int64, -3.7, int64(-3)},
		{Uint8, 7, uint8(7)},
		{Bool, 0.5, true},
		{Bool, 0, false},
	}

	for _, tt := range tests {
		raw, _ := NewRaw(Shape{1}, tt.dtype)
		raw.SetFloat64(0, tt.in)
		if got := raw.Value(0); got != tt.want {
			t.Errorf("%s: SetFloat64(%v) stored %v (%T), want %v (%T)", tt.dtype, tt.in, got, got, tt.want, tt.want)
		}
	}
}

func TestRawTensorString(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 3}, Int32)
	if got, want := raw.String(), "RawTensor[int32](2, 3)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRawTensorZeroSize(t *testing.T) {
	for _, dtype := range []DataType{Float32, Float64, Int32, Int64, Uint8, Bool} {
		raw, err := NewRaw(Shape{0, 2}, dtype)
		if err != nil {
			t.Fatalf("NewRaw((0, 2), %s) failed: %v", dtype, err)
		}
		if raw.NumElements() != 0 || raw.ByteSize() != 0 {
			t.Errorf("%s: NumElements = %d, ByteSize = %d, want 0, 0", dtype, raw.NumElements(), raw.ByteSize())
		}
		if got := raw.Float64s(); len(got) != 0 {
			t.Errorf("%s: Float64s() = %v, want empty", dtype, got)
		}
	}

	raw, _ := NewRaw(Shape{3, 0}, Float64)
	if len(raw.AsFloat64()) != 0 {
		t.Error("AsFloat64 on a zero-size tensor should be empty")
	}
	if !raw.Equal(raw.Clone()) {
		t.Error("zero-size tensor should equal its clone")
	}
}
