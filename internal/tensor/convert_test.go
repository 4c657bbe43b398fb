package tensor

import (
	"errors"
	"math"
	"testing"
)

type wrapped struct{ raw *RawTensor }

func (w wrapped) Raw() *RawTensor { return w.raw }

func TestFromValue(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		shape  Shape
		dtype  DataType
		values []float64
	}{
		{"float scalar", 2.5, Shape{}, Float64, []float64{2.5}},
		{"int scalar", 7, Shape{}, Int64, []float64{7}},
		{"bool scalar", true, Shape{}, Bool, []float64{1}},
		{"float32 slice", []float32{1, 2}, Shape{2}, Float32, []float64{1, 2}},
		{"int32 slice", []int32{1, 2}, Shape{2}, Int32, []float64{1, 2}},
		{"byte slice", []byte{1, 2, 3}, Shape{3}, Uint8, []float64{1, 2, 3}},
		{"nested", [][]float64{{0, 1}, {2, 3}}, Shape{2, 2}, Float64, []float64{0, 1, 2, 3}},
		{"array", [2][3]int{{1, 2, 3}, {4, 5, 6}}, Shape{2, 3}, Int64, []float64{1, 2, 3, 4, 5, 6}},
		{"mixed any", []any{1, 2.5, true}, Shape{3}, Float64, []float64{1, 2.5, 1}},
		{"nested any", []any{[]any{1, 2}, []any{3, 4}}, Shape{2, 2}, Int64, []float64{1, 2, 3, 4}},
		{"uint", []uint{4, 5}, Shape{2}, Int64, []float64{4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := FromValue(tt.value)
			if err != nil {
				t.Fatalf("FromValue failed: %v", err)
			}
			assertEqualShape(t, tt.shape, raw.Shape(), "shape")
			if raw.DType() != tt.dtype {
				t.Errorf("dtype = %s, want %s", raw.DType(), tt.dtype)
			}
			assertValues(t, tt.values, raw, "values")
		})
	}
}

func TestFromValueRawTensor(t *testing.T) {
	src := mustFromValue(t, []int64{1, 2})

	copied, err := FromValue(src)
	if err != nil {
		t.Fatalf("FromValue(*RawTensor) failed: %v", err)
	}
	copied.AsInt64()[0] = 9
	if src.AsInt64()[0] != 1 {
		t.Errorf("FromValue should copy a *RawTensor")
	}

	viaRawer, err := FromValue(wrapped{raw: src})
	if err != nil {
		t.Fatalf("FromValue(Rawer) failed: %v", err)
	}
	if !viaRawer.Equal(src) {
		t.Errorf("FromValue(Rawer) = %v, want %v", viaRawer.Float64s(), src.Float64s())
	}
}

func TestFromValueErrors(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  error
	}{
		{"nil", nil, ErrDType},
		{"string", "abc", ErrDType},
		{"string slice", []string{"a"}, ErrDType},
		{"struct", struct{}{}, ErrDType},
		{"ragged length", [][]int{{1, 2}, {3}}, ErrShape},
		{"ragged depth", []any{1, []int{2}}, ErrShape},
		{"ragged depth reversed", []any{[]int{2}, 1}, ErrShape},
		{"uint overflow", []uint64{math.MaxUint64}, ErrDType},
		{"nil tensor", (*RawTensor)(nil), ErrDType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromValue(tt.value); !errors.Is(err, tt.want) {
				t.Errorf("FromValue(%v) error = %v, want %v", tt.value, err, tt.want)
			}
		})
	}
}

func TestCast(t *testing.T) {
	src := mustFromValue(t, []float64{0, 1.7, -2.2})

	tests := []struct {
		dtype  DataType
		values []float64
	}{
		{Float32, []float64{0, float64(float32(1.7)), float64(float32(-2.2))}},
		{Int64, []float64{0, 1, -2}},
		{Int32, []float64{0, 1, -2}},
		{Bool, []float64{0, 1, 1}},
	}

	for _, tt := range tests {
		got, err := Cast(src, tt.dtype)
		if err != nil {
			t.Fatalf("Cast(%s) failed: %v", tt.dtype, err)
		}
		if got.DType() != tt.dtype {
			t.Errorf("Cast(%s) dtype = %s", tt.dtype, got.DType())
		}
		assertValues(t, tt.values, got, "Cast "+tt.dtype.String())
	}

	ints := mustFromValue(t, []int64{1, 300})
	bytes, err := Cast(ints, Uint8)
	if err != nil {
		t.Fatalf("Cast(uint8) failed: %v", err)
	}
	assertValues(t, []float64{1, 44}, bytes, "Cast wraps like astype")
}

func TestCastRejectsNaNToInteger(t *testing.T) {
	src := mustFromValue(t, []float64{1, math.NaN()})
	if _, err := Cast(src, Int64); !errors.Is(err, ErrDType) {
		t.Errorf("Cast(NaN, int64) error = %v, want ErrDType", err)
	}

	asFloat32, err := Cast(src, Float32)
	if err != nil {
		t.Fatalf("Cast(NaN, float32) failed: %v", err)
	}
	if !math.IsNaN(asFloat32.Float64At(1)) {
		t.Errorf("NaN should survive a float cast")
	}
}

func TestFromValueEmpty(t *testing.T) {
	raw, err := FromValue([][]int{{}, {}})
	if err != nil {
		t.Fatalf("FromValue(empty rows) failed: %v", err)
	}
	assertEqualShape(t, Shape{2, 0}, raw.Shape(), "empty rows")
	if raw.DType() != Float64 {
		t.Errorf("empty value dtype = %s, want float64", raw.DType())
	}

	raw, err = FromValue([]float64{})
	if err != nil {
		t.Fatalf("FromValue([]float64{}) failed: %v", err)
	}
	assertEqualShape(t, Shape{0}, raw.Shape(), "empty slice")
}
