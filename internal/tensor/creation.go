package tensor

import "fmt"

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	raw, err := tensor.Zeros(tensor.Shape{3, 4}, tensor.Float64)
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	// Data is already zero-initialized by make()
	return NewRaw(shape, dtype)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	raw, err := tensor.Ones(tensor.Shape{2, 3}, tensor.Int64)
func Ones(shape Shape, dtype DataType) (*RawTensor, error) {
	t, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i := 0; i < t.NumElements(); i++ {
		t.SetInt64(i, 1)
	}
	return t, nil
}

// Full creates a tensor filled with a specific scalar value cast to dtype.
//
// Example:
//
//	raw, err := tensor.Full(tensor.Shape{3, 3}, tensor.Float32, 3.14)
func Full(shape Shape, dtype DataType, value any) (*RawTensor, error) {
	s, err := scalarOf(value)
	if err != nil {
		return nil, err
	}
	if err := s.castable(dtype); err != nil {
		return nil, err
	}

	t, err := NewRaw(shape, dtype)
	if err != nil {
		return nil, err
	}
	for i := 0; i < t.NumElements(); i++ {
		s.store(t, i)
	}
	return t, nil
}

// FullLike creates a tensor of the given shape by broadcasting value, which
// may be a scalar, a nested slice or a *RawTensor, then casting it to dtype.
// This is NumPy's full(shape, value, dtype) for array-valued fill values.
func FullLike(shape Shape, dtype DataType, value any) (*RawTensor, error) {
	src, err := FromValue(value)
	if err != nil {
		return nil, err
	}
	expanded, err := Expand(src, shape)
	if err != nil {
		return nil, err
	}
	return Cast(expanded, dtype)
}

// Arange creates a 1D tensor with values start, start+1, ..., end-1.
//
// Example:
//
//	raw, err := tensor.Arange(0, 10, tensor.Int64) // [0, 1, 2, ..., 9]
func Arange(start, end int, dtype DataType) (*RawTensor, error) {
	if end <= start {
		return nil, fmt.Errorf("%w: end %d must be greater than start %d", ErrShape, end, start)
	}

	t, err := NewRaw(Shape{end - start}, dtype)
	if err != nil {
		return nil, err
	}
	for i := 0; i < end-start; i++ {
		t.SetInt64(i, int64(start+i))
	}
	return t, nil
}
