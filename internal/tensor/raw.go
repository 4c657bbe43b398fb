package tensor

import (
	"fmt"
	"math"
	"unsafe"
)

// RawTensor is the low-level tensor representation: a row-major byte buffer
// interpreted according to its runtime data type.
type RawTensor struct {
	data   []byte   // Row-major element storage
	shape  Shape    // Tensor dimensions
	stride []int    // Memory strides (row-major)
	dtype  DataType // Runtime type information
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated and zero-initialized.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if !dtype.Valid() {
		return nil, fmt.Errorf("%w: unsupported data type %d", ErrDType, int(dtype))
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// NDim returns the number of dimensions.
func (r *RawTensor) NDim() int {
	return len(r.shape)
}

// Strides returns the tensor's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.data)
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(r.data))), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(unsafe.SliceData(r.data))), r.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("tensor dtype is %s, not int32", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*int32)(unsafe.Pointer(unsafe.SliceData(r.data))), r.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("tensor dtype is %s, not int64", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*int64)(unsafe.Pointer(unsafe.SliceData(r.data))), r.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	if r.dtype != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", r.dtype))
	}
	return r.data
}

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	if r.dtype != Bool {
		panic(fmt.Sprintf("tensor dtype is %s, not bool", r.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds checked by NumElements()
	return unsafe.Slice((*bool)(unsafe.Pointer(unsafe.SliceData(r.data))), r.NumElements())
}

// Float64At returns the i-th element (row-major) converted to float64.
func (r *RawTensor) Float64At(i int) float64 {
	switch r.dtype {
	case Float32:
		return float64(r.AsFloat32()[i])
	case Float64:
		return r.AsFloat64()[i]
	case Int32:
		return float64(r.AsInt32()[i])
	case Int64:
		return float64(r.AsInt64()[i])
	case Uint8:
		return float64(r.data[i])
	case Bool:
		if r.AsBool()[i] {
			return 1
		}
		return 0
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", r.dtype))
	}
}

// Int64At returns the i-th element (row-major) converted to int64.
// Floating-point values are truncated toward zero.
func (r *RawTensor) Int64At(i int) int64 {
	switch r.dtype {
	case Int32:
		return int64(r.AsInt32()[i])
	case Int64:
		return r.AsInt64()[i]
	case Uint8:
		return int64(r.data[i])
	default:
		return int64(r.Float64At(i))
	}
}

// SetFloat64 stores v at the i-th element, converting it to the tensor's dtype.
func (r *RawTensor) SetFloat64(i int, v float64) {
	switch r.dtype {
	case Float32:
		r.AsFloat32()[i] = float32(v)
	case Float64:
		r.AsFloat64()[i] = v
	case Int32:
		r.AsInt32()[i] = int32(v)
	case Int64:
		r.AsInt64()[i] = int64(v)
	case Uint8:
		r.data[i] = uint8(v)
	case Bool:
		r.AsBool()[i] = v != 0
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", r.dtype))
	}
}

// SetInt64 stores v at the i-th element, converting it to the tensor's dtype.
func (r *RawTensor) SetInt64(i int, v int64) {
	switch r.dtype {
	case Int32:
		r.AsInt32()[i] = int32(v) //nolint:gosec // G115: wraps like a NumPy astype.
	case Int64:
		r.AsInt64()[i] = v
	case Uint8:
		r.data[i] = uint8(v) //nolint:gosec // G115: wraps like a NumPy astype.
	default:
		r.SetFloat64(i, float64(v))
	}
}

// Value returns the i-th element (row-major) as a Go scalar of the tensor's dtype.
func (r *RawTensor) Value(i int) any {
	switch r.dtype {
	case Float32:
		return r.AsFloat32()[i]
	case Float64:
		return r.AsFloat64()[i]
	case Int32:
		return r.AsInt32()[i]
	case Int64:
		return r.AsInt64()[i]
	case Uint8:
		return r.data[i]
	case Bool:
		return r.AsBool()[i]
	default:
		panic(fmt.Sprintf("unsupported dtype: %s", r.dtype))
	}
}

// Offset converts multi-dimensional indices to a row-major flat index.
func (r *RawTensor) Offset(indices ...int) (int, error) {
	if len(indices) != len(r.shape) {
		return 0, fmt.Errorf("%w: expected %d indices, got %d", ErrShape, len(r.shape), len(indices))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= r.shape[i] {
			return 0, fmt.Errorf("%w: index %d out of bounds for dimension %d (size %d)", ErrShape, idx, i, r.shape[i])
		}
		offset += idx * r.stride[i]
	}
	return offset, nil
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
//
// Example:
//
//	raw := tensor.Zeros(tensor.Shape{3, 4}, tensor.Float64)
//	value := raw.At(1, 2) // Row 1, column 2
func (r *RawTensor) At(indices ...int) any {
	offset, err := r.Offset(indices...)
	if err != nil {
		panic(err)
	}
	return r.Value(offset)
}

// Item returns the scalar value of a single-element tensor.
func (r *RawTensor) Item() (any, error) {
	if r.NumElements() != 1 {
		return nil, fmt.Errorf("%w: item() requires a single element, got shape %v", ErrShape, r.shape)
	}
	return r.Value(0), nil
}

// Float64s returns a copy of the data converted to float64.
func (r *RawTensor) Float64s() []float64 {
	out := make([]float64, r.NumElements())
	for i := range out {
		out[i] = r.Float64At(i)
	}
	return out
}

// Clone returns a deep copy of the tensor.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]byte, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		dtype:  r.dtype,
	}
}

// Reshape returns a copy of the tensor with a new shape holding the same number of elements.
func (r *RawTensor) Reshape(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrShape, r.shape, shape)
	}
	out := r.Clone()
	out.shape = shape.Clone()
	out.stride = shape.ComputeStrides()
	return out, nil
}

// Equal reports whether both tensors have the same shape and element values.
// Values are compared after conversion to float64; NaN never equals NaN.
func (r *RawTensor) Equal(other *RawTensor) bool {
	if other == nil || !r.shape.Equal(other.shape) {
		return false
	}
	for i := 0; i < r.NumElements(); i++ {
		if r.Float64At(i) != other.Float64At(i) {
			return false
		}
	}
	return true
}

// AllClose reports whether both tensors have the same shape and all elements
// satisfy |a - b| <= atol + rtol*|b|.
func (r *RawTensor) AllClose(other *RawTensor, rtol, atol float64) bool {
	if other == nil || !r.shape.Equal(other.shape) {
		return false
	}
	for i := 0; i < r.NumElements(); i++ {
		a, b := r.Float64At(i), other.Float64At(i)
		if math.Abs(a-b) > atol+rtol*math.Abs(b) {
			return false
		}
	}
	return true
}

// String returns a short description of the tensor.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v", r.dtype, r.shape)
}
