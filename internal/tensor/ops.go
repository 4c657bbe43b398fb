package tensor

import (
	"fmt"
	"math"
)

// BinaryOp is an element-wise operation evaluated in float64.
type BinaryOp func(x, y float64) float64

// Element-wise operations.
var (
	opAdd BinaryOp = func(x, y float64) float64 { return x + y }
	opSub BinaryOp = func(x, y float64) float64 { return x - y }
	opMul BinaryOp = func(x, y float64) float64 { return x * y }
	opDiv BinaryOp = func(x, y float64) float64 { return x / y }
)

// intOp is an element-wise operation evaluated in int64.
type intOp func(x, y int64) int64

var (
	intAdd intOp = func(x, y int64) int64 { return x + y }
	intSub intOp = func(x, y int64) int64 { return x - y }
	intMul intOp = func(x, y int64) int64 { return x * y }
)

// Add performs element-wise addition with broadcasting.
func Add(a, b *RawTensor) (*RawTensor, error) {
	return arith(a, b, opAdd, intAdd)
}

// Sub performs element-wise subtraction with broadcasting.
func Sub(a, b *RawTensor) (*RawTensor, error) {
	return arith(a, b, opSub, intSub)
}

// Mul performs element-wise multiplication with broadcasting.
func Mul(a, b *RawTensor) (*RawTensor, error) {
	return arith(a, b, opMul, intMul)
}

// Div performs element-wise true division with broadcasting.
// The result is floating point: float32 when both inputs fit in float32, float64 otherwise.
func Div(a, b *RawTensor) (*RawTensor, error) {
	dtype := promote(a.DType(), b.DType())
	if !dtype.IsFloat() {
		dtype = Float64
	}
	return Apply(a, b, dtype, opDiv)
}

// Apply evaluates op element-wise over the broadcast of a and b and stores
// the results as dtype.
func Apply(a, b *RawTensor, dtype DataType, op BinaryOp) (*RawTensor, error) {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}

	result, err := NewRaw(outShape, dtype)
	if err != nil {
		return nil, err
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStrides(a.Shape(), outShape)
	bStrides := computeBroadcastStrides(b.Shape(), outShape)
	for i := 0; i < result.NumElements(); i++ {
		x := a.Float64At(computeFlatIndex(i, outStrides, aStrides))
		y := b.Float64At(computeFlatIndex(i, outStrides, bStrides))
		result.SetFloat64(i, op(x, y))
	}
	return result, nil
}

// arith evaluates an arithmetic operation in the promoted dtype, exactly for integers.
func arith(a, b *RawTensor, op BinaryOp, iop intOp) (*RawTensor, error) {
	dtype := promote(a.DType(), b.DType())
	if dtype.IsInteger() {
		return applyInt(a, b, dtype, iop)
	}
	return Apply(a, b, dtype, op)
}

func applyInt(a, b *RawTensor, dtype DataType, op intOp) (*RawTensor, error) {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}

	result, err := NewRaw(outShape, dtype)
	if err != nil {
		return nil, err
	}

	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStrides(a.Shape(), outShape)
	bStrides := computeBroadcastStrides(b.Shape(), outShape)
	for i := 0; i < result.NumElements(); i++ {
		x := a.Int64At(computeFlatIndex(i, outStrides, aStrides))
		y := b.Int64At(computeFlatIndex(i, outStrides, bStrides))
		result.SetInt64(i, op(x, y))
	}
	return result, nil
}

// Map applies fn to every element and stores the results as dtype.
func Map(x *RawTensor, dtype DataType, fn func(float64) float64) (*RawTensor, error) {
	result, err := NewRaw(x.Shape(), dtype)
	if err != nil {
		return nil, err
	}
	for i := 0; i < x.NumElements(); i++ {
		result.SetFloat64(i, fn(x.Float64At(i)))
	}
	return result, nil
}

// Scalar operations - element-wise operations with a scalar value.

// AddScalar adds a scalar value to each element of the tensor.
func AddScalar(x *RawTensor, s float64) (*RawTensor, error) {
	return mapScalar(x, s, func(v float64) float64 { return v + s }, intAdd)
}

// SubScalar subtracts a scalar value from each element of the tensor.
func SubScalar(x *RawTensor, s float64) (*RawTensor, error) {
	return mapScalar(x, s, func(v float64) float64 { return v - s }, intSub)
}

// MulScalar multiplies each element of the tensor by a scalar value.
func MulScalar(x *RawTensor, s float64) (*RawTensor, error) {
	return mapScalar(x, s, func(v float64) float64 { return v * s }, intMul)
}

// DivScalar divides each element of the tensor by a scalar value.
func DivScalar(x *RawTensor, s float64) (*RawTensor, error) {
	dtype := x.DType()
	if !dtype.IsFloat() {
		dtype = Float64
	}
	return Map(x, dtype, func(v float64) float64 { return v / s })
}

// mapScalar applies an arithmetic operation with s, exactly for integer results.
func mapScalar(x *RawTensor, s float64, op func(float64) float64, iop intOp) (*RawTensor, error) {
	dtype := scalarResultType(x.DType(), s)
	if !dtype.IsInteger() {
		return Map(x, dtype, op)
	}

	result, err := NewRaw(x.Shape(), dtype)
	if err != nil {
		return nil, err
	}
	si := int64(s)
	for i := 0; i < x.NumElements(); i++ {
		result.SetInt64(i, iop(x.Int64At(i), si))
	}
	return result, nil
}

// scalarResultType keeps the tensor dtype unless a fractional scalar forces floats.
func scalarResultType(dtype DataType, s float64) DataType {
	switch {
	case dtype.IsFloat():
		return dtype
	case s != math.Trunc(s) || math.IsNaN(s) || math.IsInf(s, 0):
		return Float64
	case dtype == Bool:
		return Int64
	default:
		return dtype
	}
}

// Reduction operations. All of them return a 0-D tensor.

// Max returns the maximum element. NaN propagates.
func Max(x *RawTensor) (*RawTensor, error) {
	if x.DType().IsInteger() {
		return reduceInt(x, x.DType(), func(acc, v int64) int64 { return max(acc, v) })
	}
	return reduce(x, x.DType(), func(acc, v float64) float64 {
		if math.IsNaN(acc) || math.IsNaN(v) {
			return math.NaN()
		}
		return math.Max(acc, v)
	})
}

// Min returns the minimum element. NaN propagates.
func Min(x *RawTensor) (*RawTensor, error) {
	if x.DType().IsInteger() {
		return reduceInt(x, x.DType(), func(acc, v int64) int64 { return min(acc, v) })
	}
	return reduce(x, x.DType(), func(acc, v float64) float64 {
		if math.IsNaN(acc) || math.IsNaN(v) {
			return math.NaN()
		}
		return math.Min(acc, v)
	})
}

// Sum returns the sum of all elements. Bool and small integer sums are int64.
// The sum of an empty tensor is zero.
func Sum(x *RawTensor) (*RawTensor, error) {
	dtype := x.DType()
	if !dtype.IsFloat() {
		dtype = Int64
	}
	if x.NumElements() == 0 {
		return NewRaw(Shape{}, dtype)
	}
	if dtype == Int64 {
		return reduceInt(x, dtype, intAdd)
	}
	return reduce(x, dtype, opAdd)
}

// Mean returns the arithmetic mean of all elements as float64.
func Mean(x *RawTensor) (*RawTensor, error) {
	sum, err := reduce(x, Float64, opAdd)
	if err != nil {
		return nil, err
	}
	sum.SetFloat64(0, sum.Float64At(0)/float64(x.NumElements()))
	return sum, nil
}

func reduce(x *RawTensor, dtype DataType, op BinaryOp) (*RawTensor, error) {
	if x.NumElements() == 0 {
		return nil, fmt.Errorf("%w: reduction of an empty tensor", ErrShape)
	}

	acc := x.Float64At(0)
	for i := 1; i < x.NumElements(); i++ {
		acc = op(acc, x.Float64At(i))
	}

	result, err := NewRaw(Shape{}, dtype)
	if err != nil {
		return nil, err
	}
	result.SetFloat64(0, acc)
	return result, nil
}

func reduceInt(x *RawTensor, dtype DataType, op intOp) (*RawTensor, error) {
	if x.NumElements() == 0 {
		return nil, fmt.Errorf("%w: reduction of an empty tensor", ErrShape)
	}

	acc := x.Int64At(0)
	for i := 1; i < x.NumElements(); i++ {
		acc = op(acc, x.Int64At(i))
	}

	result, err := NewRaw(Shape{}, dtype)
	if err != nil {
		return nil, err
	}
	result.SetInt64(0, acc)
	return result, nil
}

// Comparison operations (element-wise, return bool tensor)

// Equal compares a and b element-wise with broadcasting.
func Equal(a, b *RawTensor) (*RawTensor, error) {
	return Apply(a, b, Bool, func(x, y float64) float64 {
		if x == y {
			return 1
		}
		return 0
	})
}

// All reports whether every element is non-zero.
func All(x *RawTensor) bool {
	for i := 0; i < x.NumElements(); i++ {
		if x.Float64At(i) == 0 {
			return false
		}
	}
	return true
}
