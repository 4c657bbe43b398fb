// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/dataarray/internal/tensor"
)

// Type aliases for public API

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// BinaryOp is an element-wise operation evaluated in float64.
type BinaryOp = tensor.BinaryOp

// Errors.
var (
	ErrShape = tensor.ErrShape
	ErrDType = tensor.ErrDType
)

// ParseDataType parses a data type name such as "float64", "int" or "<f4".
func ParseDataType(name string) (DataType, error) {
	return tensor.ParseDataType(name)
}

// BroadcastShapes computes the shape two operands broadcast to.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// Creation functions

// FromValue builds a tensor from a Go scalar, nested slices or arrays, or a
// RawTensor. The data type is inferred from the values.
//
// Example:
//
//	x, err := tensor.FromValue([][]int32{{1, 2}, {3, 4}}) // Int32 (2, 2)
func FromValue(v any) (*RawTensor, error) {
	return tensor.FromValue(v)
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	x, err := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
func Zeros(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.Zeros(shape, dtype)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	x, err := tensor.Ones(tensor.Shape{2, 3}, tensor.Float32)
func Ones(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.Ones(shape, dtype)
}

// Full creates a tensor filled with a scalar value cast to dtype.
//
// Example:
//
//	x, err := tensor.Full(tensor.Shape{2, 3}, tensor.Float32, 3.14)
func Full(shape Shape, dtype DataType, value any) (*RawTensor, error) {
	return tensor.Full(shape, dtype, value)
}

// FullLike creates a tensor of the given shape by broadcasting value.
func FullLike(shape Shape, dtype DataType, value any) (*RawTensor, error) {
	return tensor.FullLike(shape, dtype, value)
}

// Arange creates a 1D tensor with values from start to end (exclusive).
//
// Example:
//
//	x, err := tensor.Arange(0, 10, tensor.Int64) // [0, 1, 2, ..., 9]
func Arange(start, end int, dtype DataType) (*RawTensor, error) {
	return tensor.Arange(start, end, dtype)
}

// Manipulation functions

// Cast converts x to dtype.
func Cast(x *RawTensor, dtype DataType) (*RawTensor, error) {
	return tensor.Cast(x, dtype)
}

// Expand broadcasts x to shape.
func Expand(x *RawTensor, shape Shape) (*RawTensor, error) {
	return tensor.Expand(x, shape)
}

// Transpose permutes the axes of x.
func Transpose(x *RawTensor, axes ...int) (*RawTensor, error) {
	return tensor.Transpose(x, axes...)
}

// Element-wise operations

// Add performs element-wise addition with broadcasting.
func Add(a, b *RawTensor) (*RawTensor, error) { return tensor.Add(a, b) }

// Sub performs element-wise subtraction with broadcasting.
func Sub(a, b *RawTensor) (*RawTensor, error) { return tensor.Sub(a, b) }

// Mul performs element-wise multiplication with broadcasting.
func Mul(a, b *RawTensor) (*RawTensor, error) { return tensor.Mul(a, b) }

// Div performs element-wise true division with broadcasting.
func Div(a, b *RawTensor) (*RawTensor, error) { return tensor.Div(a, b) }

// Equal compares a and b element-wise and returns a bool tensor.
func Equal(a, b *RawTensor) (*RawTensor, error) { return tensor.Equal(a, b) }

// Apply evaluates op over the broadcast of a and b, storing results as dtype.
func Apply(a, b *RawTensor, dtype DataType, op BinaryOp) (*RawTensor, error) {
	return tensor.Apply(a, b, dtype, op)
}

// Map applies fn to every element, storing results as dtype.
func Map(x *RawTensor, dtype DataType, fn func(float64) float64) (*RawTensor, error) {
	return tensor.Map(x, dtype, fn)
}

// Reductions

// Max returns the maximum element as a 0-d tensor.
func Max(x *RawTensor) (*RawTensor, error) { return tensor.Max(x) }

// Min returns the minimum element as a 0-d tensor.
func Min(x *RawTensor) (*RawTensor, error) { return tensor.Min(x) }

// Sum returns the sum of all elements as a 0-d tensor.
func Sum(x *RawTensor) (*RawTensor, error) { return tensor.Sum(x) }

// Mean returns the arithmetic mean as a 0-d float64 tensor.
func Mean(x *RawTensor) (*RawTensor, error) { return tensor.Mean(x) }

// All reports whether every element is non-zero.
func All(x *RawTensor) bool { return tensor.All(x) }
