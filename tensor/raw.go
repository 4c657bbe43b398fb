// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/dataarray/internal/tensor"
)

// RawTensor is a contiguous n-dimensional buffer with a runtime data type.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType()
//   - Type-safe data access via AsFloat64(), AsInt64(), etc.
//   - Element access via At(), Item() and Float64s()
//   - Deep copies via Clone()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
//	data := raw.AsFloat32() // Type-safe access
//	clone := raw.Clone()    // Independent copy
type RawTensor = tensor.RawTensor

// Rawer is implemented by values that wrap a RawTensor, such as labeled arrays.
type Rawer = tensor.Rawer

// NewRaw creates a zero-filled tensor with the given shape and dtype.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}
