// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the raw n-dimensional buffers that labeled arrays
// are built on.
//
// # Overview
//
// A RawTensor is a contiguous, row-major byte buffer with a Shape and a
// runtime DataType. This package provides:
//   - Creation from Go values (scalars and nested slices)
//   - NumPy-style broadcasting and casting
//   - Element-wise arithmetic and whole-array reductions
//
// # Basic Usage
//
//	import "github.com/born-ml/dataarray/tensor"
//
//	func main() {
//	    x, _ := tensor.FromValue([][]float64{{0, 1}, {2, 3}})
//	    y, _ := tensor.Full(tensor.Shape{2}, tensor.Float64, 10)
//
//	    z, _ := tensor.Add(x, y) // broadcasts y along the first axis
//	    m, _ := tensor.Max(z)    // 0-d tensor
//	}
//
// # Supported Data Types
//
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for images)
//   - bool (boolean masks)
//
// Data types can also be named the way NumPy does: "float", "f8", "<i4",
// "int", "u1" and so on; see ParseDataType.
package tensor
