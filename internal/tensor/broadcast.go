package tensor

import "fmt"

// Expand broadcasts x to newShape and returns a new contiguous tensor.
//
// newShape must have at least as many dimensions as x; aligned from the right,
// every dimension of x must either equal the new dimension or be 1.
//
// Example:
//
//	x, _ := tensor.FromValue([]int64{0, 1})
//	y, _ := tensor.Expand(x, tensor.Shape{3, 2}) // [[0 1] [0 1] [0 1]]
func Expand(x *RawTensor, newShape Shape) (*RawTensor, error) {
	if err := newShape.Validate(); err != nil {
		return nil, err
	}
	if !CanBroadcastTo(x.Shape(), newShape) {
		return nil, fmt.Errorf("%w: cannot broadcast %v to %v", ErrShape, x.Shape(), newShape)
	}

	result, err := NewRaw(newShape, x.DType())
	if err != nil {
		return nil, err
	}

	if x.Shape().Equal(newShape) {
		copy(result.data, x.data)
		return result, nil
	}

	size := x.DType().Size()
	outStrides := newShape.ComputeStrides()
	inStrides := computeBroadcastStrides(x.Shape(), newShape)
	for i := 0; i < result.NumElements(); i++ {
		src := computeFlatIndex(i, outStrides, inStrides)
		copy(result.data[i*size:(i+1)*size], x.data[src*size:(src+1)*size])
	}
	return result, nil
}

// computeBroadcastStrides computes strides for broadcasting a shape to outShape.
// Returns strides where dimensions of size 1 have stride 0 (for broadcasting).
func computeBroadcastStrides(inShape, outShape Shape) []int {
	outDim := len(outShape)
	strides := make([]int, outDim)

	// Pad input shape with 1s on the left
	inDim := len(inShape)
	offset := outDim - inDim
	origStrides := inShape.ComputeStrides()

	for i := 0; i < outDim; i++ {
		inIdx := i - offset
		switch {
		case inIdx < 0 || inIdx >= inDim:
			strides[i] = 0
		case inShape[inIdx] == 1:
			strides[i] = 0
		default:
			strides[i] = origStrides[inIdx]
		}
	}

	return strides
}

// computeFlatIndex computes the flat index in the source array for a given output index.
func computeFlatIndex(outIdx int, outStrides, inStrides []int) int {
	flatIdx := 0
	for i := range outStrides {
		coord := outIdx / outStrides[i]
		outIdx %= outStrides[i]
		flatIdx += coord * inStrides[i]
	}
	return flatIdx
}

// Transpose permutes the dimensions of x according to axes and returns a new tensor.
// axes must be a permutation of 0..ndim-1.
func Transpose(x *RawTensor, axes ...int) (*RawTensor, error) {
	ndim := x.NDim()
	if len(axes) != ndim {
		return nil, fmt.Errorf("%w: transpose expects %d axes, got %d", ErrShape, ndim, len(axes))
	}
	seen := make([]bool, ndim)
	newShape := make(Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			return nil, fmt.Errorf("%w: invalid transpose axes %v", ErrShape, axes)
		}
		seen[ax] = true
		newShape[i] = x.shape[ax]
	}

	result, err := NewRaw(newShape, x.DType())
	if err != nil {
		return nil, err
	}
	if ndim == 0 {
		copy(result.data, x.data)
		return result, nil
	}

	size := x.DType().Size()
	outStrides := newShape.ComputeStrides()
	inStrides := make([]int, ndim)
	for i, ax := range axes {
		inStrides[i] = x.stride[ax]
	}
	for i := 0; i < result.NumElements(); i++ {
		src := computeFlatIndex(i, outStrides, inStrides)
		copy(result.data[i*size:(i+1)*size], x.data[src*size:(src+1)*size])
	}
	return result, nil
}
