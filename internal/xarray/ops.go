package xarray

import (
	"fmt"
	"slices"

	"github.com/born-ml/dataarray/internal/tensor"
)

// Add adds other element-wise, aligning dimensions by name.
func (da *DataArray) Add(other *DataArray) (*DataArray, error) {
	return da.binary(other, tensor.Add)
}

// Sub subtracts other element-wise, aligning dimensions by name.
func (da *DataArray) Sub(other *DataArray) (*DataArray, error) {
	return da.binary(other, tensor.Sub)
}

// Mul multiplies by other element-wise, aligning dimensions by name.
func (da *DataArray) Mul(other *DataArray) (*DataArray, error) {
	return da.binary(other, tensor.Mul)
}

// Div divides by other element-wise, aligning dimensions by name.
//
// Example:
//
//	m, _ := da.Max()
//	normalized, _ := da.Div(m) // da / da.max()
func (da *DataArray) Div(other *DataArray) (*DataArray, error) {
	return da.binary(other, tensor.Div)
}

// Eq compares with other element-wise and returns a bool array.
func (da *DataArray) Eq(other *DataArray) (*DataArray, error) {
	return da.binary(other, tensor.Equal)
}

// AddScalar adds s to every element.
func (da *DataArray) AddScalar(s float64) (*DataArray, error) {
	return da.unary(func(r *tensor.RawTensor) (*tensor.RawTensor, error) { return tensor.AddScalar(r, s) })
}

// SubScalar subtracts s from every element.
func (da *DataArray) SubScalar(s float64) (*DataArray, error) {
	return da.unary(func(r *tensor.RawTensor) (*tensor.RawTensor, error) { return tensor.SubScalar(r, s) })
}

// MulScalar multiplies every element by s.
func (da *DataArray) MulScalar(s float64) (*DataArray, error) {
	return da.unary(func(r *tensor.RawTensor) (*tensor.RawTensor, error) { return tensor.MulScalar(r, s) })
}

// DivScalar divides every element by s.
func (da *DataArray) DivScalar(s float64) (*DataArray, error) {
	return da.unary(func(r *tensor.RawTensor) (*tensor.RawTensor, error) { return tensor.DivScalar(r, s) })
}

// Max returns the maximum over all dimensions as a 0-d array.
func (da *DataArray) Max() (*DataArray, error) {
	return da.reduce(tensor.Max)
}

// Min returns the minimum over all dimensions as a 0-d array.
func (da *DataArray) Min() (*DataArray, error) {
	return da.reduce(tensor.Min)
}

// Sum returns the sum over all dimensions as a 0-d array.
func (da *DataArray) Sum() (*DataArray, error) {
	return da.reduce(tensor.Sum)
}

// Mean returns the mean over all dimensions as a 0-d array.
func (da *DataArray) Mean() (*DataArray, error) {
	return da.reduce(tensor.Mean)
}

// All reports whether every element is non-zero.
func (da *DataArray) All() bool {
	return tensor.All(da.raw)
}

func (da *DataArray) unary(fn func(*tensor.RawTensor) (*tensor.RawTensor, error)) (*DataArray, error) {
	raw, err := fn(da.raw)
	if err != nil {
		return nil, err
	}
	return da.withRaw(raw), nil
}

// binary evaluates fn over da and other. other's dimensions must be a
// subset of da's; they are reordered to da's axis order and broadcast over
// the rest. The result keeps da's dims, coordinates and owner.
func (da *DataArray) binary(other *DataArray, fn func(a, b *tensor.RawTensor) (*tensor.RawTensor, error)) (*DataArray, error) {
	aligned, err := da.align(other)
	if err != nil {
		return nil, err
	}

	raw, err := fn(da.raw, aligned)
	if err != nil {
		return nil, err
	}
	if !raw.Shape().Equal(da.raw.Shape()) {
		return nil, fmt.Errorf("%w: result shape %v differs from %v", ErrDims, raw.Shape(), da.raw.Shape())
	}

	out := da.withRaw(raw)
	out.name = ""
	return out, nil
}

// align transposes and reshapes other so that it broadcasts against da.
func (da *DataArray) align(other *DataArray) (*tensor.RawTensor, error) {
	if slices.Equal(da.dims, other.dims) || other.NDim() == 0 {
		return other.raw, nil
	}

	pos := make([]int, other.NDim())
	for i, d := range other.dims {
		p := slices.Index(da.dims, d)
		if p < 0 {
			return nil, fmt.Errorf("%w: dimension %q of the operand is not in %v", ErrDims, d, da.dims)
		}
		pos[i] = p
	}

	axes := make([]int, other.NDim())
	for i := range axes {
		axes[i] = i
	}
	slices.SortStableFunc(axes, func(a, b int) int { return pos[a] - pos[b] })

	transposed, err := tensor.Transpose(other.raw, axes...)
	if err != nil {
		return nil, err
	}

	shape := make(tensor.Shape, da.NDim())
	for i := range shape {
		shape[i] = 1
	}
	for i, ax := range axes {
		shape[pos[ax]] = transposed.Shape()[i]
	}
	return transposed.Reshape(shape)
}

// reduce collapses every dimension. Only dimensionless coordinates survive.
func (da *DataArray) reduce(fn func(*tensor.RawTensor) (*tensor.RawTensor, error)) (*DataArray, error) {
	raw, err := fn(da.raw)
	if err != nil {
		return nil, err
	}

	out := &DataArray{raw: raw, dims: []string{}}
	for _, c := range da.coords {
		if c.NDim() == 0 {
			out.coords = append(out.coords, c)
		}
	}
	return out, nil
}
