// Package xarray implements labeled multi-dimensional arrays: a raw tensor
// whose axes carry dimension names, plus named coordinate arrays defined over
// subsets of those dimensions.
package xarray

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/born-ml/dataarray/internal/tensor"
)

// Common errors.
var (
	ErrDims       = errors.New("xarray: dimension mismatch")
	ErrCoord      = errors.New("xarray: invalid coordinate")
	ErrNoAccessor = errors.New("xarray: no such accessor")
)

// DataArray is a tensor with named dimensions and coordinates.
//
// A DataArray is never modified after construction: every method returns a
// new value, and coordinates are shared between arrays derived from one another.
type DataArray struct {
	raw    *tensor.RawTensor
	dims   []string
	coords []*DataArray // ordered; each carries its own name and dims
	name   string
	attrs  map[string]any
	owner  Binder // class that built the array, if any
}

// Option configures a DataArray at construction.
type Option func(*DataArray)

// WithName sets the array name.
func WithName(name string) Option {
	return func(da *DataArray) { da.name = name }
}

// WithAttrs sets the array attributes. The map is copied.
func WithAttrs(attrs map[string]any) Option {
	return func(da *DataArray) { da.attrs = maps.Clone(attrs) }
}

// WithOwner records the class that built the array; accessor lookups
// consult it first.
func WithOwner(owner Binder) Option {
	return func(da *DataArray) { da.owner = owner }
}

// New creates a DataArray from data with the given dimension names attached
// positionally. data is anything tensor.FromValue accepts and is copied.
//
// Example:
//
//	da, err := xarray.New([][]float64{{0, 1}, {2, 3}}, []string{"x", "y"})
func New(data any, dims []string, opts ...Option) (*DataArray, error) {
	raw, err := tensor.FromValue(data)
	if err != nil {
		return nil, err
	}
	return FromRaw(raw, dims, opts...)
}

// FromRaw wraps raw without copying it. The caller must not modify raw afterwards.
func FromRaw(raw *tensor.RawTensor, dims []string, opts ...Option) (*DataArray, error) {
	if raw.NDim() != len(dims) {
		return nil, fmt.Errorf("%w: %d dimension names for %d-d data %v", ErrDims, len(dims), raw.NDim(), raw.Shape())
	}
	if err := checkDimNames(dims); err != nil {
		return nil, err
	}

	da := &DataArray{raw: raw, dims: slices.Clone(dims)}
	for _, opt := range opts {
		opt(da)
	}
	return da, nil
}

func checkDimNames(dims []string) error {
	seen := make(map[string]bool, len(dims))
	for _, d := range dims {
		if d == "" {
			return fmt.Errorf("%w: empty dimension name", ErrDims)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate dimension %q", ErrDims, d)
		}
		seen[d] = true
	}
	return nil
}

// Raw returns the underlying tensor. It must be treated as read-only.
func (da *DataArray) Raw() *tensor.RawTensor {
	if da == nil {
		return nil
	}
	return da.raw
}

// Dims returns the dimension names in axis order.
func (da *DataArray) Dims() []string {
	return slices.Clone(da.dims)
}

// NDim returns the number of dimensions.
func (da *DataArray) NDim() int {
	return len(da.dims)
}

// Shape returns the size of each dimension in axis order.
func (da *DataArray) Shape() tensor.Shape {
	return da.raw.Shape().Clone()
}

// Sizes maps each dimension name to its size.
func (da *DataArray) Sizes() map[string]int {
	sizes := make(map[string]int, len(da.dims))
	for i, d := range da.dims {
		sizes[d] = da.raw.Shape()[i]
	}
	return sizes
}

// SizeOf returns the size of dimension dim.
func (da *DataArray) SizeOf(dim string) (int, bool) {
	i := slices.Index(da.dims, dim)
	if i < 0 {
		return 0, false
	}
	return da.raw.Shape()[i], true
}

// DType returns the data type of the values.
func (da *DataArray) DType() tensor.DataType {
	return da.raw.DType()
}

// Name returns the array name.
func (da *DataArray) Name() string {
	return da.name
}

// Attrs returns a copy of the attributes.
func (da *DataArray) Attrs() map[string]any {
	return maps.Clone(da.attrs)
}

// Owner returns the class that built the array, or nil.
func (da *DataArray) Owner() Binder {
	return da.owner
}

// Size returns the total number of elements.
func (da *DataArray) Size() int {
	return da.raw.NumElements()
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (da *DataArray) At(indices ...int) any {
	return da.raw.At(indices...)
}

// Item returns the value of a single-element array.
func (da *DataArray) Item() (any, error) {
	return da.raw.Item()
}

// Float64s returns a row-major copy of the values converted to float64.
func (da *DataArray) Float64s() []float64 {
	return da.raw.Float64s()
}

// CoordNames returns the coordinate names in insertion order.
func (da *DataArray) CoordNames() []string {
	names := make([]string, len(da.coords))
	for i, c := range da.coords {
		names[i] = c.name
	}
	return names
}

// Coord returns the coordinate called name.
func (da *DataArray) Coord(name string) (*DataArray, bool) {
	for _, c := range da.coords {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// IsIndex reports whether the coordinate called name indexes a dimension of the same name.
func (da *DataArray) IsIndex(name string) bool {
	c, ok := da.Coord(name)
	return ok && len(c.dims) == 1 && c.dims[0] == name
}

// AssignCoord returns a copy of da with coordinate name set to value over dims.
// value must already have exactly the sizes of dims in da; an existing
// coordinate of the same name is replaced in place.
func (da *DataArray) AssignCoord(name string, dims []string, value *tensor.RawTensor) (*DataArray, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty coordinate name", ErrCoord)
	}
	if slices.Contains(da.dims, name) && (len(dims) != 1 || dims[0] != name) {
		return nil, fmt.Errorf("%w: coordinate %q shares a dimension name but is defined over %v", ErrCoord, name, dims)
	}

	shape := make(tensor.Shape, len(dims))
	for i, d := range dims {
		size, ok := da.SizeOf(d)
		if !ok {
			return nil, fmt.Errorf("%w: coordinate %q uses dimension %q not in %v", ErrCoord, name, d, da.dims)
		}
		shape[i] = size
	}
	if !value.Shape().Equal(shape) {
		return nil, fmt.Errorf("%w: coordinate %q has shape %v, dimensions %v need %v", ErrCoord, name, value.Shape(), dims, shape)
	}

	coord, err := FromRaw(value, dims, WithName(name))
	if err != nil {
		return nil, fmt.Errorf("%w: coordinate %q: %w", ErrCoord, name, err)
	}

	out := da.shallowCopy()
	if i := slices.IndexFunc(out.coords, func(c *DataArray) bool { return c.name == name }); i >= 0 {
		out.coords[i] = coord
	} else {
		out.coords = append(out.coords, coord)
	}
	return out, nil
}

// DropCoord returns a copy of da without the named coordinate.
func (da *DataArray) DropCoord(name string) *DataArray {
	out := da.shallowCopy()
	out.coords = slices.DeleteFunc(out.coords, func(c *DataArray) bool { return c.name == name })
	return out
}

// Rename returns a copy of da with a new name.
func (da *DataArray) Rename(name string) *DataArray {
	out := da.shallowCopy()
	out.name = name
	return out
}

// AsType returns a copy of da with values cast to dtype. Coordinates are kept.
func (da *DataArray) AsType(dtype tensor.DataType) (*DataArray, error) {
	raw, err := tensor.Cast(da.raw, dtype)
	if err != nil {
		return nil, err
	}
	return da.withRaw(raw), nil
}

// Equals reports whether both arrays have the same dims, values and
// coordinates. Names and attributes are ignored.
func (da *DataArray) Equals(other *DataArray) bool {
	if other == nil || !slices.Equal(da.dims, other.dims) || !da.raw.Equal(other.raw) {
		return false
	}
	if len(da.coords) != len(other.coords) {
		return false
	}
	for _, c := range da.coords {
		oc, ok := other.Coord(c.name)
		if !ok || !slices.Equal(c.dims, oc.dims) || !c.raw.Equal(oc.raw) {
			return false
		}
	}
	return true
}

// shallowCopy copies the array header; raw values and coordinates are shared.
func (da *DataArray) shallowCopy() *DataArray {
	return &DataArray{
		raw:    da.raw,
		dims:   slices.Clone(da.dims),
		coords: slices.Clone(da.coords),
		name:   da.name,
		attrs:  maps.Clone(da.attrs),
		owner:  da.owner,
	}
}

// withRaw returns a copy of the header holding raw, which must have the same shape.
func (da *DataArray) withRaw(raw *tensor.RawTensor) *DataArray {
	out := da.shallowCopy()
	out.raw = raw
	return out
}
