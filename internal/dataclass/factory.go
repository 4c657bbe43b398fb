package dataclass

import (
	"fmt"
	"maps"
	"slices"

	"github.com/born-ml/dataarray/internal/tensor"
	"github.com/born-ml/dataarray/internal/xarray"
)

// Coords maps coordinate names to values given at construction. A value may
// be a scalar, a nested slice, a *tensor.RawTensor or an *xarray.DataArray;
// it is broadcast to the coordinate's shape.
type Coords map[string]any

// Option configures instance construction.
type Option func(*options)

type options struct {
	name  string
	attrs map[string]any
	dtype string
}

// WithName sets the name of the built array.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithAttrs sets the attributes of the built array.
func WithAttrs(attrs map[string]any) Option {
	return func(o *options) { o.attrs = attrs }
}

// WithDType sets the element type for classes that declare none.
// It is ignored when the class declares a dtype.
func WithDType(dtype string) Option {
	return func(o *options) { o.dtype = dtype }
}

// New builds an instance from data, whose number of dimensions must equal
// the class's. data is cast to the class dtype. Omitted coordinates take
// their defaults.
//
// Example:
//
//	da, err := images.New([][]float64{{0, 1}, {2, 3}}, dataclass.Coords{"x": []int{0, 1}})
func (c *Class[A]) New(data any, coords Coords, opts ...Option) (*xarray.DataArray, error) {
	o := c.options(opts)
	raw, err := tensor.FromValue(data)
	if err != nil {
		return nil, c.dataError(err)
	}
	if raw.NDim() != len(c.schema.dims) {
		return nil, &Error{
			Kind:    ErrShape,
			Class:   c.schema.name,
			Details: fmt.Sprintf("data of shape %v does not match dimensions %s", raw.Shape(), formatDims(c.schema.dims)),
		}
	}

	dtype, ok, err := c.dtype(o)
	if err != nil {
		return nil, err
	}
	if ok && raw.DType() != dtype {
		if raw, err = tensor.Cast(raw, dtype); err != nil {
			return nil, c.dataError(err)
		}
	}
	return c.build(raw, coords, o)
}

// Ones builds an instance of the given shape filled with ones. Classes
// without a dtype default to float64.
func (c *Class[A]) Ones(shape []int, coords Coords, opts ...Option) (*xarray.DataArray, error) {
	return c.full(shape, 1, tensor.Float64, coords, opts)
}

// Zeros builds an instance of the given shape filled with zeros. Classes
// without a dtype default to float64.
func (c *Class[A]) Zeros(shape []int, coords Coords, opts ...Option) (*xarray.DataArray, error) {
	return c.full(shape, 0, tensor.Float64, coords, opts)
}

// Empty builds an instance of the given shape filled with the class fill
// value, or zeros when the class declares none. Classes without a dtype
// default to float64.
func (c *Class[A]) Empty(shape []int, coords Coords, opts ...Option) (*xarray.DataArray, error) {
	fill := c.schema.fill
	if fill == nil {
		fill = 0
	}
	return c.full(shape, fill, tensor.Float64, coords, opts)
}

// Full builds an instance of the given shape filled with fill. Classes
// without a dtype take the dtype of fill: Full(shape, 3, nil) is int64.
func (c *Class[A]) Full(shape []int, fill any, coords Coords, opts ...Option) (*xarray.DataArray, error) {
	dtype := tensor.Float64
	if value, err := tensor.FromValue(fill); err == nil {
		dtype = value.DType()
	}
	return c.full(shape, fill, dtype, coords, opts)
}

// full fills a new instance, using fallback when neither the class nor
// WithDType sets the dtype.
func (c *Class[A]) full(shape []int, fill any, fallback tensor.DataType, coords Coords, opts []Option) (*xarray.DataArray, error) {
	o := c.options(opts)
	if len(shape) != len(c.schema.dims) {
		return nil, &Error{
			Kind:    ErrShape,
			Class:   c.schema.name,
			Details: fmt.Sprintf("shape %v does not match dimensions %s", tensor.Shape(shape), formatDims(c.schema.dims)),
		}
	}

	dtype, ok, err := c.dtype(o)
	if err != nil {
		return nil, err
	}
	if !ok {
		dtype = fallback
	}

	raw, err := tensor.Full(slices.Clone(shape), dtype, fill)
	if err != nil {
		return nil, c.dataError(err)
	}
	return c.build(raw, coords, o)
}

func (c *Class[A]) options(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// dtype resolves the element type: the class dtype, else WithDType, else none.
func (c *Class[A]) dtype(o options) (tensor.DataType, bool, error) {
	if c.schema.typed {
		return c.schema.dtype, true, nil
	}
	if o.dtype == "" {
		return 0, false, nil
	}
	dtype, err := tensor.ParseDataType(o.dtype)
	if err != nil {
		return 0, false, &Error{Kind: ErrDType, Class: c.schema.name, Field: "dtype", Err: err}
	}
	return dtype, true, nil
}

func (c *Class[A]) dataError(err error) *Error {
	return wrapError(c.schema.name, "data", err)
}

// build wraps raw in a DataArray and attaches every coordinate.
func (c *Class[A]) build(raw *tensor.RawTensor, coords Coords, o options) (*xarray.DataArray, error) {
	for _, name := range slices.Sorted(maps.Keys(coords)) {
		if !slices.Contains(c.schema.CoordNames(), name) {
			return nil, &Error{
				Kind:    ErrUnknownCoord,
				Class:   c.schema.name,
				Field:   name,
				Details: fmt.Sprintf("expected one of %v", c.schema.CoordNames()),
			}
		}
	}

	xopts := []xarray.Option{xarray.WithOwner(c)}
	if o.name != "" {
		xopts = append(xopts, xarray.WithName(o.name))
	}
	if o.attrs != nil {
		xopts = append(xopts, xarray.WithAttrs(o.attrs))
	}
	da, err := xarray.FromRaw(raw, c.schema.dims, xopts...)
	if err != nil {
		return nil, c.dataError(err)
	}

	for _, ct := range c.schema.coords {
		value, err := c.coordValue(da, ct, coords)
		if err != nil {
			return nil, err
		}
		if da, err = da.AssignCoord(ct.spec.Name, ct.spec.Dims, value); err != nil {
			return nil, wrapError(c.schema.name, ct.spec.Name, err)
		}
	}
	return da, nil
}

// coordValue resolves a coordinate from the given values or its default,
// broadcast to the sizes of its dims in da and cast to its dtype.
func (c *Class[A]) coordValue(da *xarray.DataArray, ct coordType, coords Coords) (*tensor.RawTensor, error) {
	name := ct.spec.Name

	var value *tensor.RawTensor
	if v, ok := coords[name]; ok && v != nil {
		raw, err := tensor.FromValue(v)
		if err != nil {
			return nil, wrapError(c.schema.name, name, err)
		}
		value = raw
	} else if ct.def != nil {
		value = ct.def
	} else {
		return nil, &Error{Kind: ErrMissingCoord, Class: c.schema.name, Field: name, Details: "no value given and no default declared"}
	}

	shape := make(tensor.Shape, len(ct.spec.Dims))
	for i, d := range ct.spec.Dims {
		shape[i], _ = da.SizeOf(d)
	}
	if !tensor.CanBroadcastTo(value.Shape(), shape) {
		return nil, &Error{
			Kind:    ErrShape,
			Class:   c.schema.name,
			Field:   name,
			Details: fmt.Sprintf("value of shape %v does not fit dimensions %s of shape %v", value.Shape(), formatDims(ct.spec.Dims), shape),
		}
	}

	expanded, err := tensor.Expand(value, shape)
	if err != nil {
		return nil, wrapError(c.schema.name, name, err)
	}
	if !ct.typed || expanded.DType() == ct.dtype {
		return expanded, nil
	}
	cast, err := tensor.Cast(expanded, ct.dtype)
	if err != nil {
		return nil, wrapError(c.schema.name, name, err)
	}
	return cast, nil
}
