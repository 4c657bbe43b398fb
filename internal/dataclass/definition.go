package dataclass

import "slices"

// Definition declares a data array class.
//
// Example:
//
//	def := dataclass.Definition{
//		Name:     "Image",
//		Dims:     []string{"x", "y"},
//		DType:    "float64",
//		Accessor: "img",
//		Coords: []dataclass.CoordSpec{
//			dataclass.Coord("x", []string{"x"}, "int64", dataclass.Default(0)),
//			dataclass.Coord("y", []string{"y"}, "int64", dataclass.Default(0)),
//		},
//	}
type Definition struct {
	// Name is the class name used in errors and documentation.
	// Defaults to "DataArray".
	Name string

	// Dims are the dimension names in axis order.
	Dims []string

	// DType is the element type. Empty accepts any data and keeps its type.
	DType string

	// Coords are the coordinates attached to every instance, in order.
	Coords []CoordSpec

	// Accessor is the namespace name under which the bound accessor is
	// reachable. Empty declares no public namespace.
	Accessor string

	// FillValue initializes Empty. Nil means zeros.
	FillValue any

	// Desc is a free-form description. Defaults to "No description.".
	Desc string

	// Strict tightens the checks Extend performs against the parent class.
	Strict Strict
}

// Strict selects which attributes a child class must keep equal to its parent's.
type Strict struct {
	Dims  bool
	DType bool
}

// CoordSpec declares one coordinate of a class.
type CoordSpec struct {
	Name    string
	Dims    []string
	DType   string // empty keeps the dtype of the supplied value
	Default any    // nil means the coordinate must be supplied
	Desc    string
}

// CoordOption configures a CoordSpec.
type CoordOption func(*CoordSpec)

// Default sets the value used when a coordinate is omitted at construction.
// It is broadcast to the coordinate's shape.
func Default(value any) CoordOption {
	return func(c *CoordSpec) { c.Default = value }
}

// Desc sets the coordinate description.
func Desc(desc string) CoordOption {
	return func(c *CoordSpec) { c.Desc = desc }
}

// Coord declares a coordinate called name over dims.
func Coord(name string, dims []string, dtype string, opts ...CoordOption) CoordSpec {
	c := CoordSpec{Name: name, Dims: slices.Clone(dims), DType: dtype}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
