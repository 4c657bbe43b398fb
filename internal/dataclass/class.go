// Package dataclass compiles declarative data array class definitions into
// factories that build labeled arrays of a fixed shape, and binds user
// accessor types onto the arrays they build.
package dataclass

import (
	"fmt"
	"slices"

	"github.com/born-ml/dataarray/internal/tensor"
	"github.com/born-ml/dataarray/internal/xarray"
)

// Class is a compiled data array class whose accessor namespace has type A.
//
// Class implements xarray.Binder and is registered in the accessor registry
// when compiled.
type Class[A any] struct {
	schema *Schema
	bind   func(*xarray.DataArray) A
}

// Compile validates def and returns the class it declares. bind builds the
// accessor namespace for an instance; when nil, the namespace is the
// instance itself, which requires A to be *xarray.DataArray or any.
//
// Example:
//
//	type Image struct{ *xarray.DataArray }
//
//	func (im Image) Normalize() (*xarray.DataArray, error) {
//		m, err := im.Max()
//		if err != nil {
//			return nil, err
//		}
//		return im.Div(m)
//	}
//
//	images, err := dataclass.Compile(def, func(da *xarray.DataArray) Image { return Image{da} })
func Compile[A any](def Definition, bind func(*xarray.DataArray) A) (*Class[A], error) {
	schema, err := newSchema(def, nil)
	if err != nil {
		return nil, err
	}
	return register(schema, bind), nil
}

// MustCompile is like Compile but panics on error. It simplifies
// package-level class declarations.
func MustCompile[A any](def Definition, bind func(*xarray.DataArray) A) *Class[A] {
	c, err := Compile(def, bind)
	if err != nil {
		panic(err)
	}
	return c
}

// Define compiles a class without an accessor type.
func Define(def Definition) (*Class[*xarray.DataArray], error) {
	return Compile[*xarray.DataArray](def, nil)
}

// Validate reports whether def compiles, without registering a class.
func Validate(def Definition) error {
	_, err := newSchema(def, nil)
	return err
}

// Extend derives a child class from parent.
//
// Empty Dims and DType are inherited. Otherwise the child's dims must
// contain the parent's (equal with Strict.Dims) and, with Strict.DType,
// its dtype must equal the parent's. Coordinates are the parent's followed
// by the child's; a child coordinate with a parent coordinate's name replaces
// it in place. Accessor, FillValue and Desc are inherited when left empty.
func Extend[P, A any](parent *Class[P], def Definition, bind func(*xarray.DataArray) A) (*Class[A], error) {
	merged, err := inherit(parent.schema, def)
	if err != nil {
		return nil, err
	}
	schema, err := newSchema(merged, parent.schema)
	if err != nil {
		return nil, err
	}
	return register(schema, bind), nil
}

func inherit(parent *Schema, def Definition) (Definition, error) {
	name := def.Name
	if name == "" {
		name = defaultName
	}

	switch {
	case len(def.Dims) == 0:
		def.Dims = slices.Clone(parent.dims)
	case def.Strict.Dims && !sameSet(def.Dims, parent.dims):
		return def, schemaError(name, "dims", "%v must equal the parent dims %v", def.Dims, parent.dims)
	default:
		for _, d := range parent.dims {
			if !slices.Contains(def.Dims, d) {
				return def, schemaError(name, "dims", "%v must be a superset of the parent dims %v", def.Dims, parent.dims)
			}
		}
	}

	if def.DType == "" {
		if parent.typed {
			def.DType = parent.dtype.String()
		}
	} else if def.Strict.DType {
		dtype, err := tensor.ParseDataType(def.DType)
		if err != nil {
			return def, &Error{Kind: ErrSchema, Class: name, Field: "dtype", Err: err}
		}
		if !parent.typed || dtype != parent.dtype {
			return def, schemaError(name, "dtype", "%s must equal the parent dtype %s", dtype, parent.DTypeName())
		}
	}

	coords := parent.Coords()
	for _, spec := range def.Coords {
		if i := slices.IndexFunc(coords, func(c CoordSpec) bool { return c.Name == spec.Name }); i >= 0 {
			coords[i] = spec
		} else {
			coords = append(coords, spec)
		}
	}
	def.Coords = coords

	if def.Accessor == "" {
		def.Accessor = parent.accessor
	}
	if def.FillValue == nil {
		def.FillValue = parent.fill
	}
	if def.Desc == "" {
		def.Desc = parent.desc
	}
	return def, nil
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !slices.Contains(b, x) {
			return false
		}
	}
	return true
}

func register[A any](schema *Schema, bind func(*xarray.DataArray) A) *Class[A] {
	schema.accessorID = newAccessorID()
	c := &Class[A]{schema: schema, bind: bind}
	xarray.RegisterAccessor(c)
	return c
}

// Schema returns the compiled schema.
func (c *Class[A]) Schema() *Schema {
	return c.schema
}

// Name returns the class name.
func (c *Class[A]) Name() string {
	return c.schema.name
}

// Bind returns the accessor namespace for da.
func (c *Class[A]) Bind(da *xarray.DataArray) A {
	if c.bind == nil {
		a, _ := any(da).(A)
		return a
	}
	return c.bind(da)
}

// Owns reports whether da was built by c.
func (c *Class[A]) Owns(da *xarray.DataArray) bool {
	owner, ok := da.Owner().(*Class[A])
	return ok && owner == c
}

// Unregister removes the class from the accessor registry. Instances keep
// resolving their own class through Accessor.
func (c *Class[A]) Unregister() {
	xarray.UnregisterAccessor(c)
}

// AccessorName implements xarray.Binder.
func (c *Class[A]) AccessorName() string {
	return c.schema.accessor
}

// AccessorID implements xarray.Binder.
func (c *Class[A]) AccessorID() string {
	return c.schema.accessorID
}

// BindAccessor implements xarray.Binder.
func (c *Class[A]) BindAccessor(da *xarray.DataArray) any {
	return c.Bind(da)
}

// String returns the class name and its dims.
func (c *Class[A]) String() string {
	return fmt.Sprintf("%s(dims=%s, dtype=%s)", c.schema.name, formatDims(c.schema.dims), c.schema.DTypeName())
}

// Access returns the accessor namespace called name bound to da, typed as A.
//
// Example:
//
//	im, err := dataclass.Access[Image](da, "img")
//	normalized, err := im.Normalize()
func Access[A any](da *xarray.DataArray, name string) (A, error) {
	var zero A
	ns, err := da.Accessor(name)
	if err != nil {
		return zero, err
	}
	a, ok := ns.(A)
	if !ok {
		return zero, fmt.Errorf("%w: accessor %q is %T, not %T", xarray.ErrNoAccessor, name, ns, zero)
	}
	return a, nil
}
