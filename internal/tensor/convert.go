package tensor

import (
	"fmt"
	"math"
	"reflect"
)

// Rawer is implemented by values that wrap a RawTensor, such as labeled arrays.
type Rawer interface {
	Raw() *RawTensor
}

type scalarKind int

const (
	kindBool scalarKind = iota
	kindInt
	kindFloat
)

// scalar is a single Go value normalized for storage into any dtype.
type scalar struct {
	kind  scalarKind
	dtype DataType // natural dtype of the Go value
	i     int64
	f     float64
}

//nolint:gocyclo,cyclop // One case per Go kind.
func scalarOf(v any) (scalar, error) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) {
		if rv.IsNil() {
			return scalar{}, fmt.Errorf("%w: nil value", ErrDType)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return scalar{}, fmt.Errorf("%w: nil value", ErrDType)
	}

	switch rv.Kind() {
	case reflect.Bool:
		s := scalar{kind: kindBool, dtype: Bool}
		if rv.Bool() {
			s.i = 1
		}
		return s, nil
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return scalar{kind: kindInt, dtype: Int32, i: rv.Int()}, nil
	case reflect.Int, reflect.Int64:
		return scalar{kind: kindInt, dtype: Int64, i: rv.Int()}, nil
	case reflect.Uint8:
		return scalar{kind: kindInt, dtype: Uint8, i: int64(rv.Uint())}, nil //nolint:gosec // G115: uint8 fits.
	case reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return scalar{}, fmt.Errorf("%w: %d overflows int64", ErrDType, u)
		}
		return scalar{kind: kindInt, dtype: Int64, i: int64(u)}, nil
	case reflect.Float32:
		return scalar{kind: kindFloat, dtype: Float32, f: rv.Float()}, nil
	case reflect.Float64:
		return scalar{kind: kindFloat, dtype: Float64, f: rv.Float()}, nil
	default:
		return scalar{}, fmt.Errorf("%w: cannot use %T as a numeric value", ErrDType, v)
	}
}

// castable reports whether the scalar can be stored as dtype.
func (s scalar) castable(dtype DataType) error {
	if !dtype.Valid() {
		return fmt.Errorf("%w: unsupported data type %d", ErrDType, int(dtype))
	}
	if s.kind == kindFloat && dtype.IsInteger() && (math.IsNaN(s.f) || math.IsInf(s.f, 0)) {
		return fmt.Errorf("%w: cannot cast %v to %s", ErrDType, s.f, dtype)
	}
	return nil
}

func (s scalar) store(t *RawTensor, i int) {
	if s.kind == kindFloat {
		t.SetFloat64(i, s.f)
		return
	}
	t.SetInt64(i, s.i)
}

// FromValue builds a tensor from a Go value.
//
// Accepted values are numeric and bool scalars, (nested) slices and arrays of
// them, []any with mixed numeric leaves, a *RawTensor or any Rawer. The dtype
// is the promotion of the leaf types: bool < uint8 < int32 < int64 < float.
// Ragged nesting is rejected with ErrShape. Empty slices give zero-size
// float64 tensors, as NumPy does for empty lists.
//
// Example:
//
//	raw, err := tensor.FromValue([][]float64{{0, 1}, {2, 3}}) // Float64 (2, 2)
func FromValue(v any) (*RawTensor, error) {
	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil value", ErrDType)
	case *RawTensor:
		if x == nil {
			return nil, fmt.Errorf("%w: nil tensor", ErrDType)
		}
		return x.Clone(), nil
	case Rawer:
		raw := x.Raw()
		if raw == nil {
			return nil, fmt.Errorf("%w: nil tensor", ErrDType)
		}
		return raw.Clone(), nil
	}

	f := flattener{leafDepth: -1}
	if err := f.walk(reflect.ValueOf(v), 0); err != nil {
		return nil, err
	}
	if err := f.shape.Validate(); err != nil {
		return nil, err
	}

	dtype := Float64
	if len(f.values) > 0 {
		dtype = f.values[0].dtype
		for _, s := range f.values[1:] {
			dtype = promote(dtype, s.dtype)
		}
	}

	t, err := NewRaw(f.shape, dtype)
	if err != nil {
		return nil, err
	}
	for i, s := range f.values {
		s.store(t, i)
	}
	return t, nil
}

type flattener struct {
	shape     Shape
	values    []scalar
	leafDepth int
}

func (f *flattener) walk(rv reflect.Value, depth int) error {
	for rv.IsValid() && rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}

	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		if f.leafDepth >= 0 && depth >= f.leafDepth {
			return fmt.Errorf("%w: inhomogeneous nesting at depth %d", ErrShape, depth)
		}

		n := rv.Len()
		switch {
		case depth == len(f.shape):
			f.shape = append(f.shape, n)
		case f.shape[depth] != n:
			return fmt.Errorf("%w: inhomogeneous length at depth %d: %d vs %d", ErrShape, depth, n, f.shape[depth])
		}

		for i := 0; i < n; i++ {
			if err := f.walk(rv.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if f.leafDepth < 0 {
		f.leafDepth = depth
	} else if depth != f.leafDepth {
		return fmt.Errorf("%w: inhomogeneous nesting at depth %d", ErrShape, depth)
	}
	if depth != len(f.shape) {
		return fmt.Errorf("%w: inhomogeneous nesting at depth %d", ErrShape, depth)
	}

	var val any
	if rv.IsValid() {
		val = rv.Interface()
	}
	s, err := scalarOf(val)
	if err != nil {
		return err
	}
	f.values = append(f.values, s)
	return nil
}

// Cast converts the tensor to a different data type, returning a new tensor.
// NaN and infinite values cannot be cast to integer types.
func Cast(x *RawTensor, dtype DataType) (*RawTensor, error) {
	// Copy if same dtype
	if x.DType() == dtype {
		return x.Clone(), nil
	}

	result, err := NewRaw(x.Shape(), dtype)
	if err != nil {
		return nil, err
	}

	n := x.NumElements()
	switch {
	case x.DType().IsFloat() && dtype.IsInteger():
		for i := 0; i < n; i++ {
			v := x.Float64At(i)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: cannot cast %v to %s", ErrDType, v, dtype)
			}
			result.SetInt64(i, int64(v))
		}
	case x.DType().IsFloat() || dtype.IsFloat() || dtype == Bool:
		for i := 0; i < n; i++ {
			result.SetFloat64(i, x.Float64At(i))
		}
	default:
		for i := 0; i < n; i++ {
			result.SetInt64(i, x.Int64At(i))
		}
	}

	return result, nil
}
