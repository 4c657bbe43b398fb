// Package tensor provides the raw n-dimensional buffers that labeled arrays are built on.
package tensor

import (
	"fmt"
	"strings"
)

// DataType represents runtime type information for tensors.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// IsInteger reports whether the data type is an integer type.
func (dt DataType) IsInteger() bool {
	return dt == Int32 || dt == Int64 || dt == Uint8
}

// Valid reports whether dt is one of the supported data types.
func (dt DataType) Valid() bool {
	return dt >= Float32 && dt <= Bool
}

// dtypeNames maps the accepted spellings of a data type to the type.
// Python builtins follow NumPy on 64-bit platforms: float is float64, int is int64.
var dtypeNames = map[string]DataType{
	"float":   Float64,
	"float64": Float64,
	"double":  Float64,
	"f8":      Float64,
	"d":       Float64,
	"float32": Float32,
	"single":  Float32,
	"f4":      Float32,
	"f":       Float32,
	"int":     Int64,
	"int64":   Int64,
	"long":    Int64,
	"i8":      Int64,
	"int32":   Int32,
	"i4":      Int32,
	"uint8":   Uint8,
	"byte":    Uint8,
	"u1":      Uint8,
	"bool":    Bool,
	"b1":      Bool,
	"?":       Bool,
}

// ParseDataType parses a data type name.
//
// Go names ("float64"), Python builtins ("float", "int", "bool") and NumPy
// array-protocol strings ("<f8", "|b1", "i4") are accepted.
//
// Example:
//
//	dt, _ := tensor.ParseDataType("<f4") // Float32
func ParseDataType(name string) (DataType, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if len(s) > 1 {
		switch s[0] {
		case '<', '>', '|', '=':
			s = s[1:]
		}
	}

	dt, ok := dtypeNames[s]
	if !ok {
		return 0, fmt.Errorf("%w: unrecognized data type %q", ErrDType, name)
	}
	return dt, nil
}

// promote returns the data type that holds both a and b without losing kind.
// Bools promote to integers, integers to floats; widths promote to 64 bits.
func promote(a, b DataType) DataType {
	if a == b {
		return a
	}
	switch {
	case a == Float32 && b.Size() == 1, b == Float32 && a.Size() == 1:
		return Float32
	case a.IsFloat() || b.IsFloat():
		return Float64
	case a.IsInteger() || b.IsInteger():
		if a == Int32 && (b == Uint8 || b == Bool) || b == Int32 && (a == Uint8 || a == Bool) {
			return Int32
		}
		if a == Uint8 && b == Bool || b == Uint8 && a == Bool {
			return Uint8
		}
		return Int64
	default:
		return a
	}
}
