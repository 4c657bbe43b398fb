package dataclass

import (
	"encoding/hex"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/born-ml/dataarray/internal/tensor"
)

const (
	defaultName = "DataArray"
	defaultDesc = "No description."
)

var whitespace = regexp.MustCompile(`\s+`)

// Schema is the compiled, immutable form of a Definition.
type Schema struct {
	name       string
	dims       []string
	dtype      tensor.DataType
	typed      bool // dtype is set
	coords     []coordType
	accessor   string
	accessorID string
	fill       any
	desc       string
	parent     *Schema
	def        Definition
}

type coordType struct {
	spec  CoordSpec
	dtype tensor.DataType
	typed bool
	def   *tensor.RawTensor // nil when the coordinate has no default
}

// Name returns the class name.
func (s *Schema) Name() string { return s.name }

// Dims returns the dimension names in axis order.
func (s *Schema) Dims() []string { return slices.Clone(s.dims) }

// DType returns the element type and whether one is declared.
func (s *Schema) DType() (tensor.DataType, bool) { return s.dtype, s.typed }

// Accessor returns the public accessor name, or "".
func (s *Schema) Accessor() string { return s.accessor }

// AccessorID returns the accessor name unique to this class.
func (s *Schema) AccessorID() string { return s.accessorID }

// FillValue returns the value Empty initializes arrays with, or nil.
func (s *Schema) FillValue() any { return s.fill }

// Desc returns the normalized description.
func (s *Schema) Desc() string { return s.desc }

// Parent returns the schema this one extends, or nil.
func (s *Schema) Parent() *Schema { return s.parent }

// CoordNames returns the coordinate names in order.
func (s *Schema) CoordNames() []string {
	names := make([]string, len(s.coords))
	for i, c := range s.coords {
		names[i] = c.spec.Name
	}
	return names
}

// Coords returns copies of the coordinate specs in order.
func (s *Schema) Coords() []CoordSpec {
	specs := make([]CoordSpec, len(s.coords))
	for i, c := range s.coords {
		specs[i] = c.spec
		specs[i].Dims = slices.Clone(c.spec.Dims)
	}
	return specs
}

// Definition returns the fully resolved definition the schema was compiled
// from, with inherited attributes filled in.
func (s *Schema) Definition() Definition {
	def := s.def
	def.Dims = slices.Clone(def.Dims)
	def.Coords = s.Coords()
	return def
}

// DTypeName returns the dtype name, or "any" when none is declared.
func (s *Schema) DTypeName() string {
	if !s.typed {
		return "any"
	}
	return s.dtype.String()
}

// newSchema validates def and compiles it.
func newSchema(def Definition, parent *Schema) (*Schema, error) {
	if def.Name == "" {
		def.Name = defaultName
	}
	s := &Schema{
		name:     def.Name,
		dims:     slices.Clone(def.Dims),
		accessor: def.Accessor,
		fill:     def.FillValue,
		desc:     normalizeDesc(def.Desc),
		parent:   parent,
	}

	seen := make(map[string]bool, len(def.Dims))
	for _, d := range def.Dims {
		if d == "" {
			return nil, schemaError(s.name, "", "empty dimension name")
		}
		if seen[d] {
			return nil, schemaError(s.name, d, "duplicate dimension")
		}
		seen[d] = true
	}

	if def.DType != "" {
		dtype, err := tensor.ParseDataType(def.DType)
		if err != nil {
			return nil, &Error{Kind: ErrSchema, Class: s.name, Field: "dtype", Err: err}
		}
		s.dtype, s.typed = dtype, true
	}

	if def.Accessor != "" && !isIdentifier(def.Accessor) {
		return nil, schemaError(s.name, def.Accessor, "accessor name is not an identifier")
	}

	if err := s.checkFill(); err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(def.Coords))
	for _, spec := range def.Coords {
		if spec.Name == "" {
			return nil, schemaError(s.name, "", "empty coordinate name")
		}
		if names[spec.Name] {
			return nil, schemaError(s.name, spec.Name, "duplicate coordinate")
		}
		names[spec.Name] = true

		ct, err := s.compileCoord(spec)
		if err != nil {
			return nil, err
		}
		s.coords = append(s.coords, ct)
	}

	def.Desc = s.desc
	def.Dims = slices.Clone(def.Dims)
	s.def = def
	return s, nil
}

func (s *Schema) checkFill() error {
	if s.fill == nil {
		return nil
	}
	value, err := tensor.FromValue(s.fill)
	if err != nil {
		return &Error{Kind: ErrSchema, Class: s.name, Field: "fill_value", Err: err}
	}
	if value.NDim() != 0 {
		return schemaError(s.name, "fill_value", "must be a scalar, got shape %v", value.Shape())
	}
	if s.typed {
		if _, err := tensor.Cast(value, s.dtype); err != nil {
			return &Error{Kind: ErrSchema, Class: s.name, Field: "fill_value", Err: err}
		}
	}
	return nil
}

func (s *Schema) compileCoord(spec CoordSpec) (coordType, error) {
	ct := coordType{spec: spec}
	ct.spec.Dims = slices.Clone(spec.Dims)

	used := make(map[string]bool, len(spec.Dims))
	for _, d := range spec.Dims {
		if !slices.Contains(s.dims, d) {
			return ct, schemaError(s.name, spec.Name, "dimension %q is not one of %v", d, s.dims)
		}
		if used[d] {
			return ct, schemaError(s.name, spec.Name, "dimension %q repeated", d)
		}
		used[d] = true
	}
	if slices.Contains(s.dims, spec.Name) && (len(spec.Dims) != 1 || spec.Dims[0] != spec.Name) {
		return ct, schemaError(s.name, spec.Name, "coordinate named after a dimension must be defined over exactly that dimension, got %v", spec.Dims)
	}

	if spec.DType != "" {
		dtype, err := tensor.ParseDataType(spec.DType)
		if err != nil {
			return ct, &Error{Kind: ErrSchema, Class: s.name, Field: spec.Name, Err: err}
		}
		ct.dtype, ct.typed = dtype, true
	}

	if spec.Default != nil {
		value, err := tensor.FromValue(spec.Default)
		if err != nil {
			return ct, &Error{Kind: ErrSchema, Class: s.name, Field: spec.Name, Details: "default", Err: err}
		}
		if value.NDim() > len(spec.Dims) {
			return ct, schemaError(s.name, spec.Name, "default has %d dimensions, coordinate has %d", value.NDim(), len(spec.Dims))
		}
		if ct.typed {
			if value, err = tensor.Cast(value, ct.dtype); err != nil {
				return ct, &Error{Kind: ErrSchema, Class: s.name, Field: spec.Name, Details: "default", Err: err}
			}
		}
		ct.def = value
	}
	return ct, nil
}

// newAccessorID returns a fresh "_accessor_" name with 16 random hex digits.
func newAccessorID() string {
	id := uuid.New()
	return "_accessor_" + hex.EncodeToString(id[:8])
}

func normalizeDesc(desc string) string {
	desc = strings.TrimSpace(whitespace.ReplaceAllString(desc, " "))
	if desc == "" {
		return defaultDesc
	}
	return desc
}

func isIdentifier(name string) bool {
	for i, r := range name {
		if r != '_' && !unicode.IsLetter(r) && (i == 0 || !unicode.IsDigit(r)) {
			return false
		}
	}
	return name != ""
}
