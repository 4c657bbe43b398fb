package dataclass

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dataarray/internal/tensor"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Definition)
		field string
	}{
		{"coordinate over unknown dimension", func(d *Definition) {
			d.Coords = append(d.Coords, Coord("z", []string{"z"}, "int64"))
		}, "z"},
		{"duplicate dimension", func(d *Definition) { d.Dims = []string{"x", "x"} }, "x"},
		{"empty dimension", func(d *Definition) { d.Dims = []string{"x", ""} }, ""},
		{"unknown dtype", func(d *Definition) { d.DType = "complex64" }, "dtype"},
		{"unknown coordinate dtype", func(d *Definition) { d.Coords[0].DType = "str" }, "x"},
		{"duplicate coordinate", func(d *Definition) { d.Coords[1].Name = "x" }, "x"},
		{"empty coordinate name", func(d *Definition) { d.Coords[0].Name = "" }, ""},
		{"repeated coordinate dimension", func(d *Definition) {
			d.Coords = append(d.Coords, Coord("w", []string{"x", "x"}, ""))
		}, "w"},
		{"index coordinate over another dimension", func(d *Definition) { d.Coords[0].Dims = []string{"y"} }, "x"},
		{"index coordinate over two dimensions", func(d *Definition) { d.Coords[0].Dims = []string{"x", "y"} }, "x"},
		{"uncastable default", func(d *Definition) { d.Coords[0].Default = math.NaN() }, "x"},
		{"non-numeric default", func(d *Definition) { d.Coords[0].Default = "zero" }, "x"},
		{"default with too many dimensions", func(d *Definition) { d.Coords[0].Default = [][]int{{0}} }, "x"},
		{"uncastable fill value", func(d *Definition) {
			d.DType = "int64"
			d.FillValue = math.Inf(1)
		}, "fill_value"},
		{"array fill value", func(d *Definition) { d.FillValue = []float64{1, 2} }, "fill_value"},
		{"accessor starting with a digit", func(d *Definition) { d.Accessor = "2img" }, "2img"},
		{"accessor with a dash", func(d *Definition) { d.Accessor = "my-img" }, "my-img"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := imageDefinition()
			def.Coords = append([]CoordSpec(nil), def.Coords...)
			tt.edit(&def)

			err := Validate(def)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchema)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, "Image", e.Class)
			assert.Equal(t, tt.field, e.Field)
		})
	}
}

func TestValidateAcceptsEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{"no coordinates", Definition{Dims: []string{"x", "y"}, DType: "float"}},
		{"no dims", Definition{DType: "int"}},
		{"no dtype", Definition{Dims: []string{"t"}}},
		{"numpy dtype string", Definition{Dims: []string{"t"}, DType: "<f4"}},
		{"non-index coordinate", Definition{
			Dims:   []string{"x", "y"},
			Coords: []CoordSpec{Coord("area", []string{"y", "x"}, "f8", Default(1))},
		}},
		{"scalar coordinate", Definition{
			Dims:   []string{"x"},
			Coords: []CoordSpec{Coord("time", nil, "int64", Default(0))},
		}},
		{"accessor with underscore", Definition{Dims: []string{"x"}, Accessor: "_img2"}},
		{"unicode accessor", Definition{Dims: []string{"x"}, Accessor: "größe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, Validate(tt.def))
		})
	}
}

func TestSchemaDefaults(t *testing.T) {
	s, err := newSchema(Definition{Dims: []string{"x"}, Desc: "  Spectral\n\tcube.  "}, nil)
	require.NoError(t, err)

	assert.Equal(t, "DataArray", s.Name())
	assert.Equal(t, "Spectral cube.", s.Desc())
	assert.Equal(t, "any", s.DTypeName())
	_, typed := s.DType()
	assert.False(t, typed)

	s, err = newSchema(Definition{Dims: []string{"x"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "No description.", s.Desc())
}

func TestSchemaDefinition(t *testing.T) {
	images := compileImage(t)

	def := images.Schema().Definition()
	assert.Equal(t, imageDefinition(), def)

	def.Dims[0] = "changed"
	def.Coords[0].Dims[0] = "changed"
	assert.Equal(t, []string{"x", "y"}, images.Schema().Dims())
	assert.Equal(t, []string{"x"}, images.Schema().Coords()[0].Dims)
}

func TestSchemaCoordDefaultsAreCast(t *testing.T) {
	images := compileImage(t)
	for _, ct := range images.Schema().coords {
		require.NotNil(t, ct.def)
		assert.Equal(t, tensor.Int64, ct.def.DType())
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: ErrShape, Class: "Image", Field: "x", Details: "value of shape (3,) does not fit"}
	assert.Equal(t, `Image: shape mismatch: "x": value of shape (3,) does not fit`, err.Error())

	wrapped := &Error{Kind: ErrDType, Field: "data", Err: tensor.ErrDType}
	assert.Equal(t, `invalid dtype: "data": tensor: invalid dtype`, wrapped.Error())
	assert.ErrorIs(t, wrapped, tensor.ErrDType)
	assert.ErrorIs(t, wrapped, ErrDType)
	assert.NotErrorIs(t, wrapped, ErrShape)
}
