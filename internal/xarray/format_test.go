package xarray

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dataarray/internal/tensor"
)

func TestString(t *testing.T) {
	da, err := New([][]float64{{0, 1}, {2, 3}}, []string{"x", "y"}, WithName("image"), WithAttrs(map[string]any{"units": "K"}))
	require.NoError(t, err)
	xs, err := tensor.FromValue([]int64{0, 1})
	require.NoError(t, err)
	da, err = da.AssignCoord("x", []string{"x"}, xs)
	require.NoError(t, err)

	want := "<xarray.DataArray \"image\" (x: 2, y: 2)>\n" +
		"array([[0., 1.],\n" +
		"       [2., 3.]])\n" +
		"Coordinates:\n" +
		"  * x        (x) int64 0 1\n" +
		"Attributes:\n" +
		"    units:    K"
	assert.Equal(t, want, da.String())
}

func TestStringScalarAndBool(t *testing.T) {
	s, err := New(2.5, nil)
	require.NoError(t, err)
	assert.Equal(t, "<xarray.DataArray ()>\narray(2.5)", s.String())

	b, err := New([]bool{true, false}, []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, "<xarray.DataArray (x: 2)>\narray([ True, False])", b.String())
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1."},
		{0.5, "0.5"},
		{-3, "-3."},
		{1e-9, "1e-09"},
		{math.NaN(), "nan"},
		{math.Inf(-1), "-inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in, 64))
	}
}

func TestMarshalJSON(t *testing.T) {
	da := newImage(t)

	data, err := json.Marshal(da)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "image", got["name"])
	assert.Equal(t, "float64", got["dtype"])
	assert.Equal(t, []any{"x", "y"}, got["dims"])
	assert.Equal(t, []any{[]any{0.0, 1.0}, []any{2.0, 3.0}}, got["data"])

	coords, ok := got["coords"].(map[string]any)
	require.True(t, ok)
	y, ok := coords["y"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "int64", y["dtype"])
	assert.Equal(t, []any{10.0, 20.0}, y["data"])
	assert.NotContains(t, y, "name")
}

func TestMarshalJSONNonFinite(t *testing.T) {
	da, err := New([]float64{math.NaN(), 1}, []string{"x"})
	require.NoError(t, err)

	data, err := json.Marshal(da)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dims":["x"],"dtype":"float64","data":[null,1]}`, string(data))
}

func TestStringAndJSONEmpty(t *testing.T) {
	raw, err := tensor.Zeros(tensor.Shape{0, 2}, tensor.Float64)
	require.NoError(t, err)
	da, err := FromRaw(raw, []string{"x", "y"})
	require.NoError(t, err)

	assert.Equal(t, "<xarray.DataArray (x: 0, y: 2)>\narray([], shape=(0, 2), dtype=float64)", da.String())

	data, err := json.Marshal(da)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dims": ["x", "y"], "dtype": "float64", "data": []}`, string(data))
}
