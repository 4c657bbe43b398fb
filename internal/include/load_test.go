package include

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dataarray/internal/dataclass"
)

const imageJSON = `{
  "dims": ["x", "y"],
  "dtype": "float",
  "desc": "DataArray class to represent images.",
  "accessor": "img",
  "fill_value": 0,
  "coords": {
    "y": {"dims": "y", "dtype": "int", "default": 0},
    "x": {"dims": ["x"], "dtype": "int", "default": 0}
  }
}
`

const imageTOML = `
dims = ["x", "y"]
dtype = "float"
desc = "DataArray class to represent images."
accessor = "img"
fill_value = 0

[coords.y]
dims = "y"
dtype = "int"
default = 0

[coords.x]
dims = ["x"]
dtype = "int"
default = 0
`

const imageYAML = `
dims: [x, y]
dtype: float
desc: DataArray class to represent images.
accessor: img
fill_value: 0
coords:
  y:
    dims: y
    dtype: int
    default: 0
  x:
    dims: [x]
    dtype: int
    default: 0
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func imageDefinition() dataclass.Definition {
	return dataclass.Definition{
		Name:      "image",
		Dims:      []string{"x", "y"},
		DType:     "float",
		Desc:      "DataArray class to represent images.",
		Accessor:  "img",
		FillValue: int64(0),
		Coords: []dataclass.CoordSpec{
			{Name: "y", Dims: []string{"y"}, DType: "int", Default: int64(0)},
			{Name: "x", Dims: []string{"x"}, DType: "int", Default: int64(0)},
		},
	}
}

func TestLoadFormatsAgree(t *testing.T) {
	files := map[string]string{
		"image.json": imageJSON,
		"image.toml": imageTOML,
		"image.yaml": imageYAML,
		"image.yml":  imageYAML,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			def, err := Load(writeFile(t, name, content))
			require.NoError(t, err)
			assert.Equal(t, imageDefinition(), def)
			assert.NoError(t, dataclass.Validate(def))
		})
	}
}

func TestLoadedDefinitionCompiles(t *testing.T) {
	def, err := Load(writeFile(t, "image.yaml", imageYAML))
	require.NoError(t, err)
	def.Accessor = ""

	images, err := dataclass.Define(def)
	require.NoError(t, err)
	t.Cleanup(images.Unregister)

	da, err := images.Zeros([]int{2, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, da.Dims())
	assert.Equal(t, []string{"y", "x"}, da.CoordNames())
	assert.Equal(t, "float64", da.DType().String())
}

func TestLoadNameAndStrict(t *testing.T) {
	path := writeFile(t, "cube.yaml", `
name: SpectralCube
dims: [x, y, ch]
strict:
  dims: true
  dtype: false
`)
	def, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "SpectralCube", def.Name)
	assert.Equal(t, dataclass.Strict{Dims: true}, def.Strict)
	assert.Empty(t, def.Coords)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("IMAGE_DTYPE", "float32")
	def, err := Load(writeFile(t, "image.toml", `dims = "x"`+"\n"+`dtype = "${IMAGE_DTYPE}"`))
	require.NoError(t, err)
	assert.Equal(t, "float32", def.DType)
	assert.Equal(t, []string{"x"}, def.Dims)
}

func TestLoadArrayDefault(t *testing.T) {
	def, err := Load(writeFile(t, "grid.json", `{
  "dims": ["x", "y"],
  "coords": {"w": {"dims": ["x", "y"], "default": [[1, 2.5]]}}
}`))
	require.NoError(t, err)
	require.Len(t, def.Coords, 1)
	assert.Equal(t, []any{[]any{int64(1), 2.5}}, def.Coords[0].Default)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{"unknown extension", "image.ini", "dims = x", ErrFormat},
		{"syntax error", "image.json", `{"dims": [`, ErrDefinition},
		{"empty document", "image.yaml", "", ErrDefinition},
		{"unknown key", "image.yaml", "dims: [x]\ndimensions: [y]\n", ErrDefinition},
		{"unknown coordinate key", "image.yaml", "coords:\n  x:\n    size: 3\n", ErrDefinition},
		{"dims of wrong type", "image.json", `{"dims": 3}`, ErrDefinition},
		{"dim name of wrong type", "image.json", `{"dims": ["x", 1]}`, ErrDefinition},
		{"dtype of wrong type", "image.toml", "dtype = 1", ErrDefinition},
		{"coords not a table", "image.json", `{"coords": ["x"]}`, ErrDefinition},
		{"coordinate not a table", "image.json", `{"coords": {"x": "x"}}`, ErrDefinition},
		{"strict not boolean", "image.yaml", "strict:\n  dims: yes please\n", ErrDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestDecodeUnknownFormat(t *testing.T) {
	_, err := Decode([]byte("{}"), Format(7))
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, "Format(7)", Format(7).String())
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]Format{
		"a.json":        JSON,
		"dir/b.TOML":    TOML,
		"c.yaml":        YAML,
		"/abs/path.yml": YAML,
	} {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandHome("~/defs/image.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "defs", "image.yaml"), got)

	got, err = expandHome("relative/~/image.yaml")
	require.NoError(t, err)
	assert.Equal(t, "relative/~/image.yaml", got)
}

func TestDecodeValue(t *testing.T) {
	v, err := DecodeValue([]byte(`[[0, 1], [2.5, -3]]`))
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{int64(0), int64(1)}, []any{2.5, int64(-3)}}, v)

	v, err = DecodeValue([]byte(`true`))
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = DecodeValue([]byte(`[1, 2`))
	assert.Error(t, err)

	_, err = DecodeValue([]byte(`[1] [2]`))
	assert.Error(t, err)
}
