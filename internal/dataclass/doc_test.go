package dataclass

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoc(t *testing.T) {
	def := imageDefinition()
	def.Coords[0].Desc = "Pixel column."
	s, err := newSchema(def, nil)
	require.NoError(t, err)

	want := strings.Join([]string{
		"- desc: Image container.",
		"- dims: (x, y)",
		"- dtype: float64",
		"- coords: x, y",
		"",
		"Keyword Args:",
		"    x: (dims: (x,), dtype: int64) Pixel column.",
		"    y: (dims: (y,), dtype: int64) No description.",
	}, "\n")
	assert.Equal(t, want, s.Doc())
}

func TestDocWithoutCoordinates(t *testing.T) {
	s, err := newSchema(Definition{Name: "Bare", Dims: []string{"t"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "- desc: No description.\n- dims: (t)\n- dtype: any\n- coords:", s.Doc())
}

func TestDocWrapsLongLines(t *testing.T) {
	desc := strings.Repeat("lorem ipsum ", 20)
	s, err := newSchema(Definition{
		Dims:   []string{"x"},
		Desc:   desc,
		Coords: []CoordSpec{Coord("x", []string{"x"}, "", Desc(desc))},
	}, nil)
	require.NoError(t, err)

	lines := strings.Split(s.Doc(), "\n")
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), docWidth, line)
	}
	assert.Regexp(t, `^  [a-z]`, lines[1])

	args := slices.Index(lines, "Keyword Args:")
	require.Positive(t, args)
	assert.Regexp(t, `^    x: `, lines[args+1])
	assert.Regexp(t, `^        [a-z]`, lines[args+2])
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "", wrap("   ", 10, "  "))
	assert.Equal(t, "one two", wrap("one   two", 10, "  "))
	assert.Equal(t, "one two\n  three", wrap("one two three", 10, "  "))
	assert.Equal(t, "a\n  verylongword", wrap("a verylongword", 5, "  "))
}
