package xarray

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/born-ml/dataarray/internal/tensor"
)

// maxCoordValues is the number of coordinate values shown per line by String.
const maxCoordValues = 8

// String renders the array the way xarray prints a DataArray.
//
//	<xarray.DataArray (x: 2, y: 2)>
//	array([[0., 1.],
//	       [2., 3.]])
//	Coordinates:
//	  * x        (x) int64 0 1
//	  * y        (y) int64 0 1
func (da *DataArray) String() string {
	var b strings.Builder

	b.WriteString("<xarray.DataArray")
	if da.name != "" {
		fmt.Fprintf(&b, " %q", da.name)
	}
	sizes := make([]string, len(da.dims))
	for i, d := range da.dims {
		sizes[i] = fmt.Sprintf("%s: %d", d, da.raw.Shape()[i])
	}
	fmt.Fprintf(&b, " (%s)>\n", strings.Join(sizes, ", "))
	if da.raw.NumElements() == 0 {
		fmt.Fprintf(&b, "array([], shape=%v, dtype=%s)", da.raw.Shape(), da.DType())
	} else {
		b.WriteString("array(" + formatNested(formatValues(da.raw), da.raw.Shape(), 0) + ")")
	}

	if len(da.coords) > 0 {
		b.WriteString("\nCoordinates:")
		for _, c := range da.coords {
			marker := " "
			if da.IsIndex(c.name) {
				marker = "*"
			}
			values := formatValues(c.raw)
			if len(values) > maxCoordValues {
				values = append(values[:maxCoordValues], "...")
			}
			fmt.Fprintf(&b, "\n  %s %-8s (%s) %s %s", marker, c.name, strings.Join(c.dims, ", "), c.DType(), strings.Join(values, " "))
		}
	}

	if len(da.attrs) > 0 {
		b.WriteString("\nAttributes:")
		for _, k := range slices.Sorted(maps.Keys(da.attrs)) {
			fmt.Fprintf(&b, "\n    %-9s %v", k+":", da.attrs[k])
		}
	}
	return b.String()
}

// formatValues formats every element to a common width. Floats are aligned
// on the decimal point, other values are right-aligned.
func formatValues(raw *tensor.RawTensor) []string {
	out := make([]string, raw.NumElements())
	intWidth, fracWidth := 0, 0
	for i := range out {
		out[i] = formatScalar(raw.Value(i))
		whole, frac := splitDecimal(out[i])
		intWidth = max(intWidth, len(whole))
		fracWidth = max(fracWidth, len(frac))
	}
	for i, s := range out {
		whole, frac := splitDecimal(s)
		out[i] = strings.Repeat(" ", intWidth-len(whole)) + whole + frac + strings.Repeat(" ", fracWidth-len(frac))
	}
	return out
}

// splitDecimal splits s before its decimal point.
func splitDecimal(s string) (whole, frac string) {
	if i := strings.IndexByte(s, '.'); i >= 0 && !strings.ContainsAny(s, "e") {
		return s[:i], s[i:]
	}
	return s, ""
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "True"
		}
		return "False"
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	default:
		return fmt.Sprint(x)
	}
}

// formatFloat prints integral floats with a trailing dot, as NumPy does.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', 8, bits)
	if !strings.ContainsAny(s, ".e") {
		s += "."
	}
	return s
}

// formatNested lays values out as nested brackets following shape.
func formatNested(values []string, shape tensor.Shape, depth int) string {
	switch len(shape) {
	case 0:
		return strings.TrimSpace(values[0])
	case 1:
		return "[" + strings.Join(values, ", ") + "]"
	}

	step := len(values) / shape[0]
	rows := make([]string, shape[0])
	for i := range rows {
		rows[i] = formatNested(values[i*step:(i+1)*step], shape[1:], depth+1)
	}
	sep := "," + strings.Repeat("\n", len(shape)-1) + strings.Repeat(" ", len("array(")+depth+1)
	return "[" + strings.Join(rows, sep) + "]"
}

type jsonArray struct {
	Name   string               `json:"name,omitempty"`
	Dims   []string             `json:"dims"`
	DType  string               `json:"dtype"`
	Data   any                  `json:"data"`
	Coords map[string]jsonArray `json:"coords,omitempty"`
	Attrs  map[string]any       `json:"attrs,omitempty"`
}

// MarshalJSON encodes the array like xarray's to_dict: nested data lists,
// dims, dtype, coordinates and attributes. NaN and infinities become null.
func (da *DataArray) MarshalJSON() ([]byte, error) {
	return json.Marshal(da.toJSON())
}

func (da *DataArray) toJSON() jsonArray {
	out := jsonArray{
		Name:  da.name,
		Dims:  slices.Clone(da.dims),
		DType: da.DType().String(),
		Data:  nestedValues(da.raw, 0, da.raw.Shape()),
		Attrs: da.attrs,
	}
	if len(da.coords) > 0 {
		out.Coords = make(map[string]jsonArray, len(da.coords))
		for _, c := range da.coords {
			cj := c.toJSON()
			cj.Name = ""
			out.Coords[c.name] = cj
		}
	}
	return out
}

func nestedValues(raw *tensor.RawTensor, offset int, shape tensor.Shape) any {
	if len(shape) == 0 {
		v := raw.Value(offset)
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return nil
		}
		if f, ok := v.(float32); ok && (math.IsNaN(float64(f)) || math.IsInf(float64(f), 0)) {
			return nil
		}
		return v
	}

	step := shape[1:].NumElements()
	out := make([]any, shape[0])
	for i := range out {
		out[i] = nestedValues(raw, offset+i*step, shape[1:])
	}
	return out
}
