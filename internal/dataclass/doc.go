package dataclass

import "strings"

const (
	docWidth   = 80
	halfIndent = "  "
	indent     = "    "
)

// Doc renders a plain-text summary of the class and its coordinates.
//
//	- desc: Image container.
//	- dims: (x, y)
//	- dtype: float64
//	- coords: x, y
//
//	Keyword Args:
//	    x: (dims: (x,), dtype: int64) No description.
//	    y: (dims: (y,), dtype: int64) No description.
func (s *Schema) Doc() string {
	summary := []string{
		"- desc: " + s.desc,
		"- dims: " + formatDims(s.dims),
		"- dtype: " + s.DTypeName(),
		strings.TrimRight("- coords: "+strings.Join(s.CoordNames(), ", "), " "),
	}

	var b strings.Builder
	for i, line := range summary {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(wrap(line, docWidth, halfIndent))
	}

	if len(s.coords) > 0 {
		b.WriteString("\n\nKeyword Args:")
		for _, c := range s.coords {
			dtype := "any"
			if c.typed {
				dtype = c.dtype.String()
			}
			entry := c.spec.Name + ": (dims: " + formatTuple(c.spec.Dims) + ", dtype: " + dtype + ") " + normalizeDesc(c.spec.Desc)
			for _, line := range strings.Split(wrap(entry, docWidth-len(indent), indent), "\n") {
				b.WriteString("\n" + indent + line)
			}
		}
	}
	return b.String()
}

// formatDims renders names as a tuple: "(x, y)".
func formatDims(names []string) string {
	return "(" + strings.Join(names, ", ") + ")"
}

// formatTuple is formatDims with a trailing comma for one element: "(x,)".
func formatTuple(names []string) string {
	if len(names) == 1 {
		return "(" + names[0] + ",)"
	}
	return formatDims(names)
}

// wrap breaks text into lines of at most width columns, prefixing every
// line but the first with indent. Words longer than a line are not split.
func wrap(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			b.WriteString(line + "\n")
			line = indent + w
			continue
		}
		line += " " + w
	}
	b.WriteString(line)
	return b.String()
}
