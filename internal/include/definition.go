package include

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/born-ml/dataarray/internal/dataclass"
)

var (
	classKeys = []string{"name", "dims", "dtype", "desc", "accessor", "fill_value", "strict", "coords"}
	coordKeys = []string{"dims", "dtype", "desc", "default"}
)

// definitionOf converts a decoded document. order lists coordinate names in
// document order; names missing from it follow in sorted order.
func definitionOf(doc map[string]any, order []string) (dataclass.Definition, error) {
	var def dataclass.Definition
	if doc == nil {
		return def, fmt.Errorf("%w: empty document", ErrDefinition)
	}
	if err := checkKeys(doc, classKeys, ""); err != nil {
		return def, err
	}

	var err error
	if def.Name, err = stringField(doc, "name"); err != nil {
		return def, err
	}
	if def.DType, err = stringField(doc, "dtype"); err != nil {
		return def, err
	}
	if def.Desc, err = stringField(doc, "desc"); err != nil {
		return def, err
	}
	if def.Accessor, err = stringField(doc, "accessor"); err != nil {
		return def, err
	}
	if def.Dims, err = dimsField(doc, "dims", "dims"); err != nil {
		return def, err
	}
	if v, ok := doc["fill_value"]; ok {
		def.FillValue = normalize(v)
	}
	if def.Strict, err = strictField(doc); err != nil {
		return def, err
	}

	raw, ok := doc["coords"]
	if !ok {
		return def, nil
	}
	coords, ok := raw.(map[string]any)
	if !ok {
		return def, fmt.Errorf("%w: coords must be a table, got %T", ErrDefinition, raw)
	}

	names := slices.Clone(order)
	for _, name := range slices.Sorted(maps.Keys(coords)) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	for _, name := range names {
		spec, err := coordOf(name, coords[name])
		if err != nil {
			return def, err
		}
		def.Coords = append(def.Coords, spec)
	}
	return def, nil
}

func coordOf(name string, v any) (dataclass.CoordSpec, error) {
	spec := dataclass.CoordSpec{Name: name}
	fields, ok := v.(map[string]any)
	if !ok {
		return spec, fmt.Errorf("%w: coordinate %q must be a table, got %T", ErrDefinition, name, v)
	}
	if err := checkKeys(fields, coordKeys, "coords."+name+"."); err != nil {
		return spec, err
	}

	var err error
	if spec.Dims, err = dimsField(fields, "dims", "coords."+name+".dims"); err != nil {
		return spec, err
	}
	if spec.DType, err = stringField(fields, "dtype"); err != nil {
		return spec, err
	}
	if spec.Desc, err = stringField(fields, "desc"); err != nil {
		return spec, err
	}
	if d, ok := fields["default"]; ok {
		spec.Default = normalize(d)
	}
	return spec, nil
}

func checkKeys(m map[string]any, known []string, prefix string) error {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if !slices.Contains(known, k) {
			return fmt.Errorf("%w: unknown key %q", ErrDefinition, prefix+k)
		}
	}
	return nil
}

func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrDefinition, key, v)
	}
	return s, nil
}

// dimsField accepts a single name or a list of names.
func dimsField(m map[string]any, key, path string) ([]string, error) {
	switch v := m[key].(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		dims := make([]string, len(v))
		for i, d := range v {
			s, ok := d.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be a string, got %T", ErrDefinition, path, i, d)
			}
			dims[i] = s
		}
		return dims, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a string or a list of strings, got %T", ErrDefinition, path, v)
	}
}

func strictField(doc map[string]any) (dataclass.Strict, error) {
	var strict dataclass.Strict
	raw, ok := doc["strict"]
	if !ok {
		return strict, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return strict, fmt.Errorf("%w: strict must be a table, got %T", ErrDefinition, raw)
	}
	if err := checkKeys(m, []string{"dims", "dtype"}, "strict."); err != nil {
		return strict, err
	}
	for key, dst := range map[string]*bool{"dims": &strict.Dims, "dtype": &strict.DType} {
		v, ok := m[key]
		if !ok {
			continue
		}
		b, ok := v.(bool)
		if !ok {
			return strict, fmt.Errorf("%w: strict.%s must be a boolean, got %T", ErrDefinition, key, v)
		}
		*dst = b
	}
	return strict, nil
}

// normalize maps the numeric types of the three decoders onto int64 and
// float64 so that equal documents decode to equal definitions.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case int:
		return int64(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	default:
		return v
	}
}
