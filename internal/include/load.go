// Package include reads data array class definitions from JSON, TOML and
// YAML files and keeps them up to date as the files change.
package include

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/dataarray/internal/dataclass"
)

// Common errors.
var (
	ErrFormat     = errors.New("include: unsupported file format")
	ErrDefinition = errors.New("include: invalid definition")
)

// Format is a definition file format.
type Format int

// Supported formats.
const (
	JSON Format = iota
	TOML
	YAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrFormat, filepath.Base(path))
	}
}

// Load reads the definition in path. A leading "~" is expanded to the home
// directory and ${VAR} references in the file are expanded from the
// environment. The class name defaults to the file name without extension.
//
// Recognised keys:
//
//	name, dims, dtype, desc, accessor, fill_value
//	strict.dims, strict.dtype
//	coords.<name>.dims, coords.<name>.dtype, coords.<name>.desc, coords.<name>.default
//
// A dims value may be a single string or a list of strings.
func Load(path string) (dataclass.Definition, error) {
	path, err := expandHome(path)
	if err != nil {
		return dataclass.Definition{}, err
	}

	format, err := FormatOf(path)
	if err != nil {
		return dataclass.Definition{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return dataclass.Definition{}, fmt.Errorf("read definition: %w", err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	def, err := Decode(data, format)
	if err != nil {
		return dataclass.Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// Decode parses a definition in the given format. Coordinates keep the
// order in which they appear in the document.
func Decode(data []byte, format Format) (dataclass.Definition, error) {
	var (
		doc   map[string]any
		order []string
		err   error
	)
	switch format {
	case JSON:
		doc, order, err = decodeJSON(data)
	case TOML:
		doc, order, err = decodeTOML(data)
	case YAML:
		doc, order, err = decodeYAML(data)
	default:
		return dataclass.Definition{}, fmt.Errorf("%w: %v", ErrFormat, format)
	}
	if err != nil {
		return dataclass.Definition{}, fmt.Errorf("%w: %w", ErrDefinition, err)
	}
	return definitionOf(doc, order)
}

// DecodeValue parses a JSON value such as array data or a coordinate.
// Integral numbers become int64 and other numbers float64, so that
// "[[0, 1], [2, 3]]" decodes to integers.
func DecodeValue(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse json: unexpected data after the value")
	}
	return normalize(v), nil
}

func decodeJSON(data []byte) (map[string]any, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("parse json: %w", err)
	}

	order, err := jsonCoordOrder(data)
	if err != nil {
		return nil, nil, fmt.Errorf("parse json: %w", err)
	}
	return doc, order, nil
}

// jsonCoordOrder returns the keys of the top-level "coords" object in document order.
func jsonCoordOrder(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if key != "coords" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}

		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if tok != json.Delim('{') {
			return nil, nil
		}

		var keys []string
		for dec.More() {
			k, err := dec.Token()
			if err != nil {
				return nil, err
			}
			keys = append(keys, fmt.Sprint(k))
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
		return keys, nil
	}
	return nil, nil
}

func decodeTOML(data []byte) (map[string]any, []string, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, nil, fmt.Errorf("parse toml: %w", err)
	}

	var order []string
	for _, key := range md.Keys() {
		if len(key) == 2 && key[0] == "coords" {
			order = append(order, key[1])
		}
	}
	return doc, order, nil
}

func decodeYAML(data []byte) (map[string]any, []string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, fmt.Errorf("parse yaml: %w", err)
	}

	if root.Kind == 0 {
		return nil, nil, nil
	}

	var doc map[string]any
	if err := root.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("parse yaml: %w", err)
	}

	var order []string
	if len(root.Content) == 1 && root.Content[0].Kind == yaml.MappingNode {
		top := root.Content[0].Content
		for i := 0; i+1 < len(top); i += 2 {
			if top[i].Value != "coords" || top[i+1].Kind != yaml.MappingNode {
				continue
			}
			coords := top[i+1].Content
			for j := 0; j+1 < len(coords); j += 2 {
				order = append(order, coords[j].Value)
			}
		}
	}
	return doc, order, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
