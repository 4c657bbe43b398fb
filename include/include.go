// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package include reads data array class definitions from JSON, TOML and
// YAML files.
//
// A definition written in image.toml:
//
//	dims = ["x", "y"]
//	dtype = "float"
//	desc = "DataArray class to represent images."
//	accessor = "img"
//
//	[coords.x]
//	dims = "x"
//	dtype = "int"
//	default = 0
//
// compiles like one written in Go:
//
//	def, err := include.Load("image.toml")
//	images, err := dataclass.Compile(def, bindImage)
//
// A Watcher keeps a definition current while its file is edited.
package include

import (
	"github.com/rs/zerolog"

	"github.com/born-ml/dataarray/internal/dataclass"
	"github.com/born-ml/dataarray/internal/include"
)

// Format is a definition file format.
type Format = include.Format

// Supported formats.
const (
	JSON = include.JSON
	TOML = include.TOML
	YAML = include.YAML
)

// Watcher holds the latest valid definition from a file and reloads it on change.
type Watcher = include.Watcher

// Errors.
var (
	ErrFormat     = include.ErrFormat
	ErrDefinition = include.ErrDefinition
	ErrStopped    = include.ErrStopped
)

// Load reads the definition in path; the format follows the extension.
func Load(path string) (dataclass.Definition, error) {
	return include.Load(path)
}

// Decode parses a definition in the given format.
func Decode(data []byte, format Format) (dataclass.Definition, error) {
	return include.Decode(data, format)
}

// DecodeValue parses a JSON value, keeping integral numbers as int64.
func DecodeValue(data []byte) (any, error) {
	return include.DecodeValue(data)
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	return include.FormatOf(path)
}

// NewWatcher loads and validates the definition in path.
func NewWatcher(path string, logger zerolog.Logger) (*Watcher, error) {
	return include.NewWatcher(path, logger)
}
