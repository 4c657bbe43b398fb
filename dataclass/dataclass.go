// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dataclass

import (
	"github.com/born-ml/dataarray/internal/dataclass"
	"github.com/born-ml/dataarray/internal/xarray"
)

// Definition declares a data array class.
type Definition = dataclass.Definition

// Strict selects which attributes a child class must keep equal to its parent's.
type Strict = dataclass.Strict

// CoordSpec declares one coordinate of a class.
type CoordSpec = dataclass.CoordSpec

// CoordOption configures a CoordSpec.
type CoordOption = dataclass.CoordOption

// Schema is the compiled, immutable form of a Definition.
type Schema = dataclass.Schema

// Class is a compiled data array class whose accessor namespace has type A.
type Class[A any] = dataclass.Class[A]

// Coords maps coordinate names to values given at construction.
type Coords = dataclass.Coords

// Option configures instance construction.
type Option = dataclass.Option

// Error provides detailed information about a failed definition or construction.
type Error = dataclass.Error

// Error kinds.
var (
	ErrSchema       = dataclass.ErrSchema
	ErrShape        = dataclass.ErrShape
	ErrDType        = dataclass.ErrDType
	ErrMissingCoord = dataclass.ErrMissingCoord
	ErrUnknownCoord = dataclass.ErrUnknownCoord
)

// Coord declares a coordinate called name over dims.
func Coord(name string, dims []string, dtype string, opts ...CoordOption) CoordSpec {
	return dataclass.Coord(name, dims, dtype, opts...)
}

// Default sets the value used when a coordinate is omitted.
func Default(value any) CoordOption { return dataclass.Default(value) }

// Desc sets the coordinate description.
func Desc(desc string) CoordOption { return dataclass.Desc(desc) }

// Compile validates def and returns the class it declares.
func Compile[A any](def Definition, bind func(*xarray.DataArray) A) (*Class[A], error) {
	return dataclass.Compile(def, bind)
}

// MustCompile is like Compile but panics on error.
func MustCompile[A any](def Definition, bind func(*xarray.DataArray) A) *Class[A] {
	return dataclass.MustCompile(def, bind)
}

// Define compiles a class whose accessor namespace is the array itself.
func Define(def Definition) (*Class[*xarray.DataArray], error) {
	return dataclass.Define(def)
}

// Extend derives a child class from parent.
func Extend[P, A any](parent *Class[P], def Definition, bind func(*xarray.DataArray) A) (*Class[A], error) {
	return dataclass.Extend(parent, def, bind)
}

// Validate reports whether def compiles, without registering a class.
func Validate(def Definition) error {
	return dataclass.Validate(def)
}

// Access returns the accessor namespace called name bound to da, typed as A.
func Access[A any](da *xarray.DataArray, name string) (A, error) {
	return dataclass.Access[A](da, name)
}

// WithName sets the name of the built array.
func WithName(name string) Option { return dataclass.WithName(name) }

// WithAttrs sets the attributes of the built array.
func WithAttrs(attrs map[string]any) Option { return dataclass.WithAttrs(attrs) }

// WithDType sets the element type for classes that declare none.
func WithDType(dtype string) Option { return dataclass.WithDType(dtype) }
