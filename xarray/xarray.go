// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package xarray provides labeled multi-dimensional arrays: tensors whose
// axes carry dimension names and whose values carry named coordinates.
//
// Arithmetic aligns operands by dimension name and keeps the receiver's
// coordinates:
//
//	da, _ := xarray.New([][]float64{{0, 1}, {2, 3}}, []string{"x", "y"})
//	m, _ := da.Max()
//	normalized, _ := da.Div(m)
//
// Accessor namespaces registered with RegisterAccessor are reachable from
// every array through DataArray.Accessor.
package xarray

import (
	"github.com/rs/zerolog"

	"github.com/born-ml/dataarray/internal/tensor"
	"github.com/born-ml/dataarray/internal/xarray"
)

// DataArray is a tensor with named dimensions and coordinates.
type DataArray = xarray.DataArray

// Option configures a DataArray at construction.
type Option = xarray.Option

// Binder builds accessor namespaces for arrays.
type Binder = xarray.Binder

// Errors.
var (
	ErrDims       = xarray.ErrDims
	ErrCoord      = xarray.ErrCoord
	ErrNoAccessor = xarray.ErrNoAccessor
)

// New creates a DataArray from data with dimension names attached positionally.
//
// Example:
//
//	da, err := xarray.New([][]float64{{0, 1}, {2, 3}}, []string{"x", "y"}, xarray.WithName("image"))
func New(data any, dims []string, opts ...Option) (*DataArray, error) {
	return xarray.New(data, dims, opts...)
}

// FromRaw wraps raw without copying it.
func FromRaw(raw *tensor.RawTensor, dims []string, opts ...Option) (*DataArray, error) {
	return xarray.FromRaw(raw, dims, opts...)
}

// WithName sets the array name.
func WithName(name string) Option { return xarray.WithName(name) }

// WithAttrs sets the array attributes.
func WithAttrs(attrs map[string]any) Option { return xarray.WithAttrs(attrs) }

// WithOwner records the binder that built the array.
func WithOwner(owner Binder) Option { return xarray.WithOwner(owner) }

// RegisterAccessor makes b reachable by its accessor name on every DataArray.
func RegisterAccessor(b Binder) { xarray.RegisterAccessor(b) }

// UnregisterAccessor removes b from the accessor registry.
func UnregisterAccessor(b Binder) { xarray.UnregisterAccessor(b) }

// Accessors lists the registered accessor names.
func Accessors() []string { return xarray.Accessors() }

// SetLogger sets the logger used for accessor registration events.
func SetLogger(logger zerolog.Logger) { xarray.SetLogger(logger) }
