// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataclass declares data array classes: labeled-array factories
// with fixed dimension names, a data type, default coordinates and a named
// accessor namespace.
//
// # Overview
//
// A Definition describes the class. Compile validates it and returns a
// Class[A], where A is the accessor type whose methods become reachable on
// every array the class builds:
//
//	type Image struct{ *xarray.DataArray }
//
//	func (im Image) Normalize() (*xarray.DataArray, error) {
//	    m, err := im.Max()
//	    if err != nil {
//	        return nil, err
//	    }
//	    return im.Div(m)
//	}
//
//	var Images = dataclass.MustCompile(dataclass.Definition{
//	    Name:     "Image",
//	    Dims:     []string{"x", "y"},
//	    DType:    "float64",
//	    Accessor: "img",
//	    Coords: []dataclass.CoordSpec{
//	        dataclass.Coord("x", []string{"x"}, "int64", dataclass.Default(0)),
//	        dataclass.Coord("y", []string{"y"}, "int64", dataclass.Default(0)),
//	    },
//	}, func(da *xarray.DataArray) Image { return Image{da} })
//
// # Constructors
//
// New builds an instance from data; Ones, Zeros, Empty and Full build one
// from a shape. Omitted coordinates take their defaults, broadcast to the
// sizes of their dimensions.
//
//	da, err := Images.Ones([]int{2, 2}, dataclass.Coords{"x": []int{10, 20}})
//	im, err := dataclass.Access[Image](da, "img")
//	normalized, err := im.Normalize()
//
// # Inheritance
//
// Extend derives a class from another, inheriting dims, dtype, coordinates
// and the accessor name unless the child overrides them.
//
// # Errors
//
// Every error matches one of ErrSchema, ErrShape, ErrDType, ErrMissingCoord
// or ErrUnknownCoord with errors.Is, and is an *Error with errors.As.
package dataclass
