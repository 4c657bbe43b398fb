// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dataclass_test

import (
	"fmt"

	"github.com/born-ml/dataarray/dataclass"
	"github.com/born-ml/dataarray/xarray"
)

type Image struct {
	*xarray.DataArray
}

func (im Image) Normalize() (*xarray.DataArray, error) {
	m, err := im.Max()
	if err != nil {
		return nil, err
	}
	return im.Div(m)
}

var images = dataclass.MustCompile(dataclass.Definition{
	Name:     "Image",
	Dims:     []string{"x", "y"},
	DType:    "float64",
	Accessor: "img",
	Desc:     "DataArray class to represent images.",
	Coords: []dataclass.CoordSpec{
		dataclass.Coord("x", []string{"x"}, "int64", dataclass.Default(0)),
		dataclass.Coord("y", []string{"y"}, "int64", dataclass.Default(0)),
	},
}, func(da *xarray.DataArray) Image { return Image{da} })

func Example() {
	da, err := images.New([][]int{{0, 1}, {2, 3}}, dataclass.Coords{"x": []int{0, 1}})
	if err != nil {
		panic(err)
	}

	im, err := dataclass.Access[Image](da, "img")
	if err != nil {
		panic(err)
	}
	normalized, err := im.Normalize()
	if err != nil {
		panic(err)
	}
	fmt.Println(normalized)
	// Output:
	// <xarray.DataArray (x: 2, y: 2)>
	// array([[0.        , 0.33333333],
	//        [0.66666667, 1.        ]])
	// Coordinates:
	//   * x        (x) int64 0 1
	//   * y        (y) int64 0 0
}

func ExampleClass_Ones() {
	da, err := images.Ones([]int{1, 3}, dataclass.Coords{"y": []int{10, 20, 30}})
	if err != nil {
		panic(err)
	}
	fmt.Println(da.Dims(), da.DType(), da.Float64s())
	// Output:
	// [x y] float64 [1 1 1]
}

func ExampleSchema_Doc() {
	fmt.Println(images.Schema().Doc())
	// Output:
	// - desc: DataArray class to represent images.
	// - dims: (x, y)
	// - dtype: float64
	// - coords: x, y
	//
	// Keyword Args:
	//     x: (dims: (x,), dtype: int64) No description.
	//     y: (dims: (y,), dtype: int64) No description.
}
