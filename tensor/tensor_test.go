// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/born-ml/dataarray/tensor"
)

// TestRawTensorAPI verifies RawTensor type alias exposes expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want (2, 3)", raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want float32", raw.DType())
	}
	if n := raw.NumElements(); n != 6 {
		t.Errorf("NumElements() = %d, want 6", n)
	}
	if n := raw.ByteSize(); n != 24 {
		t.Errorf("ByteSize() = %d, want 24", n)
	}
	if data := raw.AsFloat32(); len(data) != 6 {
		t.Errorf("AsFloat32() length = %d, want 6", len(data))
	}
}

// TestPublicOperations runs a broadcast division through the public API.
func TestPublicOperations(t *testing.T) {
	x, err := tensor.FromValue([][]int64{{2, 4}, {6, 8}})
	if err != nil {
		t.Fatalf("FromValue failed: %v", err)
	}
	m, err := tensor.Max(x)
	if err != nil {
		t.Fatalf("Max failed: %v", err)
	}
	y, err := tensor.Div(x, m)
	if err != nil {
		t.Fatalf("Div failed: %v", err)
	}

	if y.DType() != tensor.Float64 {
		t.Errorf("Div dtype = %v, want float64", y.DType())
	}
	want := []float64{0.25, 0.5, 0.75, 1}
	for i, v := range y.Float64s() {
		if v != want[i] {
			t.Errorf("y[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestParseDataType verifies NumPy-style names resolve through the public API.
func TestParseDataType(t *testing.T) {
	dt, err := tensor.ParseDataType("<f4")
	if err != nil || dt != tensor.Float32 {
		t.Errorf("ParseDataType(<f4) = %v, %v; want float32", dt, err)
	}

	if _, err := tensor.ParseDataType("complex64"); !errors.Is(err, tensor.ErrDType) {
		t.Errorf("ParseDataType(complex64) error = %v, want ErrDType", err)
	}
}
