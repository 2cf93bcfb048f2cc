// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg converts array views to and from gonum matrices without
// copying.
//
// Example:
//
//	a := array.Allocate[float64](3, 3)
//	m, err := linalg.AsDense(a)
//	if err != nil {
//	    return err
//	}
//	var inv mat.Dense
//	err = inv.Inverse(m)
package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ndarray/array"
	"github.com/born-ml/ndarray/internal/linalg"
)

// ErrLayout is returned for views whose strides gonum cannot represent.
var ErrLayout = linalg.ErrLayout

// AsDense returns a matrix aliasing a 2-D view with unit column stride.
func AsDense(a array.Array[float64]) (*mat.Dense, error) { return linalg.AsDense(a) }

// AsCDense returns a complex matrix aliasing a 2-D view with unit column stride.
func AsCDense(a array.Array[complex128]) (*mat.CDense, error) { return linalg.AsCDense(a) }

// AsVector returns a vector aliasing a 1-D view with a positive stride.
func AsVector(a array.Array[float64]) (*mat.VecDense, error) { return linalg.AsVector(a) }

// FromDense returns a view over the storage of m.
func FromDense(m *mat.Dense) array.Array[float64] { return linalg.FromDense(m) }

// FromVector returns a view over the storage of v.
func FromVector(v *mat.VecDense) array.Array[float64] { return linalg.FromVector(v) }
