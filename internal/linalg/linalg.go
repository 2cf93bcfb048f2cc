// Package linalg exposes array views as gonum matrices and vectors without
// copying.
//
// The returned gonum values alias the array's storage: writes through either
// are visible through the other. They do not hold a reference, so the array
// must stay alive while they are in use.
package linalg

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/core"
)

// ErrLayout is returned for views whose strides gonum cannot represent.
var ErrLayout = errors.New("layout not representable")

// AsDense returns a matrix over a 2-D view. The last dimension must have
// stride 1 and the rows must not overlap.
func AsDense(a array.Array[float64]) (*mat.Dense, error) {
	rows, cols, stride, err := matrixLayout(a.ND(), a.Shape(), a.Strides(), a.IsEmpty())
	if err != nil {
		return nil, err
	}
	var m mat.Dense
	m.SetRawMatrix(blas64.General{
		Rows:   rows,
		Cols:   cols,
		Stride: stride,
		Data:   a.Data()[a.Offset():],
	})
	return &m, nil
}

// AsCDense returns a complex matrix over a 2-D view, under the same layout
// rules as AsDense.
func AsCDense(a array.Array[complex128]) (*mat.CDense, error) {
	rows, cols, stride, err := matrixLayout(a.ND(), a.Shape(), a.Strides(), a.IsEmpty())
	if err != nil {
		return nil, err
	}
	var m mat.CDense
	m.SetRawCMatrix(cblas128.General{
		Rows:   rows,
		Cols:   cols,
		Stride: stride,
		Data:   a.Data()[a.Offset():],
	})
	return &m, nil
}

// AsVector returns a vector over a 1-D view with a positive stride.
func AsVector(a array.Array[float64]) (*mat.VecDense, error) {
	if a.ND() != 1 {
		return nil, core.Errorf(core.ErrDimensionMismatch, "vector needs 1 dimension, got %d", a.ND())
	}
	if a.IsEmpty() || a.Size(0) == 0 {
		return nil, errors.Wrap(ErrLayout, "empty vector")
	}
	if a.Stride(0) <= 0 {
		return nil, errors.Wrapf(ErrLayout, "vector stride %d", a.Stride(0))
	}
	var v mat.VecDense
	v.SetRawVector(blas64.Vector{
		N:    a.Size(0),
		Inc:  a.Stride(0),
		Data: a.Data()[a.Offset():],
	})
	return &v, nil
}

func matrixLayout(nd int, shape, strides []int, empty bool) (rows, cols, stride int, err error) {
	if nd != 2 {
		return 0, 0, 0, core.Errorf(core.ErrDimensionMismatch, "matrix needs 2 dimensions, got %d", nd)
	}
	rows, cols, stride = shape[0], shape[1], strides[0]
	switch {
	case empty || rows == 0 || cols == 0:
		return 0, 0, 0, errors.Wrapf(ErrLayout, "empty %dx%d matrix", rows, cols)
	case strides[1] != 1 && cols > 1:
		return 0, 0, 0, errors.Wrapf(ErrLayout, "column stride %d", strides[1])
	case rows > 1 && stride < cols:
		return 0, 0, 0, errors.Wrapf(ErrLayout, "row stride %d for %d columns", stride, cols)
	}
	if rows == 1 {
		// Gonum ignores the stride of a single row but still requires it
		// to cover the row.
		stride = max(stride, cols)
	}
	return rows, cols, stride, nil
}

// FromDense returns a view over the storage of m. The view has no manager;
// m's storage is kept by the garbage collector.
func FromDense(m *mat.Dense) array.Array[float64] {
	raw := m.RawMatrix()
	a, err := array.External(raw.Data, []int{raw.Rows, raw.Cols}, []int{raw.Stride, 1}, nil)
	if err != nil {
		panic(err) // Shape and strides have the same length
	}
	return a
}

// FromVector returns a view over the storage of v.
func FromVector(v *mat.VecDense) array.Array[float64] {
	raw := v.RawVector()
	a, err := array.External(raw.Data, []int{raw.N}, []int{raw.Inc}, nil)
	if err != nil {
		panic(err)
	}
	return a
}
