package linalg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/core"
)

func arange(shape ...int) array.Array[float64] {
	a := array.Allocate[float64](shape...)
	for i := range a.Data() {
		a.Data()[i] = float64(i)
	}
	return a
}

func TestAsDenseAliasesStorage(t *testing.T) {
	a := arange(3, 4)
	defer a.Release()

	m, err := AsDense(a)
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, 6.0, m.At(1, 2))

	m.Set(2, 3, -1)
	assert.Equal(t, -1.0, a.At(2, 3))
	a.Set(7, 0, 0)
	assert.Equal(t, 7.0, m.At(0, 0))
}

func TestAsDenseOfView(t *testing.T) {
	a := arange(4, 5)
	defer a.Release()

	v := a.View(array.Range(1, 3), array.Range(2, 5))
	defer v.Release()

	m, err := AsDense(v)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 5, m.RawMatrix().Stride)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, v.At(i, j), m.At(i, j))
		}
	}

	// BLAS writes land in the parent.
	var out mat.Dense
	out.Mul(m, mat.NewDense(3, 1, []float64{1, 1, 1}))
	assert.Equal(t, a.At(1, 2)+a.At(1, 3)+a.At(1, 4), out.At(0, 0))
	m.Scale(2, m)
	assert.Equal(t, 2*13.0, a.At(2, 3))
}

func TestAsDenseRejectsLayouts(t *testing.T) {
	a := arange(3, 4)
	defer a.Release()

	tr := a.Transpose()
	defer tr.Release()
	_, err := AsDense(tr)
	assert.ErrorIs(t, err, ErrLayout)

	rev := a.View(array.Slice(2, -1, -1))
	defer rev.Release()
	_, err = AsDense(rev)
	assert.ErrorIs(t, err, ErrLayout)

	row := a.Sub(0)
	defer row.Release()
	_, err = AsDense(row)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)

	empty := array.Allocate[float64](0, 4)
	defer empty.Release()
	_, err = AsDense(empty)
	assert.ErrorIs(t, err, ErrLayout)
}

func TestAsDenseSingleColumn(t *testing.T) {
	a := arange(3, 4)
	defer a.Release()

	col := a.View(array.All(), array.Range(1, 2))
	defer col.Release()
	m, err := AsDense(col)
	require.NoError(t, err)
	assert.Equal(t, 9.0, m.At(2, 0))
}

func TestAsVector(t *testing.T) {
	a := arange(3, 4)
	defer a.Release()

	col := a.View(array.All(), array.Index(2))
	defer col.Release()

	v, err := AsVector(col)
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, 10.0, v.AtVec(2))
	assert.Equal(t, 4, v.RawVector().Inc)

	v.SetVec(0, 100)
	assert.Equal(t, 100.0, a.At(0, 2))
	assert.Equal(t, 116.0, mat.Sum(v))

	rev := col.View(array.Slice(2, -1, -1))
	defer rev.Release()
	_, err = AsVector(rev)
	assert.ErrorIs(t, err, ErrLayout)

	_, err = AsVector(a)
	assert.ErrorIs(t, err, core.ErrDimensionMismatch)
}

func TestAsCDense(t *testing.T) {
	a := array.Allocate[complex128](2, 2)
	defer a.Release()
	a.Set(complex(1, 2), 0, 1)

	m, err := AsCDense(a)
	require.NoError(t, err)
	assert.Equal(t, complex(1, 2), m.At(0, 1))

	m.Set(1, 0, complex(0, -1))
	assert.Equal(t, complex(0, -1), a.At(1, 0))

	tr := a.Transpose()
	defer tr.Release()
	_, err = AsCDense(tr)
	assert.ErrorIs(t, err, ErrLayout)
}

func TestFromDense(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	a := FromDense(m)
	defer a.Release()
	assert.Equal(t, []int{2, 3}, a.Shape())
	assert.Equal(t, []int{3, 1}, a.Strides())
	assert.Equal(t, 2, a.RMC())
	assert.Nil(t, a.Manager())
	assert.Equal(t, 6.0, a.At(1, 2))

	a.Set(-4, 1, 0)
	assert.Equal(t, -4.0, m.At(1, 0))

	// Slices of a gonum matrix keep the parent stride.
	s := m.Slice(0, 2, 1, 3).(*mat.Dense)
	b := FromDense(s)
	defer b.Release()
	assert.Equal(t, []int{2, 2}, b.Shape())
	assert.Equal(t, []int{3, 1}, b.Strides())
	assert.Equal(t, 6.0, b.At(1, 1))
}

func TestFromVector(t *testing.T) {
	v := mat.NewVecDense(4, []float64{1, 2, 3, 4})

	a := FromVector(v)
	defer a.Release()
	assert.Equal(t, []int{4}, a.Shape())
	assert.Equal(t, 3.0, a.At(2))

	back, err := AsVector(a)
	require.NoError(t, err)
	assert.True(t, mat.Equal(v, back))
}
