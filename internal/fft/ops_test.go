package fft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/core"
)

// roundTrip transforms x forward, applies op in Fourier space and returns the
// normalized inverse transform.
func roundTrip(t *testing.T, x array.Array[float64], op func(k array.Array[complex128])) array.Array[float64] {
	t.Helper()
	shape := x.Shape()
	var k array.Array[complex128]
	defer k.Release()
	var y array.Array[float64]

	fwd, err := PlanForward(shape, &x, &k)
	require.NoError(t, err)
	defer fwd.Destroy()
	inv, err := PlanInverse(shape, &k, &y)
	require.NoError(t, err)
	defer inv.Destroy()

	fwd.Execute()
	op(k)
	inv.Execute()

	n := float64(x.NumElements())
	y.EachPtr(func(p *float64) { *p /= n })
	return y
}

func TestShiftTranslates(t *testing.T) {
	shape := []int{4, 6}
	x := InitializeX(shape)
	defer x.Release()
	fill(x, pseudoRandom)

	y := roundTrip(t, x, func(k array.Array[complex128]) {
		Shift([]float64{1, 2}, k, shape[1])
	})
	defer y.Release()

	y.Each(func(index []int, v float64) {
		i := (index[0] - 1 + 4) % 4
		j := (index[1] - 2 + 6) % 6
		assert.InDelta(t, x.At(i, j), v, tol, "at %v", index)
	})
}

func TestShiftOddLength(t *testing.T) {
	x := InitializeX([]int{5})
	defer x.Release()
	fill(x, pseudoRandom)

	y := roundTrip(t, x, func(k array.Array[complex128]) {
		Shift([]float64{-2}, k, 5)
	})
	defer y.Release()

	for j := 0; j < 5; j++ {
		assert.InDelta(t, x.At((j+2)%5), y.At(j), tol)
	}
}

func TestShiftZeroIsIdentity(t *testing.T) {
	k := InitializeK([]int{3, 4})
	defer k.Release()
	k.EachPtr(func(p *complex128) { *p = complex(1, -1) })

	Shift([]float64{0, 0}, k, 4)
	for _, v := range k.Data() {
		assert.Equal(t, complex(1, -1), v)
	}
}

func TestDifferentiate1D(t *testing.T) {
	const n = 8
	x := InitializeX([]int{n})
	defer x.Release()
	for j := 0; j < n; j++ {
		x.Set(math.Sin(2*math.Pi*float64(j)/n), j)
	}

	y := roundTrip(t, x, func(k array.Array[complex128]) {
		Differentiate(0, k, n)
	})
	defer y.Release()

	for j := 0; j < n; j++ {
		want := 2 * math.Pi / n * math.Cos(2*math.Pi*float64(j)/n)
		assert.InDelta(t, want, y.At(j), tol, "at %d", j)
	}
}

func TestDifferentiate2D(t *testing.T) {
	shape := []int{4, 6}
	x := InitializeX(shape)
	defer x.Release()
	wave := func(i, j int) (float64, float64, float64, float64) {
		a := 2 * math.Pi * float64(i) / 4
		b := 2 * math.Pi * float64(j) / 6
		return math.Cos(a), math.Sin(a), math.Cos(b), math.Sin(b)
	}
	x.Each(func(index []int, _ float64) {
		ca, _, _, sb := wave(index[0], index[1])
		x.Set(ca*sb, index...)
	})

	dy := roundTrip(t, x, func(k array.Array[complex128]) {
		Differentiate(0, k, shape[1])
	})
	defer dy.Release()
	dx := roundTrip(t, x, func(k array.Array[complex128]) {
		Differentiate(1, k, shape[1])
	})
	defer dx.Release()

	x.Each(func(index []int, _ float64) {
		ca, sa, cb, sb := wave(index[0], index[1])
		assert.InDelta(t, -2*math.Pi/4*sa*sb, dy.At(index...), tol, "axis 0 at %v", index)
		assert.InDelta(t, 2*math.Pi/6*ca*cb, dx.At(index...), tol, "axis 1 at %v", index)
	})
}

func TestDifferentiateZeroesNyquist(t *testing.T) {
	k := InitializeK([]int{4, 6})
	defer k.Release()
	k.EachPtr(func(p *complex128) { *p = 1 })

	Differentiate(0, k, 6)

	// Nyquist row of the differentiated axis and Nyquist column of the last axis.
	for j := 0; j < 4; j++ {
		assert.Equal(t, complex128(0), k.At(2, j))
	}
	for i := 0; i < 4; i++ {
		assert.Equal(t, complex128(0), k.At(i, 3))
	}
	assert.Equal(t, complex128(0), k.At(0, 0), "zero frequency")
	assert.InDelta(t, 2*math.Pi/4, imag(k.At(1, 0)), tol)
	assert.InDelta(t, -2*math.Pi/4, imag(k.At(3, 1)), tol)
}

func TestFourierOpsPanicOnBadArguments(t *testing.T) {
	k := InitializeK([]int{4, 6})
	defer k.Release()

	assert.Panics(t, func() { Shift([]float64{1}, k, 6) })
	assert.Panics(t, func() { Differentiate(2, k, 6) })
	assert.Panics(t, func() { Differentiate(-1, k, 6) })

	defer func() {
		err, ok := recover().(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, core.ErrDimensionMismatch)
	}()
	Differentiate(5, k, 6)
}
