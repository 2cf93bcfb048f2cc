package fft

import (
	"math"
	"math/cmplx"

	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/core"
)

// Shift multiplies the half-spectrum k by the phase ramp that translates its
// real-space signal by offset (one entry per dimension, in elements).
// realLastDim is the real-space size of the last dimension.
//
// For even sizes the Nyquist frequency cannot carry a phase and is scaled by
// the cosine of its phase angle instead.
func Shift(offset []float64, k array.Array[complex128], realLastDim int) {
	nd := k.ND()
	if len(offset) != nd {
		panic(core.Errorf(core.ErrDimensionMismatch, "%d offsets for a %d-dimensional array", len(offset), nd))
	}
	tables := make([][]complex128, nd)
	for d := 0; d < nd; d++ {
		full := d < nd-1
		n := realLastDim
		if full {
			n = k.Size(d)
		}
		u := -2 * math.Pi * offset[d] / float64(n)
		tables[d] = frequencyTable(k.Size(d), n, full, func(freq int) complex128 {
			return cmplx.Rect(1, u*float64(freq))
		}, func(freq int) complex128 {
			return complex(math.Cos(u*float64(freq)), 0)
		})
	}
	scale(k, tables)
}

// Differentiate multiplies the half-spectrum k by i*2*pi*f/n along axis,
// which differentiates its real-space signal with respect to that axis.
// realLastDim is the real-space size of the last dimension.
//
// Nyquist frequencies of even-sized dimensions are set to zero along every
// axis, since their derivative is not representable.
func Differentiate(axis int, k array.Array[complex128], realLastDim int) {
	nd := k.ND()
	if axis < 0 || axis >= nd {
		panic(core.Errorf(core.ErrDimensionMismatch, "axis %d of a %d-dimensional array", axis, nd))
	}
	tables := make([][]complex128, nd)
	for d := 0; d < nd; d++ {
		full := d < nd-1
		n := realLastDim
		if full {
			n = k.Size(d)
		}
		u := 2 * math.Pi / float64(n)
		ramp := func(int) complex128 { return 1 }
		if d == axis {
			ramp = func(freq int) complex128 { return complex(0, u*float64(freq)) }
		}
		tables[d] = frequencyTable(k.Size(d), n, full, ramp, func(int) complex128 { return 0 })
	}
	scale(k, tables)
}

// frequencyTable evaluates a per-index factor along one dimension of size
// size whose real-space length is n. Indices below the Nyquist frequency
// map to ramp(f) for f >= 0; for a full (complex) dimension the indices after
// it wrap to negative frequencies. For even n the Nyquist index gets
// nyquist(n/2). Indices past the stored frequencies keep a factor of 1.
func frequencyTable(size, n int, full bool, ramp, nyquist func(freq int) complex128) []complex128 {
	table := make([]complex128, size)
	for i := range table {
		table[i] = 1
	}
	mid := (n + 1) / 2
	for i := 0; i < mid && i < size; i++ {
		table[i] = ramp(i)
	}
	if n%2 == 0 && mid < size {
		table[mid] = nyquist(mid)
	}
	if full {
		for i := n/2 + 1; i < size; i++ {
			table[i] = ramp(i - n)
		}
	}
	return table
}

// scale multiplies every element of k by the product of its per-axis factors.
func scale(k array.Array[complex128], tables [][]complex128) {
	k.Each(func(index []int, x complex128) {
		f := complex(1, 0)
		for d, i := range index {
			f *= tables[d][i]
		}
		*k.Ptr(index...) = x * f
	})
}
