package array

import (
	"fmt"
	"unsafe"

	"github.com/born-ml/ndarray/internal/core"
)

// StaticDimensionCast returns a view of a that claims c contiguous
// dimensions without checking the strides. A false claim makes later
// flattening undefined.
func StaticDimensionCast[T any](a Array[T], c int) Array[T] { return a.StaticDimensionCast(c) }

// DynamicDimensionCast returns a view of a with c contiguous dimensions if
// its strides actually have them, and an empty array otherwise.
//
// A positive c checks the last c dimensions for row-major contiguity; a
// negative c checks the first -c dimensions for column-major contiguity.
func DynamicDimensionCast[T any](a Array[T], c int) Array[T] { return a.DynamicDimensionCast(c) }

// Flatten returns a view with nf dimensions in which the trailing
// ND()-nf+1 dimensions are merged into one with stride 1.
//
// The merged dimensions must be guaranteed contiguous: RMC()+nf-ND() >= 1.
// For an array with leading (column-major) contiguity the leading dimensions
// are merged instead, under the mirrored condition. Panics with
// ErrContiguity otherwise.
func Flatten[T any](a Array[T], nf int) Array[T] { return a.Flatten(nf) }

// StaticDimensionCast is the method form of the package function.
func (a Array[T]) StaticDimensionCast(c int) Array[T] { return wrap(a.claim(c)) }

// DynamicDimensionCast is the method form of the package function.
func (a Array[T]) DynamicDimensionCast(c int) Array[T] { return wrap(a.cast(c)) }

// Flatten is the method form of the package function.
func (a Array[T]) Flatten(nf int) Array[T] { return wrap(a.flatten(nf)) }

// StaticDimensionCast keeps the deep handle kind. See the package function.
func (r Ref[T]) StaticDimensionCast(c int) Ref[T] { return deep(r.claim(c)) }

// DynamicDimensionCast keeps the deep handle kind. See the package function.
func (r Ref[T]) DynamicDimensionCast(c int) Ref[T] { return deep(r.cast(c)) }

// Flatten keeps the deep handle kind. See the package function.
func (r Ref[T]) Flatten(nf int) Ref[T] { return deep(r.flatten(nf)) }

// StaticDimensionCast keeps the read-only handle kind.
func (c Const[T]) StaticDimensionCast(n int) Const[T] { return Const[T]{c.claim(n)} }

// DynamicDimensionCast keeps the read-only handle kind.
func (c Const[T]) DynamicDimensionCast(n int) Const[T] { return Const[T]{c.cast(n)} }

// Flatten keeps the read-only handle kind.
func (c Const[T]) Flatten(nf int) Const[T] { return Const[T]{c.flatten(nf)} }

func (v view[T]) checkContiguity(c int) {
	if c > v.nd || -c > v.nd {
		panic(core.Errorf(core.ErrDimensionMismatch, "contiguity %d for a %d-dimensional array", c, v.nd))
	}
}

func (v view[T]) claim(c int) view[T] {
	v.checkContiguity(c)
	s := v.share()
	s.rmc = c
	return s
}

func (v view[T]) cast(c int) view[T] {
	v.checkContiguity(c)
	if !isContiguous(v.Shape(), v.Strides(), c) {
		return view[T]{nd: v.nd, rmc: c}
	}
	return v.claim(c)
}

// isContiguous reports whether each stride, walking from the contiguous
// end, equals the product of the sizes already walked.
func isContiguous(shape, strides []int, c int) bool {
	nd := len(shape)
	n := 1
	if c >= 0 {
		for i := 1; i <= c; i++ {
			if strides[nd-i] != n {
				return false
			}
			n *= shape[nd-i]
		}
		return true
	}
	for i := 0; i < -c; i++ {
		if strides[i] != n {
			return false
		}
		n *= shape[i]
	}
	return true
}

// contiguity returns the largest contiguity the strides satisfy, preferring
// trailing row-major dimensions over leading column-major ones.
func contiguity(shape, strides []int) int {
	nd := len(shape)
	for c := nd; c > 0; c-- {
		if isContiguous(shape, strides, c) {
			return c
		}
	}
	for c := nd; c > 0; c-- {
		if isContiguous(shape, strides, -c) {
			return -c
		}
	}
	return 0
}

func (v view[T]) flatten(nf int) view[T] {
	if nf < 1 || nf > v.nd {
		panic(core.Errorf(core.ErrDimensionMismatch, "cannot flatten %d dimensions into %d", v.nd, nf))
	}
	oldShape := v.Shape()
	oldStrides := v.Strides()
	shape := make([]int, nf)
	strides := make([]int, nf)

	var rmc int
	switch {
	case v.rmc > 0 && v.rmc+nf-v.nd >= 1:
		copy(shape, oldShape[:nf])
		copy(strides, oldStrides[:nf])
		for n := nf; n < v.nd; n++ {
			shape[nf-1] *= oldShape[n]
		}
		strides[nf-1] = 1
		rmc = v.rmc + nf - v.nd
	case v.rmc < 0 && -v.rmc+nf-v.nd >= 1:
		k := v.nd - nf + 1
		shape[0] = 1
		for n := 0; n < k; n++ {
			shape[0] *= oldShape[n]
		}
		strides[0] = 1
		copy(shape[1:], oldShape[k:])
		copy(strides[1:], oldStrides[k:])
		rmc = -(-v.rmc + nf - v.nd)
	default:
		panic(core.Errorf(core.ErrContiguity, "cannot flatten %d dimensions into %d with contiguity %d", v.nd, nf, v.rmc))
	}

	if v.core == nil {
		return view[T]{nd: nf, rmc: rmc}
	}
	return v.derive(v.offset, shape, strides, rmc)
}

// Real returns a view of the real parts of a complex array.
func Real(a Array[complex128]) Array[float64] { return wrap(part[float64](a.view, 0)) }

// Imag returns a view of the imaginary parts of a complex array.
func Imag(a Array[complex128]) Array[float64] { return wrap(part[float64](a.view, 1)) }

// Real32 returns a view of the real parts of a complex64 array.
func Real32(a Array[complex64]) Array[float32] { return wrap(part[float32](a.view, 0)) }

// Imag32 returns a view of the imaginary parts of a complex64 array.
func Imag32(a Array[complex64]) Array[float32] { return wrap(part[float32](a.view, 1)) }

// RealRef returns a deep view of the real parts of a complex array.
func RealRef(r Ref[complex128]) Ref[float64] { return deep(part[float64](r.view, 0)) }

// ImagRef returns a deep view of the imaginary parts of a complex array.
func ImagRef(r Ref[complex128]) Ref[float64] { return deep(part[float64](r.view, 1)) }

// Real32Ref returns a deep view of the real parts of a complex64 array.
func Real32Ref(r Ref[complex64]) Ref[float32] { return deep(part[float32](r.view, 0)) }

// Imag32Ref returns a deep view of the imaginary parts of a complex64 array.
func Imag32Ref(r Ref[complex64]) Ref[float32] { return deep(part[float32](r.view, 1)) }

// RealConst returns a read-only view of the real parts of a complex array.
func RealConst(c Const[complex128]) Const[float64] { return Const[float64]{part[float64](c.view, 0)} }

// ImagConst returns a read-only view of the imaginary parts of a complex array.
func ImagConst(c Const[complex128]) Const[float64] { return Const[float64]{part[float64](c.view, 1)} }

// Real32Const returns a read-only view of the real parts of a complex64 array.
func Real32Const(c Const[complex64]) Const[float32] { return Const[float32]{part[float32](c.view, 0)} }

// Imag32Const returns a read-only view of the imaginary parts of a complex64 array.
func Imag32Const(c Const[complex64]) Const[float32] { return Const[float32]{part[float32](c.view, 1)} }

// part reinterprets a complex view as its scalar components, doubling
// every stride and selecting component k (0 real, 1 imaginary).
func part[F Float, C Complex](v view[C], k int) view[F] {
	var c C
	var f F
	if unsafe.Sizeof(c) != 2*unsafe.Sizeof(f) {
		panic(fmt.Sprintf("cannot split %T into %T parts", c, f))
	}

	if v.core == nil {
		return view[F]{nd: v.nd}
	}
	var data []F
	if len(v.data) > 0 {
		//nolint:gosec // unsafe.Slice for zero-copy reinterpretation of [re, im] pairs
		data = unsafe.Slice((*F)(unsafe.Pointer(unsafe.SliceData(v.data))), 2*len(v.data))
	}
	strides := v.Strides()
	for i := range strides {
		strides[i] *= 2
	}
	return deriveData(data, 2*v.offset+k, v.Shape(), strides, 0, v.Manager())
}
