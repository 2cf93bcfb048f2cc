package fft

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/parallel"
)

// workspace holds the transformers and line buffers of one worker.
// Gonum transformers keep internal scratch, so they are never shared.
type workspace struct {
	real  map[int]*fourier.FFT
	cmplx map[int]*fourier.CmplxFFT
	seq   []float64
	coeff []complex128
	out   []complex128
}

func (w *workspace) realFFT(n int) *fourier.FFT {
	if w.real == nil {
		w.real = make(map[int]*fourier.FFT)
	}
	t, ok := w.real[n]
	if !ok {
		t = fourier.NewFFT(n)
		w.real[n] = t
	}
	return t
}

func (w *workspace) cmplxFFT(n int) *fourier.CmplxFFT {
	if w.cmplx == nil {
		w.cmplx = make(map[int]*fourier.CmplxFFT)
	}
	t, ok := w.cmplx[n]
	if !ok {
		t = fourier.NewCmplxFFT(n)
		w.cmplx[n] = t
	}
	return t
}

func grow[T any](buf []T, n int) []T {
	if cap(buf) < n {
		return make([]T, n)
	}
	return buf[:n]
}

func lineBases[T any](a array.Array[T], axis int) []int {
	var bases []int
	a.Lines(axis, func(base int) { bases = append(bases, base) })
	return bases
}

// forEachLine calls fn for every line index, with one workspace per chunk.
func forEachLine(n int, cfg parallel.Config, fn func(w *workspace, i int)) {
	parallel.ForRange(n, func(start, end int) {
		w := new(workspace)
		for i := start; i < end; i++ {
			fn(w, i)
		}
	}, cfg)
}

// complexPass transforms every line of src along axis into the matching
// line of dst. src and dst have the same shape and may be the same array.
func complexPass(src, dst array.Array[complex128], axis int, inverse bool, cfg parallel.Config) {
	n := src.Size(axis)
	if n == 0 {
		return
	}
	sb, db := lineBases(src, axis), lineBases(dst, axis)
	ss, ds := src.Stride(axis), dst.Stride(axis)
	sd, dd := src.Data(), dst.Data()
	forEachLine(len(sb), cfg, func(w *workspace, i int) {
		t := w.cmplxFFT(n)
		w.coeff = grow(w.coeff, n)
		for j := range w.coeff {
			w.coeff[j] = sd[sb[i]+j*ss]
		}
		w.out = grow(w.out, n)
		if inverse {
			t.Sequence(w.out, w.coeff)
		} else {
			t.Coefficients(w.out, w.coeff)
		}
		for j, c := range w.out {
			dd[db[i]+j*ds] = c
		}
	})
}

// realForward computes the unnormalized half-spectrum of x into k: a real
// transform along the last axis followed by complex transforms along the
// others.
func realForward(x array.Array[float64], k array.Array[complex128], cfg parallel.Config) {
	last := x.ND() - 1
	n := x.Size(last)
	if x.IsEmpty() || k.IsEmpty() || n == 0 {
		return
	}
	xb, kb := lineBases(x, last), lineBases(k, last)
	xs, ks := x.Stride(last), k.Stride(last)
	xd, kd := x.Data(), k.Data()
	forEachLine(len(xb), cfg, func(w *workspace, i int) {
		t := w.realFFT(n)
		w.seq = grow(w.seq, n)
		for j := range w.seq {
			w.seq[j] = xd[xb[i]+j*xs]
		}
		w.coeff = t.Coefficients(grow(w.coeff, n/2+1), w.seq)
		for j, c := range w.coeff {
			kd[kb[i]+j*ks] = c
		}
	})
	for axis := 0; axis < last; axis++ {
		complexPass(k, k, axis, false, cfg)
	}
}

// realInverse computes the unnormalized real signal of the half-spectrum k
// into x. The complex passes run on scratch so k is left untouched.
func realInverse(k array.Array[complex128], x array.Array[float64], scratch array.Array[complex128], cfg parallel.Config) {
	last := x.ND() - 1
	n := x.Size(last)
	if x.IsEmpty() || k.IsEmpty() || n == 0 {
		return
	}
	ref := scratch.Deep()
	ref.Assign(k)
	ref.Release()
	for axis := 0; axis < last; axis++ {
		complexPass(scratch, scratch, axis, true, cfg)
	}

	sb, xb := lineBases(scratch, last), lineBases(x, last)
	ss, xs := scratch.Stride(last), x.Stride(last)
	sd, xd := scratch.Data(), x.Data()
	m := n/2 + 1
	forEachLine(len(sb), cfg, func(w *workspace, i int) {
		t := w.realFFT(n)
		w.coeff = grow(w.coeff, m)
		for j := range w.coeff {
			w.coeff[j] = sd[sb[i]+j*ss]
		}
		w.seq = t.Sequence(grow(w.seq, n), w.coeff)
		for j, v := range w.seq {
			xd[xb[i]+j*xs] = v
		}
	})
}

// complexTransform transforms src into dst along every axis.
func complexTransform(src, dst array.Array[complex128], inverse bool, cfg parallel.Config) {
	if src.IsEmpty() || dst.IsEmpty() {
		return
	}
	complexPass(src, dst, 0, inverse, cfg)
	for axis := 1; axis < dst.ND(); axis++ {
		complexPass(dst, dst, axis, inverse, cfg)
	}
}

// multiplex runs fn on every batch item with the batch split across
// workers. Each item is transformed on its worker's goroutine.
func multiplex(batch int, cfg parallel.Config, fn func(b int, cfg parallel.Config)) {
	inner := parallel.Sequential()
	parallel.For(batch, func(b int) {
		fn(b, inner)
	}, cfg)
}
