package array

// walk calls fn with the data offset of every element of a strided layout,
// in row-major logical order.
func walk(shape, strides []int, base int, fn func(off int)) {
	for _, n := range shape {
		if n == 0 {
			return
		}
	}
	nd := len(shape)
	if nd == 0 {
		fn(base)
		return
	}

	index := make([]int, nd)
	off := base
	last := nd - 1
	for {
		for i := 0; i < shape[last]; i++ {
			fn(off + i*strides[last])
		}
		// Advance the outer dimensions like an odometer.
		d := last - 1
		for ; d >= 0; d-- {
			index[d]++
			off += strides[d]
			if index[d] < shape[d] {
				break
			}
			off -= index[d] * strides[d]
			index[d] = 0
		}
		if d < 0 {
			return
		}
	}
}

// walkPair walks two layouts of the same shape in lockstep.
func walkPair(shape, aStrides, bStrides []int, aBase, bBase int, fn func(a, b int)) {
	for _, n := range shape {
		if n == 0 {
			return
		}
	}
	nd := len(shape)
	if nd == 0 {
		fn(aBase, bBase)
		return
	}

	index := make([]int, nd)
	a, b := aBase, bBase
	last := nd - 1
	for {
		for i := 0; i < shape[last]; i++ {
			fn(a+i*aStrides[last], b+i*bStrides[last])
		}
		d := last - 1
		for ; d >= 0; d-- {
			index[d]++
			a += aStrides[d]
			b += bStrides[d]
			if index[d] < shape[d] {
				break
			}
			a -= index[d] * aStrides[d]
			b -= index[d] * bStrides[d]
			index[d] = 0
		}
		if d < 0 {
			return
		}
	}
}

// Each calls fn for every element in row-major logical order.
// The index slice is reused between calls and must not be retained.
func (v view[T]) Each(fn func(index []int, x T)) {
	if v.data == nil {
		return
	}
	shape := v.Shape()
	index := make([]int, v.nd)
	walk(shape, v.Strides(), v.offset, func(off int) {
		fn(index, v.data[off])
		for d := v.nd - 1; d >= 0; d-- {
			index[d]++
			if index[d] < shape[d] {
				break
			}
			index[d] = 0
		}
	})
}

// EachPtr calls fn with a pointer to every element in row-major logical order.
func (m mutable[T]) EachPtr(fn func(p *T)) {
	if m.data == nil {
		return
	}
	walk(m.Shape(), m.Strides(), m.offset, func(off int) {
		fn(&m.data[off])
	})
}

// Lines calls fn with the offset into Data() of the first element of every
// one-dimensional line along axis. The elements of a line are at
// base + i*Stride(axis) for i in [0, Size(axis)).
func (v view[T]) Lines(axis int, fn func(base int)) {
	if v.data == nil {
		return
	}
	shape := v.Shape()
	strides := v.Strides()
	if shape[axis] == 0 {
		return
	}
	outerShape := append(append([]int{}, shape[:axis]...), shape[axis+1:]...)
	outerStrides := append(append([]int{}, strides[:axis]...), strides[axis+1:]...)
	walk(outerShape, outerStrides, v.offset, fn)
}
