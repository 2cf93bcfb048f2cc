package array

import (
	"github.com/born-ml/ndarray/internal/core"
)

// view is the (data, descriptor) pair shared by Array, Ref and Const.
//
// data is the whole backing slice and offset the index of the first element,
// so negative strides can reach elements before it. data is nil if and only
// if the view is empty.
type view[T any] struct {
	data   []T
	offset int
	core   *core.Core
	nd     int
	rmc    int // guaranteed contiguous dims: >0 trailing row-major, <0 leading column-major
}

// ND returns the number of dimensions.
func (v view[T]) ND() int { return v.nd }

// RMC returns the number of guaranteed row-major contiguous dimensions,
// counted from the end. A negative value counts column-major contiguous
// dimensions from the start.
func (v view[T]) RMC() int { return v.rmc }

// IsEmpty returns true if the view has no data.
func (v view[T]) IsEmpty() bool { return v.data == nil }

// Data returns the backing slice. Element (i0, i1, ...) lives at
// Data()[Offset() + i0*Stride(0) + i1*Stride(1) + ...].
// WARNING: Direct access to underlying memory. Use with caution.
func (v view[T]) Data() []T { return v.data }

// Offset returns the index of the first element in Data().
func (v view[T]) Offset() int { return v.offset }

// Core returns the shared dimension descriptor, or nil for a zero view.
func (v view[T]) Core() *core.Core { return v.core }

// Manager returns the ownership token that keeps the data alive.
func (v view[T]) Manager() core.Manager {
	if v.core == nil {
		return nil
	}
	return v.core.Manager()
}

// Shape returns the sizes of all dimensions, outermost first.
func (v view[T]) Shape() []int {
	shape := make([]int, v.nd)
	if v.core != nil {
		v.core.FillShape(shape)
	}
	return shape
}

// Strides returns the element strides of all dimensions, outermost first.
func (v view[T]) Strides() []int {
	strides := make([]int, v.nd)
	if v.core != nil {
		v.core.FillStrides(strides)
	}
	return strides
}

// Size returns the size of dimension i.
func (v view[T]) Size(i int) int {
	if v.core == nil {
		return 0
	}
	return v.core.Size(v.core.ND() - v.nd + i)
}

// Stride returns the stride of dimension i.
func (v view[T]) Stride(i int) int {
	if v.core == nil {
		return 0
	}
	return v.core.Stride(v.core.ND() - v.nd + i)
}

// NumElements returns the total number of elements; 0 for an empty view.
func (v view[T]) NumElements() int {
	if v.core == nil {
		return 0
	}
	return v.core.NumElementsTail(v.nd)
}

// IsUnique reports whether this handle is the only reference to both the
// descriptor and the data, so the data may be modified in place.
func (v view[T]) IsUnique() bool {
	return v.core != nil && v.core.IsUnique()
}

// At returns the element at the given index. No bounds checking is done
// unless built with the ndarray_checked tag.
func (v view[T]) At(index ...int) T {
	if checked {
		checkIndex(v.Shape(), index)
	}
	return v.data[v.offset+v.core.ComputeOffset(index)]
}

// Release drops this handle's reference to the descriptor and zeroes the
// handle. Releasing a zero handle is a no-op.
func (v *view[T]) Release() {
	if v.core != nil {
		v.core.Release()
	}
	*v = view[T]{}
}

// share returns a copy of the handle holding its own descriptor reference.
func (v view[T]) share() view[T] {
	if v.core != nil {
		v.core.Acquire()
	}
	return v
}

// derive builds a view with a new descriptor that shares v's manager.
func (v view[T]) derive(offset int, shape, strides []int, rmc int) view[T] {
	return deriveData(v.data, offset, shape, strides, rmc, v.Manager())
}

func deriveData[T any](data []T, offset int, shape, strides []int, rmc int, manager core.Manager) view[T] {
	return view[T]{
		data:   data,
		offset: offset,
		core:   core.MustNew(shape, strides, manager),
		nd:     len(shape),
		rmc:    rmc,
	}
}

// mutable adds element writes to a view.
type mutable[T any] struct {
	view[T]
}

// Ptr returns a pointer to the element at the given index. No bounds
// checking is done unless built with the ndarray_checked tag.
func (m mutable[T]) Ptr(index ...int) *T {
	if checked {
		checkIndex(m.Shape(), index)
	}
	return &m.data[m.offset+m.core.ComputeOffset(index)]
}

// Set stores v at the given index.
func (m mutable[T]) Set(v T, index ...int) {
	*m.Ptr(index...) = v
}

// Array is a shallow array handle: assigning one Array to another with
// Rebind makes both view the same data.
//
// Copying the struct value does not count as a reference; use Copy or any
// other handle-producing method, and Release each handle when done.
// The zero value is an empty array.
type Array[T any] struct {
	mutable[T]
}

// Ref is a deep array handle: Assign writes elements through to the viewed
// data instead of rebinding the handle.
type Ref[T any] struct {
	mutable[T]
}

// Const is a read-only array handle.
type Const[T any] struct {
	view[T]
}

func wrap[T any](v view[T]) Array[T] {
	return Array[T]{mutable[T]{v}}
}

// Copy returns a new shallow handle to the same data and descriptor.
func (a Array[T]) Copy() Array[T] {
	return wrap(a.share())
}

// Shallow returns a new Array handle to the same data and descriptor.
func (a Array[T]) Shallow() Array[T] {
	return a.Copy()
}

// Deep returns a Ref handle to the same data and descriptor.
func (a Array[T]) Deep() Ref[T] {
	return deep(a.share())
}

// AsConst returns a read-only handle to the same data and descriptor.
func (a Array[T]) AsConst() Const[T] {
	return Const[T]{a.share()}
}

// Rebind makes a view the same data as other, releasing its previous
// reference. This is the shallow assignment of Array.
func (a *Array[T]) Rebind(other Array[T]) {
	next := other.share()
	a.Release()
	a.view = next
}

// sub returns the subarray at index i of the first dimension. It shares the
// descriptor and views its trailing nd-1 dimensions.
func (v view[T]) sub(i int) view[T] {
	if v.nd < 2 {
		panic(core.Errorf(core.ErrDimensionMismatch, "Sub needs at least 2 dimensions, array has %d", v.nd))
	}
	if checked {
		checkIndex(v.Shape()[:1], []int{i})
	}
	if v.core == nil {
		return view[T]{nd: v.nd - 1}
	}
	s := v.share()
	s.offset += i * v.Stride(0)
	s.nd--
	switch {
	case s.rmc > s.nd:
		s.rmc = s.nd
	case s.rmc < 0:
		s.rmc = 0
	}
	return s
}

func (v view[T]) transpose() view[T] {
	if v.core == nil {
		return view[T]{nd: v.nd, rmc: -v.rmc}
	}
	shape := v.Shape()
	strides := v.Strides()
	for n := 0; n < v.nd/2; n++ {
		shape[n], shape[v.nd-n-1] = shape[v.nd-n-1], shape[n]
		strides[n], strides[v.nd-n-1] = strides[v.nd-n-1], strides[n]
	}
	return v.derive(v.offset, shape, strides, -v.rmc)
}

func (v view[T]) permute(order []int) view[T] {
	if len(order) != v.nd {
		panic(core.Errorf(core.ErrDimensionMismatch, "permutation has %d entries, array has %d dimensions", len(order), v.nd))
	}
	if checked {
		checkPermutation(order)
	}
	if v.core == nil {
		return view[T]{nd: v.nd}
	}
	oldShape := v.Shape()
	oldStrides := v.Strides()
	shape := make([]int, v.nd)
	strides := make([]int, v.nd)
	for n := range order {
		shape[n] = oldShape[order[n]]
		strides[n] = oldStrides[order[n]]
	}
	return v.derive(v.offset, shape, strides, 0)
}

// Sub returns the subarray at index i of the first dimension.
//
// The subarray shares the descriptor: it views the trailing ND()-1
// dimensions starting at Offset() + i*Stride(0). Use Ptr for the elements of
// a one-dimensional array.
func (a Array[T]) Sub(i int) Array[T] { return wrap(a.sub(i)) }

// Transpose returns a view with the order of the dimensions reversed.
// Row-major contiguous dimensions become column-major contiguous ones.
func (a Array[T]) Transpose() Array[T] { return wrap(a.transpose()) }

// Permute returns a view with the dimensions permuted: output dimension n is
// input dimension order[n]. order is not validated unless built with the
// ndarray_checked tag; a repeated entry aliases dimensions.
func (a Array[T]) Permute(order []int) Array[T] { return wrap(a.permute(order)) }

func deep[T any](v view[T]) Ref[T] {
	return Ref[T]{mutable[T]{v}}
}

// Copy returns a new deep handle to the same data and descriptor.
func (r Ref[T]) Copy() Ref[T] { return deep(r.share()) }

// AsConst returns a read-only handle to the same data and descriptor.
func (r Ref[T]) AsConst() Const[T] { return Const[T]{r.share()} }

// Sub returns the subarray at index i of the first dimension as a deep
// handle, so assigning to it writes into r's data.
func (r Ref[T]) Sub(i int) Ref[T] { return deep(r.sub(i)) }

// Transpose is Array.Transpose for deep handles.
func (r Ref[T]) Transpose() Ref[T] { return deep(r.transpose()) }

// Permute is Array.Permute for deep handles.
func (r Ref[T]) Permute(order []int) Ref[T] { return deep(r.permute(order)) }

// Copy returns a new read-only handle to the same data and descriptor.
func (c Const[T]) Copy() Const[T] { return Const[T]{c.share()} }

// Sub returns the read-only subarray at index i of the first dimension.
func (c Const[T]) Sub(i int) Const[T] { return Const[T]{c.sub(i)} }

// Transpose is Array.Transpose for read-only handles.
func (c Const[T]) Transpose() Const[T] { return Const[T]{c.transpose()} }

// Permute is Array.Permute for read-only handles.
func (c Const[T]) Permute(order []int) Const[T] { return Const[T]{c.permute(order)} }

// Shallow returns an Array handle to the same data and descriptor.
func (r Ref[T]) Shallow() Array[T] {
	return wrap(r.share())
}

// Assign copies the elements of src into the data viewed by r.
// Shapes must match exactly.
func (r Ref[T]) Assign(src Source[T]) {
	shape := r.Shape()
	if !core.Shape(shape).Equal(src.Shape()) {
		panic(core.Errorf(core.ErrShapeMismatch, "cannot assign %v to %v", src.Shape(), shape))
	}
	if r.data == nil {
		return
	}
	dst, from := r.data, src.Data()
	walkPair(shape, r.Strides(), src.Strides(), r.offset, src.Offset(), func(i, j int) {
		dst[i] = from[j]
	})
}

// Fill sets every element viewed by r to v.
func (r Ref[T]) Fill(v T) {
	if r.data == nil {
		return
	}
	walk(r.Shape(), r.Strides(), r.offset, func(i int) {
		r.data[i] = v
	})
}

// Source is a strided view that elements can be read from.
// Array, Ref and Const all implement it.
type Source[T any] interface {
	Shape() []int
	Strides() []int
	Data() []T
	Offset() int
}

// ConstCast returns a writable Array handle to the data viewed by c.
// Writing through it is the caller's responsibility.
func ConstCast[T any](c Const[T]) Array[T] {
	return wrap(c.share())
}
