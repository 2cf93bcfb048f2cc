package core

import "sync/atomic"

// Dim is the size and element stride of one dimension.
type Dim struct {
	Size   int
	Stride int
}

// Core holds the shape, strides and ownership data for arrays.
//
// Dimensions are stored outermost first. An array with M dimensions viewing a
// Core with N >= M dimensions sees the trailing M of them, so a nested
// sub-array shares its parent's Core instead of building a new one.
//
// A Core is reference counted independently of its Manager: every array
// handle holds one Core reference, and the Core holds one Manager reference
// until its own count reaches zero. Sizes and strides are only written while
// a derived Core is being built, before it is shared.
type Core struct {
	dims    []Dim
	manager Manager
	rc      atomic.Int32
}

func newCore(nd int, manager Manager) *Core {
	c := &Core{dims: make([]Dim, nd), manager: manager}
	c.rc.Store(1)
	acquireManager(manager)
	return c
}

// New creates a Core with the given shape, strides and manager.
// The returned Core has a reference count of 1.
func New(shape, strides []int, manager Manager) (*Core, error) {
	if len(shape) != len(strides) {
		return nil, Errorf(ErrDimensionMismatch, "shape has %d dimensions, strides has %d", len(shape), len(strides))
	}
	c := newCore(len(shape), manager)
	for i := range shape {
		c.dims[i] = Dim{Size: shape[i], Stride: strides[i]}
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(shape, strides []int, manager Manager) *Core {
	c, err := New(shape, strides, manager)
	if err != nil {
		panic(err)
	}
	return c
}

// NewOrdered creates a Core with contiguous strides in the given order.
func NewOrdered(shape []int, order DataOrder, manager Manager) *Core {
	return MustNew(shape, ComputeStrides(shape, order), manager)
}

// NewEmpty creates a Core with nd dimensions of zero size and stride.
func NewEmpty(nd int, manager Manager) *Core {
	return newCore(nd, manager)
}

// Copy creates a new Core with the same dimensions and manager.
// The copy has its own reference count of 1 and shares the manager.
func (c *Core) Copy() *Core {
	r := newCore(len(c.dims), c.manager)
	copy(r.dims, c.dims)
	return r
}

// ND returns the number of dimensions stored in the Core.
func (c *Core) ND() int { return len(c.dims) }

// Size returns the size of dimension i, counted from the outermost.
func (c *Core) Size(i int) int { return c.dims[i].Size }

// Stride returns the stride of dimension i, counted from the outermost.
func (c *Core) Stride(i int) int { return c.dims[i].Stride }

// SetSize sets the size of dimension i.
// Only valid while building a Core that no array shares yet.
func (c *Core) SetSize(i, size int) { c.dims[i].Size = size }

// SetStride sets the stride of dimension i.
// Only valid while building a Core that no array shares yet.
func (c *Core) SetStride(i, stride int) { c.dims[i].Stride = stride }

// tail returns the trailing m dimensions.
func (c *Core) tail(m int) []Dim {
	return c.dims[len(c.dims)-m:]
}

// ComputeOffset returns the element offset for an index over the trailing
// len(index) dimensions. No bounds checking is done.
func (c *Core) ComputeOffset(index []int) int {
	offset := 0
	for d, dim := range c.tail(len(index)) {
		offset += index[d] * dim.Stride
	}
	return offset
}

// FillShape writes the sizes of the trailing len(shape) dimensions.
func (c *Core) FillShape(shape []int) {
	for d, dim := range c.tail(len(shape)) {
		shape[d] = dim.Size
	}
}

// FillStrides writes the strides of the trailing len(strides) dimensions.
func (c *Core) FillStrides(strides []int) {
	for d, dim := range c.tail(len(strides)) {
		strides[d] = dim.Stride
	}
}

// NumElements returns the product of all sizes; 1 for a zero-dimensional Core.
func (c *Core) NumElements() int {
	return c.NumElementsTail(len(c.dims))
}

// NumElementsTail returns the product of the trailing m sizes.
func (c *Core) NumElementsTail(m int) int {
	n := 1
	for _, dim := range c.tail(m) {
		n *= dim.Size
	}
	return n
}

// Manager returns the Manager that determines the lifetime of the data.
func (c *Core) Manager() Manager { return c.manager }

// SetManager replaces the Manager, moving the Core's reference to it.
func (c *Core) SetManager(manager Manager) {
	acquireManager(manager)
	releaseManager(c.manager)
	c.manager = manager
}

// Acquire increments the Core reference count.
func (c *Core) Acquire() { c.rc.Add(1) }

// Release decrements the Core reference count. At zero the Core lets go of
// its Manager.
func (c *Core) Release() {
	if c.rc.Add(-1) == 0 {
		releaseManager(c.manager)
		c.manager = nil
	}
}

// RefCount returns the Core reference count (for debugging purposes).
func (c *Core) RefCount() int32 { return c.rc.Load() }

// IsUnique returns true if both the Core and the Manager are referenced
// exactly once and the Manager is the sole owner of its memory.
// Callers use it to decide whether data may be modified in place.
func (c *Core) IsUnique() bool {
	return c.rc.Load() == 1 &&
		c.manager != nil &&
		c.manager.RefCount() == 1 &&
		c.manager.IsUnique()
}
