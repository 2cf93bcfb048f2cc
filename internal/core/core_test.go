package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestNewShapeStrideRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		shape   []int
		strides []int
	}{
		{"row-major 3d", []int{2, 3, 4}, []int{12, 4, 1}},
		{"negative stride", []int{5, 2}, []int{-2, 1}},
		{"broadcast zero stride", []int{4, 3}, []int{0, 1}},
		{"zero size", []int{0, 7}, []int{7, 1}},
		{"scalar", []int{}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.shape, tt.strides, nil)
			require.NoError(t, err)

			shape := make([]int, len(tt.shape))
			strides := make([]int, len(tt.strides))
			c.FillShape(shape)
			c.FillStrides(strides)
			assert.Equal(t, tt.shape, shape)
			assert.Equal(t, tt.strides, strides)
			assert.Equal(t, len(tt.shape), c.ND())
		})
	}
}

func TestNewDimensionMismatch(t *testing.T) {
	_, err := New([]int{2, 3}, []int{1}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	assert.Panics(t, func() { MustNew([]int{2}, []int{1, 1}, nil) })
}

func TestComputeOffsetRowMajor(t *testing.T) {
	c := NewOrdered([]int{2, 3, 4}, RowMajor, nil)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				assert.Equal(t, i*12+j*4+k, c.ComputeOffset([]int{i, j, k}))
			}
		}
	}
}

func TestComputeOffsetTrailingDims(t *testing.T) {
	// A 2-index vector addresses the two innermost dimensions.
	c := NewOrdered([]int{2, 3, 4}, RowMajor, nil)
	assert.Equal(t, 2*4+3, c.ComputeOffset([]int{2, 3}))
	assert.Equal(t, 0, c.ComputeOffset(nil))

	shape := make([]int, 2)
	c.FillShape(shape)
	assert.Equal(t, []int{3, 4}, shape)
	assert.Equal(t, 12, c.NumElementsTail(2))
}

func TestNewOrderedColumnMajor(t *testing.T) {
	c := NewOrdered([]int{2, 3, 4}, ColumnMajor, nil)
	strides := make([]int, 3)
	c.FillStrides(strides)
	assert.Equal(t, []int{1, 2, 6}, strides)
	assert.Equal(t, 1*1+2*2+3*6, c.ComputeOffset([]int{1, 2, 3}))
}

func TestNumElements(t *testing.T) {
	assert.Equal(t, 24, NewOrdered([]int{2, 3, 4}, RowMajor, nil).NumElements())
	assert.Equal(t, 0, NewOrdered([]int{2, 0, 4}, RowMajor, nil).NumElements())
	assert.Equal(t, 1, NewOrdered(nil, RowMajor, nil).NumElements())
	assert.Equal(t, 0, NewEmpty(3, nil).NumElements())
}

func TestCopyIsIndependent(t *testing.T) {
	m, _ := Allocate[float64](6)
	c := NewOrdered([]int{2, 3}, RowMajor, m)
	d := c.Copy()

	d.SetSize(0, 1)
	d.SetStride(1, 2)
	assert.Equal(t, 2, c.Size(0))
	assert.Equal(t, 1, c.Stride(1))
	assert.Equal(t, 1, d.Size(0))
	assert.Equal(t, 2, d.Stride(1))

	assert.Same(t, c.Manager(), d.Manager())
	assert.Equal(t, int32(1), d.RefCount())
	assert.Equal(t, int32(2), m.RefCount())
}

func TestSetManager(t *testing.T) {
	a, _ := Allocate[int](1)
	b, _ := Allocate[int](1)
	c := NewEmpty(1, a)
	c.SetManager(b)

	assert.Equal(t, int32(0), a.RefCount())
	assert.True(t, a.Released())
	assert.Equal(t, int32(1), b.RefCount())
	assert.Same(t, b, c.Manager())
}

func TestComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, ComputeStrides([]int{2, 3, 4}, RowMajor))
	assert.Equal(t, []int{1, 2, 6}, ComputeStrides([]int{2, 3, 4}, ColumnMajor))
	assert.Equal(t, []int{}, ComputeStrides(nil, RowMajor))
}

func TestShape(t *testing.T) {
	s := Shape{2, 3}
	assert.Equal(t, 6, s.NumElements())
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.True(t, s.Equal(Shape{2, 3}))
	assert.False(t, s.Equal(Shape{3, 2}))
	assert.False(t, s.Equal(Shape{2}))

	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 2, s[0])
}

func TestDataOrderString(t *testing.T) {
	assert.Equal(t, "row-major", RowMajor.String())
	assert.Equal(t, "column-major", ColumnMajor.String())
	assert.Equal(t, "unknown", DataOrder(7).String())
}

// LifecycleSuite covers reference counting across Cores and Managers.
type LifecycleSuite struct {
	suite.Suite
	manager *SimpleManager[float64]
	data    []float64
}

func (s *LifecycleSuite) SetupTest() {
	s.manager, s.data = Allocate[float64](12)
}

func (s *LifecycleSuite) TestSharedCoreCopies() {
	c := NewOrdered([]int{3, 4}, RowMajor, s.manager)
	const n = 5
	for i := 0; i < n; i++ {
		c.Acquire()
	}
	s.Equal(int32(n+1), c.RefCount())

	for i := 0; i < n; i++ {
		c.Release()
	}
	s.Equal(int32(1), c.RefCount())
	s.Equal(int32(1), s.manager.RefCount())
	s.False(s.manager.Released())

	c.Release()
	s.Equal(int32(0), s.manager.RefCount())
	s.True(s.manager.Released())
}

func (s *LifecycleSuite) TestStorageOutlivesFirstChain() {
	a := NewOrdered([]int{3, 4}, RowMajor, s.manager)
	b := NewOrdered([]int{4, 3}, ColumnMajor, s.manager)
	s.Equal(int32(2), s.manager.RefCount())

	a.Release()
	s.False(s.manager.Released())

	b.Release()
	s.True(s.manager.Released())
}

func (s *LifecycleSuite) TestIsUnique() {
	c := NewOrdered([]int{3, 4}, RowMajor, s.manager)
	s.True(c.IsUnique())

	c.Acquire()
	s.False(c.IsUnique(), "shared chain")
	c.Release()
	s.True(c.IsUnique())

	d := c.Copy()
	s.False(c.IsUnique(), "shared manager")
	d.Release()
	s.True(c.IsUnique())
}

func (s *LifecycleSuite) TestIsUniqueRequiresOwningManager() {
	ext := NewExternal(s.data, nil)
	c := NewOrdered([]int{12}, RowMajor, ext)
	s.False(c.IsUnique())

	unmanaged := NewOrdered([]int{12}, RowMajor, nil)
	s.False(unmanaged.IsUnique())
}

func (s *LifecycleSuite) TestExternalReleaseHook() {
	calls := 0
	ext := NewExternal(s.data, func() { calls++ })
	s.Equal(s.data, ext.Owner())

	a := NewOrdered([]int{12}, RowMajor, ext)
	b := a.Copy()
	a.Release()
	s.Equal(0, calls)
	b.Release()
	s.Equal(1, calls)
	s.Nil(ext.Owner())
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(LifecycleSuite))
}

func TestAllocateEmpty(t *testing.T) {
	m, data := Allocate[float32](0)
	assert.Nil(t, data)
	assert.True(t, m.IsUnique())
}
