package core

// DataOrder selects the stride layout computed for a new array.
type DataOrder int

// Supported data orders.
const (
	RowMajor    DataOrder = iota // Last dimension has stride 1.
	ColumnMajor                  // First dimension has stride 1.
)

// String returns a human-readable name for the data order.
func (o DataOrder) String() string {
	switch o {
	case RowMajor:
		return "row-major"
	case ColumnMajor:
		return "column-major"
	default:
		return "unknown"
	}
}

// Shape represents the dimensions of an array.
type Shape []int

// NumElements returns the product of all dimensions.
// An empty shape describes a scalar and has 1 element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates contiguous strides for the shape.
//
// Row-major: stride[i] = product of all dimensions after i.
// Column-major: stride[i] = product of all dimensions before i.
func ComputeStrides(shape []int, order DataOrder) []int {
	strides := make([]int, len(shape))
	if len(shape) == 0 {
		return strides
	}

	if order == ColumnMajor {
		strides[0] = 1
		for i := 1; i < len(shape); i++ {
			strides[i] = strides[i-1] * shape[i-1]
		}
		return strides
	}

	strides[len(shape)-1] = 1
	for i := len(shape) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * shape[i+1]
	}
	return strides
}
