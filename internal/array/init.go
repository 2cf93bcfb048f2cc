package array

import (
	"github.com/born-ml/ndarray/internal/core"
)

// Allocate creates a row-major array with new, zeroed storage.
// A shape with a zero extent yields an empty array of that shape.
//
// Example:
//
//	a := array.Allocate[float64](3, 4, 5) // like numpy.zeros((3, 4, 5))
//	defer a.Release()
func Allocate[T any](shape ...int) Array[T] {
	return AllocateOrder[T](core.RowMajor, shape...)
}

// AllocateOrder creates an array with new storage and strides in the given
// order. Column-major arrays report leading contiguity (RMC() < 0).
func AllocateOrder[T any](order core.DataOrder, shape ...int) Array[T] {
	m, data := core.Allocate[T](core.Shape(shape).NumElements())
	c := core.NewOrdered(shape, order, m)
	rmc := len(shape)
	if order == core.ColumnMajor {
		rmc = -rmc
	}
	return wrap(view[T]{data: data, core: c, nd: len(shape), rmc: rmc})
}

// External creates an array over memory the caller provides.
//
// No checking is done that shape and strides stay inside data. The manager
// keeps data alive for the array's lifetime; pass nil if data has an
// independent lifetime. The contiguity of the strides is recorded.
func External[T any](data []T, shape, strides []int, manager core.Manager) (Array[T], error) {
	c, err := core.New(shape, strides, manager)
	if err != nil {
		return Array[T]{}, err
	}
	if len(data) == 0 {
		data = nil
	}
	return wrap(view[T]{data: data, core: c, nd: len(shape), rmc: contiguity(shape, strides)}), nil
}

// Wrap creates a row-major array over caller-owned memory with no manager.
func Wrap[T any](data []T, shape ...int) Array[T] {
	a, err := External(data, shape, core.ComputeStrides(shape, core.RowMajor), nil)
	if err != nil {
		panic(err) // Strides are computed from shape
	}
	return a
}

// Clone creates a new row-major array holding a copy of src's elements.
func Clone[T any](src Source[T]) Array[T] {
	r := Allocate[T](src.Shape()...)
	from := src.Data()
	if r.data != nil && from != nil {
		walkPair(r.Shape(), r.Strides(), src.Strides(), r.offset, src.Offset(), func(i, j int) {
			r.data[i] = from[j]
		})
	}
	return r
}
