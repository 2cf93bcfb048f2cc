// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/core"
)

// Type aliases for public API

// Array is a handle to a strided view that can be rebound to other data.
//
// The zero value is an empty array.
type Array[T any] = array.Array[T]

// Ref is a handle whose assignment writes elements into the viewed data.
type Ref[T any] = array.Ref[T]

// Const is a read-only handle.
type Const[T any] = array.Const[T]

// Source is anything that can be copied element-wise into an array.
type Source[T any] = array.Source[T]

// Spec is one entry of a View call: an index, a range, a strided slice, the
// whole dimension, or a new unit dimension.
type Spec = array.Spec

// FormatOptions controls the text rendering of arrays.
type FormatOptions = array.FormatOptions

// Float is a constraint for real floating-point elements.
type Float = array.Float

// Complex is a constraint for complex elements.
type Complex = array.Complex

// Manager owns the storage behind one or more arrays.
type Manager = core.Manager

// SimpleManager owns a slice allocated by this package.
type SimpleManager[T any] = core.SimpleManager[T]

// ExternalManager keeps an arbitrary owner alive and runs a hook when the
// last array over it is released.
type ExternalManager = core.ExternalManager

// DataOrder selects row-major or column-major strides.
type DataOrder = core.DataOrder

// Data order constants.
const (
	RowMajor    DataOrder = core.RowMajor
	ColumnMajor DataOrder = core.ColumnMajor
)

// Shape represents the sizes of an array's dimensions.
type Shape = core.Shape

// Errors reported by array operations. Panics and returned errors wrap these,
// so test them with errors.Is.
var (
	ErrDimensionMismatch = core.ErrDimensionMismatch
	ErrInvalidStep       = core.ErrInvalidStep
	ErrContiguity        = core.ErrContiguity
	ErrShapeMismatch     = core.ErrShapeMismatch
)

// Creation functions

// Allocate creates a row-major array with new, zeroed storage.
//
// Example:
//
//	a := array.Allocate[float64](3, 4)
//	defer a.Release()
func Allocate[T any](shape ...int) Array[T] {
	return array.Allocate[T](shape...)
}

// AllocateOrder creates an array with new storage laid out in order.
func AllocateOrder[T any](order DataOrder, shape ...int) Array[T] {
	return array.AllocateOrder[T](order, shape...)
}

// External creates an array over memory the caller provides. The strides are
// not checked against len(data). manager keeps data alive and may be nil.
//
// Example:
//
//	data := make([]float64, 33)
//	a, err := array.External(data, []int{3, 4}, []int{1, 10}, nil)
func External[T any](data []T, shape, strides []int, manager Manager) (Array[T], error) {
	return array.External(data, shape, strides, manager)
}

// Wrap creates a row-major array over data with no manager.
func Wrap[T any](data []T, shape ...int) Array[T] {
	return array.Wrap(data, shape...)
}

// Clone creates a new row-major array holding a copy of src's elements.
func Clone[T any](src Source[T]) Array[T] {
	return array.Clone(src)
}

// NewExternal creates a manager that keeps owner alive and calls release,
// if non-nil, when the last array over it is released.
func NewExternal(owner any, release func()) *ExternalManager {
	return core.NewExternal(owner, release)
}

// View specs

// All selects a whole dimension, like ":" in NumPy.
func All() Spec { return array.All() }

// Index selects a single position and drops the dimension.
func Index(i int) Spec { return array.Index(i) }

// Range selects [start, stop) with step 1.
func Range(start, stop int) Spec { return array.Range(start, stop) }

// Slice selects start, start+step, ... up to but excluding stop.
// step must not be zero; it may be negative.
func Slice(start, stop, step int) Spec { return array.Slice(start, stop, step) }

// NewAxis inserts a dimension of size 1.
func NewAxis() Spec { return array.NewAxis() }

// ParseSpecs parses a NumPy-style index expression such as "1:3, :, ::-1".
//
// Example:
//
//	specs, err := array.ParseSpecs("1:3, :, 2")
//	v := a.View(specs...)
func ParseSpecs(expr string) ([]Spec, error) {
	return array.ParseSpecs(expr)
}

// Casts

// StaticDimensionCast returns a view claiming c contiguous dimensions
// without checking the strides.
func StaticDimensionCast[T any](a Array[T], c int) Array[T] {
	return array.StaticDimensionCast(a, c)
}

// DynamicDimensionCast returns a view with c contiguous dimensions if the
// strides actually have them, and an empty array otherwise.
func DynamicDimensionCast[T any](a Array[T], c int) Array[T] {
	return array.DynamicDimensionCast(a, c)
}

// ConstCast returns a mutable handle to the data of a Const.
func ConstCast[T any](c Const[T]) Array[T] {
	return array.ConstCast(c)
}

// Flatten merges the contiguous dimensions of a so that it has nf
// dimensions.
//
// Example:
//
//	a := array.Allocate[float64](2, 3, 4)
//	f := array.Flatten(a, 2) // shape (2, 12)
func Flatten[T any](a Array[T], nf int) Array[T] {
	return array.Flatten(a, nf)
}

// Real returns a view of the real parts of a complex array.
func Real(a Array[complex128]) Array[float64] { return array.Real(a) }

// Imag returns a view of the imaginary parts of a complex array.
func Imag(a Array[complex128]) Array[float64] { return array.Imag(a) }

// Real32 returns a view of the real parts of a complex64 array.
func Real32(a Array[complex64]) Array[float32] { return array.Real32(a) }

// Imag32 returns a view of the imaginary parts of a complex64 array.
func Imag32(a Array[complex64]) Array[float32] { return array.Imag32(a) }

// RealRef returns a deep view of the real parts of a complex array.
func RealRef(r Ref[complex128]) Ref[float64] { return array.RealRef(r) }

// ImagRef returns a deep view of the imaginary parts of a complex array.
func ImagRef(r Ref[complex128]) Ref[float64] { return array.ImagRef(r) }

// Real32Ref returns a deep view of the real parts of a complex64 array.
func Real32Ref(r Ref[complex64]) Ref[float32] { return array.Real32Ref(r) }

// Imag32Ref returns a deep view of the imaginary parts of a complex64 array.
func Imag32Ref(r Ref[complex64]) Ref[float32] { return array.Imag32Ref(r) }

// RealConst returns a read-only view of the real parts of a complex array.
func RealConst(c Const[complex128]) Const[float64] { return array.RealConst(c) }

// ImagConst returns a read-only view of the imaginary parts of a complex array.
func ImagConst(c Const[complex128]) Const[float64] { return array.ImagConst(c) }

// Real32Const returns a read-only view of the real parts of a complex64 array.
func Real32Const(c Const[complex64]) Const[float32] { return array.Real32Const(c) }

// Imag32Const returns a read-only view of the imaginary parts of a complex64 array.
func Imag32Const(c Const[complex64]) Const[float32] { return array.Imag32Const(c) }

// DefaultFormat returns the options used by String.
func DefaultFormat() FormatOptions { return array.DefaultFormat() }
