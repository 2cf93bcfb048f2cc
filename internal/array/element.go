// Package array provides zero-copy strided N-dimensional views over shared,
// reference-counted storage.
package array

// Complex is a constraint for complex element types that can be split into
// real and imaginary views.
type Complex interface {
	~complex64 | ~complex128
}

// Float is a constraint for the scalar parts of Complex types.
type Float interface {
	~float32 | ~float64
}
