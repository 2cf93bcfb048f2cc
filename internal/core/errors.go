package core

import (
	"github.com/pkg/errors"
)

// Common errors.
var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidStep       = errors.New("invalid slice step")
	ErrContiguity        = errors.New("dimensions are not row-major contiguous")
	ErrShapeMismatch     = errors.New("shape mismatch")
)

// Errorf wraps a sentinel with a formatted message and a stack trace.
// errors.Is(err, sentinel) still reports true for the result.
func Errorf(sentinel error, format string, args ...any) error {
	return errors.Wrapf(sentinel, format, args...)
}
