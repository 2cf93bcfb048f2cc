// Package mapfile exposes raw binary files as read-only array views over a
// memory mapping.
//
// The mapping is owned by an ExternalManager: it is unmapped once the File
// has been closed and the last view over it has been released, in either
// order. Elements are stored in native byte order with no header; Write
// produces files in that layout.
package mapfile

import (
	"math"
	"os"
	"sync"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/core"
)

// Common errors.
var (
	ErrOutOfBounds = errors.New("view extends beyond mapped file")
	ErrMisaligned  = errors.New("offset is not aligned for element type")
	ErrClosed      = errors.New("file is closed")
)

// File is a read-only memory mapping of a whole file.
type File struct {
	mu       sync.Mutex
	data     []byte
	manager  *core.ExternalManager
	closed   bool
	unmapped bool
	unmapErr error
}

// Open maps the file at path read-only.
//
// Important: Always call Close() when done (use defer). Views taken from the
// file stay valid after Close until they are released.
func Open(path string) (*File, error) {
	//nolint:gosec // G304: mapping a caller-chosen file is the purpose of this package
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	// The mapping outlives the descriptor.
	defer func() { _ = fd.Close() }()

	stat, err := fd.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat file")
	}

	f := &File{}
	if size := int(stat.Size()); size > 0 {
		if f.data, err = mapRegion(fd, size); err != nil {
			return nil, errors.Wrap(err, "mmap failed")
		}
	}
	f.manager = core.NewExternal(f, f.unmap)
	f.manager.Acquire()
	return f, nil
}

func (f *File) unmap() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data != nil {
		f.unmapErr = unmapRegion(f.data)
		f.data = nil
	}
	f.unmapped = true
}

// Size returns the mapped size in bytes.
func (f *File) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.data)
}

// Mapped reports whether the file is still mapped.
func (f *File) Mapped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.unmapped
}

// Close drops the file's own reference to the mapping. The error of the
// unmap is returned if it happened during this call.
func (f *File) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	f.manager.Release()

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unmapErr
}

// View returns a read-only row-major view of shape starting at byte offset.
func View[T any](f *File, offset int, shape ...int) (array.Const[T], error) {
	f.mu.Lock()
	closed, data := f.closed, f.data
	f.mu.Unlock()
	if closed {
		return array.Const[T]{}, errors.WithStack(ErrClosed)
	}

	var zero T
	size := int(unsafe.Sizeof(zero))
	if offset < 0 || offset > len(data) {
		return array.Const[T]{}, errors.Wrapf(ErrOutOfBounds, "offset %d in %d bytes", offset, len(data))
	}
	n, err := fitElements(shape, size, len(data)-offset)
	if err != nil {
		return array.Const[T]{}, err
	}

	var elems []T
	if n > 0 && size > 0 {
		base := unsafe.Pointer(&data[offset]) //nolint:gosec // G103: reinterpretation of mapped bytes
		if uintptr(base)%unsafe.Alignof(zero) != 0 {
			return array.Const[T]{}, errors.Wrapf(ErrMisaligned, "offset %d for %T", offset, zero)
		}
		elems = unsafe.Slice((*T)(base), n)
	}

	a, err := array.External(elems, shape, core.ComputeStrides(shape, core.RowMajor), f.manager)
	if err != nil {
		return array.Const[T]{}, err
	}
	c := a.AsConst()
	a.Release()
	return c, nil
}

// fitElements returns the element count of shape if that many elements of
// size bytes fit in avail bytes. The running product is bounded before each
// multiplication so it cannot overflow.
func fitElements(shape []int, size, avail int) (int, error) {
	for _, d := range shape {
		if d < 0 {
			return 0, errors.Wrapf(ErrOutOfBounds, "negative size %d in shape %v", d, shape)
		}
		if d == 0 {
			return 0, nil
		}
	}
	limit := math.MaxInt
	if size > 0 {
		limit = avail / size
	}
	n := 1
	for _, d := range shape {
		if n > limit/d {
			return 0, errors.Wrapf(ErrOutOfBounds, "shape %v of %d-byte elements exceeds %d bytes", shape, size, avail)
		}
		n *= d
	}
	return n, nil
}

// Write stores the elements of src at path in row-major order and native
// byte order, replacing any existing file.
func Write[T any](path string, src array.Source[T]) error {
	contiguous := array.Clone(src)
	defer contiguous.Release()

	var raw []byte
	if elems := contiguous.Data(); len(elems) > 0 {
		var zero T
		//nolint:gosec // G103: byte view of a plain element slice
		raw = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(elems))), len(elems)*int(unsafe.Sizeof(zero)))
	}
	//nolint:gosec // G306: data files are meant to be readable
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrap(err, "failed to write file")
	}
	return nil
}
