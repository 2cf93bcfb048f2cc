// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mapfile exposes raw binary files as read-only array views backed by
// a memory mapping.
//
// Files hold elements in row-major and native byte order with no header.
// The mapping stays alive until the File is closed and every view taken from
// it has been released.
//
// Example:
//
//	f, err := mapfile.Open("grid.bin")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	v, err := mapfile.View[float64](f, 0, 512, 512)
//	if err != nil {
//	    return err
//	}
//	defer v.Release()
package mapfile

import (
	"github.com/born-ml/ndarray/array"
	"github.com/born-ml/ndarray/internal/mapfile"
)

// File is a read-only memory mapping of a whole file.
type File = mapfile.File

// Common errors.
var (
	ErrOutOfBounds = mapfile.ErrOutOfBounds
	ErrMisaligned  = mapfile.ErrMisaligned
	ErrClosed      = mapfile.ErrClosed
)

// Open maps the file at path read-only.
func Open(path string) (*File, error) { return mapfile.Open(path) }

// View returns a read-only row-major view of shape starting at byte offset.
func View[T any](f *File, offset int, shape ...int) (array.Const[T], error) {
	return mapfile.View[T](f, offset, shape...)
}

// Write stores the elements of src at path in row-major order.
func Write[T any](path string, src array.Source[T]) error {
	return mapfile.Write[T](path, src)
}
