// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides zero-copy strided N-dimensional views over shared,
// reference-counted storage.
//
// # Overview
//
// An Array is a lightweight handle made of a data slice, an offset into it,
// and a descriptor holding the size and stride of every dimension. Views,
// slices, transposes and casts never copy elements: they build a new
// descriptor over the same storage.
//
// # Basic Usage
//
//	import "github.com/born-ml/ndarray/array"
//
//	func main() {
//	    a := array.Allocate[float64](3, 4, 5) // like numpy.zeros((3, 4, 5))
//	    defer a.Release()
//
//	    // a[1:3, :, 2] in NumPy.
//	    v := a.View(array.Range(1, 3), array.All(), array.Index(2))
//	    defer v.Release()
//
//	    v.Set(1.5, 0, 4) // writes through to a
//	}
//
// # Ownership
//
// Storage lives as long as any view over it. Every function or method that
// returns a handle has taken a reference, which the caller gives back with
// Release. Plain assignment copies the handle without taking a reference,
// the same way a Go slice header is copied.
//
// Array.Rebind points an Array at another array's data. Ref.Assign copies
// elements into the data the Ref already views. Const is a read-only handle.
// All three support Sub, View, Transpose, Permute, Flatten and the dimension
// casts, and each returns a handle of its own kind: a Sub of a Ref is a Ref,
// a View of a Const is a Const.
//
// # Contiguity
//
// Every array records how many of its dimensions are known to be laid out
// contiguously: RMC() > 0 counts trailing row-major dimensions and RMC() < 0
// counts leading column-major ones. Flatten requires enough guaranteed
// contiguity; DynamicDimensionCast checks the strides and
// StaticDimensionCast trusts the caller.
package array
