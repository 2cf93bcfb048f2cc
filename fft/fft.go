// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package fft performs fast Fourier transforms between real-space and
// Fourier-space array views.
//
// Plans are created once for a pair of arrays and executed repeatedly.
// Transforms are unnormalized; a forward and inverse round trip multiplies
// the data by the number of real-space elements.
//
// Example:
//
//	var x array.Array[float64]
//	var k array.Array[complex128]
//	plan, err := fft.PlanForward([]int{64, 64}, &x, &k) // allocates x and k
//	if err != nil {
//	    return err
//	}
//	defer plan.Destroy()
//	defer x.Release()
//	defer k.Release()
//
//	// fill x ...
//	plan.Execute() // k now holds the 64x33 half-spectrum
package fft

import (
	"github.com/born-ml/ndarray/array"
	"github.com/born-ml/ndarray/internal/fft"
	"github.com/born-ml/ndarray/internal/parallel"
)

// Plan is a prepared transform over fixed arrays.
type Plan = fft.Plan

// Options configures plan execution.
type Options = fft.Options

// ParallelConfig controls how transform work is split across goroutines.
type ParallelConfig = parallel.Config

// ErrPlanDestroyed is the panic value of Execute after Destroy.
var ErrPlanDestroyed = fft.ErrPlanDestroyed

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options { return fft.DefaultOptions() }

// DefaultParallelConfig returns defaults based on CPU count.
func DefaultParallelConfig() ParallelConfig { return parallel.DefaultConfig() }

// PlanForward creates a real-to-complex plan for a single array.
func PlanForward(shape []int, x *array.Array[float64], k *array.Array[complex128], opts ...Options) (*Plan, error) {
	return fft.PlanForward(shape, x, k, opts...)
}

// PlanInverse creates a complex-to-real plan for a single array.
func PlanInverse(shape []int, k *array.Array[complex128], x *array.Array[float64], opts ...Options) (*Plan, error) {
	return fft.PlanInverse(shape, k, x, opts...)
}

// PlanMultiplexForward creates a real-to-complex plan over the nested arrays
// of x. The first dimension is the batch.
func PlanMultiplexForward(shape []int, x *array.Array[float64], k *array.Array[complex128], opts ...Options) (*Plan, error) {
	return fft.PlanMultiplexForward(shape, x, k, opts...)
}

// PlanMultiplexInverse creates a complex-to-real plan over the nested arrays
// of k. The first dimension is the batch.
func PlanMultiplexInverse(shape []int, k *array.Array[complex128], x *array.Array[float64], opts ...Options) (*Plan, error) {
	return fft.PlanMultiplexInverse(shape, k, x, opts...)
}

// PlanComplexForward creates a complex-to-complex forward plan.
func PlanComplexForward(shape []int, x, k *array.Array[complex128], opts ...Options) (*Plan, error) {
	return fft.PlanComplexForward(shape, x, k, opts...)
}

// PlanComplexInverse creates a complex-to-complex inverse plan.
func PlanComplexInverse(shape []int, k, x *array.Array[complex128], opts ...Options) (*Plan, error) {
	return fft.PlanComplexInverse(shape, k, x, opts...)
}

// InitializeX allocates a real-space array.
func InitializeX(shape []int) array.Array[float64] { return fft.InitializeX(shape) }

// InitializeK allocates the Fourier-space array for a real-space shape.
func InitializeK(shape []int) array.Array[complex128] { return fft.InitializeK(shape) }

// ShapeK returns the Fourier-space shape paired with a real-space shape.
func ShapeK(shape []int) []int { return fft.ShapeK(shape) }

// Initialize allocates whichever of x and k is empty and checks the shape of
// the other.
func Initialize(shape []int, x *array.Array[float64], k *array.Array[complex128]) error {
	return fft.Initialize(shape, x, k)
}

// Shift translates the real-space signal of the half-spectrum k by offset.
func Shift(offset []float64, k array.Array[complex128], realLastDim int) {
	fft.Shift(offset, k, realLastDim)
}

// Differentiate differentiates the real-space signal of the half-spectrum k
// along axis.
func Differentiate(axis int, k array.Array[complex128], realLastDim int) {
	fft.Differentiate(axis, k, realLastDim)
}
