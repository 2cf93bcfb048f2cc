// Package fft performs fast Fourier transforms between real-space and
// Fourier-space array views.
//
// A Plan binds a transform to a pair of arrays and can be executed any
// number of times. Transforms are unnormalized: a forward transform followed
// by an inverse one multiplies the data by the number of real-space elements.
// Real transforms store only the non-negative frequencies of the last
// dimension, so a real-space shape (..., n) pairs with a Fourier-space shape
// (..., n/2+1).
package fft

import (
	"github.com/pkg/errors"

	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/core"
	"github.com/born-ml/ndarray/internal/parallel"
)

// ErrPlanDestroyed is returned when executing a plan after Destroy.
var ErrPlanDestroyed = errors.New("fft plan destroyed")

// Options configures plan execution.
type Options struct {
	Parallel parallel.Config // Fan-out of transform lines or batch items.
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Parallel: parallel.DefaultConfig()}
}

func resolveOptions(opts []Options) Options {
	if len(opts) == 0 {
		return DefaultOptions()
	}
	return opts[0]
}

// Plan is a prepared transform over fixed arrays.
//
// A plan keeps its arrays' storage alive until Destroy. Execute is not safe
// for concurrent use on the same plan.
type Plan struct {
	run     func()
	release []func()
}

// Execute runs the transform, overwriting the output array.
func (p *Plan) Execute() {
	if p.run == nil {
		panic(errors.WithStack(ErrPlanDestroyed))
	}
	p.run()
}

// Destroy releases the plan's references to its arrays. It is safe to call
// more than once.
func (p *Plan) Destroy() {
	for _, release := range p.release {
		release()
	}
	p.release = nil
	p.run = nil
}

// PlanForward creates a plan for the real-to-complex transform of a single
// array with real-space shape. Empty arrays are allocated; non-empty arrays
// must already have the matching shapes.
func PlanForward(shape []int, x *array.Array[float64], k *array.Array[complex128], opts ...Options) (*Plan, error) {
	if len(shape) < 1 {
		return nil, core.Errorf(core.ErrDimensionMismatch, "transform needs at least one dimension")
	}
	if err := Initialize(shape, x, k); err != nil {
		return nil, err
	}
	cfg := resolveOptions(opts).Parallel
	xs, ks := x.Copy(), k.Copy()
	return &Plan{
		run:     func() { realForward(xs, ks, cfg) },
		release: []func(){xs.Release, ks.Release},
	}, nil
}

// PlanInverse creates a plan for the complex-to-real transform of a single
// array with real-space shape. The input k is preserved.
func PlanInverse(shape []int, k *array.Array[complex128], x *array.Array[float64], opts ...Options) (*Plan, error) {
	if len(shape) < 1 {
		return nil, core.Errorf(core.ErrDimensionMismatch, "transform needs at least one dimension")
	}
	if err := Initialize(shape, x, k); err != nil {
		return nil, err
	}
	cfg := resolveOptions(opts).Parallel
	xs, ks := x.Copy(), k.Copy()
	scratch := array.Allocate[complex128](ks.Shape()...)
	return &Plan{
		run:     func() { realInverse(ks, xs, scratch, cfg) },
		release: []func(){xs.Release, ks.Release, scratch.Release},
	}, nil
}

// PlanMultiplexForward creates a plan that forward-transforms each nested
// array of x. The first dimension of shape is the batch and is not
// transformed.
func PlanMultiplexForward(shape []int, x *array.Array[float64], k *array.Array[complex128], opts ...Options) (*Plan, error) {
	if len(shape) < 2 {
		return nil, core.Errorf(core.ErrDimensionMismatch, "multiplex transform needs at least two dimensions, got %d", len(shape))
	}
	if err := Initialize(shape, x, k); err != nil {
		return nil, err
	}
	cfg := resolveOptions(opts).Parallel
	xs, ks := x.Copy(), k.Copy()
	run := func() {
		multiplex(shape[0], cfg, func(b int, inner parallel.Config) {
			xb, kb := xs.Sub(b), ks.Sub(b)
			realForward(xb, kb, inner)
			xb.Release()
			kb.Release()
		})
	}
	return &Plan{run: run, release: []func(){xs.Release, ks.Release}}, nil
}

// PlanMultiplexInverse creates a plan that inverse-transforms each nested
// array of k. The first dimension of shape is the batch.
func PlanMultiplexInverse(shape []int, k *array.Array[complex128], x *array.Array[float64], opts ...Options) (*Plan, error) {
	if len(shape) < 2 {
		return nil, core.Errorf(core.ErrDimensionMismatch, "multiplex transform needs at least two dimensions, got %d", len(shape))
	}
	if err := Initialize(shape, x, k); err != nil {
		return nil, err
	}
	cfg := resolveOptions(opts).Parallel
	xs, ks := x.Copy(), k.Copy()
	scratch := array.Allocate[complex128](ks.Shape()...)
	run := func() {
		multiplex(shape[0], cfg, func(b int, inner parallel.Config) {
			kb, xb, sb := ks.Sub(b), xs.Sub(b), scratch.Sub(b)
			realInverse(kb, xb, sb, inner)
			kb.Release()
			xb.Release()
			sb.Release()
		})
	}
	return &Plan{run: run, release: []func(){xs.Release, ks.Release, scratch.Release}}, nil
}

// PlanComplexForward creates a plan for the complex-to-complex forward
// transform of x into k. Both arrays have the given shape.
func PlanComplexForward(shape []int, x, k *array.Array[complex128], opts ...Options) (*Plan, error) {
	return planComplex(shape, x, k, false, opts)
}

// PlanComplexInverse creates a plan for the complex-to-complex inverse
// transform of k into x.
func PlanComplexInverse(shape []int, k, x *array.Array[complex128], opts ...Options) (*Plan, error) {
	return planComplex(shape, k, x, true, opts)
}

func planComplex(shape []int, src, dst *array.Array[complex128], inverse bool, opts []Options) (*Plan, error) {
	if len(shape) < 1 {
		return nil, core.Errorf(core.ErrDimensionMismatch, "transform needs at least one dimension")
	}
	if err := ensure(shape, src, "input"); err != nil {
		return nil, err
	}
	if err := ensure(shape, dst, "output"); err != nil {
		return nil, err
	}
	cfg := resolveOptions(opts).Parallel
	s, d := src.Copy(), dst.Copy()
	return &Plan{
		run:     func() { complexTransform(s, d, inverse, cfg) },
		release: []func(){s.Release, d.Release},
	}, nil
}

// InitializeX allocates a real-space array with the given real-space shape.
func InitializeX(shape []int) array.Array[float64] {
	return array.Allocate[float64](shape...)
}

// InitializeK allocates a Fourier-space array for the given real-space shape.
func InitializeK(shape []int) array.Array[complex128] {
	return array.Allocate[complex128](ShapeK(shape)...)
}

// ShapeK returns the Fourier-space shape paired with a real-space shape.
func ShapeK(shape []int) []int {
	k := core.Shape(shape).Clone()
	if n := len(k); n > 0 {
		k[n-1] = k[n-1]/2 + 1
	}
	return k
}

// Initialize allocates whichever of x and k is empty. A non-empty array must
// already match shape (x) or ShapeK(shape) (k).
func Initialize(shape []int, x *array.Array[float64], k *array.Array[complex128]) error {
	if err := ensure(shape, x, "real-space"); err != nil {
		return err
	}
	return ensure(ShapeK(shape), k, "Fourier-space")
}

func ensure[T any](shape []int, a *array.Array[T], what string) error {
	if a.IsEmpty() {
		a.Release()
		*a = array.Allocate[T](shape...)
		return nil
	}
	if !core.Shape(a.Shape()).Equal(shape) {
		return core.Errorf(core.ErrShapeMismatch, "%s array has shape %v, want %v", what, a.Shape(), shape)
	}
	return nil
}
