package array

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/ndarray/internal/core"
)

type specKind int

const (
	specAll specKind = iota
	specIndex
	specRange
	specNewAxis
)

// Spec describes how View treats one input dimension.
type Spec struct {
	kind     specKind
	start    int
	stop     int
	step     int
	hasStart bool
	hasStop  bool
}

// All keeps a dimension unchanged.
func All() Spec { return Spec{kind: specAll} }

// Index selects a single position and drops the dimension.
func Index(i int) Spec { return Spec{kind: specIndex, start: i} }

// Range keeps positions [start, stop) of a dimension.
func Range(start, stop int) Spec { return Slice(start, stop, 1) }

// Slice keeps positions start, start+step, ... up to but excluding stop.
// A negative step walks backwards and reverses the stride.
func Slice(start, stop, step int) Spec {
	return Spec{kind: specRange, start: start, stop: stop, step: step, hasStart: true, hasStop: true}
}

// NewAxis inserts a dimension of size 1. It does not consume an input dimension.
func NewAxis() Spec { return Spec{kind: specNewAxis} }

// String returns the NumPy-style spelling of the spec.
func (s Spec) String() string {
	switch s.kind {
	case specIndex:
		return strconv.Itoa(s.start)
	case specNewAxis:
		return "newaxis"
	case specRange:
		var b strings.Builder
		if s.hasStart {
			b.WriteString(strconv.Itoa(s.start))
		}
		b.WriteByte(':')
		if s.hasStop {
			b.WriteString(strconv.Itoa(s.stop))
		}
		if s.step != 1 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(s.step))
		}
		return b.String()
	default:
		return ":"
	}
}

// resolve returns the start, size and step of a range over a dimension of
// length n. Open bounds default to the whole dimension in step direction.
func (s Spec) resolve(n int) (start, size, step int) {
	step = s.step
	if step == 0 {
		panic(core.Errorf(core.ErrInvalidStep, "slice %s", s))
	}
	start, stop := s.start, s.stop
	if !s.hasStart {
		start = 0
		if step < 0 {
			start = n - 1
		}
	}
	if !s.hasStop {
		stop = n
		if step < 0 {
			stop = -1
		}
	}
	if step > 0 && stop > start {
		size = (stop - start + step - 1) / step
	} else if step < 0 && start > stop {
		size = (start - stop - step - 1) / -step
	}
	return start, size, step
}

// entry records how one output position was produced while building a view.
type entry struct {
	kind specKind
	dim  int // input dimension, -1 for a new axis
	step int
}

// View returns a general view into the array.
//
// Each spec consumes one input dimension, except NewAxis. Input dimensions
// not covered by specs are kept unchanged. The result shares the data and
// manager; its offset is advanced by start*stride for every indexed or
// sliced dimension.
//
// Panics with ErrInvalidStep for a zero step and ErrDimensionMismatch when
// the specs consume more dimensions than the array has.
func (a Array[T]) View(specs ...Spec) Array[T] { return wrap(a.index(specs)) }

// View returns a general view as a deep handle. See Array.View.
func (r Ref[T]) View(specs ...Spec) Ref[T] { return deep(r.index(specs)) }

// View returns a general read-only view. See Array.View.
func (c Const[T]) View(specs ...Spec) Const[T] { return Const[T]{c.index(specs)} }

func (v view[T]) index(specs []Spec) view[T] {
	used := 0
	for _, s := range specs {
		if s.kind != specNewAxis {
			used++
		}
	}
	if used > v.nd {
		panic(core.Errorf(core.ErrDimensionMismatch, "view consumes %d dimensions, array has %d", used, v.nd))
	}

	inShape := v.Shape()
	inStrides := v.Strides()
	offset := v.offset
	shape := make([]int, 0, v.nd+len(specs))
	strides := make([]int, 0, v.nd+len(specs))
	entries := make([]entry, 0, v.nd+len(specs))

	d := 0
	for _, s := range specs {
		switch s.kind {
		case specAll:
			shape = append(shape, inShape[d])
			strides = append(strides, inStrides[d])
			entries = append(entries, entry{kind: specAll, dim: d, step: 1})
			d++
		case specIndex:
			offset += s.start * inStrides[d]
			entries = append(entries, entry{kind: specIndex, dim: d})
			d++
		case specRange:
			start, size, step := s.resolve(inShape[d])
			offset += start * inStrides[d]
			shape = append(shape, size)
			strides = append(strides, inStrides[d]*step)
			entries = append(entries, entry{kind: specRange, dim: d, step: step})
			d++
		case specNewAxis:
			shape = append(shape, 1)
			strides = append(strides, 0)
			entries = append(entries, entry{kind: specNewAxis, dim: -1})
		}
	}
	for ; d < v.nd; d++ {
		shape = append(shape, inShape[d])
		strides = append(strides, inStrides[d])
		entries = append(entries, entry{kind: specAll, dim: d, step: 1})
	}

	rmc := viewContiguity(v.nd, v.rmc, entries)
	if v.core == nil {
		return view[T]{nd: len(shape), rmc: rmc}
	}
	return v.derive(offset, shape, strides, rmc)
}

// viewContiguity returns the contiguity guaranteed for a view built from
// entries over an input with nd dimensions and contiguity rmc.
//
// Walking outward from the innermost entry inside the input's contiguous
// region, a kept dimension stays contiguous, a unit-step range stays
// contiguous but breaks everything outside it, and any other entry breaks.
// Leading (column-major) contiguity survives only views that keep every
// dimension.
func viewContiguity(nd, rmc int, entries []entry) int {
	if rmc < 0 {
		for _, e := range entries {
			if e.kind != specAll {
				return 0
			}
		}
		return rmc
	}

	count := 0
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.dim < nd-rmc {
			break
		}
		if e.kind == specAll {
			count++
			continue
		}
		if e.kind == specRange && e.step == 1 {
			count++
		}
		break
	}
	return count
}

// ParseSpecs parses a NumPy-style index expression such as "1:3, :, 2" or
// "::-1, newaxis". Accepted items are integers, start:stop[:step] with
// optional bounds, ":" and "newaxis" (or "None").
func ParseSpecs(expr string) ([]Spec, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	items := strings.Split(expr, ",")
	specs := make([]Spec, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		switch {
		case item == "newaxis" || item == "None":
			specs = append(specs, NewAxis())
		case !strings.Contains(item, ":"):
			i, err := strconv.Atoi(item)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid index %q", item)
			}
			specs = append(specs, Index(i))
		default:
			s, err := parseSlice(item)
			if err != nil {
				return nil, err
			}
			specs = append(specs, s)
		}
	}
	return specs, nil
}

func parseSlice(item string) (Spec, error) {
	parts := strings.Split(item, ":")
	if len(parts) > 3 {
		return Spec{}, errors.Errorf("invalid slice %q", item)
	}

	s := Spec{kind: specRange, step: 1}
	var err error
	if p := strings.TrimSpace(parts[0]); p != "" {
		if s.start, err = strconv.Atoi(p); err != nil {
			return Spec{}, errors.Wrapf(err, "invalid slice start in %q", item)
		}
		s.hasStart = true
	}
	if p := strings.TrimSpace(parts[1]); p != "" {
		if s.stop, err = strconv.Atoi(p); err != nil {
			return Spec{}, errors.Wrapf(err, "invalid slice stop in %q", item)
		}
		s.hasStop = true
	}
	if len(parts) == 3 {
		if p := strings.TrimSpace(parts[2]); p != "" {
			if s.step, err = strconv.Atoi(p); err != nil {
				return Spec{}, errors.Wrapf(err, "invalid slice step in %q", item)
			}
			if s.step == 0 {
				return Spec{}, core.Errorf(core.ErrInvalidStep, "slice %q", item)
			}
		}
	}
	if !s.hasStart && !s.hasStop && s.step == 1 {
		return All(), nil
	}
	return s, nil
}
