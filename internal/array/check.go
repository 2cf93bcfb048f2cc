package array

import (
	"fmt"

	"github.com/born-ml/ndarray/internal/core"
)

// The checks below are compiled in only with the ndarray_checked build tag.
// The default build performs no bounds checking beyond what the Go runtime
// does on the backing slice.

func checkIndex(shape, index []int) {
	if !checked {
		return
	}
	if len(index) != len(shape) {
		panic(core.Errorf(core.ErrDimensionMismatch, "index has %d dimensions, array has %d", len(index), len(shape)))
	}
	for d, i := range index {
		if i < 0 || i >= shape[d] {
			panic(fmt.Sprintf("index %d out of range [0, %d) in dimension %d", i, shape[d], d))
		}
	}
}

func checkPermutation(order []int) {
	if !checked {
		return
	}
	seen := make([]bool, len(order))
	for _, o := range order {
		if o < 0 || o >= len(order) || seen[o] {
			panic(fmt.Sprintf("invalid permutation %v", order))
		}
		seen[o] = true
	}
}
