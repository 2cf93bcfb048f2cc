//go:build ndarray_checked

package array

// checked enables index and permutation validation.
const checked = true
