//go:build !ndarray_checked

package array

const checked = false
