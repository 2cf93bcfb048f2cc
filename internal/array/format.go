package array

import (
	"fmt"
	"strings"
)

// FormatOptions controls the text rendering of arrays.
type FormatOptions struct {
	Width     int    // Minimum width of each element; 0 disables padding.
	Precision int    // Significant digits for floating-point and complex elements.
	Delimiter string // Separator between elements and subarrays.
	Open      string // Opening bracket of every dimension.
	Close     string // Closing bracket of every dimension.
}

// DefaultFormat returns the options used by String.
func DefaultFormat() FormatOptions {
	return FormatOptions{
		Width:     8,
		Precision: 6,
		Delimiter: ", ",
		Open:      "[",
		Close:     "]",
	}
}

// String formats the array with DefaultFormat.
func (v view[T]) String() string {
	return v.FormatWith(DefaultFormat())
}

// FormatWith renders the array as nested bracketed lists. Subarrays after the
// first start on a new line, indented to their nesting depth.
func (v view[T]) FormatWith(opts FormatOptions) string {
	var b strings.Builder
	if v.nd == 0 {
		if v.data == nil {
			return opts.Open + opts.Close
		}
		formatElement(&b, opts, v.data[v.offset])
		return b.String()
	}
	v.formatLevel(&b, opts, v.Shape(), v.Strides(), v.offset, 0)
	return b.String()
}

func (v view[T]) formatLevel(b *strings.Builder, opts FormatOptions, shape, strides []int, base, level int) {
	b.WriteString(opts.Open)
	if v.data != nil && shape[level] > 0 {
		last := level == len(shape)-1
		for i := 0; i < shape[level]; i++ {
			off := base + i*strides[level]
			switch {
			case i == 0:
			case last:
				b.WriteString(opts.Delimiter)
			default:
				b.WriteString(strings.TrimRight(opts.Delimiter, " "))
				b.WriteString("\n")
				b.WriteString(strings.Repeat(" ", level+len(opts.Open)))
			}
			if last {
				formatElement(b, opts, v.data[off])
			} else {
				v.formatLevel(b, opts, shape, strides, off, level+1)
			}
		}
	}
	b.WriteString(opts.Close)
}

func formatElement(b *strings.Builder, opts FormatOptions, x any) {
	switch x.(type) {
	case float32, float64, complex64, complex128:
		fmt.Fprintf(b, "%*.*g", opts.Width, opts.Precision, x)
	default:
		fmt.Fprintf(b, "%*v", opts.Width, x)
	}
}
