package mapfile

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/array"
)

// writeArange writes a row-major rows x cols float64 array holding 0, 1, 2, ...
func writeArange(t *testing.T, rows, cols int) string {
	t.Helper()
	a := array.Allocate[float64](rows, cols)
	defer a.Release()
	for i := range a.Data() {
		a.Data()[i] = float64(i)
	}
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, Write[float64](path, a))
	return path
}

func TestWriteAndView(t *testing.T) {
	path := writeArange(t, 3, 4)

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, 12*8, f.Size())

	v, err := View[float64](f, 0, 3, 4)
	require.NoError(t, err)
	defer v.Release()

	assert.Equal(t, []int{3, 4}, v.Shape())
	assert.Equal(t, 2, v.RMC())
	assert.Equal(t, 6.0, v.At(1, 2))
	assert.False(t, v.IsUnique(), "mapped storage is never unique")

	// A view of the second row only.
	row, err := View[float64](f, 4*8, 4)
	require.NoError(t, err)
	defer row.Release()
	assert.Equal(t, 4.0, row.At(0))
	assert.Equal(t, 7.0, row.At(3))
}

func TestWriteUsesLogicalOrder(t *testing.T) {
	a := array.Wrap([]int32{0, 1, 2, 3, 4, 5}, 2, 3)
	defer a.Release()
	tr := a.Transpose()
	defer tr.Release()

	path := filepath.Join(t.TempDir(), "t.bin")
	require.NoError(t, Write[int32](path, tr))

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := View[int32](f, 0, 3, 2)
	require.NoError(t, err)
	defer v.Release()

	v.Each(func(index []int, x int32) {
		assert.Equal(t, tr.At(index...), x, "at %v", index)
	})
}

func TestMappingOutlivesClose(t *testing.T) {
	path := writeArange(t, 2, 2)

	f, err := Open(path)
	require.NoError(t, err)
	v, err := View[float64](f, 0, 2, 2)
	require.NoError(t, err)

	require.NoError(t, f.Close())
	assert.True(t, f.Mapped(), "a live view keeps the mapping")
	assert.Equal(t, 3.0, v.At(1, 1))
	assert.NoError(t, f.Close(), "second close is a no-op")

	_, err = View[float64](f, 0, 1)
	assert.ErrorIs(t, err, ErrClosed)

	v.Release()
	assert.False(t, f.Mapped())
}

func TestCloseWithoutViewsUnmaps(t *testing.T) {
	path := writeArange(t, 1, 4)

	f, err := Open(path)
	require.NoError(t, err)
	v, err := View[float64](f, 0, 4)
	require.NoError(t, err)
	v.Release()
	assert.True(t, f.Mapped())

	require.NoError(t, f.Close())
	assert.False(t, f.Mapped())
}

func TestViewErrors(t *testing.T) {
	path := writeArange(t, 2, 2)
	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = View[float64](f, 0, 5)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = View[float64](f, 8, 4)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = View[float64](f, -8, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = View[float64](f, 1, 2)
	assert.ErrorIs(t, err, ErrMisaligned)
}

func TestEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, 0, f.Size())

	v, err := View[float64](f, 0, 0, 3)
	require.NoError(t, err)
	defer v.Release()
	assert.True(t, v.IsEmpty())

	_, err = View[float64](f, 0, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}

func TestViewRejectsOversizedShapes(t *testing.T) {
	path := writeArange(t, 2, 4)
	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	tests := []struct {
		name   string
		offset int
		shape  []int
	}{
		{"byte count wraps", 0, []int{math.MaxInt/8 + 1}},
		{"element count wraps", 0, []int{math.MaxInt/2 + 1, 4}},
		{"negative sizes", 0, []int{-2, -2}},
		{"single negative size", 0, []int{-1}},
		{"offset past end", 72, []int{1}},
		{"one past the end", 8, []int{8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := View[float64](f, tt.offset, tt.shape...)
				assert.ErrorIs(t, err, ErrOutOfBounds)
			})
		})
	}

	v, err := View[float64](f, 8, 7)
	require.NoError(t, err, "the last seven elements fit exactly")
	defer v.Release()
	assert.Equal(t, 7.0, v.At(6))
}
