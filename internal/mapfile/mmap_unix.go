//go:build unix

package mapfile

import (
	"os"
	"syscall"
)

// mapRegion maps size bytes of f read-only.
func mapRegion(f *os.File, size int) ([]byte, error) {
	return syscall.Mmap(
		int(f.Fd()), //nolint:gosec // G115: file descriptor fits in int
		0,
		size,
		syscall.PROT_READ,
		syscall.MAP_SHARED,
	)
}

// unmapRegion releases a region returned by mapRegion.
func unmapRegion(data []byte) error {
	return syscall.Munmap(data)
}
