//go:build windows

package mapfile

import (
	"os"
	"reflect"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
)

// mapRegion maps size bytes of f read-only.
func mapRegion(f *os.File, size int) ([]byte, error) {
	handle, err := syscall.CreateFileMapping(
		syscall.Handle(f.Fd()),
		nil,
		syscall.PAGE_READONLY,
		uint32(int64(size)>>32), //nolint:gosec // G115: high half of the size
		uint32(size),            //nolint:gosec // G115: low half of the size
		nil,
	)
	if err != nil {
		return nil, err
	}
	// The view keeps the mapping object alive after its handle is closed.
	defer func() { _ = syscall.CloseHandle(handle) }()

	addr, err := syscall.MapViewOfFile(handle, syscall.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		return nil, err
	}

	var data []byte
	//nolint:staticcheck,gosec // SA1019+G103: addr is a mapped view of exactly size bytes
	header := (*reflect.SliceHeader)(unsafe.Pointer(&data))
	header.Data = addr
	header.Len = size
	header.Cap = size
	return data, nil
}

// unmapRegion releases a region returned by mapRegion.
func unmapRegion(data []byte) error {
	if len(data) == 0 {
		return errors.New("cannot unmap an empty region")
	}
	//nolint:staticcheck,gosec // SA1019+G103: recover the view address
	header := (*reflect.SliceHeader)(unsafe.Pointer(&data))
	return syscall.UnmapViewOfFile(header.Data)
}
