//go:build windows

package mmap

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Anon reserves and commits size bytes of zero-filled, read-write memory.
// The returned release function frees it; calling release twice is a no-op.
func Anon(size int) ([]byte, func() error, error) {
	if err := checkSize(size); err != nil {
		return nil, nil, err
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return nil, nil, err
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	release := func() error {
		if addr == 0 {
			return nil
		}
		err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		addr = 0
		return err
	}
	return data, release, nil
}
