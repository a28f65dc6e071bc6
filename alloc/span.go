package alloc

import "unsafe"

// Span returns the n-byte block starting at b's first byte, regardless of
// len(b) and cap(b). It lets decorators reinterpret a block at a length the
// caller's slice header no longer describes.
//
// The caller must know that n bytes are valid at that address, typically
// because they were returned by an allocator. Span returns nil for a nil b.
func Span(b []byte, n int) []byte {
	p := unsafe.SliceData(b)
	if p == nil {
		return nil
	}
	return unsafe.Slice(p, n)
}

// addr returns the address of b's first byte, or 0 for a nil slice.
func addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
