package alloc

import "github.com/joshuapare/allockit/internal/align"

// System allocates from the Go heap. Blocks are ordinary byte slices that the
// garbage collector reclaims once unreachable, so Deallocate is a no-op.
//
// System is stateless and safe for concurrent use. It is the default backing
// for decorators that need an allocator with no capacity limit.
type System struct{}

// Allocate returns exactly l.Size() bytes aligned to l.Align().
func (System) Allocate(l Layout) ([]byte, error) {
	return systemAlloc(l), nil
}

// AllocateZeroed is Allocate; Go heap memory is always zeroed.
func (System) AllocateZeroed(l Layout) ([]byte, error) {
	return systemAlloc(l), nil
}

// Deallocate is a no-op.
func (System) Deallocate([]byte, Layout) {}

// Grow copies b into a new block of newSize bytes.
func (s System) Grow(b []byte, old Layout, newSize int) ([]byte, error) {
	return GrowByCopy(s, b, old, newSize, false)
}

// GrowZeroed copies b into a new zeroed block of newSize bytes.
func (s System) GrowZeroed(b []byte, old Layout, newSize int) ([]byte, error) {
	return GrowByCopy(s, b, old, newSize, true)
}

// Shrink copies the first newSize bytes of b into a new block, so the old
// backing array can be collected.
func (s System) Shrink(b []byte, old Layout, newSize int) ([]byte, error) {
	return ShrinkByCopy(s, b, old, newSize)
}

// systemAlloc returns a plain make when the heap already honours the
// alignment, and otherwise over-allocates by align-1 bytes and returns the
// first aligned window. Layout validation guarantees size+align-1 fits in int.
func systemAlloc(l Layout) []byte {
	size, a := l.Size(), l.Align()
	if a <= align.Word {
		b := make([]byte, size)
		if a == 1 || align.IsAligned(addr(b), a) {
			return b
		}
	}
	raw := make([]byte, size+a-1)
	off := (a - int(addr(raw)&uintptr(a-1))) & (a - 1)
	return raw[off : off+size : off+size]
}

var _ Allocator = System{}
