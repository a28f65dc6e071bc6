package region

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/allockit/alloc"
	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
)

// core is the bump algorithm shared by every region variant. It never
// modifies its own fields; all state changes go through cur, so a core can be
// passed and called by value.
//
// Invariant: 0 <= cur.load() <= len(mem) on every return path.
type core[C cursor] struct {
	mem []byte
	cur C
}

// base returns the address of the first byte of memory.
func (c core[C]) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(c.mem)))
}

// offsetOf returns b's offset within memory, or false if b does not start
// inside it. A block may start at len(mem) only if it is empty.
func (c core[C]) offsetOf(b []byte) (int, bool) {
	if len(c.mem) == 0 {
		return 0, false
	}
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	base := c.base()
	if p == 0 || p < base || p-base > uintptr(len(c.mem)) {
		return 0, false
	}
	return int(p - base), true
}

// block returns mem[off:off+n] with its capacity clipped, so appending to a
// block can never spill into its neighbour.
func (c core[C]) block(off, n int) []byte {
	end := off + n
	return c.mem[off:end:end]
}

// carve finds the start of a size-byte block ending at or below top: top-size
// rounded down to a. The rounding happens on the absolute address, so blocks
// are aligned in memory, not just relative to the buffer start.
func carve(mem []byte, top, size, a int) (int, error) {
	cand, ok := buf.SubUnderflowSafe(top, size)
	if !ok {
		return 0, fmt.Errorf("%w: need %d bytes, %d left", alloc.ErrNoSpace, size, top)
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	p := align.DownAddr(base+uintptr(cand), a)
	if p < base {
		return 0, fmt.Errorf("%w: need %d bytes aligned to %d, %d left", alloc.ErrNoSpace, size, a, top)
	}
	return int(p - base), nil
}

// Allocate carves l.Size() bytes below the cursor, aligned to l.Align().
// The returned block runs up to the old cursor, so it includes any alignment
// padding.
func (c core[C]) Allocate(l alloc.Layout) ([]byte, error) {
	top := c.cur.load()
	start, err := carve(c.mem, top, l.Size(), l.Align())
	if err != nil {
		return nil, err
	}
	c.cur.store(start)
	return c.block(start, top-start), nil
}

// AllocateZeroed is Allocate with the returned block cleared.
func (c core[C]) AllocateZeroed(l alloc.Layout) ([]byte, error) {
	b, err := c.Allocate(l)
	if err != nil {
		return nil, err
	}
	clear(b)
	return b, nil
}

// Deallocate returns b to the region if it is the last block. Any other block
// stays allocated until DeallocateAll.
func (c core[C]) Deallocate(b []byte, l alloc.Layout) {
	off, ok := c.offsetOf(b)
	if !ok || off != c.cur.load() {
		return
	}
	c.cur.store(min(off+l.Size(), len(c.mem)))
}

// Grow resizes b to at least newSize bytes. The last block grows in place by
// moving the cursor down and sliding its contents to the new start; any other
// block is copied into a fresh allocation.
func (c core[C]) Grow(b []byte, old alloc.Layout, newSize int) ([]byte, error) {
	return c.grow(b, old, newSize, false)
}

// GrowZeroed is Grow with the bytes past old.Size() cleared.
func (c core[C]) GrowZeroed(b []byte, old alloc.Layout, newSize int) ([]byte, error) {
	return c.grow(b, old, newSize, true)
}

func (c core[C]) grow(b []byte, old alloc.Layout, newSize int, zeroed bool) ([]byte, error) {
	if newSize < old.Size() {
		return nil, fmt.Errorf("%w: grow to %d bytes from %s", alloc.ErrLayout, newSize, old)
	}
	off, ok := c.offsetOf(b)
	if newSize == old.Size() {
		if !ok {
			return alloc.Span(b, old.Size()), nil
		}
		return c.block(off, old.Size()), nil
	}

	if ok && off == c.cur.load() {
		end := off + old.Size()
		if start, err := carve(c.mem, end, newSize, old.Align()); err == nil {
			// The ranges overlap whenever newSize < 2*old.Size(); copy has
			// memmove semantics.
			copy(c.mem[start:start+old.Size()], c.mem[off:end])
			if zeroed {
				clear(c.mem[start+old.Size() : end])
			}
			c.cur.store(start)
			return c.block(start, end-start), nil
		}
	}

	return alloc.GrowByCopy(c, b, old, newSize, zeroed)
}

// Shrink resizes b to at least newSize bytes. The last block gives its
// trailing bytes back by sliding its contents up; any other block is returned
// unchanged.
func (c core[C]) Shrink(b []byte, old alloc.Layout, newSize int) ([]byte, error) {
	if newSize < 0 || newSize > old.Size() {
		return nil, fmt.Errorf("%w: shrink to %d bytes from %s", alloc.ErrLayout, newSize, old)
	}
	off, ok := c.offsetOf(b)
	if !ok {
		return alloc.Span(b, old.Size()), nil
	}
	if off != c.cur.load() || newSize == old.Size() {
		return c.block(off, old.Size()), nil
	}

	end := off + old.Size()
	base := c.base()
	start := max(int(align.DownAddr(base+uintptr(end-newSize), old.Align())-base), off)
	copy(c.mem[start:start+newSize], c.mem[off:off+newSize])
	c.cur.store(start)
	return c.block(start, end-start), nil
}

// GrowInPlace fails with alloc.ErrInPlace for any real growth: a region grows
// downward, so a bigger block always starts somewhere else.
func (c core[C]) GrowInPlace(b []byte, old alloc.Layout, newSize int) ([]byte, error) {
	if newSize < old.Size() {
		return nil, fmt.Errorf("%w: grow to %d bytes from %s", alloc.ErrLayout, newSize, old)
	}
	if newSize > old.Size() {
		return nil, fmt.Errorf("%w: region blocks grow downward", alloc.ErrInPlace)
	}
	return alloc.Span(b, old.Size()), nil
}

// ShrinkInPlace returns b unchanged; it still holds at least newSize bytes.
func (c core[C]) ShrinkInPlace(b []byte, old alloc.Layout, newSize int) ([]byte, error) {
	if newSize < 0 || newSize > old.Size() {
		return nil, fmt.Errorf("%w: shrink to %d bytes from %s", alloc.ErrLayout, newSize, old)
	}
	return alloc.Span(b, old.Size()), nil
}

// AllocateAll returns all remaining capacity as one block.
func (c core[C]) AllocateAll() ([]byte, error) {
	top := c.cur.load()
	if top == 0 {
		return nil, fmt.Errorf("%w: region exhausted", alloc.ErrNoSpace)
	}
	c.cur.store(0)
	return c.block(0, top), nil
}

// AllocateAllZeroed is AllocateAll with the returned block cleared.
func (c core[C]) AllocateAllZeroed() ([]byte, error) {
	b, err := c.AllocateAll()
	if err != nil {
		return nil, err
	}
	clear(b)
	return b, nil
}

// DeallocateAll resets the region. Every block handed out so far becomes
// invalid.
func (c core[C]) DeallocateAll() {
	c.cur.store(len(c.mem))
}

// Owns reports whether b lies within the allocated part of the region. Blocks
// released by DeallocateAll are no longer owned.
func (c core[C]) Owns(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	off, ok := c.offsetOf(b)
	if !ok {
		return false
	}
	return off >= c.cur.load() && len(b) <= len(c.mem)-off
}

// Capacity returns the number of bytes the region manages.
func (c core[C]) Capacity() int {
	return len(c.mem)
}

// CapacityLeft returns the number of bytes below the cursor.
func (c core[C]) CapacityLeft() int {
	return c.cur.load()
}

// Live returns the allocated part of the region, from the cursor to the end
// of memory.
func (c core[C]) Live() []byte {
	return c.block(c.cur.load(), len(c.mem)-c.cur.load())
}

// sameMemory reports whether both cores manage the same bytes.
func (c core[C]) sameMemory(o core[C]) bool {
	return c.base() == o.base() && len(c.mem) == len(o.mem)
}
