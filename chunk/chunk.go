package chunk

import (
	"fmt"

	"github.com/joshuapare/allockit/alloc"
	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
)

// Chunk rounds every request to a multiple of Size() bytes and delegates to
// an inner allocator.
type Chunk[A alloc.Allocator] struct {
	inner A
	size  int
}

// New wraps inner with a chunk size of size bytes. It fails with
// alloc.ErrLayout unless size is a positive power of two.
func New[A alloc.Allocator](inner A, size int) (*Chunk[A], error) {
	if !align.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: chunk size %d is not a power of two", alloc.ErrLayout, size)
	}
	return &Chunk[A]{inner: inner, size: size}, nil
}

// MustNew is New that panics on an invalid chunk size.
func MustNew[A alloc.Allocator](inner A, size int) *Chunk[A] {
	c, err := New(inner, size)
	if err != nil {
		panic(err)
	}
	return c
}

// Inner returns the wrapped allocator.
func (c *Chunk[A]) Inner() A { return c.inner }

// Size returns the chunk size.
func (c *Chunk[A]) Size() int { return c.size }

// roundUp rounds n up to a chunk multiple.
func (c *Chunk[A]) roundUp(n int) (int, error) {
	if _, ok := buf.AddOverflowSafe(n, c.size); !ok {
		return 0, fmt.Errorf("%w: %d bytes rounded to %d-byte chunks", alloc.ErrOverflow, n, c.size)
	}
	return align.Up(n, c.size), nil
}

// roundDown rounds n down to a chunk multiple.
func (c *Chunk[A]) roundDown(n int) int {
	return align.Down(n, c.size)
}

// layout is l with its size rounded up; this is what the inner allocator
// sees for l.
func (c *Chunk[A]) layout(l alloc.Layout) (alloc.Layout, error) {
	n, err := c.roundUp(l.Size())
	if err != nil {
		return alloc.Layout{}, err
	}
	return l.WithSize(n)
}

// trim cuts b down to a whole number of chunks.
func (c *Chunk[A]) trim(b []byte) []byte {
	n := c.roundDown(len(b))
	return b[:n:n]
}

// Allocate requests l.Size() rounded up to a chunk multiple.
func (c *Chunk[A]) Allocate(l alloc.Layout) ([]byte, error) {
	nl, err := c.layout(l)
	if err != nil {
		return nil, err
	}
	b, err := c.inner.Allocate(nl)
	if err != nil {
		return nil, err
	}
	return c.trim(b), nil
}

// AllocateZeroed is Allocate with the block zero-filled.
func (c *Chunk[A]) AllocateZeroed(l alloc.Layout) ([]byte, error) {
	nl, err := c.layout(l)
	if err != nil {
		return nil, err
	}
	b, err := c.inner.AllocateZeroed(nl)
	if err != nil {
		return nil, err
	}
	return c.trim(b), nil
}

// Deallocate hands b back with the same rounded layout it was allocated with.
func (c *Chunk[A]) Deallocate(b []byte, l alloc.Layout) {
	nl, err := c.layout(l)
	if err != nil {
		// No such block could have been allocated.
		return
	}
	c.inner.Deallocate(b, nl)
}

// Grow returns b at its rounded size when newSize still fits in its chunks.
// Otherwise it grows the inner block to newSize rounded up.
func (c *Chunk[A]) Grow(b []byte, old alloc.Layout, newSize int) ([]byte, error) {
	return c.grow(b, old, newSize, false)
}

// GrowZeroed is Grow with the bytes past old.Size() zero-filled, including
// the slack of the last chunk.
func (c *Chunk[A]) GrowZeroed(b []byte, old alloc.Layout, newSize int) ([]byte, error) {
	return c.grow(b, old, newSize, true)
}

func (c *Chunk[A]) grow(b []byte, old alloc.Layout, newSize int, zeroed bool) ([]byte, error) {
	if newSize < old.Size() {
		return nil, fmt.Errorf("%w: grow to %d bytes from %s", alloc.ErrLayout, newSize, old)
	}
	ol, err := c.layout(old)
	if err != nil {
		return nil, err
	}

	cur := alloc.Span(b, ol.Size())
	if zeroed {
		clear(cur[old.Size():])
	}
	if newSize <= ol.Size() {
		return cur, nil
	}

	n, err := c.roundUp(newSize)
	if err != nil {
		return nil, err
	}
	var nb []byte
	if zeroed {
		nb, err = c.inner.GrowZeroed(b, ol, n)
	} else {
		nb, err = c.inner.Grow(b, ol, n)
	}
	if err != nil {
		return nil, err
	}
	return c.trim(nb), nil
}

// Shrink is a no-op while newSize rounds to the same number of chunks as
// old.Size(). Otherwise it shrinks the inner block.
func (c *Chunk[A]) Shrink(b []byte, old alloc.Layout, newSize int) ([]byte, error) {
	if newSize < 0 || newSize > old.Size() {
		return nil, fmt.Errorf("%w: shrink to %d bytes from %s", alloc.ErrLayout, newSize, old)
	}
	ol, err := c.layout(old)
	if err != nil {
		return nil, err
	}
	n, err := c.roundUp(newSize)
	if err != nil {
		return nil, err
	}
	if n == ol.Size() {
		return alloc.Span(b, n), nil
	}
	nb, err := c.inner.Shrink(b, ol, n)
	if err != nil {
		return nil, err
	}
	return c.trim(nb), nil
}

// GrowInPlace follows Grow's slack rule, then defers to the inner allocator's
// GrowInPlace. It fails with alloc.ErrInPlace if the inner allocator has none.
func (c *Chunk[A]) GrowInPlace(b []byte, old alloc.Layout, newSize int) ([]byte, error) {
	if newSize < old.Size() {
		return nil, fmt.Errorf("%w: grow to %d bytes from %s", alloc.ErrLayout, newSize, old)
	}
	ol, err := c.layout(old)
	if err != nil {
		return nil, err
	}
	if newSize <= ol.Size() {
		return alloc.Span(b, ol.Size()), nil
	}
	ip, ok := any(c.inner).(alloc.InPlaceAllocator)
	if !ok {
		return nil, fmt.Errorf("%w: inner allocator %T cannot resize in place", alloc.ErrInPlace, c.inner)
	}
	n, err := c.roundUp(newSize)
	if err != nil {
		return nil, err
	}
	nb, err := ip.GrowInPlace(b, ol, n)
	if err != nil {
		return nil, err
	}
	return c.trim(nb), nil
}

// ShrinkInPlace follows Shrink's slack rule, then defers to the inner
// allocator's ShrinkInPlace. It fails with alloc.ErrInPlace if the inner
// allocator has none.
func (c *Chunk[A]) ShrinkInPlace(b []byte, old alloc.Layout, newSize int) ([]byte, error) {
	if newSize < 0 || newSize > old.Size() {
		return nil, fmt.Errorf("%w: shrink to %d bytes from %s", alloc.ErrLayout, newSize, old)
	}
	ol, err := c.layout(old)
	if err != nil {
		return nil, err
	}
	n, err := c.roundUp(newSize)
	if err != nil {
		return nil, err
	}
	if n == ol.Size() {
		return alloc.Span(b, n), nil
	}
	ip, ok := any(c.inner).(alloc.InPlaceAllocator)
	if !ok {
		return nil, fmt.Errorf("%w: inner allocator %T cannot resize in place", alloc.ErrInPlace, c.inner)
	}
	nb, err := ip.ShrinkInPlace(b, ol, n)
	if err != nil {
		return nil, err
	}
	return c.trim(nb), nil
}

// Owns forwards to the inner allocator, or reports false if it cannot tell.
func (c *Chunk[A]) Owns(b []byte) bool {
	o, ok := any(c.inner).(alloc.Owner)
	return ok && o.Owns(b)
}

// AllocateAll claims the inner allocator's remaining memory and cuts it down
// to a whole number of chunks. The result may be empty if less than one chunk
// was left.
func (c *Chunk[A]) AllocateAll() ([]byte, error) {
	bulk, err := c.bulk()
	if err != nil {
		return nil, err
	}
	b, err := bulk.AllocateAll()
	if err != nil {
		return nil, err
	}
	return c.trim(b), nil
}

// AllocateAllZeroed is AllocateAll with the block zero-filled.
func (c *Chunk[A]) AllocateAllZeroed() ([]byte, error) {
	bulk, err := c.bulk()
	if err != nil {
		return nil, err
	}
	b, err := bulk.AllocateAllZeroed()
	if err != nil {
		return nil, err
	}
	return c.trim(b), nil
}

// DeallocateAll forwards to the inner allocator; without bulk support it does
// nothing.
func (c *Chunk[A]) DeallocateAll() {
	if bulk, err := c.bulk(); err == nil {
		bulk.DeallocateAll()
	}
}

func (c *Chunk[A]) bulk() (alloc.BulkAllocator, error) {
	bulk, ok := any(c.inner).(alloc.BulkAllocator)
	if !ok {
		return nil, fmt.Errorf("%w: inner allocator %T has no bulk operations", alloc.ErrUnsupported, c.inner)
	}
	return bulk, nil
}

// Capacity forwards to the inner allocator, or returns 0.
func (c *Chunk[A]) Capacity() int {
	if cr, ok := any(c.inner).(alloc.CapacityReporter); ok {
		return cr.Capacity()
	}
	return 0
}

// CapacityLeft forwards to the inner allocator, or returns 0.
func (c *Chunk[A]) CapacityLeft() int {
	if cr, ok := any(c.inner).(alloc.CapacityReporter); ok {
		return cr.CapacityLeft()
	}
	return 0
}

// Compile-time interface checks
var (
	_ alloc.Allocator        = (*Chunk[alloc.System])(nil)
	_ alloc.InPlaceAllocator = (*Chunk[alloc.System])(nil)
	_ alloc.Owner            = (*Chunk[alloc.System])(nil)
	_ alloc.BulkAllocator    = (*Chunk[alloc.System])(nil)
	_ alloc.CapacityReporter = (*Chunk[alloc.System])(nil)
)
