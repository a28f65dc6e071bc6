package alloc

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/allockit/internal/align"
	"github.com/joshuapare/allockit/internal/buf"
)

// Layout describes an allocation request: a size in bytes and a power-of-two
// alignment. The zero Layout is a valid zero-byte, byte-aligned request.
type Layout struct {
	size  int
	align int
}

// NewLayout validates size and alignment.
// It fails with ErrLayout if size is negative, alignment is not a positive
// power of two, or size rounded up to alignment overflows int.
func NewLayout(size, alignment int) (Layout, error) {
	if size < 0 {
		return Layout{}, fmt.Errorf("%w: negative size %d", ErrLayout, size)
	}
	if !align.IsPowerOfTwo(alignment) {
		return Layout{}, fmt.Errorf("%w: alignment %d is not a power of two", ErrLayout, alignment)
	}
	if _, ok := align.UpChecked(size, alignment); !ok {
		return Layout{}, fmt.Errorf("%w: size %d overflows when aligned to %d", ErrLayout, size, alignment)
	}
	return Layout{size: size, align: alignment}, nil
}

// MustLayout is NewLayout that panics on an invalid layout.
// Intended for constant layouts in tests and package-level variables.
func MustLayout(size, alignment int) Layout {
	l, err := NewLayout(size, alignment)
	if err != nil {
		panic(err)
	}
	return l
}

// LayoutOf returns the layout of a single T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{
		size:  int(unsafe.Sizeof(zero)),
		align: int(unsafe.Alignof(zero)),
	}
}

// ArrayLayout returns the layout of n contiguous values of type T.
func ArrayLayout[T any](n int) (Layout, error) {
	elem := LayoutOf[T]()
	size, ok := buf.MulOverflowSafe(n, elem.size)
	if !ok {
		return Layout{}, fmt.Errorf("%w: %d elements of %d bytes", ErrOverflow, n, elem.size)
	}
	return NewLayout(size, elem.align)
}

// Size returns the requested size in bytes.
func (l Layout) Size() int { return l.size }

// Align returns the requested alignment in bytes.
func (l Layout) Align() int {
	if l.align == 0 {
		return 1
	}
	return l.align
}

// WithSize returns a layout with the same alignment and a new size.
func (l Layout) WithSize(size int) (Layout, error) {
	return NewLayout(size, l.Align())
}

// String implements fmt.Stringer.
func (l Layout) String() string {
	return fmt.Sprintf("Layout{size: %d, align: %d}", l.size, l.Align())
}
