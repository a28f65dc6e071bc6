package alloc

import "fmt"

// GrowByCopy is the reallocation fallback for allocators that cannot grow a
// block where it is: allocate a block for newSize, copy the first old.Size()
// bytes, then hand b back to the allocator.
//
// On error b is untouched and still valid.
func GrowByCopy(a Allocator, b []byte, old Layout, newSize int, zeroed bool) ([]byte, error) {
	if newSize < old.Size() {
		return nil, fmt.Errorf("%w: grow to %d bytes from %s", ErrLayout, newSize, old)
	}
	nl, err := old.WithSize(newSize)
	if err != nil {
		return nil, err
	}

	var nb []byte
	if zeroed {
		nb, err = a.AllocateZeroed(nl)
	} else {
		nb, err = a.Allocate(nl)
	}
	if err != nil {
		return nil, err
	}

	copy(nb, Span(b, old.Size()))
	a.Deallocate(b, old)
	return nb, nil
}

// ShrinkByCopy moves the first newSize bytes of b into a fresh block and
// hands b back to the allocator.
func ShrinkByCopy(a Allocator, b []byte, old Layout, newSize int) ([]byte, error) {
	if newSize > old.Size() {
		return nil, fmt.Errorf("%w: shrink to %d bytes from %s", ErrLayout, newSize, old)
	}
	nl, err := old.WithSize(newSize)
	if err != nil {
		return nil, err
	}
	nb, err := a.Allocate(nl)
	if err != nil {
		return nil, err
	}
	copy(nb, Span(b, newSize))
	a.Deallocate(b, old)
	return nb, nil
}
