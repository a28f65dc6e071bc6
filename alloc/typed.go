package alloc

import (
	"fmt"
	"unsafe"
)

// New places a zeroed T in memory obtained from a.
// T must not contain Go pointers; see the package documentation.
func New[T any](a Allocator) (*T, error) {
	l := LayoutOf[T]()
	if l.Size() == 0 {
		return new(T), nil
	}
	b, err := a.AllocateZeroed(l)
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// Free returns a value obtained from New to a.
func Free[T any](a Allocator, p *T) {
	l := LayoutOf[T]()
	if p == nil || l.Size() == 0 {
		return
	}
	a.Deallocate(unsafe.Slice((*byte)(unsafe.Pointer(p)), l.Size()), l)
}

// MakeSlice places n zeroed values of type T in memory obtained from a.
// Returns nil for n == 0. T must not contain Go pointers.
func MakeSlice[T any](a Allocator, n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrLayout, n)
	}
	if n == 0 {
		return nil, nil
	}
	l, err := ArrayLayout[T](n)
	if err != nil {
		return nil, err
	}
	if l.Size() == 0 {
		return make([]T, n), nil
	}
	b, err := a.AllocateZeroed(l)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// FreeSlice returns a slice obtained from MakeSlice to a.
func FreeSlice[T any](a Allocator, s []T) {
	if len(s) == 0 {
		return
	}
	l, err := ArrayLayout[T](len(s))
	if err != nil || l.Size() == 0 {
		return
	}
	a.Deallocate(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), l.Size()), l)
}
