package alloc

import (
	"errors"
	"fmt"
)

// ErrAlloc is the single allocation failure kind. Every error returned by an
// allocator in this module wraps it.
var ErrAlloc = errors.New("alloc: allocation failed")

var (
	// ErrNoSpace indicates the remaining capacity cannot satisfy the request.
	ErrNoSpace = fmt.Errorf("%w: out of space", ErrAlloc)

	// ErrOverflow indicates an integer overflow while computing a rounded or extended size.
	ErrOverflow = fmt.Errorf("%w: size overflow", ErrAlloc)

	// ErrLayout indicates an invalid size/alignment pair.
	ErrLayout = fmt.Errorf("%w: invalid layout", ErrAlloc)

	// ErrTooSmall indicates a buffer too small to host the allocator's own metadata.
	ErrTooSmall = fmt.Errorf("%w: buffer too small", ErrAlloc)

	// ErrInPlace indicates an in-place resize that would have required moving the block.
	ErrInPlace = fmt.Errorf("%w: cannot resize in place", ErrAlloc)

	// ErrUnsupported indicates the allocator lacks the requested capability.
	ErrUnsupported = fmt.Errorf("%w: unsupported operation", ErrAlloc)
)
