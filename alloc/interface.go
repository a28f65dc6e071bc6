package alloc

// Allocator is the allocation contract every building block implements.
//
// Implementations:
//   - region.RawRegion, region.RawSharedRegion, region.RawIntrusiveRegion
//     and their lifetime-bound wrappers
//   - chunk.Chunk: size-rounding decorator over any Allocator
//   - System: Go heap
type Allocator interface {
	// Allocate returns a block of at least l.Size() bytes aligned to l.Align().
	Allocate(l Layout) ([]byte, error)

	// AllocateZeroed is Allocate with the whole returned block zero-filled.
	AllocateZeroed(l Layout) ([]byte, error)

	// Deallocate releases b, which must have been returned by this allocator
	// for layout l. Allocators may treat it as a no-op.
	Deallocate(b []byte, l Layout)

	// Grow returns a block of at least newSize bytes holding the first
	// old.Size() bytes of b. newSize must be >= old.Size(). The block may move;
	// b must not be used after a successful call.
	Grow(b []byte, old Layout, newSize int) ([]byte, error)

	// GrowZeroed is Grow with the bytes past old.Size() zero-filled.
	GrowZeroed(b []byte, old Layout, newSize int) ([]byte, error)

	// Shrink returns a block of at least newSize bytes holding the first
	// newSize bytes of b. newSize must be <= old.Size().
	Shrink(b []byte, old Layout, newSize int) ([]byte, error)
}

// InPlaceAllocator resizes blocks without moving them. Both methods fail
// with ErrInPlace when the request cannot be met without a move.
type InPlaceAllocator interface {
	GrowInPlace(b []byte, old Layout, newSize int) ([]byte, error)
	ShrinkInPlace(b []byte, old Layout, newSize int) ([]byte, error)
}

// Owner reports whether a block is currently live in this allocator.
// Dispatching allocators use it to route Deallocate/Grow/Shrink.
type Owner interface {
	Owns(b []byte) bool
}

// BulkAllocator claims or releases all of an allocator's memory at once.
type BulkAllocator interface {
	// AllocateAll returns all remaining capacity as a single block.
	AllocateAll() ([]byte, error)

	// AllocateAllZeroed is AllocateAll with the block zero-filled.
	AllocateAllZeroed() ([]byte, error)

	// DeallocateAll releases every block at once. All previously returned
	// blocks become invalid.
	DeallocateAll()
}

// CapacityReporter reports total and remaining capacity in bytes.
type CapacityReporter interface {
	Capacity() int
	CapacityLeft() int
}
