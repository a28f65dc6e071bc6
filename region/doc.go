// Package region provides bump (stack) allocators over a caller-supplied
// buffer.
//
// # Overview
//
// A region hands out memory from the high end of its buffer downward. A
// single cursor marks the low edge of the memory handed out so far:
//
//	buffer start                      cursor              buffer end
//	|------------ free ----------------|---- allocated ----|
//
// Allocate moves the cursor down by the requested size, rounds it down to the
// requested alignment, and returns everything between the new and old
// cursor. Alignment padding is part of the returned block, so a block may be
// longer than requested.
//
// # Last Block Operations
//
// Only the most recently allocated block sits at the cursor. For that block,
// Deallocate, Grow and Shrink run in O(1):
//
//   - Deallocate moves the cursor back up by the block's size
//   - Grow moves the cursor further down and slides the contents to the new start
//   - Shrink slides the contents up and moves the cursor up
//
// For any other block Deallocate is a no-op (the memory stays in use until the
// next DeallocateAll), Shrink returns the block unchanged, and Grow falls back
// to allocate + copy.
//
// DeallocateAll resets the cursor to the buffer end in O(1), invalidating
// every block at once.
//
// # Variants
//
// The raw variants differ only in where the cursor lives:
//
//   - RawRegion: in the allocator struct itself
//   - RawSharedRegion: in a shared cell; Clone returns another handle on the same cursor
//   - RawIntrusiveRegion: in an 8-byte cell carved from the tail of the buffer
//
// Raw constructors take an unsafe.Pointer and a size, for memory the garbage
// collector does not manage (OS mappings, foreign memory). The caller keeps
// that memory valid for as long as the region is used.
//
// Region, SharedRegion and IntrusiveRegion take a []byte instead. Holding the
// slice keeps its backing array reachable, so the region can never outlive
// its memory. Mapped owns an anonymous OS mapping and releases it on Close.
//
// # Usage Example
//
//	r := region.New(make([]byte, 4096))
//
//	l := alloc.MustLayout(64, 8)
//	b, err := r.Allocate(l)
//	if err != nil {
//	    return err
//	}
//	copy(b, payload)
//
//	// b is the last block, so this returns its 64 bytes to the region.
//	r.Deallocate(b, l)
//
//	// Drop everything at once.
//	r.DeallocateAll()
//
// # Thread Safety
//
// Regions are not safe for concurrent use. SharedRegion handles share a cursor
// but not a lock; all handles must be used from one goroutine or be
// synchronized externally.
package region
