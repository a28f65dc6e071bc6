// Package alloc defines the allocation contract shared by every allocator
// building block in this module.
//
// # Overview
//
// Allocators are composed from small parts: a region hands out memory from a
// caller-supplied buffer, a chunk decorator rounds sizes to a fixed
// granularity, and so on. Each part consumes and exposes the same contract, so
// decorators never need to know the concrete type underneath them.
//
// # The Contract
//
// A request is described by a Layout: a byte size and a power-of-two
// alignment. A successful request returns a block, represented as a []byte
// whose data pointer is the block address and whose length is the usable
// size. The length may exceed the requested size; callers are free to use the
// extra bytes.
//
//	l := alloc.MustLayout(24, 8)
//	b, err := a.Allocate(l)
//	if err != nil {
//	    return err
//	}
//	defer a.Deallocate(b, l)
//
// Deallocate, Grow and Shrink must be called with a block previously returned
// by the same allocator and the layout it was requested with. Violating that
// is a caller bug, not a reported error.
//
// # Optional Capabilities
//
// Beyond Allocator, an implementation may support:
//
//   - InPlaceAllocator: resize without moving the block
//   - Owner: report whether a block came from this allocator
//   - BulkAllocator: claim all remaining memory, or release everything at once
//   - CapacityReporter: total and remaining capacity in bytes
//
// Decorators detect these with type assertions and forward them when the
// inner allocator provides them.
//
// # Errors
//
// Every failure matches ErrAlloc via errors.Is. The more specific sentinels
// (ErrNoSpace, ErrOverflow, ErrLayout, ErrTooSmall, ErrInPlace,
// ErrUnsupported) describe why, but callers that only care whether an
// allocation worked can check ErrAlloc alone. Failures are never retried.
//
// # Garbage Collection
//
// Memory handed out by allocators in this module is a plain byte buffer as
// far as the Go runtime is concerned. Values stored there must not contain Go
// pointers: the collector does not scan them. The typed helpers New and
// MakeSlice carry the same restriction.
//
// # Thread Safety
//
// Allocator instances are not safe for concurrent use unless documented
// otherwise. Callers must synchronize access externally.
package alloc
