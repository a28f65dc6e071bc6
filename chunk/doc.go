// Package chunk provides a decorator that rounds every request up to a fixed
// power-of-two granularity before handing it to an inner allocator.
//
// # Overview
//
// A Chunk of size 64 turns a request for 1 byte into a request for 64, a
// request for 65 into 128, and so on. The inner allocator only ever sees
// sizes that are whole multiples of the chunk size, which keeps upstream
// bookkeeping (size classes, slot tables) simple and cuts down on tiny
// fragments.
//
// Blocks returned to the caller are cut down to a chunk multiple as well. An
// inner allocator may hand back more than it was asked for (a region, for
// instance, includes its alignment padding); the part past the last whole
// chunk is never exposed.
//
// # Resizing Within a Chunk
//
// Because every block already owns a whole number of chunks, growing a block
// within its rounded size is free: Grow returns the same block, viewed at its
// rounded length, without calling the inner allocator. Shrink likewise does
// nothing while the new size still rounds to the same number of chunks.
//
// # Usage Example
//
//	r := region.New(make([]byte, 4096))
//	c := chunk.MustNew(r, 64)
//
//	l := alloc.MustLayout(10, 8)
//	b, err := c.Allocate(l) // len(b) == 64
//	if err != nil {
//	    return err
//	}
//
//	// Still within the first chunk: no inner call.
//	b, err = c.Grow(b, l, 50)
//
// # Optional Capabilities
//
// Owns, AllocateAll, AllocateAllZeroed, DeallocateAll, Capacity,
// CapacityLeft and the in-place resize methods forward to the inner allocator
// when it implements the matching alloc interface. Otherwise bulk and in-place
// calls fail (alloc.ErrUnsupported, alloc.ErrInPlace), Owns reports false and
// the capacity methods report zero.
package chunk
