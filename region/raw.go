package region

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/allockit/alloc"
)

// rawMemory views size bytes at ptr as a slice. A nil ptr or zero size yields
// an empty region.
func rawMemory(ptr unsafe.Pointer, size int) []byte {
	if size < 0 {
		panic(fmt.Sprintf("region: negative size %d", size))
	}
	if ptr == nil || size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), size)
}

// RawRegion is a bump allocator whose cursor lives in the struct itself.
//
// A RawRegion must not be copied after construction; share it by pointer.
type RawRegion struct {
	core[*cell]
	own cell
}

// NewRaw creates a region over size bytes at ptr. The caller must keep that
// memory valid for as long as the region or any block from it is in use.
func NewRaw(ptr unsafe.Pointer, size int) *RawRegion {
	r := &RawRegion{}
	r.mem = rawMemory(ptr, size)
	r.own.off = len(r.mem)
	r.cur = &r.own
	return r
}

// Equal reports whether r and o are the same region.
func (r *RawRegion) Equal(o *RawRegion) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.cur == o.cur && r.sameMemory(o.core)
}

// RawSharedRegion is a bump allocator whose cursor lives in a cell shared by
// all clones of the handle. Every clone sees every other clone's allocations.
// The cell lives as long as the longest-lived handle.
type RawSharedRegion struct {
	core[*cell]
}

// NewRawShared creates a shared region over size bytes at ptr. The caller must
// keep that memory valid for as long as any handle or block is in use.
func NewRawShared(ptr unsafe.Pointer, size int) RawSharedRegion {
	mem := rawMemory(ptr, size)
	return RawSharedRegion{core[*cell]{mem: mem, cur: &cell{off: len(mem)}}}
}

// Clone returns another handle on the same memory and cursor.
func (r RawSharedRegion) Clone() RawSharedRegion {
	return r
}

// Equal reports whether r and o are handles on the same region.
func (r RawSharedRegion) Equal(o RawSharedRegion) bool {
	return r.cur == o.cur && r.sameMemory(o.core)
}

// RawIntrusiveRegion is a bump allocator that stores its cursor in the last
// aligned 8 bytes of its own buffer. The handle holds nothing but slice
// headers, so it can be copied freely; copies share the cursor.
type RawIntrusiveRegion struct {
	core[intrusiveCursor]
}

// NewRawIntrusive creates an intrusive region over size bytes at ptr. It fails
// with alloc.ErrTooSmall if the memory cannot fit the cursor cell. The usable
// capacity is whatever lies below the cell.
func NewRawIntrusive(ptr unsafe.Pointer, size int) (RawIntrusiveRegion, error) {
	return newIntrusive(rawMemory(ptr, size))
}

func newIntrusive(mem []byte) (RawIntrusiveRegion, error) {
	top, err := carve(mem, len(mem), cellSize, cellAlign)
	if err != nil {
		return RawIntrusiveRegion{}, fmt.Errorf("%w: %d bytes cannot hold a %d-byte cursor cell",
			alloc.ErrTooSmall, len(mem), cellSize)
	}
	cur := intrusiveCursor{slot: mem[top : top+cellSize : top+cellSize]}
	cur.store(top)
	return RawIntrusiveRegion{core[intrusiveCursor]{mem: mem[:top:top], cur: cur}}, nil
}

// Equal reports whether r and o are handles on the same region.
func (r RawIntrusiveRegion) Equal(o RawIntrusiveRegion) bool {
	return r.cur.addr() == o.cur.addr() && r.sameMemory(o.core)
}

// Compile-time interface checks
var (
	_ alloc.Allocator        = (*RawRegion)(nil)
	_ alloc.InPlaceAllocator = (*RawRegion)(nil)
	_ alloc.Owner            = (*RawRegion)(nil)
	_ alloc.BulkAllocator    = (*RawRegion)(nil)
	_ alloc.CapacityReporter = (*RawRegion)(nil)

	_ alloc.Allocator        = RawSharedRegion{}
	_ alloc.InPlaceAllocator = RawSharedRegion{}
	_ alloc.Owner            = RawSharedRegion{}
	_ alloc.BulkAllocator    = RawSharedRegion{}
	_ alloc.CapacityReporter = RawSharedRegion{}

	_ alloc.Allocator        = RawIntrusiveRegion{}
	_ alloc.InPlaceAllocator = RawIntrusiveRegion{}
	_ alloc.Owner            = RawIntrusiveRegion{}
	_ alloc.BulkAllocator    = RawIntrusiveRegion{}
	_ alloc.CapacityReporter = RawIntrusiveRegion{}
)
