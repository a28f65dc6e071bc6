package region

import (
	"unsafe"

	"github.com/joshuapare/allockit/internal/buf"
)

// cursor stores a region's bump offset, measured from the start of its memory.
type cursor interface {
	load() int
	store(off int)
}

// cell is a cursor held in ordinary Go memory. RawRegion embeds one;
// RawSharedRegion handles point at a common one.
type cell struct {
	off int
}

func (c *cell) load() int { return c.off }

func (c *cell) store(off int) { c.off = off }

const (
	// cellSize and cellAlign describe the cursor cell an intrusive region
	// carves from its own buffer.
	cellSize  = 8
	cellAlign = 8
)

// intrusiveCursor is a cursor stored inside the managed buffer as a
// little-endian uint64.
type intrusiveCursor struct {
	slot []byte
}

func (c intrusiveCursor) load() int { return int(buf.U64LE(c.slot)) }

func (c intrusiveCursor) store(off int) { buf.PutU64LE(c.slot, uint64(off)) }

func (c intrusiveCursor) addr() *byte { return unsafe.SliceData(c.slot) }
