package region

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/allockit/alloc"
)

// ============================================================================
// Test Helpers
// ============================================================================

// testRegion is the full surface every region variant exposes. Tests that
// must hold for all variants are written against it.
type testRegion interface {
	alloc.Allocator
	alloc.InPlaceAllocator
	alloc.Owner
	alloc.BulkAllocator
	alloc.CapacityReporter
	Live() []byte
}

// variant names a region constructor over a caller-supplied buffer.
type variant struct {
	name string
	make func(t testing.TB, buf []byte) testRegion
}

// variants returns one constructor per region type, wrappers and raw alike.
func variants() []variant {
	return []variant{
		{"Region", func(_ testing.TB, buf []byte) testRegion { return New(buf) }},
		{"SharedRegion", func(_ testing.TB, buf []byte) testRegion { return NewShared(buf) }},
		{"IntrusiveRegion", func(t testing.TB, buf []byte) testRegion {
			t.Helper()
			r, err := NewIntrusive(buf)
			require.NoError(t, err)
			return r
		}},
		{"RawRegion", func(_ testing.TB, buf []byte) testRegion {
			return NewRaw(unsafe.Pointer(unsafe.SliceData(buf)), len(buf))
		}},
		{"RawSharedRegion", func(_ testing.TB, buf []byte) testRegion {
			return NewRawShared(unsafe.Pointer(unsafe.SliceData(buf)), len(buf))
		}},
		{"RawIntrusiveRegion", func(t testing.TB, buf []byte) testRegion {
			t.Helper()
			r, err := NewRawIntrusive(unsafe.Pointer(unsafe.SliceData(buf)), len(buf))
			require.NoError(t, err)
			return r
		}},
	}
}

// alignedBuf returns n bytes whose first byte is aligned to a.
func alignedBuf(n, a int) []byte {
	raw := make([]byte, n+a)
	off := (a - int(addrOf(raw)&uintptr(a-1))) & (a - 1)
	return raw[off : off+n : off+n]
}

// dirtyBuf returns n a-aligned bytes filled with 0xFF, so zeroing bugs show up.
func dirtyBuf(n, a int) []byte {
	b := alignedBuf(n, a)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}

// addrOf returns the address of b's first byte.
func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// fill writes a recognizable pattern derived from seed into b.
func fill(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i)
	}
}

// requirePattern checks that b holds the pattern written by fill.
func requirePattern(t testing.TB, b []byte, seed byte) {
	t.Helper()
	for i := range b {
		require.Equal(t, seed+byte(i), b[i], "byte %d", i)
	}
}

// requireDisjoint fails if any two blocks overlap.
func requireDisjoint(t testing.TB, blocks [][]byte) {
	t.Helper()
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			a0, a1 := addrOf(blocks[i]), addrOf(blocks[i])+uintptr(len(blocks[i]))
			b0, b1 := addrOf(blocks[j]), addrOf(blocks[j])+uintptr(len(blocks[j]))
			if len(blocks[i]) == 0 || len(blocks[j]) == 0 {
				continue
			}
			require.False(t, a0 < b1 && b0 < a1, "blocks %d [%#x,%#x) and %d [%#x,%#x) overlap", i, a0, a1, j, b0, b1)
		}
	}
}
