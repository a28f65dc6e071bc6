package region

import "unsafe"

// The wrappers below bind a raw region to a Go byte slice. The raw region's
// view of memory is derived from the slice, which keeps the backing array
// reachable for as long as the region is; the region cannot outlive its
// memory. They add no behaviour of their own.

// Region is a RawRegion over a Go byte slice.
type Region struct {
	*RawRegion
}

// New creates a region over buf. The region takes over buf's contents; the
// caller should not use buf directly while the region is in use.
func New(buf []byte) *Region {
	return &Region{NewRaw(unsafe.Pointer(unsafe.SliceData(buf)), len(buf))}
}

// Equal reports whether r and o are the same region.
func (r *Region) Equal(o *Region) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.RawRegion.Equal(o.RawRegion)
}

// SharedRegion is a RawSharedRegion over a Go byte slice.
type SharedRegion struct {
	RawSharedRegion
}

// NewShared creates a shared region over buf.
func NewShared(buf []byte) SharedRegion {
	return SharedRegion{NewRawShared(unsafe.Pointer(unsafe.SliceData(buf)), len(buf))}
}

// Clone returns another handle on the same memory and cursor.
func (r SharedRegion) Clone() SharedRegion {
	return SharedRegion{r.RawSharedRegion.Clone()}
}

// Equal reports whether r and o are handles on the same region.
func (r SharedRegion) Equal(o SharedRegion) bool {
	return r.RawSharedRegion.Equal(o.RawSharedRegion)
}

// IntrusiveRegion is a RawIntrusiveRegion over a Go byte slice.
type IntrusiveRegion struct {
	RawIntrusiveRegion
}

// NewIntrusive creates an intrusive region over buf. It fails with
// alloc.ErrTooSmall if buf cannot fit the cursor cell.
func NewIntrusive(buf []byte) (IntrusiveRegion, error) {
	raw, err := NewRawIntrusive(unsafe.Pointer(unsafe.SliceData(buf)), len(buf))
	if err != nil {
		return IntrusiveRegion{}, err
	}
	return IntrusiveRegion{raw}, nil
}

// Equal reports whether r and o are handles on the same region.
func (r IntrusiveRegion) Equal(o IntrusiveRegion) bool {
	return r.RawIntrusiveRegion.Equal(o.RawIntrusiveRegion)
}
