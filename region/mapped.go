package region

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/allockit/alloc"
	"github.com/joshuapare/allockit/internal/mmap"
)

// Mapped is a RawRegion over an anonymous OS mapping. The memory lives
// outside the Go heap until Close.
//
// After Close the region has no memory: every allocation fails with
// alloc.ErrNoSpace. Blocks obtained before Close must not be touched again.
type Mapped struct {
	*RawRegion
	release func() error
}

// Map creates a region over a fresh, zero-filled mapping of size bytes.
func Map(size int) (*Mapped, error) {
	data, release, err := mmap.Anon(size)
	if err != nil {
		return nil, fmt.Errorf("%w: map %d bytes: %w", alloc.ErrAlloc, size, err)
	}
	return &Mapped{
		RawRegion: NewRaw(unsafe.Pointer(unsafe.SliceData(data)), len(data)),
		release:   release,
	}, nil
}

// Close releases the mapping. Calling Close more than once is a no-op.
func (m *Mapped) Close() error {
	if m.release == nil {
		return nil
	}
	err := m.release()
	m.release = nil
	m.RawRegion = NewRaw(nil, 0)
	return err
}
