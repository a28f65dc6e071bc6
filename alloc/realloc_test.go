package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAllocator records calls so tests can check the copy fallback's
// allocate/deallocate pairing.
type countingAllocator struct {
	System
	allocs   int
	deallocs int
	fail     bool
}

func (c *countingAllocator) Allocate(l Layout) ([]byte, error) {
	c.allocs++
	if c.fail {
		return nil, ErrNoSpace
	}
	return c.System.Allocate(l)
}

func (c *countingAllocator) AllocateZeroed(l Layout) ([]byte, error) {
	return c.Allocate(l)
}

func (c *countingAllocator) Deallocate(b []byte, l Layout) {
	c.deallocs++
}

func TestGrowByCopy(t *testing.T) {
	c := &countingAllocator{}
	l := MustLayout(3, 1)
	b, err := c.Allocate(l)
	require.NoError(t, err)
	copy(b, "abc")

	nb, err := GrowByCopy(c, b, l, 10, false)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(nb), 10)
	assert.Equal(t, "abc", string(nb[:3]))
	assert.Equal(t, 2, c.allocs)
	assert.Equal(t, 1, c.deallocs)
}

func TestGrowByCopyFailureKeepsBlock(t *testing.T) {
	c := &countingAllocator{}
	l := MustLayout(3, 1)
	b, err := c.Allocate(l)
	require.NoError(t, err)
	copy(b, "xyz")

	c.fail = true
	_, err = GrowByCopy(c, b, l, 10, false)
	require.ErrorIs(t, err, ErrNoSpace)
	assert.Zero(t, c.deallocs, "failed grow must not release the old block")
	assert.Equal(t, "xyz", string(b))
}

func TestGrowByCopyRejectsSmaller(t *testing.T) {
	_, err := GrowByCopy(System{}, make([]byte, 8), MustLayout(8, 1), 4, false)
	require.ErrorIs(t, err, ErrLayout)
}

func TestShrinkByCopy(t *testing.T) {
	c := &countingAllocator{}
	l := MustLayout(8, 1)
	b, err := c.Allocate(l)
	require.NoError(t, err)
	copy(b, "abcdefgh")

	nb, err := ShrinkByCopy(c, b, l, 3)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(nb))
	assert.Equal(t, 1, c.deallocs)

	_, err = ShrinkByCopy(c, b, l, 9)
	require.ErrorIs(t, err, ErrLayout)
}

func TestSpan(t *testing.T) {
	backing := []byte("0123456789")
	b := backing[2:4:4]
	assert.Equal(t, "234567", string(Span(b, 6)))
	assert.Nil(t, Span(nil, 0))
}
