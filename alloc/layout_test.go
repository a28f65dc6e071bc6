package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		align   int
		wantErr bool
	}{
		{"zero size", 0, 1, false},
		{"byte aligned", 7, 1, false},
		{"word aligned", 24, 8, false},
		{"page aligned", 1, 4096, false},
		{"negative size", -1, 8, true},
		{"zero align", 8, 0, true},
		{"negative align", 8, -8, true},
		{"non power of two", 8, 12, true},
		{"overflow when aligned", math.MaxInt, 8, true},
		{"max size byte aligned", math.MaxInt, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLayout(tt.size, tt.align)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrLayout)
				assert.ErrorIs(t, err, ErrAlloc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.size, l.Size())
			assert.Equal(t, tt.align, l.Align())
		})
	}
}

func TestMustLayoutPanics(t *testing.T) {
	assert.Panics(t, func() { MustLayout(8, 3) })
	assert.NotPanics(t, func() { MustLayout(8, 4) })
}

func TestZeroLayout(t *testing.T) {
	var l Layout
	assert.Equal(t, 0, l.Size())
	assert.Equal(t, 1, l.Align(), "zero layout should be byte aligned")
}

func TestLayoutOf(t *testing.T) {
	type pair struct {
		A uint32
		B uint16
	}
	l := LayoutOf[pair]()
	assert.Equal(t, 8, l.Size())
	assert.Equal(t, 4, l.Align())

	assert.Equal(t, 1, LayoutOf[byte]().Size())
	assert.Equal(t, 0, LayoutOf[struct{}]().Size())
}

func TestArrayLayout(t *testing.T) {
	l, err := ArrayLayout[uint32](10)
	require.NoError(t, err)
	assert.Equal(t, 40, l.Size())
	assert.Equal(t, 4, l.Align())

	_, err = ArrayLayout[uint64](math.MaxInt / 4)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = ArrayLayout[uint64](-1)
	require.ErrorIs(t, err, ErrAlloc)
}

func TestWithSize(t *testing.T) {
	l := MustLayout(8, 16)
	grown, err := l.WithSize(100)
	require.NoError(t, err)
	assert.Equal(t, 100, grown.Size())
	assert.Equal(t, 16, grown.Align())

	_, err = l.WithSize(-5)
	require.ErrorIs(t, err, ErrLayout)
}

func TestLayoutString(t *testing.T) {
	assert.Equal(t, "Layout{size: 24, align: 8}", MustLayout(24, 8).String())
}
