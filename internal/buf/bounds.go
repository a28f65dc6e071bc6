// Package buf contains overflow-safe arithmetic and fixed-width encodings used
// by the allocators when they compute offsets and store metadata in memory
// they manage.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// the result would overflow int or either operand is negative.
// This is the count * elementSize step of array layouts.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// SubUnderflowSafe returns a - b for non-negative operands, with ok = false
// when the result would be negative.
func SubUnderflowSafe(a, b int) (int, bool) {
	if b < 0 || b > a {
		return 0, false
	}
	return a - b, true
}

// CheckRange validates that n bytes starting at off fit in a buffer of
// bufLen bytes. Returns the end offset if valid, or an error describing the
// specific failure (negative input, overflow or out of bounds).
//
//	end, err := buf.CheckRange(len(data), off, n)
//	if err != nil {
//	    return fmt.Errorf("dump: %w", err)
//	}
//	window := data[off:end]
func CheckRange(bufLen, off, n int) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + length=%d", off, n)
	}
	if end > bufLen {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, bufLen)
	}
	return end, nil
}
