// Package align holds the power-of-two alignment arithmetic shared by the
// allocators. All helpers assume a power-of-two alignment; callers validate it
// once (see alloc.NewLayout) and then use these on the hot path.
package align

import (
	"math"
	"unsafe"
)

// Word is the size and alignment of a machine word on the target platform.
const Word = int(unsafe.Sizeof(uintptr(0)))

// IsPowerOfTwo reports whether n is a positive power of two.
//
// Example:
//
//	IsPowerOfTwo(0)  = false
//	IsPowerOfTwo(1)  = true
//	IsPowerOfTwo(64) = true
//	IsPowerOfTwo(96) = false
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Up returns n aligned up to the next multiple of a.
// The result overflows for n > math.MaxInt-(a-1); use UpChecked when n is
// caller-controlled.
//
// Example:
//
//	Up(1, 8)  = 8
//	Up(8, 8)  = 8
//	Up(9, 8)  = 16
func Up(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}

// UpChecked is Up with overflow detection.
func UpChecked(n, a int) (int, bool) {
	mask := a - 1
	if n > math.MaxInt-mask {
		return 0, false
	}
	return (n + mask) &^ mask, true
}

// Down returns n aligned down to a multiple of a.
//
// Example:
//
//	Down(7, 8)  = 0
//	Down(8, 8)  = 8
//	Down(15, 8) = 8
func Down(n, a int) int {
	return n &^ (a - 1)
}

// DownAddr aligns an address down to a multiple of a.
func DownAddr(p uintptr, a int) uintptr {
	return p &^ uintptr(a-1)
}

// IsAligned reports whether p is a multiple of a.
func IsAligned(p uintptr, a int) bool {
	return p&uintptr(a-1) == 0
}
