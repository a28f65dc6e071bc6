package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(12, 8); !ok || p != 96 {
		t.Fatalf("MulOverflowSafe(12,8)=%d,%v want 96,true", p, ok)
	}
	if p, ok := MulOverflowSafe(0, math.MaxInt); !ok || p != 0 {
		t.Fatalf("MulOverflowSafe(0,MaxInt)=%d,%v want 0,true", p, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2+1, 2); ok {
		t.Fatalf("expected overflow for MaxInt/2+1 * 2")
	}
	if _, ok := MulOverflowSafe(-1, 4); ok {
		t.Fatalf("expected failure for negative operand")
	}
}

func TestSubUnderflowSafe(t *testing.T) {
	if d, ok := SubUnderflowSafe(32, 8); !ok || d != 24 {
		t.Fatalf("SubUnderflowSafe(32,8)=%d,%v want 24,true", d, ok)
	}
	if _, ok := SubUnderflowSafe(8, 9); ok {
		t.Fatalf("expected underflow for 8-9")
	}
	if _, ok := SubUnderflowSafe(8, -1); ok {
		t.Fatalf("expected failure for negative subtrahend")
	}
}

func TestCheckRange(t *testing.T) {
	if end, err := CheckRange(16, 4, 8); err != nil || end != 12 {
		t.Fatalf("CheckRange(16,4,8)=%d,%v want 12,nil", end, err)
	}
	if end, err := CheckRange(16, 16, 0); err != nil || end != 16 {
		t.Fatalf("CheckRange(16,16,0)=%d,%v want 16,nil", end, err)
	}
	for _, tc := range []struct{ off, n int }{{-1, 1}, {1, -1}, {10, 7}, {math.MaxInt, 1}} {
		if _, err := CheckRange(16, tc.off, tc.n); err == nil {
			t.Fatalf("CheckRange(16,%d,%d) should fail", tc.off, tc.n)
		}
	}
}
