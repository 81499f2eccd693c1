package icd

import "testing"

func TestBoundClamp(t *testing.T) {
	cases := []struct {
		name string
		b    Bound
		in   int
		want int
	}{
		{"below", Bound{0, 45}, -3, 0},
		{"above", Bound{0, 45}, 46, 45},
		{"inside", Bound{0, 45}, 17, 17},
		{"at_lo", Bound{-1, 300}, -1, -1},
		{"at_hi", Bound{-1, 300}, 300, 300},
		{"rate_below", RateBound, -50, -1},
		{"rate_above", RateBound, 1000, 300},
	}
	for _, tc := range cases {
		if got := tc.b.Clamp(tc.in); got != tc.want {
			t.Errorf("%s: Clamp(%d) = %d, want %d", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestBoundClampStaysInRange(t *testing.T) {
	for v := -400; v <= 400; v++ {
		got := RateBound.Clamp(v)
		if !RateBound.Contains(got) {
			t.Fatalf("Clamp(%d) = %d escaped [%d, %d]", v, got, RateBound.Lo, RateBound.Hi)
		}
		if RateBound.Contains(v) && got != v {
			t.Fatalf("Clamp(%d) changed an in-range value to %d", v, got)
		}
	}
}

func TestBoundCheck(t *testing.T) {
	if err := ImpulseBound.Check(45); err != nil {
		t.Fatalf("unexpected error for in-range value: %v", err)
	}
	if err := ImpulseBound.Check(46); err == nil {
		t.Fatalf("expected error for out-of-range value")
	}
	if err := RateBound.Check(-2); err == nil {
		t.Fatalf("expected error below the lower bound")
	}
}
