package curve

import (
	"math"
	"testing"
)

func TestLinearSizeCurve(t *testing.T) {
	// 26 trials shrinking a font-like size from 120 to 24.
	cases := []struct {
		index int
		want  float64
	}{
		{0, 120},
		{25, 24},
		{12, 120 - 12*(96.0/25.0)},
	}
	for _, tc := range cases {
		got := Linear(tc.index, 26, 120, 24)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Linear(%d) = %v, want %v", tc.index, got, tc.want)
		}
	}
}

func TestLinearClampsPastEnd(t *testing.T) {
	for _, index := range []int{25, 26, 40, 1000} {
		if got := Linear(index, 26, 120, 24); got != 24 {
			t.Fatalf("Linear(%d) = %v, want exactly 24", index, got)
		}
	}
}

func TestLinearNegativeIndex(t *testing.T) {
	if got := Linear(-3, 26, 120, 24); got != 120 {
		t.Fatalf("Linear(-3) = %v, want 120", got)
	}
}

func TestLinearDegenerateTotals(t *testing.T) {
	for _, total := range []int{0, 1, -5} {
		if got := Linear(0, total, 120, 24); got != 24 {
			t.Fatalf("Linear with total=%d = %v, want 24", total, got)
		}
	}
}

func TestLinearFixedParameter(t *testing.T) {
	for _, index := range []int{0, 5, 19} {
		if got := Linear(index, 20, 64, 64); got != 64 {
			t.Fatalf("fixed curve at index %d = %v, want 64", index, got)
		}
	}
}

func TestEasedEndpoints(t *testing.T) {
	if got := Eased(0, 20, 1.0, 0.25); got != 1.0 {
		t.Fatalf("Eased(0) = %v, want 1.0", got)
	}
	if got := Eased(19, 20, 1.0, 0.25); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("Eased(target-1) = %v, want 0.25", got)
	}
	// Past the target the progress is clamped.
	if got := Eased(50, 20, 1.0, 0.25); math.Abs(got-0.25) > 1e-9 {
		t.Fatalf("Eased past target = %v, want 0.25", got)
	}
}

func TestEasedSlowerThanLinearEarly(t *testing.T) {
	// The 1.5 exponent keeps early values closer to the start bound.
	linear := Linear(5, 20, 1.0, 0.25)
	eased := Eased(5, 20, 1.0, 0.25)
	if eased <= linear {
		t.Fatalf("eased %v should sit above linear %v early in the run", eased, linear)
	}
}

func TestEasedMonotonic(t *testing.T) {
	prev := math.Inf(1)
	for correct := 0; correct < 20; correct++ {
		v := Eased(correct, 20, 1.0, 0.25)
		if v > prev {
			t.Fatalf("Eased not monotonic at correct=%d: %v > %v", correct, v, prev)
		}
		prev = v
	}
}
