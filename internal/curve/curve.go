// Package curve computes stimulus parameter progressions for a level run.
package curve

import "math"

// Linear interpolates from start to end over total trials and returns the
// value for the given trial index. The result is clamped to the end bound,
// so any index at or past the last trial yields exactly end. A total of
// one or fewer trials yields end as well.
func Linear(index, total int, start, end float64) float64 {
	if total <= 1 {
		return end
	}
	if index < 0 {
		index = 0
	}
	step := (start - end) / float64(total-1)
	value := start - float64(index)*step
	return clampToBound(value, start, end)
}

// Eased interpolates from start to end over a correct-answer target using
// a power ease-in, which slows the early difficulty ramp-up. Progress is
// correct/(target-1) clamped to [0,1], raised to 1.5.
func Eased(correct, target int, start, end float64) float64 {
	if target <= 1 {
		return end
	}
	progress := float64(correct) / float64(target-1)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	eased := math.Pow(progress, 1.5)
	return start - (start-end)*eased
}

// clampToBound keeps value within the closed interval defined by start and
// end, regardless of which of the two is larger.
func clampToBound(value, start, end float64) float64 {
	lo, hi := start, end
	if lo > hi {
		lo, hi = hi, lo
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
