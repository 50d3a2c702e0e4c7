// Package scoring derives star ratings and pass/fail outcomes from trial counts.
package scoring

import "github.com/fovealabs/okulo/internal/model"

// Policy selects the star-rating rule for a level. The rules differ
// between level families on purpose; they grew separately in the clinic
// protocols and are kept distinct rather than unified.
type Policy int

const (
	// PolicyStrict awards 3 stars for a flawless run, otherwise 0.
	PolicyStrict Policy = iota
	// PolicyGraduated awards 3 stars for a flawless run, otherwise rates
	// by accuracy percent with breakpoints at 60 and 30.
	PolicyGraduated
	// PolicyPercentage rates purely by accuracy percent with breakpoints
	// at 90, 60 and 30, regardless of whether any error occurred.
	PolicyPercentage
)

// String returns the policy name used in the level catalog listing.
func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyGraduated:
		return "graduated"
	case PolicyPercentage:
		return "percentage"
	default:
		return "unknown"
	}
}

// Rate computes the final result for a run of total trials. Accuracy is
// correct/total*100; an empty total rates as 0 accuracy, never NaN. The
// success flag is zero-incorrect framing and is independent of stars.
func Rate(policy Policy, correct, incorrect, total int) model.RunResult {
	result := model.RunResult{
		Correct:   correct,
		Incorrect: incorrect,
		Success:   incorrect == 0,
	}
	accuracy := Accuracy(correct, total)
	switch policy {
	case PolicyStrict:
		if incorrect == 0 {
			result.Stars = 3
		}
	case PolicyGraduated:
		switch {
		case incorrect == 0:
			result.Stars = 3
		case accuracy > 60:
			result.Stars = 2
		case accuracy > 30:
			result.Stars = 1
		}
	case PolicyPercentage:
		switch {
		case accuracy > 90:
			result.Stars = 3
		case accuracy > 60:
			result.Stars = 2
		case accuracy > 30:
			result.Stars = 1
		}
	}
	return result
}

// Accuracy returns the percentage of correct responses, 0 for an empty run.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}
