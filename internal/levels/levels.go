// Package levels defines the static level catalog.
package levels

import (
	"fmt"
	"sort"

	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/scoring"
)

// Variant selects the trial state machine a level runs on.
type Variant int

const (
	// VariantDiscrete advances one stimulus per response.
	VariantDiscrete Variant = iota
	// VariantGrid is the continuous tick-driven grid game.
	VariantGrid
	// VariantCountdown gives each item a response deadline.
	VariantCountdown
)

// String returns the variant name used in catalog listings.
func (v Variant) String() string {
	switch v {
	case VariantDiscrete:
		return "discrete"
	case VariantGrid:
		return "grid"
	case VariantCountdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// Curve holds the start and end bound of one stimulus parameter. A fixed
// parameter uses Start == End.
type Curve struct {
	Start float64
	End   float64
}

// Level describes one training level: its variant, trial count or score
// target, stimulus curves, and rating policy.
type Level struct {
	ID       string
	Title    string
	Category model.Category
	Variant  Variant
	Trials   int
	Contrast Curve
	Size     Curve
	Policy   scoring.Policy

	// Countdown variant only: response deadline per item, in seconds.
	ItemSeconds int
}

// Catalog returns all levels in display order.
func Catalog() []Level {
	return []Level{
		{
			ID:       "amblyo-1",
			Title:    "Fading Letters",
			Category: model.CategoryAmblyo,
			Variant:  VariantDiscrete,
			Trials:   26,
			Contrast: Curve{Start: 1.0, End: 0.35},
			Size:     Curve{Start: 120, End: 24},
			Policy:   scoring.PolicyGraduated,
		},
		{
			ID:       "amblyo-2",
			Title:    "Contrast Hunt",
			Category: model.CategoryAmblyo,
			Variant:  VariantDiscrete,
			Trials:   20,
			Contrast: Curve{Start: 0.9, End: 0.08},
			Size:     Curve{Start: 64, End: 64},
			Policy:   scoring.PolicyGraduated,
		},
		{
			ID:       "strab-1",
			Title:    "Side Seeker",
			Category: model.CategoryStrab,
			Variant:  VariantDiscrete,
			Trials:   10,
			Contrast: Curve{Start: 0.8, End: 0.3},
			Size:     Curve{Start: 48, End: 32},
			Policy:   scoring.PolicyStrict,
		},
		{
			ID:       "strab-2",
			Title:    "Grid Chase",
			Category: model.CategoryStrab,
			Variant:  VariantGrid,
			Trials:   20,
			Contrast: Curve{Start: 1.0, End: 0.25},
			Size:     Curve{Start: 40, End: 16},
			Policy:   scoring.PolicyStrict,
		},
		{
			ID:          "percep-1",
			Title:       "Odd One Out",
			Category:    model.CategoryPercep,
			Variant:     VariantCountdown,
			Trials:      15,
			Contrast:    Curve{Start: 0.7, End: 0.12},
			Size:        Curve{Start: 56, End: 56},
			Policy:      scoring.PolicyPercentage,
			ItemSeconds: 15,
		},
	}
}

// Find returns the level with the given ID.
func Find(id string) (Level, error) {
	for _, lvl := range Catalog() {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("unknown level %q (run: okulo levels)", id)
}

// IDs returns all level IDs, sorted.
func IDs() []string {
	catalog := Catalog()
	ids := make([]string, 0, len(catalog))
	for _, lvl := range catalog {
		ids = append(ids, lvl.ID)
	}
	sort.Strings(ids)
	return ids
}
