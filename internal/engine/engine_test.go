package engine

import (
	"math/rand"
	"time"

	"github.com/fovealabs/okulo/internal/levels"
	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/scoring"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type recordedCall struct {
	userID  string
	levelID string
	stars   int
	details *model.OutcomeDetails
}

type memRecorder struct {
	calls []recordedCall
	err   error
}

func (r *memRecorder) Record(userID, levelID string, stars int, details *model.OutcomeDetails) (model.ProgressRecord, error) {
	r.calls = append(r.calls, recordedCall{userID: userID, levelID: levelID, stars: stars, details: details})
	return model.ProgressRecord{}, r.err
}

func testConfig(level levels.Level, seed int64) (Config, *fakeClock, *memRecorder) {
	clock := &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)}
	recorder := &memRecorder{}
	cfg := Config{
		Level:    level,
		UserID:   "tester",
		Clock:    clock,
		RNG:      rand.New(rand.NewSource(seed)),
		Recorder: recorder,
	}
	return cfg, clock, recorder
}

func discreteLevel() levels.Level {
	return levels.Level{
		ID:       "disc-test",
		Category: model.CategoryAmblyo,
		Variant:  levels.VariantDiscrete,
		Trials:   5,
		Contrast: levels.Curve{Start: 1.0, End: 0.2},
		Size:     levels.Curve{Start: 120, End: 24},
		Policy:   scoring.PolicyGraduated,
	}
}

func gridLevel() levels.Level {
	return levels.Level{
		ID:       "grid-test",
		Category: model.CategoryStrab,
		Variant:  levels.VariantGrid,
		Trials:   20,
		Contrast: levels.Curve{Start: 1.0, End: 0.25},
		Size:     levels.Curve{Start: 40, End: 16},
		Policy:   scoring.PolicyStrict,
	}
}

func countdownLevel() levels.Level {
	return levels.Level{
		ID:          "count-test",
		Category:    model.CategoryPercep,
		Variant:     levels.VariantCountdown,
		Trials:      4,
		Contrast:    levels.Curve{Start: 0.7, End: 0.12},
		Size:        levels.Curve{Start: 56, End: 56},
		Policy:      scoring.PolicyPercentage,
		ItemSeconds: 3,
	}
}
