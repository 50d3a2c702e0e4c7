package progress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/session"
)

// DefaultUserID is the account used when no --user flag is given.
const DefaultUserID = "default"

// DemoUserID carries seeded sample history for trying the stats views.
const DemoUserID = "demo"

// Seed creates the default and demo accounts if they do not exist yet.
// It runs once at store initialization and is idempotent: existing
// records are never touched.
func Seed(store Store, clock session.Clock) error {
	if err := seedRecord(store, DefaultUserID, model.ProgressRecord{Levels: map[string]int{}}); err != nil {
		return err
	}
	return seedRecord(store, DemoUserID, demoRecord(clock))
}

func seedRecord(store Store, userID string, rec model.ProgressRecord) error {
	raw, err := store.Get(recordKey(userID))
	if err != nil {
		return fmt.Errorf("seed %s: %w", userID, err)
	}
	if raw != nil {
		return nil
	}
	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("seed %s: %w", userID, err)
	}
	if err := store.Set(recordKey(userID), encoded); err != nil {
		return fmt.Errorf("seed %s: %w", userID, err)
	}
	return nil
}

// demoRecord builds a week of plausible sample outcomes ending yesterday.
func demoRecord(clock session.Clock) model.ProgressRecord {
	rec := model.ProgressRecord{
		Levels: map[string]int{
			"amblyo-1": 3,
			"amblyo-2": 2,
			"strab-1":  3,
			"strab-2":  1,
			"percep-1": 2,
		},
	}
	type sample struct {
		daysAgo  int
		levelID  string
		category model.Category
		stars    int
		score    float64
		wrong    int
		duration int
	}
	samples := []sample{
		{1, "percep-1", model.CategoryPercep, 2, 11, 4, 240},
		{1, "amblyo-1", model.CategoryAmblyo, 3, 26, 0, 185},
		{2, "strab-2", model.CategoryStrab, 1, 9, 0, 160},
		{3, "amblyo-2", model.CategoryAmblyo, 2, 14, 6, 205},
		{3, "strab-1", model.CategoryStrab, 3, 10, 0, 95},
		{5, "amblyo-1", model.CategoryAmblyo, 2, 19, 7, 230},
		{7, "percep-1", model.CategoryPercep, 1, 6, 9, 250},
	}
	now := clock.Now()
	for _, s := range samples {
		ts := now.AddDate(0, 0, -s.daysAgo).Add(-time.Hour)
		rec.History = append(rec.History, model.LevelOutcome{
			LevelID:   s.levelID,
			Stars:     s.stars,
			Score:     s.score,
			Incorrect: s.wrong,
			Timestamp: ts.UnixMilli(),
			Duration:  s.duration,
			Category:  s.category,
			UserID:    DemoUserID,
		})
	}
	return rec
}
