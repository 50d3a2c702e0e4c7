// Package progress persists per-user therapy progress.
package progress

import (
	"encoding/json"
	"fmt"

	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/session"
)

// HistoryLimit caps the per-user outcome history; the oldest entries are
// dropped, never mutated.
const HistoryLimit = 1000

// Store is the key-value persistence collaborator. Get returns nil for a
// missing key. store.Store is the production implementation.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Recorder is the single write path for finished runs. It merges a run's
// stars into the user's best-per-level map and prepends the outcome to
// the bounded history, then writes the whole record through.
type Recorder struct {
	store Store
	clock session.Clock
}

// NewRecorder returns a recorder on the given store and clock.
func NewRecorder(store Store, clock session.Clock) *Recorder {
	return &Recorder{store: store, clock: clock}
}

// Load returns the user's progress record. A missing or malformed stored
// value yields an empty default record, never an error from decoding.
func (r *Recorder) Load(userID string) (model.ProgressRecord, error) {
	raw, err := r.store.Get(recordKey(userID))
	if err != nil {
		return model.ProgressRecord{}, fmt.Errorf("load progress for %s: %w", userID, err)
	}
	return decodeRecord(raw), nil
}

// Record merges one finished run into the user's progress and persists
// it. Best stars per level only ever increase. When details are present
// a history entry is created with the current timestamp.
func (r *Recorder) Record(userID, levelID string, stars int, details *model.OutcomeDetails) (model.ProgressRecord, error) {
	rec, err := r.Load(userID)
	if err != nil {
		return model.ProgressRecord{}, err
	}
	if rec.Levels == nil {
		rec.Levels = map[string]int{}
	}
	if stars > rec.Levels[levelID] {
		rec.Levels[levelID] = stars
	} else if _, ok := rec.Levels[levelID]; !ok {
		rec.Levels[levelID] = stars
	}
	if details != nil {
		outcome := model.LevelOutcome{
			LevelID:   levelID,
			Stars:     stars,
			Score:     details.Score,
			Incorrect: details.Incorrect,
			Contrast:  details.Contrast,
			Size:      details.Size,
			Timestamp: r.clock.Now().UnixMilli(),
			Duration:  details.Duration,
			Category:  details.Category,
			UserID:    userID,
		}
		rec.History = append([]model.LevelOutcome{outcome}, rec.History...)
		if len(rec.History) > HistoryLimit {
			rec.History = rec.History[:HistoryLimit]
		}
	}
	if err := r.save(userID, rec); err != nil {
		return model.ProgressRecord{}, err
	}
	return rec, nil
}

func (r *Recorder) save(userID string, rec model.ProgressRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode progress for %s: %w", userID, err)
	}
	if err := r.store.Set(recordKey(userID), raw); err != nil {
		return fmt.Errorf("save progress for %s: %w", userID, err)
	}
	return nil
}

func decodeRecord(raw []byte) model.ProgressRecord {
	rec := model.ProgressRecord{Levels: map[string]int{}}
	if len(raw) == 0 {
		return rec
	}
	var decoded model.ProgressRecord
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Corrupt data falls back to an empty record; no repair attempted.
		return rec
	}
	if decoded.Levels == nil {
		decoded.Levels = map[string]int{}
	}
	return decoded
}

func recordKey(userID string) string {
	return "progress/" + userID
}
