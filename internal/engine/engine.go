// Package engine implements the trial state machines that drive a level run.
//
// A run owns its scoring counts, its session timer and the terminal
// transition. Ticks and responses arrive from the UI loop; the run decides
// whether to advance, ignore, or finalize. Finalization happens at most
// once per run: the first terminal transition rates the run, records it,
// and every later tick or response is a no-op.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/fovealabs/okulo/internal/levels"
	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/session"
)

// Recorder persists a finished run. progress.Recorder is the production
// implementation; tests substitute an in-memory one.
type Recorder interface {
	Record(userID, levelID string, stars int, details *model.OutcomeDetails) (model.ProgressRecord, error)
}

// Config wires a run to its level, user and collaborators. RNG governs
// side draws, food placement and item shuffling only, never the decay
// curves, so a seeded source makes a run fully deterministic.
type Config struct {
	Level    levels.Level
	UserID   string
	Clock    session.Clock
	RNG      *rand.Rand
	Recorder Recorder
}

func (c Config) validate() error {
	if c.Clock == nil {
		return fmt.Errorf("engine: clock is required")
	}
	if c.RNG == nil {
		return fmt.Errorf("engine: rng is required")
	}
	return nil
}

// runState is the part shared by all variants: the finalization guard and
// the outcome of the recording write.
type runState struct {
	finished bool
	result   model.RunResult
	saved    bool
	saveErr  error
}

// Finished reports whether the run reached its terminal state.
func (s *runState) Finished() bool {
	return s.finished
}

// Result returns the final rating once the run is finished.
func (s *runState) Result() (model.RunResult, bool) {
	if !s.finished {
		return model.RunResult{}, false
	}
	return s.result, true
}

// SaveState reports whether the outcome was recorded and any write error.
func (s *runState) SaveState() (saved bool, err error) {
	return s.saved, s.saveErr
}

// finalize marks the run finished and records the outcome exactly once.
// The scoring result is fixed before the recorder is invoked, and the
// persistence write completes before saved is reported.
func (s *runState) finalize(cfg Config, timer *session.Timer, result model.RunResult, details *model.OutcomeDetails) {
	if s.finished {
		return
	}
	s.finished = true
	s.result = result
	if cfg.Recorder == nil {
		return
	}
	if details != nil {
		details.Duration = timer.ElapsedSeconds()
	}
	if _, err := cfg.Recorder.Record(cfg.UserID, cfg.Level.ID, result.Stars, details); err != nil {
		s.saveErr = err
		return
	}
	s.saved = true
}
