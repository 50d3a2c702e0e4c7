package engine

import (
	"fmt"

	"github.com/fovealabs/okulo/internal/curve"
	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/scoring"
	"github.com/fovealabs/okulo/internal/session"
)

// Side is the screen half a discrete-level target appears on.
type Side int

// Target sides.
const (
	SideLeft Side = iota
	SideRight
)

// String returns the side label shown in the trial view.
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// DiscreteRun advances one stimulus per response. Contrast and size
// follow the level's linear curves over the trial index; the correct
// side is redrawn at random for every trial.
type DiscreteRun struct {
	runState
	cfg   Config
	timer *session.Timer

	index     int
	correct   int
	incorrect int
	side      Side
}

// NewDiscreteRun starts a discrete run. Binary-choice levels need at
// least two trials.
func NewDiscreteRun(cfg Config) (*DiscreteRun, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Level.Trials < 2 {
		return nil, fmt.Errorf("engine: level %s has %d trials, need at least 2", cfg.Level.ID, cfg.Level.Trials)
	}
	r := &DiscreteRun{cfg: cfg, timer: session.NewTimer(cfg.Clock)}
	r.timer.Start()
	r.drawSide()
	return r, nil
}

// Trial returns the stimulus parameters for the current trial.
func (r *DiscreteRun) Trial() model.TrialSpec {
	lvl := r.cfg.Level
	return model.TrialSpec{
		Index:    r.index,
		Contrast: curve.Linear(r.index, lvl.Trials, lvl.Contrast.Start, lvl.Contrast.End),
		Size:     curve.Linear(r.index, lvl.Trials, lvl.Size.Start, lvl.Size.End),
	}
}

// Side returns the side the current target is on.
func (r *DiscreteRun) Side() Side {
	return r.side
}

// Counts returns the running correct and incorrect totals.
func (r *DiscreteRun) Counts() (correct, incorrect int) {
	return r.correct, r.incorrect
}

// Respond scores one response and advances or finalizes the run. It
// reports whether the response was correct; responses after the run
// finished are ignored.
func (r *DiscreteRun) Respond(side Side) bool {
	if r.finished {
		return false
	}
	hit := side == r.side
	if hit {
		r.correct++
	} else {
		r.incorrect++
	}
	if r.index < r.cfg.Level.Trials-1 {
		r.index++
		r.drawSide()
		return hit
	}
	spec := r.Trial()
	result := scoring.Rate(r.cfg.Level.Policy, r.correct, r.incorrect, r.cfg.Level.Trials)
	r.finalize(r.cfg, r.timer, result, &model.OutcomeDetails{
		Score:     float64(r.correct),
		Incorrect: r.incorrect,
		Contrast:  spec.Contrast,
		Size:      spec.Size,
		Category:  r.cfg.Level.Category,
	})
	return hit
}

func (r *DiscreteRun) drawSide() {
	r.side = Side(r.cfg.RNG.Intn(2))
}
