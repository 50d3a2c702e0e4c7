package engine

import (
	"fmt"

	"github.com/fovealabs/okulo/internal/curve"
	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/scoring"
	"github.com/fovealabs/okulo/internal/session"
)

// Options per discrimination item: one differs from the rest.
const countdownOptions = 4

// CountdownItem is one discrimination item: a row of options where the
// one at Odd carries the item's reduced-contrast stimulus.
type CountdownItem struct {
	Odd  int
	Spec model.TrialSpec
}

// CountdownRun presents a fixed, shuffled item list where every item has
// a response deadline. Expiry without a response scores as incorrect and
// auto-advances; responses to an item that already advanced are ignored.
type CountdownRun struct {
	runState
	cfg   Config
	timer *session.Timer

	items     []CountdownItem
	index     int
	remaining int
	correct   int
	incorrect int
}

// NewCountdownRun builds and shuffles the item list and arms the first
// item's deadline.
func NewCountdownRun(cfg Config) (*CountdownRun, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	lvl := cfg.Level
	if lvl.Trials < 2 {
		return nil, fmt.Errorf("engine: level %s has %d items, need at least 2", lvl.ID, lvl.Trials)
	}
	if lvl.ItemSeconds <= 0 {
		return nil, fmt.Errorf("engine: level %s has no item deadline", lvl.ID)
	}
	r := &CountdownRun{cfg: cfg, timer: session.NewTimer(cfg.Clock), remaining: lvl.ItemSeconds}
	r.timer.Start()
	for i := 0; i < lvl.Trials; i++ {
		r.items = append(r.items, CountdownItem{
			Odd: cfg.RNG.Intn(countdownOptions),
			Spec: model.TrialSpec{
				Index:    i,
				Contrast: curve.Linear(i, lvl.Trials, lvl.Contrast.Start, lvl.Contrast.End),
				Size:     curve.Linear(i, lvl.Trials, lvl.Size.Start, lvl.Size.End),
			},
		})
	}
	cfg.RNG.Shuffle(len(r.items), func(i, j int) {
		r.items[i], r.items[j] = r.items[j], r.items[i]
	})
	return r, nil
}

// Item returns the current discrimination item.
func (r *CountdownRun) Item() CountdownItem {
	return r.items[r.index]
}

// ItemIndex returns the position of the current item; the UI uses it to
// drop responses and ticks aimed at an item that already advanced.
func (r *CountdownRun) ItemIndex() int {
	return r.index
}

// Options returns the number of choices per item.
func (r *CountdownRun) Options() int {
	return countdownOptions
}

// Remaining returns the seconds left on the current item.
func (r *CountdownRun) Remaining() int {
	return r.remaining
}

// Counts returns the running correct and incorrect totals.
func (r *CountdownRun) Counts() (correct, incorrect int) {
	return r.correct, r.incorrect
}

// Tick consumes one second of the current item's deadline. Expiry scores
// the item as incorrect and advances.
func (r *CountdownRun) Tick() {
	if r.finished {
		return
	}
	r.remaining--
	if r.remaining > 0 {
		return
	}
	r.incorrect++
	r.advance()
}

// Respond scores a choice for the current item and advances. Responses
// after the run finished are ignored.
func (r *CountdownRun) Respond(choice int) {
	if r.finished {
		return
	}
	if choice == r.items[r.index].Odd {
		r.correct++
	} else {
		r.incorrect++
	}
	r.advance()
}

func (r *CountdownRun) advance() {
	if r.index < len(r.items)-1 {
		r.index++
		r.remaining = r.cfg.Level.ItemSeconds
		return
	}
	spec := r.items[r.index].Spec
	result := scoring.Rate(r.cfg.Level.Policy, r.correct, r.incorrect, len(r.items))
	r.finalize(r.cfg, r.timer, result, &model.OutcomeDetails{
		Score:     float64(r.correct),
		Incorrect: r.incorrect,
		Contrast:  spec.Contrast,
		Size:      spec.Size,
		Category:  r.cfg.Level.Category,
	})
}
