package engine

import (
	"time"

	"github.com/fovealabs/okulo/internal/curve"
	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/session"
)

// Grid variant constants. The tick period shortens by one step for every
// two points scored, floored at the minimum.
const (
	GridSize          = 20
	InitialTickPeriod = 300 * time.Millisecond
	MinTickPeriod     = 120 * time.Millisecond
	TickPeriodStep    = 20 * time.Millisecond
)

const initialBodyLen = 3

// Direction is a grid movement direction.
type Direction int

// Movement directions.
const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Cell is a grid coordinate; (0,0) is the top-left corner.
type Cell struct {
	X int
	Y int
}

// GridRun is the continuous tick-driven variant: a body chases a target
// cell on a 20x20 grid, growing and speeding up with every catch, and
// ends the moment the head leaves the grid or hits the body.
type GridRun struct {
	runState
	cfg   Config
	timer *session.Timer

	body   []Cell
	dir    Direction
	food   Cell
	score  int
	paused bool
}

// NewGridRun starts a grid run with the body centered, moving right.
func NewGridRun(cfg Config) (*GridRun, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	r := &GridRun{cfg: cfg, timer: session.NewTimer(cfg.Clock), dir: DirRight}
	r.timer.Start()
	mid := GridSize / 2
	for i := 0; i < initialBodyLen; i++ {
		r.body = append(r.body, Cell{X: mid - i, Y: mid})
	}
	r.placeFood()
	return r, nil
}

// Body returns the body cells, head first.
func (r *GridRun) Body() []Cell {
	return r.body
}

// Food returns the current target cell.
func (r *GridRun) Food() Cell {
	return r.food
}

// Direction returns the current movement direction.
func (r *GridRun) Direction() Direction {
	return r.dir
}

// Score returns the number of targets caught.
func (r *GridRun) Score() int {
	return r.score
}

// Paused reports whether tick processing is suspended.
func (r *GridRun) Paused() bool {
	return r.paused
}

// Pause suspends tick processing without resetting state, for the
// exit-confirmation overlay.
func (r *GridRun) Pause() {
	r.paused = true
}

// Resume re-enables tick processing.
func (r *GridRun) Resume() {
	r.paused = false
}

// TickPeriod returns the current tick interval for the score.
func (r *GridRun) TickPeriod() time.Duration {
	period := InitialTickPeriod - time.Duration(r.score/2)*TickPeriodStep
	if period < MinTickPeriod {
		period = MinTickPeriod
	}
	return period
}

// Stimulus returns the target's contrast and size, which ramp down with
// the score on the eased curve.
func (r *GridRun) Stimulus() model.TrialSpec {
	lvl := r.cfg.Level
	return model.TrialSpec{
		Index:    r.score,
		Contrast: curve.Eased(r.score, lvl.Trials, lvl.Contrast.Start, lvl.Contrast.End),
		Size:     curve.Eased(r.score, lvl.Trials, lvl.Size.Start, lvl.Size.End),
	}
}

// SetDirection changes the movement direction. A change that reverses
// straight back into the body is rejected.
func (r *GridRun) SetDirection(dir Direction) {
	if r.finished || r.paused {
		return
	}
	if dir == r.dir.opposite() {
		return
	}
	r.dir = dir
}

// Tick advances the head one cell. Catching the target grows the body
// and relocates the target; leaving the grid or hitting the body ends
// the run in the same tick. Ticks while paused or finished are no-ops.
func (r *GridRun) Tick() {
	if r.finished || r.paused {
		return
	}
	dx, dy := r.dir.delta()
	head := Cell{X: r.body[0].X + dx, Y: r.body[0].Y + dy}
	if head.X < 0 || head.X >= GridSize || head.Y < 0 || head.Y >= GridSize {
		r.end()
		return
	}
	for _, c := range r.body {
		if c == head {
			r.end()
			return
		}
	}
	r.body = append([]Cell{head}, r.body...)
	if head == r.food {
		r.score++
		r.placeFood()
		return
	}
	r.body = r.body[:len(r.body)-1]
}

func (r *GridRun) end() {
	stars := 0
	if r.score > 0 {
		stars = 1
	}
	spec := r.Stimulus()
	result := model.RunResult{
		Correct: r.score,
		Stars:   stars,
		Success: r.score > 0,
	}
	r.finalize(r.cfg, r.timer, result, &model.OutcomeDetails{
		Score:    float64(r.score),
		Contrast: spec.Contrast,
		Size:     spec.Size,
		Category: r.cfg.Level.Category,
	})
}

func (r *GridRun) placeFood() {
	occupied := make(map[Cell]struct{}, len(r.body))
	for _, c := range r.body {
		occupied[c] = struct{}{}
	}
	free := make([]Cell, 0, GridSize*GridSize-len(r.body))
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			c := Cell{X: x, Y: y}
			if _, ok := occupied[c]; !ok {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		return
	}
	r.food = free[r.cfg.RNG.Intn(len(free))]
}
