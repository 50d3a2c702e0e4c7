// Package session measures the wall-clock duration of a level run.
package session

import (
	"math"
	"time"
)

// Clock provides the current time. Runs take it as a port so tests can
// substitute a fixed or stepped clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the real wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Timer records the start of a run once and reports elapsed whole
// seconds at completion. It never resets between trials within a run.
type Timer struct {
	clock     Clock
	startedAt time.Time
	started   bool
}

// NewTimer returns an unstarted timer on the given clock.
func NewTimer(clock Clock) *Timer {
	return &Timer{clock: clock}
}

// Start records the start time. Subsequent calls are no-ops.
func (t *Timer) Start() {
	if t.started {
		return
	}
	t.started = true
	t.startedAt = t.clock.Now()
}

// Started reports whether Start has been called.
func (t *Timer) Started() bool {
	return t.started
}

// ElapsedSeconds returns the rounded seconds since Start, or 0 if the
// timer was never started.
func (t *Timer) ElapsedSeconds() int {
	if !t.started {
		return 0
	}
	ms := t.clock.Now().Sub(t.startedAt).Milliseconds()
	if ms < 0 {
		return 0
	}
	return int(math.Round(float64(ms) / 1000.0))
}
