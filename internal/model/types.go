// Package model defines shared data structures.
package model

import "time"

// Category labels the therapy track a level belongs to.
type Category string

// Therapy categories.
const (
	CategoryAmblyo Category = "amblyo"
	CategoryStrab  Category = "strab"
	CategoryPercep Category = "percep"
)

// TrialSpec holds the stimulus parameters for one trial. It is derived
// from the level curve constants and the trial index, never stored.
type TrialSpec struct {
	Index    int
	Contrast float64
	Size     float64
}

// RunResult summarizes one finished level attempt.
type RunResult struct {
	Correct   int
	Incorrect int
	Stars     int
	Success   bool
}

// LevelOutcome is one persisted history entry for a finished run.
type LevelOutcome struct {
	LevelID   string   `json:"levelId"`
	Stars     int      `json:"stars"`
	Score     float64  `json:"score"`
	Incorrect int      `json:"incorrect"`
	Contrast  float64  `json:"contrast,omitempty"`
	Size      float64  `json:"size,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Duration  int      `json:"duration"`
	Category  Category `json:"category"`
	UserID    string   `json:"userId"`
}

// Time converts the epoch-millisecond timestamp to local time.
func (o LevelOutcome) Time() time.Time {
	return time.UnixMilli(o.Timestamp)
}

// ProgressRecord is the whole persisted state for one user: best stars
// per level plus a newest-first bounded outcome history.
type ProgressRecord struct {
	Levels  map[string]int `json:"levels"`
	History []LevelOutcome `json:"history"`
}

// OutcomeDetails carries the optional per-run data merged into a
// LevelOutcome when a run is recorded.
type OutcomeDetails struct {
	Score     float64
	Incorrect int
	Contrast  float64
	Size      float64
	Duration  int
	Category  Category
}

// AnalyticsBucket aggregates one calendar day for charting. Days without
// sessions still produce a bucket with zero values.
type AnalyticsBucket struct {
	Date         string
	TotalMinutes float64
	SessionCount int
}

// DayGroup collects the outcomes of one calendar day for detail display.
type DayGroup struct {
	Date         string
	Outcomes     []LevelOutcome
	TotalMinutes float64
	SessionCount int
	AvgScore     float64
}

// RangeReport is the derived analytics output for a date range.
type RangeReport struct {
	Buckets             []AnalyticsBucket
	Days                []DayGroup
	RangeAverageMinutes float64
	DaysTracked         int
}

// StatsConfig defines filters for the analytics views.
type StatsConfig struct {
	UserID string
	From   time.Time
	To     time.Time
}
