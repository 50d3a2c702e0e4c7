// Package analytics derives calendar-day statistics from outcome history.
package analytics

import (
	"time"

	"github.com/fovealabs/okulo/internal/model"
)

// DateLabel is the local calendar-day format used for grouping.
const DateLabel = "2006-01-02"

// Aggregate buckets the history into local calendar days over the
// inclusive [from, to] range. Every day of the range yields a chart
// bucket, empty days included, sorted ascending; the detail groups skip
// empty days and are sorted descending. A range with to before from is
// empty, and all averages are zero-guarded. Pure: history is passed in
// already loaded, no I/O happens here.
func Aggregate(history []model.LevelOutcome, from, to time.Time) model.RangeReport {
	start := startOfDay(from)
	end := startOfDay(to)
	if end.Before(start) {
		return model.RangeReport{}
	}
	rangeEnd := end.AddDate(0, 0, 1)

	byDay := map[string][]model.LevelOutcome{}
	for _, o := range history {
		t := o.Time()
		if t.Before(start) || !t.Before(rangeEnd) {
			continue
		}
		label := t.Format(DateLabel)
		byDay[label] = append(byDay[label], o)
	}

	var report model.RangeReport
	var totalMinutes float64
	for day := start; day.Before(rangeEnd); day = day.AddDate(0, 0, 1) {
		label := day.Format(DateLabel)
		outcomes := byDay[label]
		minutes := sumMinutes(outcomes)
		totalMinutes += minutes
		report.Buckets = append(report.Buckets, model.AnalyticsBucket{
			Date:         label,
			TotalMinutes: minutes,
			SessionCount: len(outcomes),
		})
		if len(outcomes) > 0 {
			report.DaysTracked++
		}
	}
	for day := end; !day.Before(start); day = day.AddDate(0, 0, -1) {
		label := day.Format(DateLabel)
		outcomes := byDay[label]
		if len(outcomes) == 0 {
			continue
		}
		report.Days = append(report.Days, model.DayGroup{
			Date:         label,
			Outcomes:     outcomes,
			TotalMinutes: sumMinutes(outcomes),
			SessionCount: len(outcomes),
			AvgScore:     avgScore(outcomes),
		})
	}
	if len(report.Buckets) > 0 {
		report.RangeAverageMinutes = totalMinutes / float64(len(report.Buckets))
	}
	return report
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Local().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func sumMinutes(outcomes []model.LevelOutcome) float64 {
	var minutes float64
	for _, o := range outcomes {
		minutes += float64(o.Duration) / 60.0
	}
	return minutes
}

func avgScore(outcomes []model.LevelOutcome) float64 {
	if len(outcomes) == 0 {
		return 0
	}
	var total float64
	for _, o := range outcomes {
		total += o.Score
	}
	return total / float64(len(outcomes))
}
