package analytics

import (
	"fmt"
	"io"

	"github.com/fovealabs/okulo/internal/model"
)

// RenderSummary prints the range-level numbers for a report.
func RenderSummary(w io.Writer, report model.RangeReport) error {
	if len(report.Buckets) == 0 {
		_, err := fmt.Fprintln(w, "No days in range.")
		return err
	}
	sessions := 0
	for _, b := range report.Buckets {
		sessions += b.SessionCount
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Days in range: %d", len(report.Buckets)),
		fmt.Sprintf("Days tracked: %d", report.DaysTracked),
		fmt.Sprintf("Sessions: %d", sessions),
		fmt.Sprintf("Avg minutes/day: %.1f", report.RangeAverageMinutes),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderDayTable prints the per-day detail listing, most recent day first.
func RenderDayTable(w io.Writer, report model.RangeReport) error {
	if len(report.Days) == 0 {
		_, err := fmt.Fprintln(w, "No sessions in range.")
		return err
	}
	headers := []string{"Date", "Sessions", "Minutes", "Avg score"}
	rows := make([][]string, 0, len(report.Days))
	for _, day := range report.Days {
		rows = append(rows, []string{
			day.Date,
			fmt.Sprintf("%d", day.SessionCount),
			fmt.Sprintf("%.1f", day.TotalMinutes),
			fmt.Sprintf("%.1f", day.AvgScore),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistoryTable prints individual outcomes, newest first, grouped
// under their day heading.
func RenderHistoryTable(w io.Writer, report model.RangeReport) error {
	if len(report.Days) == 0 {
		return nil
	}
	headers := []string{"Time", "Level", "Stars", "Score", "Errors", "Duration"}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, day := range report.Days {
		if _, err := fmt.Fprintln(w, day.Date); err != nil {
			return err
		}
		rows := make([][]string, 0, len(day.Outcomes))
		for _, o := range day.Outcomes {
			rows = append(rows, []string{
				o.Time().Format("15:04"),
				o.LevelID,
				Stars(o.Stars),
				fmt.Sprintf("%.0f", o.Score),
				fmt.Sprintf("%d", o.Incorrect),
				fmt.Sprintf("%ds", o.Duration),
			})
		}
		for _, line := range formatTable(headers, rows, rightAlign) {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}
	return nil
}

// Stars renders a 0-3 star count as filled and hollow glyphs.
func Stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 3 {
		n = 3
	}
	out := ""
	for i := 0; i < 3; i++ {
		if i < n {
			out += "★"
		} else {
			out += "☆"
		}
	}
	return out
}
