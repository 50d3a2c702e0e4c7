package analytics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fovealabs/okulo/internal/model"
)

func sampleReport() model.RangeReport {
	history := []model.LevelOutcome{
		outcome(day(2026, 5, 2, 18), 60, 10),
		outcome(day(2026, 5, 1, 9), 120, 20),
	}
	return Aggregate(history, day(2026, 5, 1, 0), day(2026, 5, 3, 0))
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Days in range: 3",
		"Days tracked: 2",
		"Sessions: 2",
		"Avg minutes/day: 1.0",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmptyRange(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, model.RangeReport{}); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "No days in range.") {
		t.Fatalf("empty range output = %q", buf.String())
	}
}

func TestRenderDayTable(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderDayTable(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderDayTable: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if !strings.HasPrefix(lines[0], "Date") {
		t.Fatalf("header = %q", lines[0])
	}
	// Most recent day first.
	if !strings.HasPrefix(lines[1], "2026-05-02") {
		t.Fatalf("first day row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2026-05-01") {
		t.Fatalf("second day row = %q", lines[2])
	}
}

func TestRenderHistoryTableGroupsByDay(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistoryTable(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderHistoryTable: %v", err)
	}
	out := buf.String()
	first := strings.Index(out, "2026-05-02")
	second := strings.Index(out, "2026-05-01")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("day headings wrong or out of order:\n%s", out)
	}
	wantTime := time.UnixMilli(day(2026, 5, 2, 18).UnixMilli()).Format("15:04")
	if !strings.Contains(out, wantTime) {
		t.Fatalf("outcome time %s missing:\n%s", wantTime, out)
	}
}

func TestStarsGlyphs(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{-1, "☆☆☆"},
		{0, "☆☆☆"},
		{1, "★☆☆"},
		{2, "★★☆"},
		{3, "★★★"},
		{5, "★★★"},
	}
	for _, c := range cases {
		if got := Stars(c.n); got != c.want {
			t.Fatalf("Stars(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}
