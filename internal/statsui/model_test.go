package statsui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fovealabs/okulo/internal/model"
	"github.com/fovealabs/okulo/internal/progress"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type memStore struct {
	data map[string][]byte
}

func (s *memStore) Get(key string) ([]byte, error) {
	return s.data[key], nil
}

func (s *memStore) Set(key string, value []byte) error {
	s.data[key] = value
	return nil
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 7, 10, 12, 0, 0, 0, time.Local)}
	recorder := progress.NewRecorder(&memStore{data: map[string][]byte{}}, clock)
	details := &model.OutcomeDetails{Score: 12, Duration: 180, Category: model.CategoryAmblyo}
	if _, err := recorder.Record("tester", "amblyo-1", 2, details); err != nil {
		t.Fatalf("Record: %v", err)
	}
	cfg := model.StatsConfig{
		UserID: "tester",
		From:   clock.now.AddDate(0, 0, -6),
		To:     clock.now,
	}
	return NewModel(recorder, cfg)
}

func TestReportLoadsOnConstruction(t *testing.T) {
	m := newTestModel(t)
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if len(m.report.Buckets) != 7 {
		t.Fatalf("bucket count = %d, want 7", len(m.report.Buckets))
	}
	if m.report.DaysTracked != 1 {
		t.Fatalf("days tracked = %d, want 1", m.report.DaysTracked)
	}
}

func TestTabNavigationWraps(t *testing.T) {
	m := newTestModel(t)
	if m.activeTab != tabOverview {
		t.Fatalf("initial tab = %d", m.activeTab)
	}
	m.moveTab(-1)
	if m.activeTab != tabHistory {
		t.Fatalf("left from first tab should wrap to last, got %d", m.activeTab)
	}
	m.moveTab(1)
	if m.activeTab != tabOverview {
		t.Fatalf("right from last tab should wrap to first, got %d", m.activeTab)
	}
}

func TestFilterApplyChangesRange(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.startFilter()
	if !m.filterMode {
		t.Fatalf("/ should open the filter form")
	}
	m.filterInputs[1].SetValue("2026-07-09")
	m.filterInputs[2].SetValue("2026-07-10")
	m.updateFilter(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode {
		t.Fatalf("valid filter should close the form")
	}
	if len(m.report.Buckets) != 2 {
		t.Fatalf("bucket count = %d, want 2", len(m.report.Buckets))
	}
}

func TestFilterRejectsBadDate(t *testing.T) {
	m := newTestModel(t)
	m.startFilter()
	m.filterInputs[1].SetValue("not-a-date")
	m.updateFilter(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.filterMode {
		t.Fatalf("invalid filter must keep the form open")
	}
	if m.filterError == "" {
		t.Fatalf("invalid date should set the filter error")
	}
}

func TestFilterRejectsEmptyUser(t *testing.T) {
	m := newTestModel(t)
	m.startFilter()
	m.filterInputs[0].SetValue("  ")
	m.updateFilter(tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterError == "" {
		t.Fatalf("empty user should set the filter error")
	}
}

func TestPadLines(t *testing.T) {
	got := padLines("ab\nc", 4)
	want := "ab  \nc   "
	if got != want {
		t.Fatalf("padLines = %q, want %q", got, want)
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines("a\nb\nc", 2, 2)
	if lines := strings.Split(got, "\n"); len(lines) != 2 {
		t.Fatalf("fitLines should truncate to height, got %q", got)
	}
	got = fitLines("a", 3, 3)
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("fitLines should pad to height, got %q", got)
	}
	for _, line := range lines {
		if len([]rune(line)) != 3 {
			t.Fatalf("fitLines line %q not padded to width", line)
		}
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("short", 10); got != "short" {
		t.Fatalf("short lines pass through, got %q", got)
	}
	got := truncateLine("abcdefgh", 5)
	if got != "abcd…" {
		t.Fatalf("truncateLine = %q", got)
	}
}
