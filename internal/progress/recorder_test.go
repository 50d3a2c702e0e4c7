package progress

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/fovealabs/okulo/internal/model"
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

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Get(key string) ([]byte, error) {
	value, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (s *memStore) Set(key string, value []byte) error {
	s.data[key] = value
	return nil
}

func newTestRecorder() (*Recorder, *fakeClock, *memStore) {
	clock := &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)}
	store := newMemStore()
	return NewRecorder(store, clock), clock, store
}

func TestRecordCreatesLazily(t *testing.T) {
	recorder, _, _ := newTestRecorder()
	rec, err := recorder.Record("alice", "amblyo-1", 2, nil)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if rec.Levels["amblyo-1"] != 2 {
		t.Fatalf("best stars = %d, want 2", rec.Levels["amblyo-1"])
	}
	if len(rec.History) != 0 {
		t.Fatalf("no details given, history should stay empty")
	}
}

func TestBestStarsMonotonic(t *testing.T) {
	recorder, _, _ := newTestRecorder()
	sequences := [][]int{
		{2, 1},
		{0, 3, 2, 1},
		{1, 1, 2, 0, 3},
	}
	for i, stars := range sequences {
		user := fmt.Sprintf("user-%d", i)
		best := 0
		for _, s := range stars {
			rec, err := recorder.Record(user, "level2", s, nil)
			if err != nil {
				t.Fatalf("Record: %v", err)
			}
			if s > best {
				best = s
			}
			if rec.Levels["level2"] != best {
				t.Fatalf("best stars = %d after %v, want %d", rec.Levels["level2"], stars, best)
			}
		}
	}
}

func TestHistoryNewestFirstAndBounded(t *testing.T) {
	recorder, clock, _ := newTestRecorder()
	const extra = 25
	for i := 0; i < HistoryLimit+extra; i++ {
		clock.now = clock.now.Add(time.Minute)
		details := &model.OutcomeDetails{Score: float64(i), Category: model.CategoryAmblyo, Duration: 60}
		if _, err := recorder.Record("bob", "amblyo-1", 1, details); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	rec, err := recorder.Load("bob")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rec.History) != HistoryLimit {
		t.Fatalf("history length = %d, want %d", len(rec.History), HistoryLimit)
	}
	if rec.History[0].Score != float64(HistoryLimit+extra-1) {
		t.Fatalf("newest entry score = %v, want the last recorded", rec.History[0].Score)
	}
	for i := 1; i < len(rec.History); i++ {
		if rec.History[i].Timestamp > rec.History[i-1].Timestamp {
			t.Fatalf("history not newest-first at %d", i)
		}
	}
	// The oldest surviving entry is the one recorded `extra` runs in.
	if rec.History[len(rec.History)-1].Score != float64(extra) {
		t.Fatalf("oldest entry score = %v, want %d", rec.History[len(rec.History)-1].Score, extra)
	}
}

func TestOutcomeFieldsFilled(t *testing.T) {
	recorder, clock, _ := newTestRecorder()
	details := &model.OutcomeDetails{
		Score:     11,
		Incorrect: 4,
		Contrast:  0.42,
		Size:      36,
		Duration:  240,
		Category:  model.CategoryPercep,
	}
	rec, err := recorder.Record("carol", "percep-1", 2, details)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	want := model.LevelOutcome{
		LevelID:   "percep-1",
		Stars:     2,
		Score:     11,
		Incorrect: 4,
		Contrast:  0.42,
		Size:      36,
		Timestamp: clock.now.UnixMilli(),
		Duration:  240,
		Category:  model.CategoryPercep,
		UserID:    "carol",
	}
	if diff := cmp.Diff(want, rec.History[0]); diff != "" {
		t.Fatalf("outcome mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordPersistsWholeRecord(t *testing.T) {
	recorder, _, store := newTestRecorder()
	if _, err := recorder.Record("dave", "strab-1", 3, nil); err != nil {
		t.Fatalf("Record: %v", err)
	}
	reloaded := NewRecorder(store, &fakeClock{})
	rec, err := reloaded.Load("dave")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Levels["strab-1"] != 3 {
		t.Fatalf("persisted best stars = %d, want 3", rec.Levels["strab-1"])
	}
}

func TestLoadMalformedFallsBack(t *testing.T) {
	recorder, _, store := newTestRecorder()
	store.data["progress/eve"] = []byte("{not json")
	rec, err := recorder.Load("eve")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rec.History) != 0 || len(rec.Levels) != 0 {
		t.Fatalf("malformed data should yield an empty default, got %+v", rec)
	}
}

func TestLoadMissingUser(t *testing.T) {
	recorder, _, _ := newTestRecorder()
	rec, err := recorder.Load("nobody")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Levels == nil {
		t.Fatalf("levels map should be initialized")
	}
}
