package engine

import (
	"math"
	"testing"
	"time"
)

func TestDiscreteNeedsTwoTrials(t *testing.T) {
	level := discreteLevel()
	level.Trials = 1
	cfg, _, _ := testConfig(level, 1)
	if _, err := NewDiscreteRun(cfg); err == nil {
		t.Fatalf("expected error for a single-trial binary-choice level")
	}
}

func TestDiscreteFlawlessRun(t *testing.T) {
	cfg, clock, recorder := testConfig(discreteLevel(), 1)
	run, err := NewDiscreteRun(cfg)
	if err != nil {
		t.Fatalf("NewDiscreteRun: %v", err)
	}

	clock.now = clock.now.Add(90 * time.Second)
	for i := 0; i < 5; i++ {
		if run.Finished() {
			t.Fatalf("run finished early at trial %d", i)
		}
		if got := run.Trial().Index; got != i {
			t.Fatalf("trial index = %d, want %d", got, i)
		}
		run.Respond(run.Side())
	}

	if !run.Finished() {
		t.Fatalf("run should be finished after all trials")
	}
	result, ok := run.Result()
	if !ok {
		t.Fatalf("expected a result")
	}
	if result.Stars != 3 || !result.Success {
		t.Fatalf("flawless run rated %d stars success=%v", result.Stars, result.Success)
	}

	if len(recorder.calls) != 1 {
		t.Fatalf("recorder called %d times, want 1", len(recorder.calls))
	}
	call := recorder.calls[0]
	if call.userID != "tester" || call.levelID != "disc-test" || call.stars != 3 {
		t.Fatalf("unexpected recording: %+v", call)
	}
	if call.details == nil {
		t.Fatalf("expected outcome details")
	}
	if call.details.Score != 5 || call.details.Incorrect != 0 {
		t.Fatalf("details = %+v", call.details)
	}
	if call.details.Duration != 90 {
		t.Fatalf("duration = %d, want 90", call.details.Duration)
	}
	// The last trial sits exactly on the end bounds.
	if math.Abs(call.details.Contrast-0.2) > 1e-9 || math.Abs(call.details.Size-24) > 1e-9 {
		t.Fatalf("final stimulus = (%v, %v), want (0.2, 24)", call.details.Contrast, call.details.Size)
	}
	saved, saveErr := run.SaveState()
	if !saved || saveErr != nil {
		t.Fatalf("save state = (%v, %v)", saved, saveErr)
	}
}

func TestDiscreteWrongAnswersRated(t *testing.T) {
	cfg, _, recorder := testConfig(discreteLevel(), 2)
	run, err := NewDiscreteRun(cfg)
	if err != nil {
		t.Fatalf("NewDiscreteRun: %v", err)
	}
	// Miss every trial: answer the opposite side.
	for !run.Finished() {
		wrong := SideLeft
		if run.Side() == SideLeft {
			wrong = SideRight
		}
		run.Respond(wrong)
	}
	result, _ := run.Result()
	if result.Stars != 0 || result.Success {
		t.Fatalf("all-miss run rated %d stars success=%v", result.Stars, result.Success)
	}
	if recorder.calls[0].details.Incorrect != 5 {
		t.Fatalf("incorrect = %d, want 5", recorder.calls[0].details.Incorrect)
	}
}

func TestDiscreteIgnoresResponseAfterFinish(t *testing.T) {
	cfg, _, recorder := testConfig(discreteLevel(), 3)
	run, err := NewDiscreteRun(cfg)
	if err != nil {
		t.Fatalf("NewDiscreteRun: %v", err)
	}
	for !run.Finished() {
		run.Respond(run.Side())
	}
	before, _ := run.Result()

	run.Respond(SideLeft)
	run.Respond(SideRight)

	after, _ := run.Result()
	if before != after {
		t.Fatalf("result changed after finish: %+v -> %+v", before, after)
	}
	if len(recorder.calls) != 1 {
		t.Fatalf("recorder called %d times, want exactly 1", len(recorder.calls))
	}
}

func TestDiscreteRecorderFailureSurfaces(t *testing.T) {
	cfg, _, recorder := testConfig(discreteLevel(), 4)
	recorder.err = errFake
	run, err := NewDiscreteRun(cfg)
	if err != nil {
		t.Fatalf("NewDiscreteRun: %v", err)
	}
	for !run.Finished() {
		run.Respond(run.Side())
	}
	saved, saveErr := run.SaveState()
	if saved || saveErr == nil {
		t.Fatalf("save state = (%v, %v), want unsaved with error", saved, saveErr)
	}
}

var errFake = fakeError("store unavailable")

type fakeError string

func (e fakeError) Error() string {
	return string(e)
}
