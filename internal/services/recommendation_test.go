package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/mindforge/thinkpath-backend/internal/types"
)

func newTestPath(t *testing.T, dims ...string) *types.LearningPath {
	t.Helper()
	steps := buildTestPath(dims...)
	return &types.LearningPath{
		ID:                   uuid.New(),
		UserID:               uuid.New(),
		Status:               types.PathStatusActive,
		Steps:                datatypes.NewJSONSlice(steps),
		TotalSteps:           len(steps),
		EstimatedMinutesLeft: sumEstimatedMinutes(steps),
		Version:              1,
	}
}

func TestCompleteStepInList(t *testing.T) {
	steps := buildTestPath(types.ThinkingTypeFallacyDetection)
	target := steps[0].ID

	idx, err := completeStepInList(steps, target, 85, 300, time.Now())
	if err != nil {
		t.Fatalf("completeStepInList error: %v", err)
	}
	if idx != 0 {
		t.Fatalf("idx=%d, want 0", idx)
	}
	if !steps[0].Completed || steps[0].Status != types.StepStatusCompleted {
		t.Fatalf("step not marked completed: %+v", steps[0])
	}
	if steps[0].Score == nil || *steps[0].Score != 85 {
		t.Fatalf("score not stamped: %+v", steps[0].Score)
	}
	if steps[0].CompletedAt == nil {
		t.Fatal("completedAt not stamped")
	}
}

func TestCompleteStepInListStaleID(t *testing.T) {
	steps := buildTestPath(types.ThinkingTypeFallacyDetection)

	_, err := completeStepInList(steps, "not-a-real-step", 90, 60, time.Now())
	if !errors.Is(err, ErrStepNotFound) {
		t.Fatalf("err=%v, want ErrStepNotFound", err)
	}
}

func TestAdvanceCursor(t *testing.T) {
	cases := []struct {
		name           string
		completedIndex int
		totalSteps     int
		want           int
	}{
		{"middle", 3, 10, 4},
		{"last_step_clamped", 9, 10, 9},
		{"past_end_clamped", 12, 10, 9},
		{"single_step_path", 0, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := advanceCursor(tc.completedIndex, tc.totalSteps); got != tc.want {
				t.Fatalf("advanceCursor(%d,%d)=%d, want %d", tc.completedIndex, tc.totalSteps, got, tc.want)
			}
		})
	}
}

func TestRecomputeCountersProgressPercent(t *testing.T) {
	path := newTestPath(t, types.ThinkingTypeFallacyDetection)
	steps := []types.PathStep(path.Steps)

	if _, err := completeStepInList(steps, steps[0].ID, 80, 120, time.Now()); err != nil {
		t.Fatalf("complete first step: %v", err)
	}
	path.Steps = steps
	recomputeCounters(path)

	if path.CompletedSteps != 1 {
		t.Fatalf("CompletedSteps=%d, want 1", path.CompletedSteps)
	}
	want := int(float64(1)/float64(path.TotalSteps)*100 + 0.5)
	if path.ProgressPercent != want {
		t.Fatalf("ProgressPercent=%d, want %d", path.ProgressPercent, want)
	}

	// Completing more steps never decreases the counters.
	prev := path.CompletedSteps
	if _, err := completeStepInList(steps, steps[1].ID, 70, 60, time.Now()); err != nil {
		t.Fatalf("complete second step: %v", err)
	}
	path.Steps = steps
	recomputeCounters(path)
	if path.CompletedSteps < prev {
		t.Fatalf("CompletedSteps decreased: %d -> %d", prev, path.CompletedSteps)
	}
}

func TestBuildDailyTaskFirstTime(t *testing.T) {
	path := newTestPath(t, types.ThinkingTypeFallacyDetection)

	task := buildDailyTask(path, false)
	if task.Step == nil {
		t.Fatal("task has no step")
	}
	if !task.IsFirstTime {
		t.Fatal("fresh path should be first-time")
	}
	if task.IsCompleted {
		t.Fatal("day not completed yet")
	}
	if task.Step.Type != types.StepTypeLearning || task.Step.Level != 1 {
		t.Fatalf("first task should be a level-1 theory step, got %s L%d", task.Step.Type, task.Step.Level)
	}
	if task.Step.ThinkingTypeID != types.ThinkingTypeFallacyDetection {
		t.Fatalf("first task dimension=%q", task.Step.ThinkingTypeID)
	}
	if task.CurrentPhase != "基础巩固" {
		t.Fatalf("phase=%q", task.CurrentPhase)
	}
	if task.WhyThisTask == "" || task.WhatYouWillLearn == "" {
		t.Fatal("rationale copy missing")
	}
}

func TestBuildDailyTaskIdempotent(t *testing.T) {
	path := newTestPath(t, types.ThinkingTypeFallacyDetection)

	first := buildDailyTask(path, false)
	second := buildDailyTask(path, false)
	if first.Step.ID != second.Step.ID {
		t.Fatalf("same path state produced different steps: %q vs %q", first.Step.ID, second.Step.ID)
	}
}

func TestBuildDailyTaskCompletedTodayPreviewsCurrentStep(t *testing.T) {
	path := newTestPath(t, types.ThinkingTypeFallacyDetection)
	steps := []types.PathStep(path.Steps)

	idx, err := completeStepInList(steps, steps[0].ID, 90, 200, time.Now())
	if err != nil {
		t.Fatalf("complete step: %v", err)
	}
	path.Steps = steps
	recomputeCounters(path)
	path.CurrentStepIndex = advanceCursor(idx, path.TotalSteps)

	task := buildDailyTask(path, true)
	if !task.IsCompleted {
		t.Fatal("task should be flagged completed")
	}
	// The completed-today view previews the current (next) step, not the
	// one just finished.
	if task.Step.ID != steps[1].ID {
		t.Fatalf("completed view step=%q, want current step %q", task.Step.ID, steps[1].ID)
	}
	if task.IsFirstTime {
		t.Fatal("path with completions is not first-time")
	}
}

func TestBuildDailyTaskExhaustedPathClampsToLast(t *testing.T) {
	path := newTestPath(t, types.ThinkingTypeFallacyDetection)
	path.CurrentStepIndex = path.TotalSteps + 5

	task := buildDailyTask(path, false)
	steps := []types.PathStep(path.Steps)
	if task.Step.ID != steps[len(steps)-1].ID {
		t.Fatalf("exhausted path should clamp to last step, got %q", task.Step.ID)
	}
	if task.NextMilestone != "完成整条学习路径" {
		t.Fatalf("milestone=%q", task.NextMilestone)
	}
}

func TestEndToEndFirstCompletion(t *testing.T) {
	path := newTestPath(t, types.ThinkingTypeFallacyDetection)
	steps := []types.PathStep(path.Steps)

	task := buildDailyTask(path, false)
	if task.Step.Type != types.StepTypeLearning || task.Step.Status != types.StepStatusAvailable {
		t.Fatalf("first daily task should be an available theory step, got %+v", task.Step)
	}

	idx, err := completeStepInList(steps, task.Step.ID, 88, 400, time.Now())
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	path.Steps = steps
	path.TotalTimeSpentSec += 400
	recomputeCounters(path)
	path.CurrentStepIndex = advanceCursor(idx, path.TotalSteps)

	if path.CurrentStepIndex != 1 {
		t.Fatalf("cursor=%d, want 1", path.CurrentStepIndex)
	}
	next := buildDailyTask(path, false)
	if next.Step.Type != types.StepTypePractice {
		t.Fatalf("next task type=%q, want practice", next.Step.Type)
	}
	wantPercent := int(float64(1)/float64(path.TotalSteps)*100 + 0.5)
	if path.ProgressPercent != wantPercent {
		t.Fatalf("progress=%d, want %d", path.ProgressPercent, wantPercent)
	}
}
