package services

import (
	"testing"

	"github.com/mindforge/thinkpath-backend/internal/types"
)

func TestPhaseForLevel(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{1, "基础巩固"},
		{2, "基础巩固"},
		{3, "能力提升"},
		{4, "深度思考"},
		{5, "高级挑战"},
	}
	for _, tc := range cases {
		if got := phaseForLevel(tc.level); got != tc.want {
			t.Fatalf("phaseForLevel(%d)=%q, want %q", tc.level, got, tc.want)
		}
	}
}

func TestRationaleFallbackByLevel(t *testing.T) {
	for level := 1; level <= 5; level++ {
		step := &types.PathStep{Level: level}
		why, learn := rationaleFor(step, false)
		if why == "" || learn == "" {
			t.Fatalf("level %d fallback rationale is empty", level)
		}
		if why != rationaleByLevel[level].why {
			t.Fatalf("level %d why=%q, want table entry", level, why)
		}
	}
}

func TestRationaleFirstTimeWins(t *testing.T) {
	step := &types.PathStep{Level: 4}
	why, learn := rationaleFor(step, true)
	if why != firstTimeRationale.why || learn != firstTimeRationale.learn {
		t.Fatalf("first-time rationale=(%q,%q), want the first-time copy", why, learn)
	}
}

func TestRationaleStepCopyWins(t *testing.T) {
	step := &types.PathStep{Level: 2, Rationale: "custom why", Outcomes: "custom learn"}
	why, learn := rationaleFor(step, false)
	if why != "custom why" || learn != "custom learn" {
		t.Fatalf("step-provided copy should win, got (%q,%q)", why, learn)
	}
}

func TestLevelProgress(t *testing.T) {
	steps := []types.PathStep{
		{Level: 1, Completed: true},
		{Level: 1, Completed: true},
		{Level: 1},
		{Level: 1},
		{Level: 2, Completed: true},
	}
	if got := levelProgress(steps, 1); got != 0.5 {
		t.Fatalf("levelProgress(level 1)=%v, want 0.5", got)
	}
	if got := levelProgress(steps, 2); got != 1.0 {
		t.Fatalf("levelProgress(level 2)=%v, want 1.0", got)
	}
	if got := levelProgress(steps, 3); got != 0 {
		t.Fatalf("levelProgress(level 3)=%v, want 0", got)
	}
}

func TestNextMilestone(t *testing.T) {
	steps := []types.PathStep{
		{ID: "a", Level: 1},
		{ID: "b", Level: 1},
		{ID: "c", Level: 2},
	}

	if got := nextMilestone(steps, 0); got != "完成等级1，进入等级2" {
		t.Fatalf("nextMilestone at index 0 = %q", got)
	}
	if got := nextMilestone(steps, 2); got != "完成整条学习路径" {
		t.Fatalf("nextMilestone on last level = %q", got)
	}
	if got := nextMilestone(steps, 99); got != "完成整条学习路径" {
		t.Fatalf("nextMilestone out of range = %q", got)
	}
}
