package services

import (
	"testing"

	"github.com/mindforge/thinkpath-backend/internal/types"
)

func TestComputeStreaks(t *testing.T) {
	cases := []struct {
		name        string
		newestFirst []bool
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "empty_log",
			newestFirst: nil,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "trailing_run_then_gap",
			newestFirst: []bool{true, true, false, true},
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "today_not_done_no_grace",
			newestFirst: []bool{false, true, true},
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name:        "all_completed",
			newestFirst: []bool{true, true, true, true},
			wantCurrent: 4,
			wantLongest: 4,
		},
		{
			name:        "longest_run_is_older",
			newestFirst: []bool{true, false, true, true, true},
			wantCurrent: 1,
			wantLongest: 3,
		},
		{
			name:        "all_gaps",
			newestFirst: []bool{false, false, false},
			wantCurrent: 0,
			wantLongest: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current, longest := computeStreaks(tc.newestFirst)
			if current != tc.wantCurrent {
				t.Fatalf("computeStreaks(%v) current=%d, want %d", tc.newestFirst, current, tc.wantCurrent)
			}
			if longest != tc.wantLongest {
				t.Fatalf("computeStreaks(%v) longest=%d, want %d", tc.newestFirst, longest, tc.wantLongest)
			}
		})
	}
}

func TestComputeStats(t *testing.T) {
	sessions := []*types.PracticeSession{
		{DurationSeconds: 600},
		{DurationSeconds: 300},
		{DurationSeconds: 900},
	}
	stats := computeStats(sessions, 2, 5)

	if stats.TotalMinutes != 30 {
		t.Fatalf("TotalMinutes=%d, want 30", stats.TotalMinutes)
	}
	if stats.AvgSessionMinutes != 10 {
		t.Fatalf("AvgSessionMinutes=%d, want 10", stats.AvgSessionMinutes)
	}
	if stats.CurrentStreak != 2 || stats.LongestStreak != 5 {
		t.Fatalf("streaks=(%d,%d), want (2,5)", stats.CurrentStreak, stats.LongestStreak)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := computeStats(nil, 0, 0)
	if stats.TotalMinutes != 0 || stats.AvgSessionMinutes != 0 {
		t.Fatalf("empty sessions should produce zero stats, got %+v", stats)
	}
}
