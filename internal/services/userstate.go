package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/repos"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

// streakScanWindow bounds how far back the streak scan looks.
const streakScanWindow = 90

type UserStateService interface {
	// GetUserState aggregates skill progress, theory progress, preferences
	// and practice stats. Read-only except for one documented upsert: a
	// default preference row is created on first access.
	GetUserState(ctx context.Context, userID uuid.UUID) (*types.UserState, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, patch PreferencePatch) (*types.UserPreference, error)
}

type PreferencePatch struct {
	LearningStyle    *string `json:"learning_style,omitempty"`
	DailyGoalMinutes *int    `json:"daily_goal_minutes,omitempty"`
	AdaptivePath     *bool   `json:"adaptive_path,omitempty"`
	AutoUnlock       *bool   `json:"auto_unlock,omitempty"`
}

type userStateService struct {
	db             *gorm.DB
	log            *logger.Logger
	thinkingRepo   repos.ThinkingProgressRepo
	theoryRepo     repos.TheoryProgressRepo
	preferenceRepo repos.PreferenceRepo
	streakRepo     repos.StreakLogRepo
	sessionRepo    repos.PracticeSessionRepo
}

func NewUserStateService(
	db *gorm.DB,
	log *logger.Logger,
	thinkingRepo repos.ThinkingProgressRepo,
	theoryRepo repos.TheoryProgressRepo,
	preferenceRepo repos.PreferenceRepo,
	streakRepo repos.StreakLogRepo,
	sessionRepo repos.PracticeSessionRepo,
) UserStateService {
	return &userStateService{
		db:             db,
		log:            log.With("service", "UserStateService"),
		thinkingRepo:   thinkingRepo,
		theoryRepo:     theoryRepo,
		preferenceRepo: preferenceRepo,
		streakRepo:     streakRepo,
		sessionRepo:    sessionRepo,
	}
}

func (s *userStateService) GetUserState(ctx context.Context, userID uuid.UUID) (*types.UserState, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}

	var (
		thinking []*types.ThinkingProgress
		theory   []*types.TheoryProgress
		prefs    *types.UserPreference
		streaks  []*types.StreakLog
		sessions []*types.PracticeSession
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.thinkingRepo.GetByUserID(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("load thinking progress: %w", err)
		}
		thinking = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.theoryRepo.GetByUserID(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("load theory progress: %w", err)
		}
		theory = rows
		return nil
	})
	g.Go(func() error {
		row, err := s.preferenceRepo.EnsureDefault(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("ensure preferences: %w", err)
		}
		prefs = row
		return nil
	})
	g.Go(func() error {
		rows, err := s.streakRepo.GetRecentByUserID(gctx, nil, userID, streakScanWindow)
		if err != nil {
			return fmt.Errorf("load streak log: %w", err)
		}
		streaks = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.sessionRepo.GetRecentByUserID(gctx, nil, userID, 50)
		if err != nil {
			return fmt.Errorf("load practice sessions: %w", err)
		}
		sessions = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	flags := make([]bool, 0, len(streaks))
	for _, row := range streaks {
		flags = append(flags, row.Completed)
	}
	current, longest := computeStreaks(flags)

	return &types.UserState{
		UserID:           userID.String(),
		ThinkingProgress: thinking,
		TheoryProgress:   theory,
		Preferences:      prefs,
		Stats:            computeStats(sessions, current, longest),
	}, nil
}

// computeStreaks walks newest-first completion flags. The current streak is
// the leading run of completed days; a not-yet-completed newest day ends it
// at zero, no grace period. The longest streak is the longest run anywhere
// in the window.
func computeStreaks(newestFirst []bool) (current, longest int) {
	leading := true
	run := 0
	for _, completed := range newestFirst {
		if !completed {
			leading = false
			run = 0
			continue
		}
		run++
		if leading {
			current = run
		}
		if run > longest {
			longest = run
		}
	}
	return current, longest
}

func computeStats(sessions []*types.PracticeSession, current, longest int) types.UserStats {
	totalSeconds := 0
	for _, sess := range sessions {
		totalSeconds += sess.DurationSeconds
	}
	avg := 0
	if len(sessions) > 0 {
		avg = totalSeconds / len(sessions) / 60
	}
	return types.UserStats{
		TotalMinutes:      totalSeconds / 60,
		AvgSessionMinutes: avg,
		CurrentStreak:     current,
		LongestStreak:     longest,
	}
}

func (s *userStateService) UpdatePreferences(ctx context.Context, userID uuid.UUID, patch PreferencePatch) (*types.UserPreference, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}

	var updated *types.UserPreference
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.preferenceRepo.EnsureDefault(ctx, tx, userID)
		if err != nil {
			return err
		}
		if patch.LearningStyle != nil {
			row.LearningStyle = *patch.LearningStyle
		}
		if patch.DailyGoalMinutes != nil && *patch.DailyGoalMinutes > 0 {
			row.DailyGoalMinutes = *patch.DailyGoalMinutes
		}
		if patch.AdaptivePath != nil {
			row.AdaptivePath = *patch.AdaptivePath
		}
		if patch.AutoUnlock != nil {
			row.AutoUnlock = *patch.AutoUnlock
		}
		if err := s.preferenceRepo.Update(ctx, tx, row); err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		s.log.Warn("UpdatePreferences transaction error", "error", err)
		return nil, err
	}
	return updated, nil
}
