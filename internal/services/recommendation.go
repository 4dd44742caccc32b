package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/repos"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

// qualifyingScore: a practice session at or above this score satisfies the
// day's obligation and marks the streak day completed.
const qualifyingScore = 60

type CompleteTaskInput struct {
	StepID           string     `json:"stepId"`
	QuestionID       *uuid.UUID `json:"questionId,omitempty"`
	Score            int        `json:"score"`
	TimeSpentSeconds int        `json:"timeSpent"`
}

type RecommendationService interface {
	// GetDailyTask resolves (or lazily creates) the user's active path and
	// derives the single recommended task for today.
	GetDailyTask(ctx context.Context, userID uuid.UUID) (*types.DailyTask, error)
	// CompleteTask marks a step done and advances the cursor one slot.
	// Runs as a single transaction guarded by the path version.
	CompleteTask(ctx context.Context, userID uuid.UUID, input CompleteTaskInput) (*types.CompleteTaskResult, error)
	// GetOptionalPractices suggests supplementary practices outside the
	// locked graph, one per dimension not just practiced.
	GetOptionalPractices(ctx context.Context, userID uuid.UUID, excludeThinkingTypeID string) ([]*types.OptionalPractice, error)
	GetActivePath(ctx context.Context, userID uuid.UUID) (*types.LearningPath, error)
	// RegeneratePath abandons the active path and generates a fresh one.
	RegeneratePath(ctx context.Context, userID uuid.UUID, input GeneratePathInput) (*types.LearningPath, error)
}

type recommendationService struct {
	db           *gorm.DB
	log          *logger.Logger
	pathGen      PathGenerationService
	pathRepo     repos.LearningPathRepo
	sessionRepo  repos.PracticeSessionRepo
	thinkingRepo repos.ThinkingProgressRepo
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	pathGen PathGenerationService,
	pathRepo repos.LearningPathRepo,
	sessionRepo repos.PracticeSessionRepo,
	thinkingRepo repos.ThinkingProgressRepo,
) RecommendationService {
	return &recommendationService{
		db:           db,
		log:          log.With("service", "RecommendationService"),
		pathGen:      pathGen,
		pathRepo:     pathRepo,
		sessionRepo:  sessionRepo,
		thinkingRepo: thinkingRepo,
	}
}

func (s *recommendationService) GetDailyTask(ctx context.Context, userID uuid.UUID) (*types.DailyTask, error) {
	path, err := s.resolveOrCreatePath(ctx, userID)
	if err != nil {
		return nil, err
	}

	completedToday, err := s.hasQualifyingSessionToday(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check today's sessions: %w", err)
	}

	return buildDailyTask(path, completedToday), nil
}

func (s *recommendationService) resolveOrCreatePath(ctx context.Context, userID uuid.UUID) (*types.LearningPath, error) {
	path, err := s.pathRepo.FindActiveByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("find active path: %w", err)
	}
	if path != nil {
		return path, nil
	}

	generated, err := s.pathGen.GeneratePath(ctx, GeneratePathInput{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("generate path: %w", err)
	}
	if err := s.pathRepo.Create(ctx, nil, generated); err != nil {
		// A concurrent first request may have won the race; the unique
		// active-path index turns the duplicate into an error we recover
		// from by re-reading.
		s.log.Warn("Path create failed, re-reading active path", "user_id", userID, "error", err)
		existing, findErr := s.pathRepo.FindActiveByUserID(ctx, nil, userID)
		if findErr != nil {
			return nil, fmt.Errorf("create path: %w", err)
		}
		if existing == nil {
			return nil, fmt.Errorf("create path: %w", err)
		}
		return existing, nil
	}
	return generated, nil
}

func (s *recommendationService) hasQualifyingSessionToday(ctx context.Context, userID uuid.UUID) (bool, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := s.sessionRepo.CountCompletedInRange(ctx, nil, userID, midnight, midnight.AddDate(0, 0, 1), qualifyingScore)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// buildDailyTask derives the presentation view from path state. When the
// day's obligation is already met the view still describes the current
// step: a preview of what comes next, not a recap of what was just done.
func buildDailyTask(path *types.LearningPath, completedToday bool) *types.DailyTask {
	steps := []types.PathStep(path.Steps)
	idx := clampIndex(path.CurrentStepIndex, len(steps))

	task := &types.DailyTask{
		PathID:      path.ID.String(),
		IsCompleted: completedToday,
		IsFirstTime: path.CompletedSteps == 0,
	}
	if idx < 0 {
		task.NextMilestone = "完成整条学习路径"
		return task
	}

	step := steps[idx]
	task.Step = &step
	task.CurrentPhase = phaseForLevel(step.Level)
	task.CurrentPhaseProgress = levelProgress(steps, step.Level)
	task.WhyThisTask, task.WhatYouWillLearn = rationaleFor(&step, task.IsFirstTime)
	task.NextMilestone = nextMilestone(steps, idx)
	task.MilestoneProgress = levelProgress(steps, step.Level)
	return task
}

func clampIndex(idx, length int) int {
	if length == 0 {
		return -1
	}
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}

func (s *recommendationService) CompleteTask(ctx context.Context, userID uuid.UUID, input CompleteTaskInput) (*types.CompleteTaskResult, error) {
	if input.StepID == "" {
		return nil, fmt.Errorf("step id required")
	}

	var result *types.CompleteTaskResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		path, err := s.pathRepo.FindActiveByUserID(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("find active path: %w", err)
		}
		if path == nil {
			return ErrNoActivePath
		}

		steps := []types.PathStep(path.Steps)
		idx, err := completeStepInList(steps, input.StepID, input.Score, input.TimeSpentSeconds, time.Now())
		if err != nil {
			return err
		}

		path.Steps = steps
		path.TotalTimeSpentSec += input.TimeSpentSeconds
		recomputeCounters(path)
		path.CurrentStepIndex = advanceCursor(idx, path.TotalSteps)

		if err := s.pathRepo.UpdateChecked(ctx, tx, path); err != nil {
			if errors.Is(err, repos.ErrVersionConflict) {
				return ErrPathConflict
			}
			return fmt.Errorf("persist path: %w", err)
		}

		res := &types.CompleteTaskResult{
			Success:        true,
			NewProgress:    path.ProgressPercent,
			CompletedSteps: path.CompletedSteps,
			TotalSteps:     path.TotalSteps,
		}
		if next := clampIndex(path.CurrentStepIndex, len(steps)); next >= 0 {
			nextStep := steps[next]
			res.NextStep = &nextStep
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Task completed",
		"user_id", userID,
		"step_id", input.StepID,
		"progress", result.NewProgress)
	return result, nil
}

// completeStepInList locates the step by id (linear scan over the blob) and
// stamps completion. A stale or foreign step id is a hard error.
func completeStepInList(steps []types.PathStep, stepID string, score, timeSpentSec int, now time.Time) (int, error) {
	for i := range steps {
		if steps[i].ID != stepID {
			continue
		}
		steps[i].Completed = true
		steps[i].Status = types.StepStatusCompleted
		steps[i].ProgressPercent = 100
		steps[i].Score = &score
		steps[i].TimeSpentSeconds += timeSpentSec
		completedAt := now
		steps[i].CompletedAt = &completedAt
		return i, nil
	}
	return -1, ErrStepNotFound
}

// advanceCursor always moves one slot past the completed step, clamped to
// the last index. The prerequisite graph is informational here: linear
// progression is the product behavior, the lock metadata does not gate the
// cursor.
func advanceCursor(completedIndex, totalSteps int) int {
	next := completedIndex + 1
	if next > totalSteps-1 {
		next = totalSteps - 1
	}
	if next < 0 {
		next = 0
	}
	return next
}

func recomputeCounters(path *types.LearningPath) {
	steps := []types.PathStep(path.Steps)
	done := 0
	for i := range steps {
		if steps[i].Completed {
			done++
		}
	}
	path.CompletedSteps = done
	path.TotalSteps = len(steps)
	if path.TotalSteps > 0 {
		path.ProgressPercent = int(math.Round(float64(done) / float64(path.TotalSteps) * 100))
	} else {
		path.ProgressPercent = 0
	}
	path.EstimatedMinutesLeft = sumEstimatedMinutes(steps)
}

func (s *recommendationService) GetOptionalPractices(ctx context.Context, userID uuid.UUID, excludeThinkingTypeID string) ([]*types.OptionalPractice, error) {
	progress, err := s.thinkingRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load thinking progress: %w", err)
	}
	progressByType := make(map[string]*types.ThinkingProgress, len(progress))
	for _, p := range progress {
		progressByType[p.ThinkingTypeID] = p
	}

	out := make([]*types.OptionalPractice, 0, len(types.OrderedThinkingTypes))
	for _, dim := range types.OrderedThinkingTypes {
		if dim == excludeThinkingTypeID {
			continue
		}
		meta := types.MetaForThinkingType(dim)
		card := &types.OptionalPractice{
			ThinkingTypeID: dim,
			Title:          fmt.Sprintf("%s随练", meta.Name),
			Description:    fmt.Sprintf("不影响主路径的%s补充练习", meta.Name),
			Icon:           meta.Icon,
			Color:          meta.Color,
		}
		if p, ok := progressByType[dim]; ok {
			level := p.ClampedLevel()
			card.Difficulty = types.DifficultyForLevel(level)
			card.Reason = fmt.Sprintf("继续等级%d的练习", level)
		} else {
			card.Difficulty = types.DifficultyBeginner
			card.Reason = "开启一个新的思维维度"
		}
		out = append(out, card)
	}
	return out, nil
}

func (s *recommendationService) GetActivePath(ctx context.Context, userID uuid.UUID) (*types.LearningPath, error) {
	path, err := s.pathRepo.FindActiveByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("find active path: %w", err)
	}
	if path == nil {
		return nil, ErrNoActivePath
	}
	return path, nil
}

func (s *recommendationService) RegeneratePath(ctx context.Context, userID uuid.UUID, input GeneratePathInput) (*types.LearningPath, error) {
	input.UserID = userID
	generated, err := s.pathGen.GeneratePath(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("generate path: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.pathRepo.AbandonActiveByUserID(ctx, tx, userID); err != nil {
			return fmt.Errorf("abandon active path: %w", err)
		}
		if err := s.pathRepo.Create(ctx, tx, generated); err != nil {
			return fmt.Errorf("create path: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return generated, nil
}
