package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/clients/redis"
	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/repos"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

const (
	// masteryThreshold: a dimension counts as mastered once the current
	// level's completion reaches this percentage.
	masteryThreshold = 80.0
	// advanceThreshold / holdThreshold drive the start-level policy.
	advanceThreshold = 80.0
	holdThreshold    = 50.0

	defaultTargetLevel = types.MaxLevel

	genericPracticeMinutes = 10
)

type GeneratePathInput struct {
	UserID         uuid.UUID
	ThinkingTypeID string
	TargetLevel    int
	LearningStyle  string
}

type PathGenerationService interface {
	// GeneratePath materializes a curriculum for the user. The returned
	// path is not persisted; the caller owns the write.
	GeneratePath(ctx context.Context, input GeneratePathInput) (*types.LearningPath, error)
}

type pathGenerationService struct {
	db           *gorm.DB
	log          *logger.Logger
	userState    UserStateService
	theoryRepo   repos.TheoryContentRepo
	practiceRepo repos.PracticeContentRepo
	cache        redis.ContentCache
}

func NewPathGenerationService(
	db *gorm.DB,
	log *logger.Logger,
	userState UserStateService,
	theoryRepo repos.TheoryContentRepo,
	practiceRepo repos.PracticeContentRepo,
	cache redis.ContentCache,
) PathGenerationService {
	return &pathGenerationService{
		db:           db,
		log:          log.With("service", "PathGenerationService"),
		userState:    userState,
		theoryRepo:   theoryRepo,
		practiceRepo: practiceRepo,
		cache:        cache,
	}
}

func (s *pathGenerationService) GeneratePath(ctx context.Context, input GeneratePathInput) (*types.LearningPath, error) {
	if input.UserID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	if input.ThinkingTypeID != "" && !types.IsValidThinkingType(input.ThinkingTypeID) {
		return nil, fmt.Errorf("unknown thinking type %q", input.ThinkingTypeID)
	}
	targetLevel := input.TargetLevel
	if targetLevel < types.MinLevel || targetLevel > types.MaxLevel {
		targetLevel = defaultTargetLevel
	}

	state, err := s.userState.GetUserState(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user state: %w", err)
	}

	progressByType := make(map[string]*types.ThinkingProgress, len(state.ThinkingProgress))
	for _, p := range state.ThinkingProgress {
		progressByType[p.ThinkingTypeID] = p
	}

	dimensions := selectDimensions(progressByType, input.ThinkingTypeID)

	var steps []types.PathStep
	for _, dim := range dimensions {
		startLevel := startLevelFor(progressByType[dim])
		for level := startLevel; level <= targetLevel; level++ {
			group, err := s.emitGroup(ctx, dim, level)
			if err != nil {
				return nil, err
			}
			steps = append(steps, group...)
		}
	}

	wirePrerequisites(steps)
	computeUnlocks(steps)
	promoteAvailable(steps)

	style := input.LearningStyle
	if style == "" && state.Preferences != nil {
		style = state.Preferences.LearningStyle
	}
	adaptive := true
	if state.Preferences != nil {
		adaptive = state.Preferences.AdaptivePath
	}

	path := &types.LearningPath{
		UserID:               input.UserID,
		Status:               types.PathStatusActive,
		Steps:                datatypes.NewJSONSlice(steps),
		CurrentStepIndex:     0,
		CompletedSteps:       0,
		TotalSteps:           len(steps),
		ProgressPercent:      0,
		EstimatedMinutesLeft: sumEstimatedMinutes(steps),
		Metadata: datatypes.NewJSONType(types.PathMetadata{
			TargetThinkingTypes: dimensions,
			LearningStyle:       style,
			Adaptive:            adaptive,
			GeneratedAt:         time.Now(),
		}),
		Version: 1,
	}

	s.log.Info("Generated learning path",
		"user_id", input.UserID,
		"dimensions", dimensions,
		"steps", len(steps))
	return path, nil
}

// selectDimensions applies the selection policy: a pinned dimension wins;
// a user with no recorded progress gets all five in pedagogical order;
// otherwise the first not-yet-mastered dimension, restarting at the first
// when everything is mastered (keep practicing, never stall).
func selectDimensions(progressByType map[string]*types.ThinkingProgress, pinned string) []string {
	if pinned != "" {
		return []string{pinned}
	}
	if len(progressByType) == 0 {
		out := make([]string, len(types.OrderedThinkingTypes))
		copy(out, types.OrderedThinkingTypes)
		return out
	}
	for _, dim := range types.OrderedThinkingTypes {
		if !isMastered(progressByType[dim]) {
			return []string{dim}
		}
	}
	// All mastered: restart at the most foundational dimension.
	return []string{types.OrderedThinkingTypes[0]}
}

func isMastered(p *types.ThinkingProgress) bool {
	if p == nil {
		return false
	}
	return p.ProgressAtLevel(p.ClampedLevel()) >= masteryThreshold
}

// startLevelFor decides where to resume a dimension: under 50% stays put,
// over 80% advances one level (capped at 5), anything between holds.
func startLevelFor(p *types.ThinkingProgress) int {
	if p == nil {
		return types.MinLevel
	}
	level := p.ClampedLevel()
	progress := p.ProgressAtLevel(level)
	if progress > advanceThreshold && level < types.MaxLevel {
		return level + 1
	}
	return level
}

func (s *pathGenerationService) emitGroup(ctx context.Context, dim string, level int) ([]types.PathStep, error) {
	theory, err := s.lookupTheory(ctx, dim, level)
	if err != nil {
		return nil, fmt.Errorf("lookup theory content %s L%d: %w", dim, level, err)
	}
	if len(theory) == 0 {
		s.log.Warn("No published theory content, skipping theory step", "thinking_type", dim, "level", level)
	}
	practice, err := s.lookupPractice(ctx, dim, level)
	if err != nil {
		return nil, fmt.Errorf("lookup practice content %s L%d: %w", dim, level, err)
	}
	return buildGroupSteps(dim, level, theory, practice), nil
}

// buildGroupSteps produces the step group for one (dimension, level) pair
// in the fixed order theory, practice, assessment (level<5), reflection
// (level 3 and 5). Missing theory content is skipped; a missing practice
// pool is backfilled with one synthesized generic step.
func buildGroupSteps(dim string, level int, theory []*types.TheoryContent, practice []*types.PracticeContent) []types.PathStep {
	meta := types.MetaForThinkingType(dim)
	difficulty := types.DifficultyForLevel(level)
	var group []types.PathStep

	for i, unit := range theory {
		group = append(group, types.PathStep{
			ID:               fmt.Sprintf("%s-l%d-theory-%d", dim, level, i+1),
			Type:             types.StepTypeLearning,
			ThinkingTypeID:   dim,
			Level:            level,
			Title:            unit.Title,
			Description:      unit.Description,
			EstimatedMinutes: unit.EstimatedMinutes,
			Difficulty:       difficulty,
			ContentID:        unit.ID.String(),
			Status:           types.StepStatusLocked,
		})
	}

	if len(practice) == 0 {
		// Every level gets at least one practice opportunity.
		group = append(group, types.PathStep{
			ID:               fmt.Sprintf("%s-l%d-practice-1", dim, level),
			Type:             types.StepTypePractice,
			ThinkingTypeID:   dim,
			Level:            level,
			Title:            fmt.Sprintf("%s·等级%d专项练习", meta.Name, level),
			Description:      fmt.Sprintf("围绕%s的核心方法完成一组等级%d练习题", meta.Name, level),
			EstimatedMinutes: genericPracticeMinutes,
			Difficulty:       difficulty,
			Status:           types.StepStatusLocked,
		})
	} else {
		for i, unit := range practice {
			group = append(group, types.PathStep{
				ID:               fmt.Sprintf("%s-l%d-practice-%d", dim, level, i+1),
				Type:             types.StepTypePractice,
				ThinkingTypeID:   dim,
				Level:            level,
				Title:            unit.Title,
				Description:      unit.Description,
				EstimatedMinutes: unit.EstimatedMinutes,
				Difficulty:       difficulty,
				ContentID:        unit.ID.String(),
				Status:           types.StepStatusLocked,
			})
		}
	}

	if level < types.MaxLevel {
		group = append(group, types.PathStep{
			ID:               fmt.Sprintf("%s-l%d-assessment", dim, level),
			Type:             types.StepTypeAssessment,
			ThinkingTypeID:   dim,
			Level:            level,
			Title:            fmt.Sprintf("%s·等级%d能力评估", meta.Name, level),
			Description:      fmt.Sprintf("检验等级%d的掌握程度，通过后进入下一等级", level),
			EstimatedMinutes: 15,
			Difficulty:       difficulty,
			Status:           types.StepStatusLocked,
		})
	}

	if level == 3 || level == types.MaxLevel {
		group = append(group, types.PathStep{
			ID:               fmt.Sprintf("%s-l%d-reflection", dim, level),
			Type:             types.StepTypeReflection,
			ThinkingTypeID:   dim,
			Level:            level,
			Title:            fmt.Sprintf("%s·阶段反思", meta.Name),
			Description:      "回顾这一阶段的思考过程，总结可迁移的方法",
			EstimatedMinutes: 10,
			Difficulty:       difficulty,
			Status:           types.StepStatusLocked,
		})
	}

	return group
}

func (s *pathGenerationService) lookupTheory(ctx context.Context, dim string, level int) ([]*types.TheoryContent, error) {
	key := fmt.Sprintf("content:theory:%s:%d", dim, level)
	if s.cache != nil {
		var cached []*types.TheoryContent
		if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
			s.log.Warn("Content cache read failed", "key", key, "error", err)
		} else if hit {
			return cached, nil
		}
	}
	rows, err := s.theoryRepo.GetPublishedByTypeAndLevel(ctx, nil, dim, level)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rows); err != nil {
			s.log.Warn("Content cache write failed", "key", key, "error", err)
		}
	}
	return rows, nil
}

func (s *pathGenerationService) lookupPractice(ctx context.Context, dim string, level int) ([]*types.PracticeContent, error) {
	key := fmt.Sprintf("content:practice:%s:%d", dim, level)
	if s.cache != nil {
		var cached []*types.PracticeContent
		if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
			s.log.Warn("Content cache read failed", "key", key, "error", err)
		} else if hit {
			return cached, nil
		}
	}
	rows, err := s.practiceRepo.GetByTypeAndLevel(ctx, nil, dim, level)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rows); err != nil {
			s.log.Warn("Content cache write failed", "key", key, "error", err)
		}
	}
	return rows, nil
}

// wirePrerequisites runs once over the fully emitted step list.
//
// Within a (dimension, level) group: practice requires the group's theory
// steps; assessment requires every learning and practice step; reflection
// requires the assessment, falling back to the learning and practice steps
// when the level has none. Across levels of one dimension, the theory steps
// of level L require the closing step of level L-1: reflection if present,
// else assessment, else the group's last emitted step.
func wirePrerequisites(steps []types.PathStep) {
	type groupKey struct {
		dim   string
		level int
	}

	groups := make(map[groupKey][]int)
	order := make([]groupKey, 0)
	for i := range steps {
		key := groupKey{steps[i].ThinkingTypeID, steps[i].Level}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	for _, key := range order {
		idxs := groups[key]

		var learningIDs, practiceIDs []string
		assessmentID := ""
		reflectionIdx := -1
		for _, i := range idxs {
			switch steps[i].Type {
			case types.StepTypeLearning:
				learningIDs = append(learningIDs, steps[i].ID)
			case types.StepTypePractice:
				practiceIDs = append(practiceIDs, steps[i].ID)
			case types.StepTypeAssessment:
				assessmentID = steps[i].ID
			case types.StepTypeReflection:
				reflectionIdx = i
			}
		}

		for _, i := range idxs {
			switch steps[i].Type {
			case types.StepTypePractice:
				steps[i].Prerequisites = append(steps[i].Prerequisites, learningIDs...)
			case types.StepTypeAssessment:
				steps[i].Prerequisites = append(steps[i].Prerequisites, learningIDs...)
				steps[i].Prerequisites = append(steps[i].Prerequisites, practiceIDs...)
			}
		}
		if reflectionIdx >= 0 {
			if assessmentID != "" {
				steps[reflectionIdx].Prerequisites = append(steps[reflectionIdx].Prerequisites, assessmentID)
			} else {
				steps[reflectionIdx].Prerequisites = append(steps[reflectionIdx].Prerequisites, learningIDs...)
				steps[reflectionIdx].Prerequisites = append(steps[reflectionIdx].Prerequisites, practiceIDs...)
			}
		}

		// Cross-level edge: this level's theory steps wait on the previous
		// level's closing step.
		prevKey := groupKey{key.dim, key.level - 1}
		prevIdxs, ok := groups[prevKey]
		if !ok || len(prevIdxs) == 0 {
			continue
		}
		closing := closingStepID(steps, prevIdxs)
		if closing == "" {
			continue
		}
		for _, i := range idxs {
			if steps[i].Type == types.StepTypeLearning {
				steps[i].Prerequisites = append(steps[i].Prerequisites, closing)
			}
		}
	}
}

// closingStepID picks a level group's closing step: reflection, else
// assessment, else the last emitted step.
func closingStepID(steps []types.PathStep, idxs []int) string {
	assessmentID := ""
	for _, i := range idxs {
		switch steps[i].Type {
		case types.StepTypeReflection:
			return steps[i].ID
		case types.StepTypeAssessment:
			assessmentID = steps[i].ID
		}
	}
	if assessmentID != "" {
		return assessmentID
	}
	if len(idxs) > 0 {
		return steps[idxs[len(idxs)-1]].ID
	}
	return ""
}

// computeUnlocks builds the exact inverse of Prerequisites in one pass.
func computeUnlocks(steps []types.PathStep) {
	unlockedBy := make(map[string][]string)
	for i := range steps {
		for _, pre := range steps[i].Prerequisites {
			unlockedBy[pre] = append(unlockedBy[pre], steps[i].ID)
		}
	}
	for i := range steps {
		steps[i].Unlocks = unlockedBy[steps[i].ID]
	}
}

// promoteAvailable flips steps with no prerequisites from locked to
// available. Everything else stays locked; the completion flow advances the
// cursor linearly and never flips arbitrary steps.
func promoteAvailable(steps []types.PathStep) {
	for i := range steps {
		if len(steps[i].Prerequisites) == 0 {
			steps[i].Status = types.StepStatusAvailable
		}
	}
}

func sumEstimatedMinutes(steps []types.PathStep) int {
	total := 0
	for i := range steps {
		if !steps[i].Completed {
			total += steps[i].EstimatedMinutes
		}
	}
	return total
}
