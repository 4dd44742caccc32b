package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/repos"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

type RecordSessionInput struct {
	ThinkingTypeID  string     `json:"thinking_type_id"`
	QuestionID      *uuid.UUID `json:"question_id,omitempty"`
	Score           int        `json:"score"`
	DurationSeconds int        `json:"duration_seconds"`
}

type PracticeSessionService interface {
	// RecordSession writes the session row and upserts today's streak-log
	// entry in one transaction. The streak day flips completed only when
	// the score qualifies.
	RecordSession(ctx context.Context, userID uuid.UUID, input RecordSessionInput) (*types.PracticeSession, error)
}

type practiceSessionService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.PracticeSessionRepo
	streakRepo  repos.StreakLogRepo
}

func NewPracticeSessionService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.PracticeSessionRepo,
	streakRepo repos.StreakLogRepo,
) PracticeSessionService {
	return &practiceSessionService{
		db:          db,
		log:         log.With("service", "PracticeSessionService"),
		sessionRepo: sessionRepo,
		streakRepo:  streakRepo,
	}
}

func (s *practiceSessionService) RecordSession(ctx context.Context, userID uuid.UUID, input RecordSessionInput) (*types.PracticeSession, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	if !types.IsValidThinkingType(input.ThinkingTypeID) {
		return nil, fmt.Errorf("unknown thinking type %q", input.ThinkingTypeID)
	}
	if input.Score < 0 || input.Score > 100 {
		return nil, fmt.Errorf("score out of range: %d", input.Score)
	}

	now := time.Now()
	session := &types.PracticeSession{
		UserID:          userID,
		ThinkingTypeID:  input.ThinkingTypeID,
		QuestionID:      input.QuestionID,
		Score:           input.Score,
		DurationSeconds: input.DurationSeconds,
		CompletedAt:     now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.sessionRepo.Create(ctx, tx, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		qualified := input.Score >= qualifyingScore
		minutes := input.DurationSeconds / 60
		if err := s.streakRepo.UpsertForDate(ctx, tx, userID, now, qualified, minutes); err != nil {
			return fmt.Errorf("upsert streak day: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("RecordSession transaction error", "user_id", userID, "error", err)
		return nil, err
	}
	return session, nil
}
