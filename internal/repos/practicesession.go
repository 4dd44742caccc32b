package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

type PracticeSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.PracticeSession) error
	GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.PracticeSession, error)
	// CountCompletedInRange counts sessions with score >= minScore whose
	// completed_at falls in [from, to).
	CountCompletedInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time, minScore int) (int64, error)
}

type practiceSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPracticeSessionRepo(db *gorm.DB, baseLog *logger.Logger) PracticeSessionRepo {
	return &practiceSessionRepo{db: db, log: baseLog.With("repo", "PracticeSessionRepo")}
}

func (r *practiceSessionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.PracticeSession) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Create(row).Error
}

func (r *practiceSessionRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.PracticeSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PracticeSession
	if userID == uuid.Nil {
		return results, nil
	}
	if limit <= 0 {
		limit = 50
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *practiceSessionRepo) CountCompletedInRange(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time, minScore int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	err := transaction.WithContext(ctx).
		Model(&types.PracticeSession{}).
		Where("user_id = ? AND completed_at >= ? AND completed_at < ? AND score >= ?", userID, from, to, minScore).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
