package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

type ThinkingProgressRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ThinkingProgress, error)
	GetByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, thinkingTypeID string) (*types.ThinkingProgress, error)
}

type thinkingProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewThinkingProgressRepo(db *gorm.DB, baseLog *logger.Logger) ThinkingProgressRepo {
	return &thinkingProgressRepo{db: db, log: baseLog.With("repo", "ThinkingProgressRepo")}
}

func (r *thinkingProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ThinkingProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ThinkingProgress
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *thinkingProgressRepo) GetByUserAndType(ctx context.Context, tx *gorm.DB, userID uuid.UUID, thinkingTypeID string) (*types.ThinkingProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.ThinkingProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND thinking_type_id = ?", userID, thinkingTypeID).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
