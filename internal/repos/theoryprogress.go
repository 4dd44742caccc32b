package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

type TheoryProgressRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.TheoryProgress, error)
}

type theoryProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTheoryProgressRepo(db *gorm.DB, baseLog *logger.Logger) TheoryProgressRepo {
	return &theoryProgressRepo{db: db, log: baseLog.With("repo", "TheoryProgressRepo")}
}

func (r *theoryProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.TheoryProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TheoryProgress
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
