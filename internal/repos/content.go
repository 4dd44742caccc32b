package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

// Content repos are the read-only window onto the catalog the admin side
// maintains. Path generation is the only consumer.

type TheoryContentRepo interface {
	GetPublishedByTypeAndLevel(ctx context.Context, tx *gorm.DB, thinkingTypeID string, level int) ([]*types.TheoryContent, error)
}

type PracticeContentRepo interface {
	GetByTypeAndLevel(ctx context.Context, tx *gorm.DB, thinkingTypeID string, level int) ([]*types.PracticeContent, error)
}

type theoryContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTheoryContentRepo(db *gorm.DB, baseLog *logger.Logger) TheoryContentRepo {
	return &theoryContentRepo{db: db, log: baseLog.With("repo", "TheoryContentRepo")}
}

func (r *theoryContentRepo) GetPublishedByTypeAndLevel(ctx context.Context, tx *gorm.DB, thinkingTypeID string, level int) ([]*types.TheoryContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TheoryContent
	if err := transaction.WithContext(ctx).
		Where("thinking_type_id = ? AND level = ? AND published = ?", thinkingTypeID, level, true).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type practiceContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPracticeContentRepo(db *gorm.DB, baseLog *logger.Logger) PracticeContentRepo {
	return &practiceContentRepo{db: db, log: baseLog.With("repo", "PracticeContentRepo")}
}

func (r *practiceContentRepo) GetByTypeAndLevel(ctx context.Context, tx *gorm.DB, thinkingTypeID string, level int) ([]*types.PracticeContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PracticeContent
	if err := transaction.WithContext(ctx).
		Where("thinking_type_id = ? AND level = ?", thinkingTypeID, level).
		Order("sort_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
