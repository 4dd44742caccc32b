package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

// ErrVersionConflict means a concurrent writer updated the path between our
// read and write. Callers surface it as a conflict, never merge silently.
var ErrVersionConflict = errors.New("learning path version conflict")

type LearningPathRepo interface {
	FindActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.LearningPath, error)
	Create(ctx context.Context, tx *gorm.DB, row *types.LearningPath) error
	// UpdateChecked rewrites the step blob and counters guarded by the
	// version column; returns ErrVersionConflict when the row moved on.
	UpdateChecked(ctx context.Context, tx *gorm.DB, row *types.LearningPath) error
	AbandonActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type learningPathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPathRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathRepo {
	return &learningPathRepo{db: db, log: baseLog.With("repo", "LearningPathRepo")}
}

func (r *learningPathRepo) FindActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.LearningPath
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, types.PathStatusActive).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *learningPathRepo) Create(ctx context.Context, tx *gorm.DB, row *types.LearningPath) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Create(row).Error
}

func (r *learningPathRepo) UpdateChecked(ctx context.Context, tx *gorm.DB, row *types.LearningPath) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	currentVersion := row.Version
	res := transaction.WithContext(ctx).
		Model(&types.LearningPath{}).
		Where("id = ? AND version = ?", row.ID, currentVersion).
		Updates(map[string]interface{}{
			"steps":                  row.Steps,
			"status":                 row.Status,
			"current_step_index":     row.CurrentStepIndex,
			"completed_steps":        row.CompletedSteps,
			"total_steps":            row.TotalSteps,
			"progress_percent":       row.ProgressPercent,
			"total_time_spent_sec":   row.TotalTimeSpentSec,
			"estimated_minutes_left": row.EstimatedMinutesLeft,
			"version":                currentVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	row.Version = currentVersion + 1
	return nil
}

func (r *learningPathRepo) AbandonActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.LearningPath{}).
		Where("user_id = ? AND status = ?", userID, types.PathStatusActive).
		Update("status", types.PathStatusAbandoned).Error
}
