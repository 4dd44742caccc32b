package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

type StreakLogRepo interface {
	// GetRecentByUserID returns up to limit rows ordered newest-first.
	GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.StreakLog, error)
	// UpsertForDate marks the given calendar day, accumulating minutes.
	UpsertForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, completed bool, minutes int) error
}

type streakLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStreakLogRepo(db *gorm.DB, baseLog *logger.Logger) StreakLogRepo {
	return &streakLogRepo{db: db, log: baseLog.With("repo", "StreakLogRepo")}
}

func (r *streakLogRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.StreakLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.StreakLog
	if userID == uuid.Nil {
		return results, nil
	}
	if limit <= 0 {
		limit = 30
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *streakLogRepo) UpsertForDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, completed bool, minutes int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	var row types.StreakLog
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		First(&row).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		row = types.StreakLog{UserID: userID, Date: day, Completed: completed, Minutes: minutes}
		return transaction.WithContext(ctx).Create(&row).Error
	}

	row.Completed = row.Completed || completed
	row.Minutes += minutes
	return transaction.WithContext(ctx).Save(&row).Error
}
