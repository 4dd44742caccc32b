package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindforge/thinkpath-backend/internal/logger"
	"github.com/mindforge/thinkpath-backend/internal/types"
)

type PreferenceRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPreference, error)
	// EnsureDefault returns the user's preference row, inserting the default
	// one when none exists. This is the single write inside the otherwise
	// read-only user-state aggregation.
	EnsureDefault(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPreference, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.UserPreference) error
}

type preferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) PreferenceRepo {
	return &preferenceRepo{db: db, log: baseLog.With("repo", "PreferenceRepo")}
}

func (r *preferenceRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var row types.UserPreference
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *preferenceRepo) EnsureDefault(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserPreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	row := types.DefaultPreference(userID)
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *preferenceRepo) Update(ctx context.Context, tx *gorm.DB, row *types.UserPreference) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Save(row).Error
}
