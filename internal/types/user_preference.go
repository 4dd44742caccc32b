package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LearningStyleVisual      = "visual"
	LearningStyleReading     = "reading"
	LearningStylePractice    = "practice"
	LearningStyleMixed       = "mixed"
)

type UserPreference struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User             *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	LearningStyle    string         `gorm:"column:learning_style;not null;default:'mixed'" json:"learning_style"`
	DailyGoalMinutes int            `gorm:"column:daily_goal_minutes;not null;default:15" json:"daily_goal_minutes"`
	AdaptivePath     bool           `gorm:"column:adaptive_path;not null;default:true" json:"adaptive_path"`
	AutoUnlock       bool           `gorm:"column:auto_unlock;not null;default:true" json:"auto_unlock"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (UserPreference) TableName() string { return "user_preference" }

func DefaultPreference(userID uuid.UUID) *UserPreference {
	return &UserPreference{
		UserID:           userID,
		LearningStyle:    LearningStyleMixed,
		DailyGoalMinutes: 15,
		AdaptivePath:     true,
		AutoUnlock:       true,
	}
}
