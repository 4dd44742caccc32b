package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PracticeSession struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ThinkingTypeID  string         `gorm:"column:thinking_type_id;not null" json:"thinking_type_id"`
	QuestionID      *uuid.UUID     `gorm:"type:uuid;column:question_id" json:"question_id,omitempty"`
	Score           int            `gorm:"column:score;not null;default:0" json:"score"`
	DurationSeconds int            `gorm:"column:duration_seconds;not null;default:0" json:"duration_seconds"`
	CompletedAt     time.Time      `gorm:"column:completed_at;not null;index" json:"completed_at"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PracticeSession) TableName() string { return "practice_session" }
