package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MinLevel = 1
	MaxLevel = 5
)

// ThinkingProgress tracks one user's standing in one thinking dimension.
// LevelProgress and LevelScores hold exactly five values, indexed level-1.
type ThinkingProgress struct {
	ID             uuid.UUID                    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID                    `gorm:"type:uuid;not null;index:idx_user_thinking_type,unique" json:"user_id"`
	User           *User                        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ThinkingTypeID string                       `gorm:"column:thinking_type_id;not null;index:idx_user_thinking_type,unique" json:"thinking_type_id"`
	CurrentLevel   int                          `gorm:"column:current_level;not null;default:1" json:"current_level"`
	LevelProgress  datatypes.JSONSlice[float64] `gorm:"type:jsonb;column:level_progress" json:"level_progress"`
	LevelScores    datatypes.JSONSlice[float64] `gorm:"type:jsonb;column:level_scores" json:"level_scores"`
	TotalQuestions int                          `gorm:"column:total_questions;not null;default:0" json:"total_questions"`
	CreatedAt      time.Time                    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time                    `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt               `gorm:"index" json:"deleted_at,omitempty"`
}

func (ThinkingProgress) TableName() string { return "thinking_progress" }

// ClampedLevel guards against malformed stored rows.
func (p *ThinkingProgress) ClampedLevel() int {
	if p.CurrentLevel < MinLevel {
		return MinLevel
	}
	if p.CurrentLevel > MaxLevel {
		return MaxLevel
	}
	return p.CurrentLevel
}

// ProgressAtLevel returns the completion percentage for a level, zero when
// the stored slice is short or the level is out of range.
func (p *ThinkingProgress) ProgressAtLevel(level int) float64 {
	idx := level - 1
	if idx < 0 || idx >= len(p.LevelProgress) {
		return 0
	}
	v := p.LevelProgress[idx]
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
