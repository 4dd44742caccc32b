package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PathStatusActive    = "active"
	PathStatusCompleted = "completed"
	PathStatusAbandoned = "abandoned"
)

// PathMetadata travels with the path as a jsonb blob.
type PathMetadata struct {
	TargetThinkingTypes []string  `json:"targetThinkingTypes"`
	LearningStyle       string    `json:"learningStyle"`
	Adaptive            bool      `json:"adaptive"`
	GeneratedAt         time.Time `json:"generatedAt"`
}

// LearningPath is the one active curriculum per user. The step list is
// rewritten wholesale on every mutation; Version backs the optimistic
// concurrency check that keeps concurrent completions from losing updates.
type LearningPath struct {
	ID                   uuid.UUID                        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID               uuid.UUID                        `gorm:"type:uuid;not null;index" json:"user_id"`
	User                 *User                            `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Status               string                           `gorm:"column:status;not null;default:'active';index" json:"status"`
	Steps                datatypes.JSONSlice[PathStep]    `gorm:"type:jsonb;column:steps" json:"steps"`
	CurrentStepIndex     int                              `gorm:"column:current_step_index;not null;default:0" json:"current_step_index"`
	CompletedSteps       int                              `gorm:"column:completed_steps;not null;default:0" json:"completed_steps"`
	TotalSteps           int                              `gorm:"column:total_steps;not null;default:0" json:"total_steps"`
	ProgressPercent      int                              `gorm:"column:progress_percent;not null;default:0" json:"progress_percent"`
	TotalTimeSpentSec    int                              `gorm:"column:total_time_spent_sec;not null;default:0" json:"total_time_spent_sec"`
	EstimatedMinutesLeft int                              `gorm:"column:estimated_minutes_left;not null;default:0" json:"estimated_minutes_left"`
	Metadata             datatypes.JSONType[PathMetadata] `gorm:"type:jsonb;column:metadata" json:"metadata"`
	Version              int                              `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt            time.Time                        `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time                        `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt            gorm.DeletedAt                   `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningPath) TableName() string { return "learning_path" }
