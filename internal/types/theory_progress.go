package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TheoryStatusNotStarted = "not_started"
	TheoryStatusInProgress = "in_progress"
	TheoryStatusCompleted  = "completed"
)

// TheorySections records which sub-sections of a theory unit were finished.
type TheorySections struct {
	Concepts       bool `json:"concepts"`
	Models         bool `json:"models"`
	Demonstrations bool `json:"demonstrations"`
}

type TheoryProgress struct {
	ID               uuid.UUID                          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID                          `gorm:"type:uuid;not null;index:idx_user_theory_content,unique" json:"user_id"`
	User             *User                              `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ContentID        uuid.UUID                          `gorm:"type:uuid;not null;index:idx_user_theory_content,unique" json:"content_id"`
	Content          *TheoryContent                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContentID;references:ID" json:"content,omitempty"`
	Status           string                             `gorm:"column:status;not null;default:'not_started'" json:"status"`
	ProgressPercent  int                                `gorm:"column:progress_percent;not null;default:0" json:"progress_percent"`
	Sections         datatypes.JSONType[TheorySections] `gorm:"type:jsonb;column:sections" json:"sections"`
	TimeSpentSeconds int                                `gorm:"column:time_spent_seconds;not null;default:0" json:"time_spent_seconds"`
	LastViewedAt     *time.Time                         `gorm:"column:last_viewed_at" json:"last_viewed_at,omitempty"`
	CompletedAt      *time.Time                         `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt        time.Time                          `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time                          `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt                     `gorm:"index" json:"deleted_at,omitempty"`
}

func (TheoryProgress) TableName() string { return "theory_progress" }
