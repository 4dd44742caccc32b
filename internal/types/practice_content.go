package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PracticeContent struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ThinkingTypeID   string         `gorm:"column:thinking_type_id;not null;index:idx_practice_dim_level" json:"thinking_type_id"`
	Level            int            `gorm:"column:level;not null;index:idx_practice_dim_level" json:"level"`
	Title            string         `gorm:"column:title;not null" json:"title"`
	Description      string         `gorm:"column:description" json:"description"`
	EstimatedMinutes int            `gorm:"column:estimated_minutes;not null;default:10" json:"estimated_minutes"`
	SortOrder        int            `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PracticeContent) TableName() string { return "practice_content" }
