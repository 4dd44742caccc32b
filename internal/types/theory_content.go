package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TheoryContent struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ThinkingTypeID   string         `gorm:"column:thinking_type_id;not null;index:idx_theory_dim_level" json:"thinking_type_id"`
	Level            int            `gorm:"column:level;not null;index:idx_theory_dim_level" json:"level"`
	Title            string         `gorm:"column:title;not null" json:"title"`
	Description      string         `gorm:"column:description" json:"description"`
	EstimatedMinutes int            `gorm:"column:estimated_minutes;not null;default:10" json:"estimated_minutes"`
	Published        bool           `gorm:"column:published;not null;default:false;index" json:"published"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (TheoryContent) TableName() string { return "theory_content" }
