package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StreakLog holds one row per user per calendar day. Date is stored at
// midnight local time; Completed flips true once a qualifying practice
// session lands on that day.
type StreakLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_user_streak_date,unique" json:"user_id"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Date      time.Time      `gorm:"column:date;not null;index:idx_user_streak_date,unique" json:"date"`
	Completed bool           `gorm:"column:completed;not null;default:false" json:"completed"`
	Minutes   int            `gorm:"column:minutes;not null;default:0" json:"minutes"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StreakLog) TableName() string { return "streak_log" }
