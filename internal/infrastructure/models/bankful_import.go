package models

import (
	"time"

	"github.com/google/uuid"
)

type BankfulImport struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        string    `gorm:"type:varchar(50);not null;default:'in_progress'"`
	StartDate     *string   `gorm:"type:varchar(10)"`
	EndDate       *string   `gorm:"type:varchar(10)"`
	ImportedCount int       `gorm:"not null;default:0"`
	SkippedCount  int       `gorm:"not null;default:0"`
	ErrorMessage  *string   `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
