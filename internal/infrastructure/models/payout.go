package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payout struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount      float64   `gorm:"type:decimal(14,2);not null"`
	Status      string    `gorm:"type:varchar(50);not null;default:'pending';index"`
	Method      string    `gorm:"type:varchar(50);not null"`
	ArrivalDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
