package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Transaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_tx_user_external"`
	TransactionID string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_tx_user_external"`
	Date          time.Time `gorm:"not null;index"`
	CustomerName  string    `gorm:"type:varchar(255);not null"`
	CustomerEmail *string   `gorm:"type:varchar(255)"`
	Amount        float64   `gorm:"type:decimal(14,2);not null"`
	Method        string    `gorm:"type:varchar(50);not null"`
	Status        string    `gorm:"type:varchar(50);not null;index"`
	RiskTier      *string   `gorm:"type:varchar(50)"`
	AVSResult     *string   `gorm:"column:avs_result;type:varchar(50)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
