package models

import (
	"time"

	"github.com/google/uuid"
)

type WixIntegration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	SiteID    string    `gorm:"type:varchar(100);not null"`
	APIKey    string    `gorm:"column:api_key;type:text;not null"`
	Enabled   bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
