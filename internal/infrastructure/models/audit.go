package models

import (
	"time"

	"github.com/google/uuid"
)

type MerchantNote struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	Body       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time

	Merchant Merchant `gorm:"foreignKey:MerchantID"`
}

// MerchantEvent rows are append-only; no updates or deletes.
type MerchantEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null"`
	EventType  string    `gorm:"type:varchar(50);not null;index"`
	Detail     *string   `gorm:"type:text"`
	CreatedAt  time.Time

	Merchant Merchant `gorm:"foreignKey:MerchantID"`
}
