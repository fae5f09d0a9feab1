package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Membership struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_merchant;index"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_membership_user_merchant"`
	MerchantRole string    `gorm:"type:varchar(50);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Merchant Merchant `gorm:"foreignKey:MerchantID"`
	User     User     `gorm:"foreignKey:UserID"`
}
