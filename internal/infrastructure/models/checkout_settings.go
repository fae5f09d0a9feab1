package models

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutSettings struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AcceptCards bool      `gorm:"not null;default:true"`
	AcceptACH   bool      `gorm:"column:accept_ach;not null;default:false"`
	SuccessURL  *string   `gorm:"type:text"`
	CancelURL   *string   `gorm:"type:text"`
	BrandColor  *string   `gorm:"type:varchar(20)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CheckoutSettings) TableName() string {
	return "checkout_settings"
}
