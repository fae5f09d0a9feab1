package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Merchant struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	LegalName             string    `gorm:"type:varchar(255)"`
	DBAName               string    `gorm:"column:dba_name;type:varchar(255)"`
	EIN                   string    `gorm:"column:ein;type:varchar(20)"`
	BusinessType          string    `gorm:"type:varchar(100)"`
	Website               string    `gorm:"type:text"`
	ProductInfo           string    `gorm:"type:text"`
	AddressLine1          string    `gorm:"type:varchar(255)"`
	AddressLine2          string    `gorm:"type:varchar(255)"`
	City                  string    `gorm:"type:varchar(100)"`
	State                 string    `gorm:"type:varchar(100)"`
	PostalCode            string    `gorm:"type:varchar(20)"`
	Country               string    `gorm:"type:varchar(100)"`
	Status                string    `gorm:"type:varchar(50);not null;default:'draft';index"`
	RiskLevel             string    `gorm:"type:varchar(50)"`
	ExpectedMonthlyVolume *float64  `gorm:"type:decimal(14,2)"`
	AverageTicket         *float64  `gorm:"type:decimal(14,2)"`
	BankName              *string   `gorm:"type:varchar(255)"`
	RoutingNumber         *string   `gorm:"type:varchar(50)"`
	AccountNumber         *string   `gorm:"type:varchar(50)"`
	VoidedCheckURL        *string   `gorm:"type:text"`
	BusinessLicenseURL    *string   `gorm:"type:text"`
	RejectionReason       *string   `gorm:"type:text"`
	SubmittedAt           *time.Time
	ApprovedAt            *time.Time
	RejectedAt            *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

type MerchantOwner struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID       uuid.UUID `gorm:"type:uuid;not null;index"`
	FirstName        string    `gorm:"type:varchar(100);not null"`
	LastName         string    `gorm:"type:varchar(100);not null"`
	DateOfBirth      string    `gorm:"type:varchar(10)"`
	HomeAddress      string    `gorm:"type:text"`
	SSN              string    `gorm:"column:ssn;type:varchar(20)"`
	OwnershipPercent float64   `gorm:"type:decimal(5,2);not null"`
	GovIDFrontURL    *string   `gorm:"column:gov_id_front_url;type:text"`
	GovIDBackURL     *string   `gorm:"column:gov_id_back_url;type:text"`
	KYCConsent       bool      `gorm:"column:kyc_consent;not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`

	Merchant Merchant `gorm:"foreignKey:MerchantID"`
}
