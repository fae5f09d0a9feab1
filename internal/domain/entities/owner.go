package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MerchantOwner represents a beneficial owner (>=25% ownership) collected
// during onboarding for KYC.
type MerchantOwner struct {
	ID               uuid.UUID   `json:"id"`
	MerchantID       uuid.UUID   `json:"merchantId"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	DateOfBirth      string      `json:"dateOfBirth"` // YYYY-MM-DD
	HomeAddress      string      `json:"homeAddress"`
	SSN              string      `json:"-"`
	OwnershipPercent float64     `json:"ownershipPercent"`
	GovIDFrontURL    null.String `json:"govIdFrontUrl,omitempty"`
	GovIDBackURL     null.String `json:"govIdBackUrl,omitempty"`
	KYCConsent       bool        `json:"kycConsent"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// OwnerInput represents input for creating or updating a beneficial owner
type OwnerInput struct {
	FirstName        string  `json:"firstName" binding:"required,min=1,max=100"`
	LastName         string  `json:"lastName" binding:"required,min=1,max=100"`
	DateOfBirth      string  `json:"dateOfBirth" binding:"required"`
	HomeAddress      string  `json:"homeAddress" binding:"required"`
	SSN              string  `json:"ssn" binding:"required,min=9,max=11"`
	OwnershipPercent float64 `json:"ownershipPercent" binding:"required,gte=25,lte=100"`
	GovIDFrontURL    string  `json:"govIdFrontUrl"`
	GovIDBackURL     string  `json:"govIdBackUrl"`
	KYCConsent       bool    `json:"kycConsent"`
}
