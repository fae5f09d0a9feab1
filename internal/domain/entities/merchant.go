package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MerchantStatus represents the merchant application status
type MerchantStatus string

const (
	MerchantStatusDraft          MerchantStatus = "draft"
	MerchantStatusSubmitted      MerchantStatus = "submitted"
	MerchantStatusActionRequired MerchantStatus = "action_required"
	MerchantStatusUnderReview    MerchantStatus = "under_review"
	MerchantStatusApproved       MerchantStatus = "approved"
	MerchantStatusRejected       MerchantStatus = "rejected"
	MerchantStatusSuspended      MerchantStatus = "suspended"
)

// OnboardingStatus is the secondary status surfaced to the onboarding UI.
// It is derived from the same events that drive MerchantStatus so the two
// cannot diverge.
type OnboardingStatus string

const (
	OnboardingStatusPending   OnboardingStatus = "pending"
	OnboardingStatusSubmitted OnboardingStatus = "submitted"
	OnboardingStatusApproved  OnboardingStatus = "approved"
	OnboardingStatusRejected  OnboardingStatus = "rejected"
)

// Merchant represents a merchant application/account
type Merchant struct {
	ID               uuid.UUID        `json:"id"`
	Status           MerchantStatus   `json:"status"`
	OnboardingStatus OnboardingStatus `json:"onboardingStatus"`

	// Business profile
	LegalName    string      `json:"legalName"`
	DBAName      null.String `json:"dbaName,omitempty"`
	EIN          string      `json:"ein"`
	BusinessType string      `json:"businessType"`
	Website      null.String `json:"website,omitempty"`
	ProductInfo  null.String `json:"productInfo,omitempty"`
	AddressLine1 string      `json:"addressLine1"`
	AddressLine2 null.String `json:"addressLine2,omitempty"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	PostalCode   string      `json:"postalCode"`
	Country      string      `json:"country"`

	// Underwriting
	RiskLevel             null.String  `json:"riskLevel,omitempty"`
	ExpectedMonthlyVolume null.Float64 `json:"expectedMonthlyVolume,omitempty"`
	AverageTicket         null.Float64 `json:"averageTicket,omitempty"`

	// Banking (stored in cleartext, a known weakness carried from the product)
	BankName      null.String `json:"bankName,omitempty"`
	RoutingNumber null.String `json:"routingNumber,omitempty"`
	AccountNumber null.String `json:"accountNumber,omitempty"`

	// Required documents
	VoidedCheckURL     null.String `json:"voidedCheckUrl,omitempty"`
	BusinessLicenseURL null.String `json:"businessLicenseUrl,omitempty"`

	RejectionReason null.String `json:"rejectionReason,omitempty"`
	SubmittedAt     null.Time   `json:"submittedAt,omitempty"`
	ApprovedAt      null.Time   `json:"approvedAt,omitempty"`
	RejectedAt      null.Time   `json:"rejectedAt,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	DeletedAt       null.Time   `json:"-"`
}

// MerchantDraftInput carries partial onboarding edits. All fields are
// pointers so auto-save writes only what the client sent.
type MerchantDraftInput struct {
	LegalName             *string  `json:"legalName,omitempty"`
	DBAName               *string  `json:"dbaName,omitempty"`
	EIN                   *string  `json:"ein,omitempty"`
	BusinessType          *string  `json:"businessType,omitempty"`
	Website               *string  `json:"website,omitempty"`
	ProductInfo           *string  `json:"productInfo,omitempty"`
	AddressLine1          *string  `json:"addressLine1,omitempty"`
	AddressLine2          *string  `json:"addressLine2,omitempty"`
	City                  *string  `json:"city,omitempty"`
	State                 *string  `json:"state,omitempty"`
	PostalCode            *string  `json:"postalCode,omitempty"`
	Country               *string  `json:"country,omitempty"`
	ExpectedMonthlyVolume *float64 `json:"expectedMonthlyVolume,omitempty"`
	AverageTicket         *float64 `json:"averageTicket,omitempty"`
	BankName              *string  `json:"bankName,omitempty"`
	RoutingNumber         *string  `json:"routingNumber,omitempty"`
	AccountNumber         *string  `json:"accountNumber,omitempty"`
	VoidedCheckURL        *string  `json:"voidedCheckUrl,omitempty"`
	BusinessLicenseURL    *string  `json:"businessLicenseUrl,omitempty"`
}

// ReviewActionInput carries the optional free-text reason on review actions
type ReviewActionInput struct {
	Reason string `json:"reason"`
}

// MerchantDetail is the review-console view of a merchant
type MerchantDetail struct {
	Merchant *Merchant        `json:"merchant"`
	Owners   []*MerchantOwner `json:"owners"`
	Team     []*TeamMember    `json:"team"`
	Notes    []*MerchantNote  `json:"notes"`
	Events   []*MerchantEvent `json:"events"`
}
