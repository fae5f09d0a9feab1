package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// CheckoutSettings is the one-per-merchant hosted checkout configuration.
// Upsert semantics: created on first write, updated afterwards.
type CheckoutSettings struct {
	ID          uuid.UUID   `json:"id"`
	MerchantID  uuid.UUID   `json:"merchantId"`
	AcceptCards bool        `json:"acceptCards"`
	AcceptACH   bool        `json:"acceptAch"`
	SuccessURL  null.String `json:"successUrl,omitempty"`
	CancelURL   null.String `json:"cancelUrl,omitempty"`
	BrandColor  null.String `json:"brandColor,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CheckoutSettingsInput represents input for the checkout settings upsert
type CheckoutSettingsInput struct {
	AcceptCards bool   `json:"acceptCards"`
	AcceptACH   bool   `json:"acceptAch"`
	SuccessURL  string `json:"successUrl"`
	CancelURL   string `json:"cancelUrl"`
	BrandColor  string `json:"brandColor"`
}
