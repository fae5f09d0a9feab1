package entities

import (
	"time"

	"github.com/google/uuid"
)

// WixIntegration is a per-user storefront integration record. The platform
// stores the linkage only; no outbound Wix calls are made from this service.
type WixIntegration struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	SiteID    string    `json:"siteId"`
	APIKey    string    `json:"-"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WixIntegrationInput represents input for creating or updating an integration
type WixIntegrationInput struct {
	SiteID  string `json:"siteId" binding:"required"`
	APIKey  string `json:"apiKey" binding:"required"`
	Enabled *bool  `json:"enabled"`
}
