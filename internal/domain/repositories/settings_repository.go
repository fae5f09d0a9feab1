package repositories

import (
	"context"

	"github.com/google/uuid"
	"pigbank.backend/internal/domain/entities"
)

// CheckoutSettingsRepository defines checkout configuration operations
type CheckoutSettingsRepository interface {
	GetByMerchant(ctx context.Context, merchantID uuid.UUID) (*entities.CheckoutSettings, error)
	Upsert(ctx context.Context, settings *entities.CheckoutSettings) error
	DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error
}

// WixIntegrationRepository defines storefront integration operations
type WixIntegrationRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*entities.WixIntegration, error)
	Upsert(ctx context.Context, integration *entities.WixIntegration) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
