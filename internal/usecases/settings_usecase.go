package usecases

import (
	"context"
	"errors"

	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/domain/repositories"
)

// SettingsUsecase handles checkout settings and the storefront integration
type SettingsUsecase struct {
	settingsRepo repositories.CheckoutSettingsRepository
	wixRepo      repositories.WixIntegrationRepository
	merchantRepo repositories.MerchantRepository
}

// NewSettingsUsecase creates a new settings usecase
func NewSettingsUsecase(
	settingsRepo repositories.CheckoutSettingsRepository,
	wixRepo repositories.WixIntegrationRepository,
	merchantRepo repositories.MerchantRepository,
) *SettingsUsecase {
	return &SettingsUsecase{
		settingsRepo: settingsRepo,
		wixRepo:      wixRepo,
		merchantRepo: merchantRepo,
	}
}

// GetCheckoutSettings returns the merchant's checkout configuration,
// falling back to defaults before the first write.
func (u *SettingsUsecase) GetCheckoutSettings(ctx context.Context, principal *entities.Principal) (*entities.CheckoutSettings, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	settings, err := u.settingsRepo.GetByMerchant(ctx, merchant.ID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return &entities.CheckoutSettings{
				MerchantID:  merchant.ID,
				AcceptCards: true,
			}, nil
		}
		return nil, err
	}
	return settings, nil
}

// UpdateCheckoutSettings upserts the merchant's checkout configuration
func (u *SettingsUsecase) UpdateCheckoutSettings(ctx context.Context, principal *entities.Principal, input *entities.CheckoutSettingsInput) (*entities.CheckoutSettings, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	settings := &entities.CheckoutSettings{
		MerchantID:  merchant.ID,
		AcceptCards: input.AcceptCards,
		AcceptACH:   input.AcceptACH,
		SuccessURL:  optionalString(input.SuccessURL),
		CancelURL:   optionalString(input.CancelURL),
		BrandColor:  optionalString(input.BrandColor),
	}
	if err := u.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return u.settingsRepo.GetByMerchant(ctx, merchant.ID)
}

// GetWixIntegration returns the user's storefront integration
func (u *SettingsUsecase) GetWixIntegration(ctx context.Context, principal *entities.Principal) (*entities.WixIntegration, error) {
	return u.wixRepo.GetByUser(ctx, principal.UserID)
}

// UpsertWixIntegration links or updates the user's storefront integration
func (u *SettingsUsecase) UpsertWixIntegration(ctx context.Context, principal *entities.Principal, input *entities.WixIntegrationInput) (*entities.WixIntegration, error) {
	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	integration := &entities.WixIntegration{
		UserID:  principal.UserID,
		SiteID:  input.SiteID,
		APIKey:  input.APIKey,
		Enabled: enabled,
	}
	if err := u.wixRepo.Upsert(ctx, integration); err != nil {
		return nil, err
	}
	return integration, nil
}

// DeleteWixIntegration unlinks the user's storefront integration
func (u *SettingsUsecase) DeleteWixIntegration(ctx context.Context, principal *entities.Principal) error {
	return u.wixRepo.Delete(ctx, principal.UserID)
}
