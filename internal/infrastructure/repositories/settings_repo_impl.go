package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/infrastructure/models"
)

// CheckoutSettingsRepository implements checkout configuration operations
type CheckoutSettingsRepository struct {
	db *gorm.DB
}

// NewCheckoutSettingsRepository creates a new checkout settings repository
func NewCheckoutSettingsRepository(db *gorm.DB) *CheckoutSettingsRepository {
	return &CheckoutSettingsRepository{db: db}
}

// GetByMerchant gets the merchant's checkout configuration
func (r *CheckoutSettingsRepository) GetByMerchant(ctx context.Context, merchantID uuid.UUID) (*entities.CheckoutSettings, error) {
	var m models.CheckoutSettings
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Upsert creates the row on first write and updates it afterwards
func (r *CheckoutSettingsRepository) Upsert(ctx context.Context, settings *entities.CheckoutSettings) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var existing models.CheckoutSettings
	err := db.Where("merchant_id = ?", settings.MerchantID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		m := &models.CheckoutSettings{
			ID:          uuid.New(),
			MerchantID:  settings.MerchantID,
			AcceptCards: settings.AcceptCards,
			AcceptACH:   settings.AcceptACH,
			SuccessURL:  settings.SuccessURL.Ptr(),
			CancelURL:   settings.CancelURL.Ptr(),
			BrandColor:  settings.BrandColor.Ptr(),
		}
		if err := db.Create(m).Error; err != nil {
			return err
		}
		settings.ID = m.ID
		settings.CreatedAt = m.CreatedAt
		settings.UpdatedAt = m.UpdatedAt
		return nil
	}

	updates := map[string]interface{}{
		"accept_cards": settings.AcceptCards,
		"accept_ach":   settings.AcceptACH,
		"success_url":  settings.SuccessURL.Ptr(),
		"cancel_url":   settings.CancelURL.Ptr(),
		"brand_color":  settings.BrandColor.Ptr(),
		"updated_at":   time.Now(),
	}
	if err := db.Model(&models.CheckoutSettings{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return err
	}
	settings.ID = existing.ID
	settings.CreatedAt = existing.CreatedAt
	return nil
}

// DeleteByMerchant removes a merchant's checkout configuration
func (r *CheckoutSettingsRepository) DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Delete(&models.CheckoutSettings{}).Error
}

func (r *CheckoutSettingsRepository) toEntity(m *models.CheckoutSettings) *entities.CheckoutSettings {
	return &entities.CheckoutSettings{
		ID:          m.ID,
		MerchantID:  m.MerchantID,
		AcceptCards: m.AcceptCards,
		AcceptACH:   m.AcceptACH,
		SuccessURL:  null.StringFromPtr(m.SuccessURL),
		CancelURL:   null.StringFromPtr(m.CancelURL),
		BrandColor:  null.StringFromPtr(m.BrandColor),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// WixIntegrationRepository implements storefront integration operations
type WixIntegrationRepository struct {
	db *gorm.DB
}

// NewWixIntegrationRepository creates a new integration repository
func NewWixIntegrationRepository(db *gorm.DB) *WixIntegrationRepository {
	return &WixIntegrationRepository{db: db}
}

// GetByUser gets a user's storefront integration
func (r *WixIntegrationRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*entities.WixIntegration, error) {
	var m models.WixIntegration
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Upsert creates the integration on first write and updates it afterwards
func (r *WixIntegrationRepository) Upsert(ctx context.Context, integration *entities.WixIntegration) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var existing models.WixIntegration
	err := db.Where("user_id = ?", integration.UserID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		m := &models.WixIntegration{
			ID:      uuid.New(),
			UserID:  integration.UserID,
			SiteID:  integration.SiteID,
			APIKey:  integration.APIKey,
			Enabled: integration.Enabled,
		}
		if err := db.Create(m).Error; err != nil {
			return err
		}
		integration.ID = m.ID
		integration.CreatedAt = m.CreatedAt
		integration.UpdatedAt = m.UpdatedAt
		return nil
	}

	updates := map[string]interface{}{
		"site_id":    integration.SiteID,
		"api_key":    integration.APIKey,
		"enabled":    integration.Enabled,
		"updated_at": time.Now(),
	}
	if err := db.Model(&models.WixIntegration{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return err
	}
	integration.ID = existing.ID
	integration.CreatedAt = existing.CreatedAt
	return nil
}

// Delete removes a user's integration
func (r *WixIntegrationRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.WixIntegration{}, "user_id = ?", userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *WixIntegrationRepository) toEntity(m *models.WixIntegration) *entities.WixIntegration {
	return &entities.WixIntegration{
		ID:        m.ID,
		UserID:    m.UserID,
		SiteID:    m.SiteID,
		APIKey:    m.APIKey,
		Enabled:   m.Enabled,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
