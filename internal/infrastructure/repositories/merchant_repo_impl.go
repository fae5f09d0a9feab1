package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/infrastructure/models"
	"pigbank.backend/pkg/utils"
)

// MerchantRepository implements merchant application data operations
type MerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

// Create creates a new merchant application
func (r *MerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	m := r.toModel(merchant)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	merchant.ID = m.ID
	merchant.CreatedAt = m.CreatedAt
	merchant.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a merchant by ID
func (r *MerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserID gets the merchant a user belongs to via membership
func (r *MerchantRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	err := GetDB(ctx, r.db).WithContext(ctx).
		Joins("JOIN memberships ON memberships.merchant_id = merchants.id").
		Where("memberships.user_id = ? AND memberships.deleted_at IS NULL", userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update writes the full merchant profile
func (r *MerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	m := r.toModel(merchant)
	m.UpdatedAt = time.Now()

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ?", merchant.ID).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus changes only the application status and its timestamps
func (r *MerchantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": now,
	}
	switch status {
	case entities.MerchantStatusSubmitted:
		updates["submitted_at"] = now
	case entities.MerchantStatusApproved:
		updates["approved_at"] = now
	case entities.MerchantStatusRejected:
		updates["rejected_at"] = now
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Merchant{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists merchants filtered by status and search term
func (r *MerchantRepository) List(ctx context.Context, status entities.MerchantStatus, search string, p utils.PaginationParams) ([]*entities.Merchant, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Merchant{})

	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(legal_name) LIKE ? OR LOWER(dba_name) LIKE ? OR LOWER(ein) LIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if p.Limit > 0 {
		query = query.Offset(p.CalculateOffset()).Limit(p.Limit)
	}

	var merchantModels []models.Merchant
	if err := query.Find(&merchantModels).Error; err != nil {
		return nil, 0, err
	}

	merchants := make([]*entities.Merchant, 0, len(merchantModels))
	for i := range merchantModels {
		merchants = append(merchants, r.toEntity(&merchantModels[i]))
	}
	return merchants, total, nil
}

// CountByStatus returns merchant counts grouped by status
func (r *MerchantRepository) CountByStatus(ctx context.Context) (map[entities.MerchantStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Merchant{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.MerchantStatus]int64, len(rows))
	for _, row := range rows {
		counts[entities.MerchantStatus(row.Status)] = row.Count
	}
	return counts, nil
}

// Delete soft deletes a merchant application
func (r *MerchantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Merchant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MerchantRepository) toModel(merchant *entities.Merchant) *models.Merchant {
	m := &models.Merchant{
		ID:                    merchant.ID,
		LegalName:             merchant.LegalName,
		DBAName:               merchant.DBAName.String,
		EIN:                   merchant.EIN,
		BusinessType:          merchant.BusinessType,
		Website:               merchant.Website.String,
		ProductInfo:           merchant.ProductInfo.String,
		AddressLine1:          merchant.AddressLine1,
		AddressLine2:          merchant.AddressLine2.String,
		City:                  merchant.City,
		State:                 merchant.State,
		PostalCode:            merchant.PostalCode,
		Country:               merchant.Country,
		Status:                string(merchant.Status),
		RiskLevel:             merchant.RiskLevel.String,
		ExpectedMonthlyVolume: merchant.ExpectedMonthlyVolume.Ptr(),
		AverageTicket:         merchant.AverageTicket.Ptr(),
		BankName:              merchant.BankName.Ptr(),
		RoutingNumber:         merchant.RoutingNumber.Ptr(),
		AccountNumber:         merchant.AccountNumber.Ptr(),
		VoidedCheckURL:        merchant.VoidedCheckURL.Ptr(),
		BusinessLicenseURL:    merchant.BusinessLicenseURL.Ptr(),
		RejectionReason:       merchant.RejectionReason.Ptr(),
		SubmittedAt:           merchant.SubmittedAt.Ptr(),
		ApprovedAt:            merchant.ApprovedAt.Ptr(),
		RejectedAt:            merchant.RejectedAt.Ptr(),
		CreatedAt:             merchant.CreatedAt,
		UpdatedAt:             merchant.UpdatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = string(entities.MerchantStatusDraft)
	}
	return m
}

func (r *MerchantRepository) toEntity(m *models.Merchant) *entities.Merchant {
	status := entities.MerchantStatus(m.Status)
	merchant := &entities.Merchant{
		ID:                    m.ID,
		Status:                status,
		OnboardingStatus:      entities.DerivedOnboardingStatus(status),
		LegalName:             m.LegalName,
		DBAName:               nullStringFrom(m.DBAName),
		EIN:                   m.EIN,
		BusinessType:          m.BusinessType,
		Website:               nullStringFrom(m.Website),
		ProductInfo:           nullStringFrom(m.ProductInfo),
		AddressLine1:          m.AddressLine1,
		AddressLine2:          nullStringFrom(m.AddressLine2),
		City:                  m.City,
		State:                 m.State,
		PostalCode:            m.PostalCode,
		Country:               m.Country,
		RiskLevel:             nullStringFrom(m.RiskLevel),
		ExpectedMonthlyVolume: null.Float64FromPtr(m.ExpectedMonthlyVolume),
		AverageTicket:         null.Float64FromPtr(m.AverageTicket),
		BankName:              null.StringFromPtr(m.BankName),
		RoutingNumber:         null.StringFromPtr(m.RoutingNumber),
		AccountNumber:         null.StringFromPtr(m.AccountNumber),
		VoidedCheckURL:        null.StringFromPtr(m.VoidedCheckURL),
		BusinessLicenseURL:    null.StringFromPtr(m.BusinessLicenseURL),
		RejectionReason:       null.StringFromPtr(m.RejectionReason),
		SubmittedAt:           null.TimeFromPtr(m.SubmittedAt),
		ApprovedAt:            null.TimeFromPtr(m.ApprovedAt),
		RejectedAt:            null.TimeFromPtr(m.RejectedAt),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		merchant.DeletedAt = null.TimeFrom(m.DeletedAt.Time)
	}
	return merchant
}

// nullStringFrom treats the empty string as absent
func nullStringFrom(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

// OwnerRepository implements beneficial owner data operations
type OwnerRepository struct {
	db *gorm.DB
}

// NewOwnerRepository creates a new owner repository
func NewOwnerRepository(db *gorm.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// Create creates a beneficial owner record
func (r *OwnerRepository) Create(ctx context.Context, owner *entities.MerchantOwner) error {
	m := r.toModel(owner)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	owner.ID = m.ID
	owner.CreatedAt = m.CreatedAt
	owner.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an owner by ID
func (r *OwnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MerchantOwner, error) {
	var m models.MerchantOwner
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByMerchant lists owners of a merchant in creation order
func (r *OwnerRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantOwner, error) {
	var ownerModels []models.MerchantOwner
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at ASC").
		Find(&ownerModels).Error; err != nil {
		return nil, err
	}

	owners := make([]*entities.MerchantOwner, 0, len(ownerModels))
	for i := range ownerModels {
		owners = append(owners, r.toEntity(&ownerModels[i]))
	}
	return owners, nil
}

// Update updates an owner record
func (r *OwnerRepository) Update(ctx context.Context, owner *entities.MerchantOwner) error {
	updates := map[string]interface{}{
		"first_name":        owner.FirstName,
		"last_name":         owner.LastName,
		"date_of_birth":     owner.DateOfBirth,
		"home_address":      owner.HomeAddress,
		"ssn":               owner.SSN,
		"ownership_percent": owner.OwnershipPercent,
		"gov_id_front_url":  owner.GovIDFrontURL.Ptr(),
		"gov_id_back_url":   owner.GovIDBackURL.Ptr(),
		"kyc_consent":       owner.KYCConsent,
		"updated_at":        time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.MerchantOwner{}).Where("id = ?", owner.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes an owner record
func (r *OwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.MerchantOwner{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByMerchant removes every owner record of a merchant
func (r *OwnerRepository) DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Unscoped().
		Where("merchant_id = ?", merchantID).
		Delete(&models.MerchantOwner{}).Error
}

func (r *OwnerRepository) toModel(owner *entities.MerchantOwner) *models.MerchantOwner {
	m := &models.MerchantOwner{
		ID:               owner.ID,
		MerchantID:       owner.MerchantID,
		FirstName:        owner.FirstName,
		LastName:         owner.LastName,
		DateOfBirth:      owner.DateOfBirth,
		HomeAddress:      owner.HomeAddress,
		SSN:              owner.SSN,
		OwnershipPercent: owner.OwnershipPercent,
		GovIDFrontURL:    owner.GovIDFrontURL.Ptr(),
		GovIDBackURL:     owner.GovIDBackURL.Ptr(),
		KYCConsent:       owner.KYCConsent,
		CreatedAt:        owner.CreatedAt,
		UpdatedAt:        owner.UpdatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return m
}

func (r *OwnerRepository) toEntity(m *models.MerchantOwner) *entities.MerchantOwner {
	return &entities.MerchantOwner{
		ID:               m.ID,
		MerchantID:       m.MerchantID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		DateOfBirth:      m.DateOfBirth,
		HomeAddress:      m.HomeAddress,
		SSN:              m.SSN,
		OwnershipPercent: m.OwnershipPercent,
		GovIDFrontURL:    null.StringFromPtr(m.GovIDFrontURL),
		GovIDBackURL:     null.StringFromPtr(m.GovIDBackURL),
		KYCConsent:       m.KYCConsent,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
