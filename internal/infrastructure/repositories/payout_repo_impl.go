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
	"pigbank.backend/pkg/utils"
)

// PayoutRepository implements payout data operations
type PayoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository creates a new payout repository
func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

// Create creates a payout row
func (r *PayoutRepository) Create(ctx context.Context, payout *entities.Payout) error {
	m := r.toModel(payout)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payout.ID = m.ID
	payout.CreatedAt = m.CreatedAt
	payout.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a payout scoped to its owning user
func (r *PayoutRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Payout, error) {
	var m models.Payout
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists a user's payouts, newest first
func (r *PayoutRepository) List(ctx context.Context, userID uuid.UUID, status entities.PayoutStatus, p utils.PaginationParams) ([]*entities.Payout, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Payout{}).Where("user_id = ?", userID)

	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if p.Limit > 0 {
		query = query.Offset(p.CalculateOffset()).Limit(p.Limit)
	}

	var payoutModels []models.Payout
	if err := query.Find(&payoutModels).Error; err != nil {
		return nil, 0, err
	}

	payouts := make([]*entities.Payout, 0, len(payoutModels))
	for i := range payoutModels {
		payouts = append(payouts, r.toEntity(&payoutModels[i]))
	}
	return payouts, total, nil
}

// Update updates a payout's mutable fields
func (r *PayoutRepository) Update(ctx context.Context, payout *entities.Payout) error {
	updates := map[string]interface{}{
		"amount":       payout.Amount,
		"status":       string(payout.Status),
		"method":       payout.Method,
		"arrival_date": payout.ArrivalDate.Ptr(),
		"updated_at":   time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Payout{}).
		Where("id = ? AND user_id = ?", payout.ID, payout.UserID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a payout scoped to its owning user
func (r *PayoutRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Payout{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteAllForUser hard deletes every payout owned by a user
func (r *PayoutRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Unscoped().
		Delete(&models.Payout{}, "user_id = ?", userID).Error
}

func (r *PayoutRepository) toModel(payout *entities.Payout) *models.Payout {
	m := &models.Payout{
		ID:          payout.ID,
		UserID:      payout.UserID,
		Amount:      payout.Amount,
		Status:      string(payout.Status),
		Method:      payout.Method,
		ArrivalDate: payout.ArrivalDate.Ptr(),
		CreatedAt:   payout.CreatedAt,
		UpdatedAt:   payout.UpdatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = string(entities.PayoutStatusPending)
	}
	return m
}

func (r *PayoutRepository) toEntity(m *models.Payout) *entities.Payout {
	return &entities.Payout{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Status:      entities.PayoutStatus(m.Status),
		Method:      m.Method,
		ArrivalDate: null.TimeFromPtr(m.ArrivalDate),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
