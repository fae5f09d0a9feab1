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
	domainRepos "pigbank.backend/internal/domain/repositories"
	"pigbank.backend/internal/infrastructure/models"
	"pigbank.backend/pkg/utils"
)

// TransactionRepository implements transaction data operations
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create creates a transaction row
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	m := r.toModel(tx)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	tx.CreatedAt = m.CreatedAt
	tx.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a transaction scoped to its owning user
func (r *TransactionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
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

// GetByExternalID gets a transaction by its processor-assigned ID
func (r *TransactionRepository) GetByExternalID(ctx context.Context, userID uuid.UUID, externalID string) (*entities.Transaction, error) {
	var m models.Transaction
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND transaction_id = ?", userID, externalID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists a user's transactions with filters, newest first
func (r *TransactionRepository) List(ctx context.Context, userID uuid.UUID, filter domainRepos.TransactionFilter, p utils.PaginationParams) ([]*entities.Transaction, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Method != "" {
		query = query.Where("method = ?", filter.Method)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(transaction_id) LIKE ?", term, term)
	}
	if filter.StartDate != "" {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("date <= ?", filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date DESC")
	if p.Limit > 0 {
		query = query.Offset(p.CalculateOffset()).Limit(p.Limit)
	}

	var txModels []models.Transaction
	if err := query.Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]*entities.Transaction, 0, len(txModels))
	for i := range txModels {
		txs = append(txs, r.toEntity(&txModels[i]))
	}
	return txs, total, nil
}

// Update updates a transaction's mutable fields
func (r *TransactionRepository) Update(ctx context.Context, tx *entities.Transaction) error {
	updates := map[string]interface{}{
		"date":           tx.Date,
		"customer_name":  tx.CustomerName,
		"customer_email": tx.CustomerEmail.Ptr(),
		"amount":         tx.Amount,
		"method":         tx.Method,
		"status":         string(tx.Status),
		"risk_tier":      tx.RiskTier.Ptr(),
		"avs_result":     tx.AVSResult.Ptr(),
		"updated_at":     time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", tx.ID, tx.UserID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a transaction scoped to its owning user
func (r *TransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Transaction{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteAllForUser hard deletes every transaction owned by a user. Used by
// demo data teardown.
func (r *TransactionRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Unscoped().
		Delete(&models.Transaction{}, "user_id = ?", userID).Error
}

func (r *TransactionRepository) toModel(tx *entities.Transaction) *models.Transaction {
	m := &models.Transaction{
		ID:            tx.ID,
		UserID:        tx.UserID,
		TransactionID: tx.TransactionID,
		Date:          tx.Date,
		CustomerName:  tx.CustomerName,
		CustomerEmail: tx.CustomerEmail.Ptr(),
		Amount:        tx.Amount,
		Method:        tx.Method,
		Status:        string(tx.Status),
		RiskTier:      tx.RiskTier.Ptr(),
		AVSResult:     tx.AVSResult.Ptr(),
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return m
}

func (r *TransactionRepository) toEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:            m.ID,
		UserID:        m.UserID,
		TransactionID: m.TransactionID,
		Date:          m.Date,
		CustomerName:  m.CustomerName,
		CustomerEmail: null.StringFromPtr(m.CustomerEmail),
		Amount:        m.Amount,
		Method:        m.Method,
		Status:        entities.TransactionStatus(m.Status),
		RiskTier:      null.StringFromPtr(m.RiskTier),
		AVSResult:     null.StringFromPtr(m.AVSResult),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
