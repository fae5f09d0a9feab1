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

// CustomerRepository implements customer data operations
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a customer row
func (r *CustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	m := r.toModel(customer)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	customer.ID = m.ID
	customer.CreatedAt = m.CreatedAt
	customer.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a customer scoped to its owning user
func (r *CustomerRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Customer, error) {
	var m models.Customer
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

// List lists a user's customers with optional search
func (r *CustomerRepository) List(ctx context.Context, userID uuid.UUID, search string, p utils.PaginationParams) ([]*entities.Customer, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Customer{}).Where("user_id = ?", userID)

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if p.Limit > 0 {
		query = query.Offset(p.CalculateOffset()).Limit(p.Limit)
	}

	var customerModels []models.Customer
	if err := query.Find(&customerModels).Error; err != nil {
		return nil, 0, err
	}

	customers := make([]*entities.Customer, 0, len(customerModels))
	for i := range customerModels {
		customers = append(customers, r.toEntity(&customerModels[i]))
	}
	return customers, total, nil
}

// Update updates a customer's fields
func (r *CustomerRepository) Update(ctx context.Context, customer *entities.Customer) error {
	updates := map[string]interface{}{
		"name":       customer.Name,
		"email":      customer.Email.Ptr(),
		"phone":      customer.Phone.Ptr(),
		"updated_at": time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Customer{}).
		Where("id = ? AND user_id = ?", customer.ID, customer.UserID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a customer scoped to its owning user
func (r *CustomerRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Customer{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteAllForUser hard deletes every customer owned by a user
func (r *CustomerRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Unscoped().
		Delete(&models.Customer{}, "user_id = ?", userID).Error
}

func (r *CustomerRepository) toModel(customer *entities.Customer) *models.Customer {
	m := &models.Customer{
		ID:        customer.ID,
		UserID:    customer.UserID,
		Name:      customer.Name,
		Email:     customer.Email.Ptr(),
		Phone:     customer.Phone.Ptr(),
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return m
}

func (r *CustomerRepository) toEntity(m *models.Customer) *entities.Customer {
	return &entities.Customer{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     null.StringFromPtr(m.Email),
		Phone:     null.StringFromPtr(m.Phone),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
