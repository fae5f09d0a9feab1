package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/infrastructure/models"
	"pigbank.backend/pkg/utils"
)

// InvoiceRepository implements invoice data operations
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create creates an invoice with its line items
func (r *InvoiceRepository) Create(ctx context.Context, invoice *entities.Invoice) error {
	m := r.toModel(invoice)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	invoice.ID = m.ID
	invoice.CreatedAt = m.CreatedAt
	invoice.UpdatedAt = m.UpdatedAt
	for i := range m.Items {
		if i < len(invoice.Items) {
			invoice.Items[i].ID = m.Items[i].ID
			invoice.Items[i].InvoiceID = m.ID
		}
	}
	return nil
}

// GetByID gets an invoice with items, scoped to its owning user
func (r *InvoiceRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Invoice, error) {
	var m models.Invoice
	err := GetDB(ctx, r.db).WithContext(ctx).
		Preload("Items").
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

// List lists a user's invoices, newest first
func (r *InvoiceRepository) List(ctx context.Context, userID uuid.UUID, status entities.InvoiceStatus, p utils.PaginationParams) ([]*entities.Invoice, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Invoice{}).Where("user_id = ?", userID)

	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Items").Order("created_at DESC")
	if p.Limit > 0 {
		query = query.Offset(p.CalculateOffset()).Limit(p.Limit)
	}

	var invoiceModels []models.Invoice
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}

	invoices := make([]*entities.Invoice, 0, len(invoiceModels))
	for i := range invoiceModels {
		invoices = append(invoices, r.toEntity(&invoiceModels[i]))
	}
	return invoices, total, nil
}

// Update replaces the invoice header and its line items
func (r *InvoiceRepository) Update(ctx context.Context, invoice *entities.Invoice) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	m := r.toModel(invoice)
	updates := map[string]interface{}{
		"number":         m.Number,
		"customer_name":  m.CustomerName,
		"customer_email": m.CustomerEmail,
		"status":         m.Status,
		"amount":         m.Amount,
		"due_date":       m.DueDate,
	}

	result := db.Model(&models.Invoice{}).
		Where("id = ? AND user_id = ?", invoice.ID, invoice.UserID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}

	// Replace items wholesale; partial item edits are not supported
	if err := db.Unscoped().Delete(&models.InvoiceItem{}, "invoice_id = ?", invoice.ID).Error; err != nil {
		return err
	}
	for i := range m.Items {
		m.Items[i].InvoiceID = invoice.ID
		if err := db.Create(&m.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete soft deletes an invoice and hard deletes its items
func (r *InvoiceRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Delete(&models.Invoice{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return db.Unscoped().Delete(&models.InvoiceItem{}, "invoice_id = ?", id).Error
}

// DeleteAllForUser hard deletes every invoice owned by a user
func (r *InvoiceRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var ids []uuid.UUID
	if err := db.Model(&models.Invoice{}).Unscoped().
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) > 0 {
		if err := db.Unscoped().Delete(&models.InvoiceItem{}, "invoice_id IN ?", ids).Error; err != nil {
			return err
		}
	}
	return db.Unscoped().Delete(&models.Invoice{}, "user_id = ?", userID).Error
}

func (r *InvoiceRepository) toModel(invoice *entities.Invoice) *models.Invoice {
	m := &models.Invoice{
		ID:            invoice.ID,
		UserID:        invoice.UserID,
		Number:        invoice.Number,
		CustomerName:  invoice.CustomerName,
		CustomerEmail: invoice.CustomerEmail.Ptr(),
		Status:        string(invoice.Status),
		Amount:        invoice.Amount,
		DueDate:       invoice.DueDate.Ptr(),
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = string(entities.InvoiceStatusDraft)
	}
	for _, item := range invoice.Items {
		itemID := item.ID
		if itemID == uuid.Nil {
			itemID = uuid.New()
		}
		m.Items = append(m.Items, models.InvoiceItem{
			ID:          itemID,
			InvoiceID:   m.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return m
}

func (r *InvoiceRepository) toEntity(m *models.Invoice) *entities.Invoice {
	invoice := &entities.Invoice{
		ID:            m.ID,
		UserID:        m.UserID,
		Number:        m.Number,
		CustomerName:  m.CustomerName,
		CustomerEmail: null.StringFromPtr(m.CustomerEmail),
		Status:        entities.InvoiceStatus(m.Status),
		Amount:        m.Amount,
		DueDate:       null.TimeFromPtr(m.DueDate),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for _, item := range m.Items {
		invoice.Items = append(invoice.Items, &entities.InvoiceItem{
			ID:          item.ID,
			InvoiceID:   item.InvoiceID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return invoice
}
