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

// ImportRepository implements import run bookkeeping operations
type ImportRepository struct {
	db *gorm.DB
}

// NewImportRepository creates a new import repository
func NewImportRepository(db *gorm.DB) *ImportRepository {
	return &ImportRepository{db: db}
}

// Create records a new import run
func (r *ImportRepository) Create(ctx context.Context, imp *entities.BankfulImport) error {
	m := &models.BankfulImport{
		ID:            imp.ID,
		UserID:        imp.UserID,
		Status:        string(imp.Status),
		StartDate:     imp.StartDate.Ptr(),
		EndDate:       imp.EndDate.Ptr(),
		ImportedCount: imp.ImportedCount,
		SkippedCount:  imp.SkippedCount,
		ErrorMessage:  imp.ErrorMessage.Ptr(),
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = string(entities.ImportStatusInProgress)
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	imp.ID = m.ID
	imp.Status = entities.ImportStatus(m.Status)
	imp.CreatedAt = m.CreatedAt
	imp.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an import run scoped to its owning user
func (r *ImportRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.BankfulImport, error) {
	var m models.BankfulImport
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

// Update writes the run's terminal state and counters
func (r *ImportRepository) Update(ctx context.Context, imp *entities.BankfulImport) error {
	updates := map[string]interface{}{
		"status":         string(imp.Status),
		"imported_count": imp.ImportedCount,
		"skipped_count":  imp.SkippedCount,
		"error_message":  imp.ErrorMessage.Ptr(),
		"updated_at":     time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.BankfulImport{}).
		Where("id = ?", imp.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByUser lists a user's import runs, newest first
func (r *ImportRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.BankfulImport, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var importModels []models.BankfulImport
	if err := query.Find(&importModels).Error; err != nil {
		return nil, err
	}

	imports := make([]*entities.BankfulImport, 0, len(importModels))
	for i := range importModels {
		imports = append(imports, r.toEntity(&importModels[i]))
	}
	return imports, nil
}

func (r *ImportRepository) toEntity(m *models.BankfulImport) *entities.BankfulImport {
	return &entities.BankfulImport{
		ID:            m.ID,
		UserID:        m.UserID,
		Status:        entities.ImportStatus(m.Status),
		StartDate:     null.StringFromPtr(m.StartDate),
		EndDate:       null.StringFromPtr(m.EndDate),
		ImportedCount: m.ImportedCount,
		SkippedCount:  m.SkippedCount,
		ErrorMessage:  null.StringFromPtr(m.ErrorMessage),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
