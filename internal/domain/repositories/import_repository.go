package repositories

import (
	"context"

	"github.com/google/uuid"
	"pigbank.backend/internal/domain/entities"
)

// ImportRepository defines import run bookkeeping operations
type ImportRepository interface {
	Create(ctx context.Context, imp *entities.BankfulImport) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.BankfulImport, error)
	Update(ctx context.Context, imp *entities.BankfulImport) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.BankfulImport, error)
}
