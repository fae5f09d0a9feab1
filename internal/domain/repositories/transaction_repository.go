package repositories

import (
	"context"

	"github.com/google/uuid"
	"pigbank.backend/internal/domain/entities"
	"pigbank.backend/pkg/utils"
)

// TransactionFilter narrows transaction listings
type TransactionFilter struct {
	Status    entities.TransactionStatus
	Method    string
	Search    string
	StartDate string
	EndDate   string
}

// TransactionRepository defines transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Transaction, error)
	GetByExternalID(ctx context.Context, userID uuid.UUID, externalID string) (*entities.Transaction, error)
	List(ctx context.Context, userID uuid.UUID, filter TransactionFilter, p utils.PaginationParams) ([]*entities.Transaction, int64, error)
	Update(ctx context.Context, tx *entities.Transaction) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}
