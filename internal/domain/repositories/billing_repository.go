package repositories

import (
	"context"

	"github.com/google/uuid"
	"pigbank.backend/internal/domain/entities"
	"pigbank.backend/pkg/utils"
)

// CustomerRepository defines customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entities.Customer) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Customer, error)
	List(ctx context.Context, userID uuid.UUID, search string, p utils.PaginationParams) ([]*entities.Customer, int64, error)
	Update(ctx context.Context, customer *entities.Customer) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// InvoiceRepository defines invoice data operations. Items are stored and
// deleted with their invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entities.Invoice) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Invoice, error)
	List(ctx context.Context, userID uuid.UUID, status entities.InvoiceStatus, p utils.PaginationParams) ([]*entities.Invoice, int64, error)
	Update(ctx context.Context, invoice *entities.Invoice) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// PayoutRepository defines payout data operations
type PayoutRepository interface {
	Create(ctx context.Context, payout *entities.Payout) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Payout, error)
	List(ctx context.Context, userID uuid.UUID, status entities.PayoutStatus, p utils.PaginationParams) ([]*entities.Payout, int64, error)
	Update(ctx context.Context, payout *entities.Payout) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}
