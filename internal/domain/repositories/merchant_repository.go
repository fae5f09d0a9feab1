package repositories

import (
	"context"

	"github.com/google/uuid"
	"pigbank.backend/internal/domain/entities"
	"pigbank.backend/pkg/utils"
)

// MerchantRepository defines merchant application data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error)
	Update(ctx context.Context, merchant *entities.Merchant) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error
	List(ctx context.Context, status entities.MerchantStatus, search string, p utils.PaginationParams) ([]*entities.Merchant, int64, error)
	CountByStatus(ctx context.Context) (map[entities.MerchantStatus]int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OwnerRepository defines beneficial owner data operations
type OwnerRepository interface {
	Create(ctx context.Context, owner *entities.MerchantOwner) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.MerchantOwner, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantOwner, error)
	Update(ctx context.Context, owner *entities.MerchantOwner) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error
}
