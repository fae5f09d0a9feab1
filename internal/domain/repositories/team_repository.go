package repositories

import (
	"context"

	"github.com/google/uuid"
	"pigbank.backend/internal/domain/entities"
)

// MembershipRepository defines merchant team membership operations
type MembershipRepository interface {
	Create(ctx context.Context, membership *entities.Membership) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Membership, error)
	GetByUserAndMerchant(ctx context.Context, userID, merchantID uuid.UUID) (*entities.Membership, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*entities.Membership, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.TeamMember, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.MerchantRole) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error
	CountByRole(ctx context.Context, merchantID uuid.UUID, role entities.MerchantRole) (int64, error)
}
