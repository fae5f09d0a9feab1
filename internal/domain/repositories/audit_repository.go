package repositories

import (
	"context"

	"github.com/google/uuid"
	"pigbank.backend/internal/domain/entities"
)

// NoteRepository defines internal review note operations
type NoteRepository interface {
	Create(ctx context.Context, note *entities.MerchantNote) error
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantNote, error)
	DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error
}

// EventRepository defines merchant status event log operations.
// Events are append-only; DeleteByMerchant exists only for the admin
// merchant-deletion cascade.
type EventRepository interface {
	Create(ctx context.Context, event *entities.MerchantEvent) error
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantEvent, error)
	DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error
}
