package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MerchantNote is an append-only review note on a merchant. Never updated
// or deleted.
type MerchantNote struct {
	ID         uuid.UUID `json:"id"`
	MerchantID uuid.UUID `json:"merchantId"`
	AuthorID   uuid.UUID `json:"authorId"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MerchantEvent is an append-only audit trail entry for a merchant
type MerchantEvent struct {
	ID         uuid.UUID   `json:"id"`
	MerchantID uuid.UUID   `json:"merchantId"`
	ActorID    uuid.UUID   `json:"actorId"`
	EventType  string      `json:"eventType"`
	Detail     null.String `json:"detail,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// NoteInput represents input for creating a merchant note
type NoteInput struct {
	Body string `json:"body" binding:"required,min=1"`
}
