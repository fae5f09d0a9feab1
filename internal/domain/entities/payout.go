package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PayoutStatus represents payout lifecycle states
type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusInTransit PayoutStatus = "in_transit"
	PayoutStatusPaid      PayoutStatus = "paid"
	PayoutStatusFailed    PayoutStatus = "failed"
)

// Payout represents funds transferred to the merchant's bank account
type Payout struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Amount      float64      `json:"amount"`
	Status      PayoutStatus `json:"status"`
	Method      string       `json:"method"`
	ArrivalDate null.Time    `json:"arrivalDate,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// PayoutInput represents input for creating a payout record
type PayoutInput struct {
	Amount      float64      `json:"amount" binding:"required,gt=0"`
	Status      PayoutStatus `json:"status"`
	Method      string       `json:"method" binding:"required"`
	ArrivalDate string       `json:"arrivalDate"`
}
