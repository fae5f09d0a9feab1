package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Customer represents a buyer record owned by a user account
type Customer struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	Name      string      `json:"name"`
	Email     null.String `json:"email,omitempty"`
	Phone     null.String `json:"phone,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// CustomerInput represents input for creating or updating a customer
type CustomerInput struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
