package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// InvoiceStatus represents invoice lifecycle states
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// Invoice represents a customer invoice owned by a user account
type Invoice struct {
	ID            uuid.UUID      `json:"id"`
	UserID        uuid.UUID      `json:"userId"`
	Number        string         `json:"number"`
	CustomerName  string         `json:"customerName"`
	CustomerEmail null.String    `json:"customerEmail,omitempty"`
	Status        InvoiceStatus  `json:"status"`
	Amount        float64        `json:"amount"`
	DueDate       null.Time      `json:"dueDate,omitempty"`
	Items         []*InvoiceItem `json:"items,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// InvoiceItem belongs to exactly one invoice and is cascade-deleted with it
type InvoiceItem struct {
	ID          uuid.UUID `json:"id"`
	InvoiceID   uuid.UUID `json:"invoiceId"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
}

// InvoiceItemInput represents input for a single invoice line item
type InvoiceItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" binding:"required,gte=0"`
}

// InvoiceInput represents input for creating or updating an invoice
type InvoiceInput struct {
	Number        string             `json:"number" binding:"required"`
	CustomerName  string             `json:"customerName" binding:"required"`
	CustomerEmail string             `json:"customerEmail"`
	Status        InvoiceStatus      `json:"status"`
	DueDate       string             `json:"dueDate"`
	Items         []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
}
