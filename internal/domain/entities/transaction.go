package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionStatus represents the internal transaction status vocabulary
type TransactionStatus string

const (
	TransactionApproved          TransactionStatus = "Approved"
	TransactionDeclined          TransactionStatus = "Declined"
	TransactionRefunded          TransactionStatus = "Refunded"
	TransactionPartiallyRefunded TransactionStatus = "Partially Refunded"
	TransactionError             TransactionStatus = "Error"
	TransactionChargeback        TransactionStatus = "Chargeback"
	TransactionCompleted         TransactionStatus = "Completed"
	TransactionPending           TransactionStatus = "Pending"
	TransactionFailed            TransactionStatus = "Failed"
)

// Transaction represents a payment record owned by a user account
type Transaction struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"userId"`
	TransactionID string            `json:"transactionId"` // external id, unique, dedup key
	Date          time.Time         `json:"date"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail null.String       `json:"customerEmail,omitempty"`
	Amount        float64           `json:"amount"`
	Method        string            `json:"method"`
	Status        TransactionStatus `json:"status"`
	RiskTier      null.String       `json:"riskTier,omitempty"`
	AVSResult     null.String       `json:"avsResult,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// TransactionInput represents input for creating a transaction
type TransactionInput struct {
	TransactionID string  `json:"transactionId" binding:"required"`
	Date          string  `json:"date" binding:"required"` // RFC3339 or YYYY-MM-DD
	CustomerName  string  `json:"customerName" binding:"required"`
	CustomerEmail string  `json:"customerEmail"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Method        string  `json:"method" binding:"required"`
	Status        string  `json:"status" binding:"required"`
	RiskTier      string  `json:"riskTier"`
	AVSResult     string  `json:"avsResult"`
}

// TransactionListResult bundles a page of transactions with its meta
type TransactionListResult struct {
	Items      []*Transaction `json:"items"`
	TotalCount int64          `json:"totalCount"`
}
