package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ImportStatus represents the lifecycle of an import attempt
type ImportStatus string

const (
	ImportStatusInProgress ImportStatus = "in_progress"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// BankfulImport records a single import attempt against the processor API
type BankfulImport struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"userId"`
	Status        ImportStatus `json:"status"`
	StartDate     null.String  `json:"startDate,omitempty"`
	EndDate       null.String  `json:"endDate,omitempty"`
	ImportedCount int          `json:"importedCount"`
	SkippedCount  int          `json:"skippedCount"`
	ErrorMessage  null.String  `json:"errorMessage,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// ImportInput represents input for triggering a Bankful import
type ImportInput struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Limit     int    `json:"limit"`
}

// ImportResult summarizes a finished import run
type ImportResult struct {
	ImportID uuid.UUID `json:"importId"`
	Imported int       `json:"imported"`
	Skipped  int       `json:"skipped"`
}
