package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"pigbank.backend/internal/domain/authz"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/domain/repositories"
	"pigbank.backend/pkg/utils"
)

// TransactionUsecase handles per-user transaction CRUD
type TransactionUsecase struct {
	txRepo repositories.TransactionRepository
}

// NewTransactionUsecase creates a new transaction usecase
func NewTransactionUsecase(txRepo repositories.TransactionRepository) *TransactionUsecase {
	return &TransactionUsecase{txRepo: txRepo}
}

// List lists the user's transactions with filters and pagination
func (u *TransactionUsecase) List(ctx context.Context, userID uuid.UUID, filter repositories.TransactionFilter, p utils.PaginationParams) (*entities.TransactionListResult, error) {
	items, total, err := u.txRepo.List(ctx, userID, filter, p)
	if err != nil {
		return nil, err
	}
	return &entities.TransactionListResult{Items: items, TotalCount: total}, nil
}

// ListForUser lists any user's transactions for the review console
func (u *TransactionUsecase) ListForUser(ctx context.Context, principal *entities.Principal, userID uuid.UUID, filter repositories.TransactionFilter, p utils.PaginationParams) (*entities.TransactionListResult, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, err
	}
	return u.List(ctx, userID, filter, p)
}

// Get gets one of the user's transactions
func (u *TransactionUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*entities.Transaction, error) {
	return u.txRepo.GetByID(ctx, userID, id)
}

// Create records a transaction manually
func (u *TransactionUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.TransactionInput) (*entities.Transaction, error) {
	date, err := parseFlexibleDate(input.Date)
	if err != nil {
		return nil, domainerrors.BadRequest("date must be RFC3339 or YYYY-MM-DD")
	}

	tx := &entities.Transaction{
		UserID:        userID,
		TransactionID: input.TransactionID,
		Date:          date,
		CustomerName:  input.CustomerName,
		Amount:        input.Amount,
		Method:        input.Method,
		Status:        entities.TransactionStatus(input.Status),
	}
	if input.CustomerEmail != "" {
		tx.CustomerEmail = null.StringFrom(input.CustomerEmail)
	}
	if input.RiskTier != "" {
		tx.RiskTier = null.StringFrom(input.RiskTier)
	}
	if input.AVSResult != "" {
		tx.AVSResult = null.StringFrom(input.AVSResult)
	}

	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Update rewrites a transaction's editable fields
func (u *TransactionUsecase) Update(ctx context.Context, userID, id uuid.UUID, input *entities.TransactionInput) (*entities.Transaction, error) {
	tx, err := u.txRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	date, err := parseFlexibleDate(input.Date)
	if err != nil {
		return nil, domainerrors.BadRequest("date must be RFC3339 or YYYY-MM-DD")
	}

	tx.TransactionID = input.TransactionID
	tx.Date = date
	tx.CustomerName = input.CustomerName
	tx.CustomerEmail = optionalString(input.CustomerEmail)
	tx.Amount = input.Amount
	tx.Method = input.Method
	tx.Status = entities.TransactionStatus(input.Status)
	tx.RiskTier = optionalString(input.RiskTier)
	tx.AVSResult = optionalString(input.AVSResult)

	if err := u.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Delete removes one of the user's transactions
func (u *TransactionUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return u.txRepo.Delete(ctx, userID, id)
}

func parseFlexibleDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func optionalString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
