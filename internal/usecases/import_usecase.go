package usecases

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/domain/repositories"
	"pigbank.backend/internal/infrastructure/bankful"
	"pigbank.backend/pkg/logger"
	"pigbank.backend/pkg/metrics"
)

// ProcessorClient abstracts the Bankful reporting API
type ProcessorClient interface {
	FetchReport(ctx context.Context, creds bankful.Credentials, params bankful.ReportParams) ([]bankful.Record, error)
	VerifyCredentials(ctx context.Context, creds bankful.Credentials) error
}

// ImportUsecase pulls transactions from the payment processor into the
// user's account.
type ImportUsecase struct {
	importRepo repositories.ImportRepository
	txRepo     repositories.TransactionRepository
	processor  ProcessorClient
}

// NewImportUsecase creates a new import usecase
func NewImportUsecase(
	importRepo repositories.ImportRepository,
	txRepo repositories.TransactionRepository,
	processor ProcessorClient,
) *ImportUsecase {
	return &ImportUsecase{
		importRepo: importRepo,
		txRepo:     txRepo,
		processor:  processor,
	}
}

// VerifyCredentials checks the processor credentials without importing
func (u *ImportUsecase) VerifyCredentials(ctx context.Context, input *entities.ImportInput) error {
	return u.processor.VerifyCredentials(ctx, bankful.Credentials{
		Username: input.Username,
		Password: input.Password,
	})
}

// Run executes one import. Rows already present for the user are counted
// as skipped, never duplicated. A provider failure marks the run failed
// and propagates the error.
func (u *ImportUsecase) Run(ctx context.Context, principal *entities.Principal, input *entities.ImportInput) (*entities.ImportResult, error) {
	run := &entities.BankfulImport{
		UserID: principal.UserID,
		Status: entities.ImportStatusInProgress,
	}
	if input.StartDate != "" {
		run.StartDate = null.StringFrom(input.StartDate)
	}
	if input.EndDate != "" {
		run.EndDate = null.StringFrom(input.EndDate)
	}
	if err := u.importRepo.Create(ctx, run); err != nil {
		return nil, err
	}

	records, err := u.processor.FetchReport(ctx, bankful.Credentials{
		Username: input.Username,
		Password: input.Password,
	}, bankful.ReportParams{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Limit:     input.Limit,
	})
	if err != nil {
		u.markFailed(ctx, run, err)
		return nil, err
	}

	imported, skipped := 0, 0
	for _, record := range records {
		inserted, err := u.importRecord(ctx, principal.UserID, record)
		if err != nil {
			u.markFailed(ctx, run, err)
			return nil, err
		}
		if inserted {
			imported++
		} else {
			skipped++
		}
	}

	run.Status = entities.ImportStatusCompleted
	run.ImportedCount = imported
	run.SkippedCount = skipped
	if err := u.importRepo.Update(ctx, run); err != nil {
		return nil, err
	}

	metrics.RecordImport("imported", imported)
	metrics.RecordImport("skipped", skipped)
	logger.Info(ctx, "bankful import finished",
		zap.String("import_id", run.ID.String()),
		zap.Int("imported", imported),
		zap.Int("skipped", skipped))

	return &entities.ImportResult{
		ImportID: run.ID,
		Imported: imported,
		Skipped:  skipped,
	}, nil
}

// History lists the user's recent import runs
func (u *ImportUsecase) History(ctx context.Context, principal *entities.Principal, limit int) ([]*entities.BankfulImport, error) {
	if limit <= 0 {
		limit = 20
	}
	return u.importRepo.ListByUser(ctx, principal.UserID, limit)
}

// importRecord inserts one processor row unless its external id already
// exists for the user.
func (u *ImportUsecase) importRecord(ctx context.Context, userID uuid.UUID, record bankful.Record) (bool, error) {
	externalID := bankful.ExternalID(record.OrderID)

	_, err := u.txRepo.GetByExternalID(ctx, userID, externalID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return false, err
	}

	amount, err := parseAmount(record.Amount)
	if err != nil {
		logger.Warn(ctx, "skipping record with unparseable amount",
			zap.String("order_id", record.OrderID),
			zap.String("amount", record.Amount))
		return false, nil
	}

	tx := &entities.Transaction{
		UserID:        userID,
		TransactionID: externalID,
		Date:          parseRecordDate(record.Date),
		CustomerName:  record.CustomerName,
		Amount:        amount,
		Method:        record.PaymentMethod,
		Status:        bankful.MapStatus(record.Status),
	}
	if record.CustomerEmail != "" {
		tx.CustomerEmail = null.StringFrom(record.CustomerEmail)
	}
	if record.RiskTier != "" {
		tx.RiskTier = null.StringFrom(record.RiskTier)
	}
	if record.AVSResult != "" {
		tx.AVSResult = null.StringFrom(record.AVSResult)
	}

	if err := u.txRepo.Create(ctx, tx); err != nil {
		return false, err
	}
	return true, nil
}

func (u *ImportUsecase) markFailed(ctx context.Context, run *entities.BankfulImport, cause error) {
	run.Status = entities.ImportStatusFailed
	run.ErrorMessage = null.StringFrom(cause.Error())
	if err := u.importRepo.Update(ctx, run); err != nil {
		logger.Error(ctx, "failed to record import failure",
			zap.String("import_id", run.ID.String()),
			zap.Error(err))
	}
}

func parseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", ""))
	return strconv.ParseFloat(cleaned, 64)
}

// parseRecordDate accepts the processor's datetime formats, falling back
// to now so a format drift never loses the row.
func parseRecordDate(raw string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Now()
}
