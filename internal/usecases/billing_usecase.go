package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"pigbank.backend/internal/domain/authz"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/domain/repositories"
	"pigbank.backend/pkg/utils"
)

// BillingUsecase handles per-user customers, invoices, and payouts
type BillingUsecase struct {
	customerRepo repositories.CustomerRepository
	invoiceRepo  repositories.InvoiceRepository
	payoutRepo   repositories.PayoutRepository
}

// NewBillingUsecase creates a new billing usecase
func NewBillingUsecase(
	customerRepo repositories.CustomerRepository,
	invoiceRepo repositories.InvoiceRepository,
	payoutRepo repositories.PayoutRepository,
) *BillingUsecase {
	return &BillingUsecase{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		payoutRepo:   payoutRepo,
	}
}

// ListCustomers lists the user's customers
func (u *BillingUsecase) ListCustomers(ctx context.Context, userID uuid.UUID, search string, p utils.PaginationParams) ([]*entities.Customer, int64, error) {
	return u.customerRepo.List(ctx, userID, search, p)
}

// ListCustomersForUser lists any user's customers for the review console
func (u *BillingUsecase) ListCustomersForUser(ctx context.Context, principal *entities.Principal, userID uuid.UUID, search string, p utils.PaginationParams) ([]*entities.Customer, int64, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, 0, err
	}
	return u.customerRepo.List(ctx, userID, search, p)
}

// GetCustomer gets one of the user's customers
func (u *BillingUsecase) GetCustomer(ctx context.Context, userID, id uuid.UUID) (*entities.Customer, error) {
	return u.customerRepo.GetByID(ctx, userID, id)
}

// CreateCustomer records a customer
func (u *BillingUsecase) CreateCustomer(ctx context.Context, userID uuid.UUID, input *entities.CustomerInput) (*entities.Customer, error) {
	customer := &entities.Customer{
		UserID: userID,
		Name:   input.Name,
		Email:  optionalString(input.Email),
		Phone:  optionalString(input.Phone),
	}
	if err := u.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomer rewrites a customer record
func (u *BillingUsecase) UpdateCustomer(ctx context.Context, userID, id uuid.UUID, input *entities.CustomerInput) (*entities.Customer, error) {
	customer, err := u.customerRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.Email = optionalString(input.Email)
	customer.Phone = optionalString(input.Phone)

	if err := u.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes one of the user's customers
func (u *BillingUsecase) DeleteCustomer(ctx context.Context, userID, id uuid.UUID) error {
	return u.customerRepo.Delete(ctx, userID, id)
}

// ListInvoices lists the user's invoices filtered by status
func (u *BillingUsecase) ListInvoices(ctx context.Context, userID uuid.UUID, status entities.InvoiceStatus, p utils.PaginationParams) ([]*entities.Invoice, int64, error) {
	return u.invoiceRepo.List(ctx, userID, status, p)
}

// ListInvoicesForUser lists any user's invoices for the review console
func (u *BillingUsecase) ListInvoicesForUser(ctx context.Context, principal *entities.Principal, userID uuid.UUID, status entities.InvoiceStatus, p utils.PaginationParams) ([]*entities.Invoice, int64, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, 0, err
	}
	return u.invoiceRepo.List(ctx, userID, status, p)
}

// GetInvoice gets one of the user's invoices with its items
func (u *BillingUsecase) GetInvoice(ctx context.Context, userID, id uuid.UUID) (*entities.Invoice, error) {
	return u.invoiceRepo.GetByID(ctx, userID, id)
}

// CreateInvoice records an invoice. The amount is the sum of its items.
func (u *BillingUsecase) CreateInvoice(ctx context.Context, userID uuid.UUID, input *entities.InvoiceInput) (*entities.Invoice, error) {
	invoice, err := invoiceFromInput(userID, input)
	if err != nil {
		return nil, err
	}
	if err := u.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// UpdateInvoice rewrites an invoice. Items are replaced wholesale.
func (u *BillingUsecase) UpdateInvoice(ctx context.Context, userID, id uuid.UUID, input *entities.InvoiceInput) (*entities.Invoice, error) {
	existing, err := u.invoiceRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	invoice, err := invoiceFromInput(userID, input)
	if err != nil {
		return nil, err
	}
	invoice.ID = existing.ID

	if err := u.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return u.invoiceRepo.GetByID(ctx, userID, id)
}

// DeleteInvoice removes one of the user's invoices and its items
func (u *BillingUsecase) DeleteInvoice(ctx context.Context, userID, id uuid.UUID) error {
	return u.invoiceRepo.Delete(ctx, userID, id)
}

// ListPayouts lists the user's payouts filtered by status
func (u *BillingUsecase) ListPayouts(ctx context.Context, userID uuid.UUID, status entities.PayoutStatus, p utils.PaginationParams) ([]*entities.Payout, int64, error) {
	return u.payoutRepo.List(ctx, userID, status, p)
}

// ListPayoutsForUser lists any user's payouts for the review console
func (u *BillingUsecase) ListPayoutsForUser(ctx context.Context, principal *entities.Principal, userID uuid.UUID, status entities.PayoutStatus, p utils.PaginationParams) ([]*entities.Payout, int64, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, 0, err
	}
	return u.payoutRepo.List(ctx, userID, status, p)
}

// GetPayout gets one of the user's payouts
func (u *BillingUsecase) GetPayout(ctx context.Context, userID, id uuid.UUID) (*entities.Payout, error) {
	return u.payoutRepo.GetByID(ctx, userID, id)
}

// CreatePayout records a payout
func (u *BillingUsecase) CreatePayout(ctx context.Context, userID uuid.UUID, input *entities.PayoutInput) (*entities.Payout, error) {
	payout, err := payoutFromInput(userID, input)
	if err != nil {
		return nil, err
	}
	if err := u.payoutRepo.Create(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

// UpdatePayout rewrites a payout record
func (u *BillingUsecase) UpdatePayout(ctx context.Context, userID, id uuid.UUID, input *entities.PayoutInput) (*entities.Payout, error) {
	existing, err := u.payoutRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	payout, err := payoutFromInput(userID, input)
	if err != nil {
		return nil, err
	}
	payout.ID = existing.ID
	payout.CreatedAt = existing.CreatedAt

	if err := u.payoutRepo.Update(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

// DeletePayout removes one of the user's payouts
func (u *BillingUsecase) DeletePayout(ctx context.Context, userID, id uuid.UUID) error {
	return u.payoutRepo.Delete(ctx, userID, id)
}

func invoiceFromInput(userID uuid.UUID, input *entities.InvoiceInput) (*entities.Invoice, error) {
	status := input.Status
	if status == "" {
		status = entities.InvoiceStatusDraft
	}

	invoice := &entities.Invoice{
		UserID:        userID,
		Number:        input.Number,
		CustomerName:  input.CustomerName,
		CustomerEmail: optionalString(input.CustomerEmail),
		Status:        status,
	}
	if input.DueDate != "" {
		due, err := parseFlexibleDate(input.DueDate)
		if err != nil {
			return nil, domainerrors.BadRequest("dueDate must be RFC3339 or YYYY-MM-DD")
		}
		invoice.DueDate = null.TimeFrom(due)
	}

	total := 0.0
	for _, item := range input.Items {
		invoice.Items = append(invoice.Items, &entities.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
		total += float64(item.Quantity) * item.UnitPrice
	}
	invoice.Amount = total
	return invoice, nil
}

func payoutFromInput(userID uuid.UUID, input *entities.PayoutInput) (*entities.Payout, error) {
	status := input.Status
	if status == "" {
		status = entities.PayoutStatusPending
	}

	payout := &entities.Payout{
		UserID: userID,
		Amount: input.Amount,
		Status: status,
		Method: input.Method,
	}
	if input.ArrivalDate != "" {
		arrival, err := parseFlexibleDate(input.ArrivalDate)
		if err != nil {
			return nil, domainerrors.BadRequest("arrivalDate must be RFC3339 or YYYY-MM-DD")
		}
		payout.ArrivalDate = null.TimeFrom(arrival)
	}
	return payout, nil
}
