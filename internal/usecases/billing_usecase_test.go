package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/usecases"
	"pigbank.backend/pkg/utils"
)

func newBillingFixture() (*usecases.BillingUsecase, *MockCustomerRepository, *MockInvoiceRepository, *MockPayoutRepository) {
	customerRepo := new(MockCustomerRepository)
	invoiceRepo := new(MockInvoiceRepository)
	payoutRepo := new(MockPayoutRepository)
	return usecases.NewBillingUsecase(customerRepo, invoiceRepo, payoutRepo), customerRepo, invoiceRepo, payoutRepo
}

func TestBilling_CreateInvoice_SumsItems(t *testing.T) {
	uc, _, invoiceRepo, _ := newBillingFixture()
	userID := uuid.New()

	invoiceRepo.On("Create", mock.Anything, mock.MatchedBy(func(inv *entities.Invoice) bool {
		return inv.Amount == 2*19.99+49.50 && inv.Status == entities.InvoiceStatusDraft && len(inv.Items) == 2
	})).Return(nil).Once()

	invoice, err := uc.CreateInvoice(context.Background(), userID, &entities.InvoiceInput{
		Number:       "INV-0001",
		CustomerName: "Acme",
		Items: []entities.InvoiceItemInput{
			{Description: "Widgets", Quantity: 2, UnitPrice: 19.99},
			{Description: "Setup", Quantity: 1, UnitPrice: 49.50},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 89.48, invoice.Amount, 0.001)
}

func TestBilling_CreateInvoice_BadDueDate(t *testing.T) {
	uc, _, invoiceRepo, _ := newBillingFixture()

	_, err := uc.CreateInvoice(context.Background(), uuid.New(), &entities.InvoiceInput{
		Number:       "INV-0002",
		CustomerName: "Acme",
		DueDate:      "next tuesday",
		Items:        []entities.InvoiceItemInput{{Description: "X", Quantity: 1, UnitPrice: 1}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBilling_UpdateInvoice_NotFoundOutsideScope(t *testing.T) {
	uc, _, invoiceRepo, _ := newBillingFixture()
	userID := uuid.New()
	invoiceID := uuid.New()

	invoiceRepo.On("GetByID", mock.Anything, userID, invoiceID).Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.UpdateInvoice(context.Background(), userID, invoiceID, &entities.InvoiceInput{
		Number:       "INV-0001",
		CustomerName: "Acme",
		Items:        []entities.InvoiceItemInput{{Description: "X", Quantity: 1, UnitPrice: 1}},
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBilling_CreateCustomer(t *testing.T) {
	uc, customerRepo, _, _ := newBillingFixture()
	userID := uuid.New()

	customerRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.Customer) bool {
		return c.UserID == userID && c.Name == "Jo Park" && !c.Phone.Valid
	})).Return(nil).Once()

	customer, err := uc.CreateCustomer(context.Background(), userID, &entities.CustomerInput{
		Name: "Jo Park", Email: "jo@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", customer.Email.String)
}

func TestBilling_CreatePayout_DefaultsPending(t *testing.T) {
	uc, _, _, payoutRepo := newBillingFixture()

	payoutRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.Payout) bool {
		return p.Status == entities.PayoutStatusPending
	})).Return(nil).Once()

	payout, err := uc.CreatePayout(context.Background(), uuid.New(), &entities.PayoutInput{
		Amount: 1200.00, Method: "Bank transfer",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.PayoutStatusPending, payout.Status)
}

func TestBilling_DeleteCustomer_Scoped(t *testing.T) {
	uc, customerRepo, _, _ := newBillingFixture()
	userID := uuid.New()
	customerID := uuid.New()

	customerRepo.On("Delete", mock.Anything, userID, customerID).Return(domainerrors.ErrNotFound).Once()

	err := uc.DeleteCustomer(context.Background(), userID, customerID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBilling_ListInvoicesForUser_PlatformOnly(t *testing.T) {
	uc, _, invoiceRepo, _ := newBillingFixture()
	targetID := uuid.New()
	page := utils.GetPaginationParams(1, 0)

	merchant := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	_, _, err := uc.ListInvoicesForUser(context.Background(), merchant, targetID, "", page)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	invoiceRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	invoiceRepo.On("List", mock.Anything, targetID, entities.InvoiceStatus(""), page).
		Return([]*entities.Invoice{{UserID: targetID}}, int64(1), nil).Once()

	invoices, total, err := uc.ListInvoicesForUser(context.Background(), staffPrincipal, targetID, "", page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, invoices, 1)
	assert.Equal(t, targetID, invoices[0].UserID)
}

func TestBilling_ListPayoutsForUser_PlatformOnly(t *testing.T) {
	uc, _, _, payoutRepo := newBillingFixture()
	targetID := uuid.New()
	page := utils.GetPaginationParams(1, 0)

	merchant := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	_, _, err := uc.ListPayoutsForUser(context.Background(), merchant, targetID, "", page)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	payoutRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	payoutRepo.On("List", mock.Anything, targetID, entities.PayoutStatus(""), page).
		Return([]*entities.Payout{{UserID: targetID}}, int64(1), nil).Once()

	_, total, err := uc.ListPayoutsForUser(context.Background(), staffPrincipal, targetID, "", page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestBilling_ListCustomersForUser_PlatformOnly(t *testing.T) {
	uc, customerRepo, _, _ := newBillingFixture()
	targetID := uuid.New()
	page := utils.GetPaginationParams(1, 0)

	merchant := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	_, _, err := uc.ListCustomersForUser(context.Background(), merchant, targetID, "", page)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	customerRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	customerRepo.On("List", mock.Anything, targetID, "", page).
		Return([]*entities.Customer{{UserID: targetID}}, int64(1), nil).Once()

	_, total, err := uc.ListCustomersForUser(context.Background(), staffPrincipal, targetID, "", page)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}
