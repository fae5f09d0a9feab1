package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"pigbank.backend/internal/domain/entities"
	"pigbank.backend/internal/domain/repositories"
	"pigbank.backend/internal/infrastructure/bankful"
	"pigbank.backend/internal/infrastructure/oauth"
	"pigbank.backend/pkg/redis"
	"pigbank.backend/pkg/utils"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	m.Called(ctx, fn)
	return fn(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) ListByRoles(ctx context.Context, roles []entities.UserRole) ([]*entities.User, error) {
	args := m.Called(ctx, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role entities.UserRole) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

// Mock MerchantRepository
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	return m.Called(ctx, merchant).Error(0)
}

func (m *MockMerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	return m.Called(ctx, merchant).Error(0)
}

func (m *MockMerchantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockMerchantRepository) List(ctx context.Context, status entities.MerchantStatus, search string, p utils.PaginationParams) ([]*entities.Merchant, int64, error) {
	args := m.Called(ctx, status, search, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Merchant), args.Get(1).(int64), args.Error(2)
}

func (m *MockMerchantRepository) CountByStatus(ctx context.Context) (map[entities.MerchantStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.MerchantStatus]int64), args.Error(1)
}

func (m *MockMerchantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock OwnerRepository
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) Create(ctx context.Context, owner *entities.MerchantOwner) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *MockOwnerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.MerchantOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MerchantOwner), args.Error(1)
}

func (m *MockOwnerRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantOwner, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MerchantOwner), args.Error(1)
}

func (m *MockOwnerRepository) Update(ctx context.Context, owner *entities.MerchantOwner) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOwnerRepository) DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error {
	return m.Called(ctx, merchantID).Error(0)
}

// Mock MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Create(ctx context.Context, membership *entities.Membership) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *MockMembershipRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Membership), args.Error(1)
}

func (m *MockMembershipRepository) GetByUserAndMerchant(ctx context.Context, userID, merchantID uuid.UUID) (*entities.Membership, error) {
	args := m.Called(ctx, userID, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Membership), args.Error(1)
}

func (m *MockMembershipRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*entities.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Membership), args.Error(1)
}

func (m *MockMembershipRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.TeamMember, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TeamMember), args.Error(1)
}

func (m *MockMembershipRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.MerchantRole) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockMembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMembershipRepository) DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error {
	return m.Called(ctx, merchantID).Error(0)
}

func (m *MockMembershipRepository) CountByRole(ctx context.Context, merchantID uuid.UUID, role entities.MerchantRole) (int64, error) {
	args := m.Called(ctx, merchantID, role)
	return args.Get(0).(int64), args.Error(1)
}

// Mock NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) Create(ctx context.Context, note *entities.MerchantNote) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNoteRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantNote, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MerchantNote), args.Error(1)
}

func (m *MockNoteRepository) DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error {
	return m.Called(ctx, merchantID).Error(0)
}

// Mock EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *entities.MerchantEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.MerchantEvent, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MerchantEvent), args.Error(1)
}

func (m *MockEventRepository) DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error {
	return m.Called(ctx, merchantID).Error(0)
}

// Mock TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByExternalID(ctx context.Context, userID uuid.UUID, externalID string) (*entities.Transaction, error) {
	args := m.Called(ctx, userID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, userID uuid.UUID, filter repositories.TransactionFilter, p utils.PaginationParams) ([]*entities.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *entities.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockTransactionRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// Mock CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Customer, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context, userID uuid.UUID, search string, p utils.PaginationParams) ([]*entities.Customer, int64, error) {
	args := m.Called(ctx, userID, search, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *entities.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockCustomerRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// Mock InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *entities.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Invoice, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context, userID uuid.UUID, status entities.InvoiceStatus, p utils.PaginationParams) ([]*entities.Invoice, int64, error) {
	args := m.Called(ctx, userID, status, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *entities.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockInvoiceRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// Mock PayoutRepository
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) Create(ctx context.Context, payout *entities.Payout) error {
	return m.Called(ctx, payout).Error(0)
}

func (m *MockPayoutRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Payout, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Payout), args.Error(1)
}

func (m *MockPayoutRepository) List(ctx context.Context, userID uuid.UUID, status entities.PayoutStatus, p utils.PaginationParams) ([]*entities.Payout, int64, error) {
	args := m.Called(ctx, userID, status, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Payout), args.Get(1).(int64), args.Error(2)
}

func (m *MockPayoutRepository) Update(ctx context.Context, payout *entities.Payout) error {
	return m.Called(ctx, payout).Error(0)
}

func (m *MockPayoutRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockPayoutRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// Mock CheckoutSettingsRepository
type MockCheckoutSettingsRepository struct {
	mock.Mock
}

func (m *MockCheckoutSettingsRepository) GetByMerchant(ctx context.Context, merchantID uuid.UUID) (*entities.CheckoutSettings, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.CheckoutSettings), args.Error(1)
}

func (m *MockCheckoutSettingsRepository) Upsert(ctx context.Context, settings *entities.CheckoutSettings) error {
	return m.Called(ctx, settings).Error(0)
}

func (m *MockCheckoutSettingsRepository) DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error {
	return m.Called(ctx, merchantID).Error(0)
}

// Mock WixIntegrationRepository
type MockWixIntegrationRepository struct {
	mock.Mock
}

func (m *MockWixIntegrationRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*entities.WixIntegration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WixIntegration), args.Error(1)
}

func (m *MockWixIntegrationRepository) Upsert(ctx context.Context, integration *entities.WixIntegration) error {
	return m.Called(ctx, integration).Error(0)
}

func (m *MockWixIntegrationRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// Mock ImportRepository
type MockImportRepository struct {
	mock.Mock
}

func (m *MockImportRepository) Create(ctx context.Context, imp *entities.BankfulImport) error {
	return m.Called(ctx, imp).Error(0)
}

func (m *MockImportRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.BankfulImport, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BankfulImport), args.Error(1)
}

func (m *MockImportRepository) Update(ctx context.Context, imp *entities.BankfulImport) error {
	return m.Called(ctx, imp).Error(0)
}

func (m *MockImportRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.BankfulImport, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BankfulImport), args.Error(1)
}

// Mock ProcessorClient
type MockProcessorClient struct {
	mock.Mock
}

func (m *MockProcessorClient) FetchReport(ctx context.Context, creds bankful.Credentials, params bankful.ReportParams) ([]bankful.Record, error) {
	args := m.Called(ctx, creds, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bankful.Record), args.Error(1)
}

func (m *MockProcessorClient) VerifyCredentials(ctx context.Context, creds bankful.Credentials) error {
	return m.Called(ctx, creds).Error(0)
}

// Mock SessionManager
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error {
	return m.Called(ctx, sessionID, data, expiration).Error(0)
}

func (m *MockSessionManager) GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*redis.SessionData), args.Error(1)
}

func (m *MockSessionManager) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

// Mock IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockIdentityProvider) Exchange(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) FetchUserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}
