package usecases

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"pigbank.backend/internal/domain/entities"
	"pigbank.backend/internal/domain/repositories"
	"pigbank.backend/pkg/logger"
)

// SeedResult summarizes one seeding run
type SeedResult struct {
	Transactions int `json:"transactions"`
	Customers    int `json:"customers"`
	Invoices     int `json:"invoices"`
	Payouts      int `json:"payouts"`
}

// SeedUsecase generates synthetic dashboard data for demos. The same
// seeder backs the API endpoints and the offline CLI.
type SeedUsecase struct {
	userRepo     repositories.UserRepository
	txRepo       repositories.TransactionRepository
	customerRepo repositories.CustomerRepository
	invoiceRepo  repositories.InvoiceRepository
	payoutRepo   repositories.PayoutRepository
	uow          repositories.UnitOfWork
}

// NewSeedUsecase creates a new seed usecase
func NewSeedUsecase(
	userRepo repositories.UserRepository,
	txRepo repositories.TransactionRepository,
	customerRepo repositories.CustomerRepository,
	invoiceRepo repositories.InvoiceRepository,
	payoutRepo repositories.PayoutRepository,
	uow repositories.UnitOfWork,
) *SeedUsecase {
	return &SeedUsecase{
		userRepo:     userRepo,
		txRepo:       txRepo,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		payoutRepo:   payoutRepo,
		uow:          uow,
	}
}

var (
	demoFirstNames = []string{"Ava", "Noah", "Mia", "Liam", "Zoe", "Ethan", "Ivy", "Mason", "Ruby", "Oscar"}
	demoLastNames  = []string{"Reyes", "Kim", "Patel", "Nguyen", "Okafor", "Silva", "Haas", "Moreau", "Tanaka", "Webb"}
	demoMethods    = []string{"Visa", "Mastercard", "Amex", "Discover", "ACH"}
	demoStatuses   = []entities.TransactionStatus{
		entities.TransactionCompleted,
		entities.TransactionCompleted,
		entities.TransactionCompleted,
		entities.TransactionPending,
		entities.TransactionRefunded,
		entities.TransactionFailed,
	}
)

// Seed populates the user's account with several months of synthetic data
// and marks the account demo-active. Re-seeding replaces the previous set.
func (u *SeedUsecase) Seed(ctx context.Context, userID uuid.UUID, months int) (*SeedResult, error) {
	if months <= 0 {
		months = 3
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	result := &SeedResult{}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.teardown(txCtx, userID); err != nil {
			return err
		}

		customers, err := u.seedCustomers(txCtx, userID, rng)
		if err != nil {
			return err
		}
		result.Customers = len(customers)

		txCount, err := u.seedTransactions(txCtx, userID, customers, months, rng)
		if err != nil {
			return err
		}
		result.Transactions = txCount

		invCount, err := u.seedInvoices(txCtx, userID, customers, rng)
		if err != nil {
			return err
		}
		result.Invoices = invCount

		payoutCount, err := u.seedPayouts(txCtx, userID, months, rng)
		if err != nil {
			return err
		}
		result.Payouts = payoutCount

		user.DemoActive = true
		return u.userRepo.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "demo data seeded",
		zap.String("user_id", userID.String()),
		zap.Int("transactions", result.Transactions),
		zap.Int("customers", result.Customers))
	return result, nil
}

// Teardown removes all of the user's dashboard data and clears the flag
func (u *SeedUsecase) Teardown(ctx context.Context, userID uuid.UUID) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.teardown(txCtx, userID); err != nil {
			return err
		}
		user.DemoActive = false
		return u.userRepo.Update(txCtx, user)
	})
}

func (u *SeedUsecase) teardown(ctx context.Context, userID uuid.UUID) error {
	if err := u.txRepo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	if err := u.invoiceRepo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	if err := u.customerRepo.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	return u.payoutRepo.DeleteAllForUser(ctx, userID)
}

func (u *SeedUsecase) seedCustomers(ctx context.Context, userID uuid.UUID, rng *rand.Rand) ([]*entities.Customer, error) {
	count := 8 + rng.Intn(8)
	customers := make([]*entities.Customer, 0, count)
	for i := 0; i < count; i++ {
		first := demoFirstNames[rng.Intn(len(demoFirstNames))]
		last := demoLastNames[rng.Intn(len(demoLastNames))]
		customer := &entities.Customer{
			UserID: userID,
			Name:   first + " " + last,
			Email:  null.StringFrom(fmt.Sprintf("%s.%s%d@example.com", first, last, i)),
		}
		if rng.Intn(2) == 0 {
			customer.Phone = null.StringFrom(fmt.Sprintf("+1555%07d", rng.Intn(10000000)))
		}
		if err := u.customerRepo.Create(ctx, customer); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

func (u *SeedUsecase) seedTransactions(ctx context.Context, userID uuid.UUID, customers []*entities.Customer, months int, rng *rand.Rand) (int, error) {
	now := time.Now()
	count := 0
	for m := 0; m < months; m++ {
		perMonth := 20 + rng.Intn(25)
		for i := 0; i < perMonth; i++ {
			customer := customers[rng.Intn(len(customers))]
			date := now.AddDate(0, -m, 0).Add(-time.Duration(rng.Intn(28*24)) * time.Hour)

			tx := &entities.Transaction{
				UserID:        userID,
				TransactionID: fmt.Sprintf("DEMO-%s", uuid.New().String()[:13]),
				Date:          date,
				CustomerName:  customer.Name,
				CustomerEmail: customer.Email,
				Amount:        float64(500+rng.Intn(49500)) / 100,
				Method:        demoMethods[rng.Intn(len(demoMethods))],
				Status:        demoStatuses[rng.Intn(len(demoStatuses))],
			}
			if err := u.txRepo.Create(ctx, tx); err != nil {
				return 0, err
			}
			count++
		}
	}
	return count, nil
}

func (u *SeedUsecase) seedInvoices(ctx context.Context, userID uuid.UUID, customers []*entities.Customer, rng *rand.Rand) (int, error) {
	statuses := []entities.InvoiceStatus{
		entities.InvoiceStatusDraft,
		entities.InvoiceStatusSent,
		entities.InvoiceStatusPaid,
		entities.InvoiceStatusPaid,
		entities.InvoiceStatusOverdue,
	}

	count := 5 + rng.Intn(6)
	for i := 0; i < count; i++ {
		customer := customers[rng.Intn(len(customers))]
		items := make([]*entities.InvoiceItem, 0, 3)
		total := 0.0
		for j := 0; j <= rng.Intn(3); j++ {
			qty := 1 + rng.Intn(5)
			price := float64(1000+rng.Intn(19000)) / 100
			items = append(items, &entities.InvoiceItem{
				Description: fmt.Sprintf("Service line %d", j+1),
				Quantity:    qty,
				UnitPrice:   price,
			})
			total += float64(qty) * price
		}

		invoice := &entities.Invoice{
			UserID:        userID,
			Number:        fmt.Sprintf("INV-%04d", 1000+i),
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			Status:        statuses[rng.Intn(len(statuses))],
			Amount:        total,
			DueDate:       null.TimeFrom(time.Now().AddDate(0, 0, 14-rng.Intn(45))),
			Items:         items,
		}
		if err := u.invoiceRepo.Create(ctx, invoice); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func (u *SeedUsecase) seedPayouts(ctx context.Context, userID uuid.UUID, months int, rng *rand.Rand) (int, error) {
	now := time.Now()
	count := 0
	for m := 0; m < months; m++ {
		// Roughly weekly payouts
		for w := 0; w < 4; w++ {
			status := entities.PayoutStatusPaid
			if m == 0 && w == 0 {
				status = entities.PayoutStatusInTransit
			}
			payout := &entities.Payout{
				UserID:      userID,
				Amount:      float64(20000+rng.Intn(180000)) / 100,
				Status:      status,
				Method:      "Bank transfer",
				ArrivalDate: null.TimeFrom(now.AddDate(0, -m, -7*w)),
			}
			if err := u.payoutRepo.Create(ctx, payout); err != nil {
				return 0, err
			}
			count++
		}
	}
	return count, nil
}
