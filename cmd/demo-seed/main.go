package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pigbank.backend/internal/config"
	"pigbank.backend/internal/infrastructure/repositories"
	"pigbank.backend/internal/usecases"
	"pigbank.backend/pkg/logger"
)

// demo-seed fills a user's dashboard with generated transactions,
// customers, invoices and payouts, or removes them again. It shares the
// seeder with the /api/v1/demo/seed endpoint.
func main() {
	email := flag.String("email", "", "email of the user to seed")
	userID := flag.String("user", "", "user id to seed (alternative to -email)")
	months := flag.Int("months", 3, "how many months of history to generate")
	teardown := flag.Bool("teardown", false, "remove seeded data instead of creating it")
	flag.Parse()

	if *email == "" && *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: demo-seed -email <address> | -user <uuid> [-months N] [-teardown]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()
	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.Database.URL(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{PrepareStmt: false})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	seeder := usecases.NewSeedUsecase(
		userRepo,
		repositories.NewTransactionRepository(db),
		repositories.NewCustomerRepository(db),
		repositories.NewInvoiceRepository(db),
		repositories.NewPayoutRepository(db),
		repositories.NewUnitOfWork(db),
	)

	ctx := context.Background()

	id, err := resolveUserID(ctx, userRepo, *email, *userID)
	if err != nil {
		log.Fatalf("failed to resolve user: %v", err)
	}

	if *teardown {
		if err := seeder.Teardown(ctx, id); err != nil {
			log.Fatalf("teardown failed: %v", err)
		}
		fmt.Println("demo data removed")
		return
	}

	result, err := seeder.Seed(ctx, id, *months)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	fmt.Printf("seeded %d transactions, %d customers, %d invoices, %d payouts\n",
		result.Transactions, result.Customers, result.Invoices, result.Payouts)
}

func resolveUserID(ctx context.Context, userRepo *repositories.UserRepository, email, rawID string) (uuid.UUID, error) {
	if email != "" {
		user, err := userRepo.GetByEmail(ctx, email)
		if err != nil {
			return uuid.Nil, err
		}
		return user.ID, nil
	}
	return uuid.Parse(rawID)
}
