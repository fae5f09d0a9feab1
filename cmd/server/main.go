package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pigbank.backend/internal/config"
	"pigbank.backend/internal/infrastructure/bankful"
	"pigbank.backend/internal/infrastructure/oauth"
	"pigbank.backend/internal/infrastructure/repositories"
	"pigbank.backend/internal/interfaces/http/handlers"
	"pigbank.backend/internal/interfaces/http/middleware"
	"pigbank.backend/internal/usecases"
	"pigbank.backend/pkg/jwt"
	"pigbank.backend/pkg/logger"
	"pigbank.backend/pkg/metrics"
	"pigbank.backend/pkg/redis"
)

var (
	loadDotenv  = godotenv.Load
	loadCfg     = config.Load
	initLog     = logger.Init
	initRedis   = redis.Init
	initMetrics = metrics.Init
	openDB      = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	initMetrics(cfg.Metrics.Prefix)

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	ownerRepo := repositories.NewOwnerRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	payoutRepo := repositories.NewPayoutRepository(db)
	settingsRepo := repositories.NewCheckoutSettingsRepository(db)
	wixRepo := repositories.NewWixIntegrationRepository(db)
	importRepo := repositories.NewImportRepository(db)
	uow := repositories.NewUnitOfWork(db)

	sessionStore, err := newSessionStore(cfg.Session.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// External clients
	bankfulClient := bankful.NewClient(cfg.Bankful)
	oauthClient := oauth.NewClient(cfg.OAuth)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, sessionStore, oauthClient, cfg.Session.TTL)
	onboardingUsecase := usecases.NewOnboardingUsecase(merchantRepo, ownerRepo, membershipRepo, userRepo, eventRepo, uow)
	reviewUsecase := usecases.NewReviewUsecase(merchantRepo, ownerRepo, membershipRepo, userRepo, noteRepo, eventRepo, settingsRepo, uow)
	teamUsecase := usecases.NewTeamUsecase(membershipRepo, userRepo, merchantRepo, uow)
	platformTeamUsecase := usecases.NewPlatformTeamUsecase(userRepo, uow)
	transactionUsecase := usecases.NewTransactionUsecase(transactionRepo)
	billingUsecase := usecases.NewBillingUsecase(customerRepo, invoiceRepo, payoutRepo)
	settingsUsecase := usecases.NewSettingsUsecase(settingsRepo, wixRepo, merchantRepo)
	importUsecase := usecases.NewImportUsecase(importRepo, transactionRepo, bankfulClient)
	seedUsecase := usecases.NewSeedUsecase(userRepo, transactionRepo, customerRepo, invoiceRepo, payoutRepo, uow)

	sessionCookie := handlers.SessionCookie{
		Name:   cfg.Session.CookieName,
		Domain: cfg.Session.CookieDomain,
		MaxAge: int(cfg.Session.TTL.Seconds()),
		Secure: cfg.Session.CookieSecure,
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase, sessionCookie)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingUsecase)
	reviewHandler := handlers.NewReviewHandler(reviewUsecase)
	teamHandler := handlers.NewTeamHandler(teamUsecase)
	platformTeamHandler := handlers.NewPlatformTeamHandler(platformTeamUsecase)
	transactionHandler := handlers.NewTransactionHandler(transactionUsecase)
	customerHandler := handlers.NewCustomerHandler(billingUsecase)
	invoiceHandler := handlers.NewInvoiceHandler(billingUsecase)
	payoutHandler := handlers.NewPayoutHandler(billingUsecase)
	settingsHandler := handlers.NewSettingsHandler(settingsUsecase)
	importHandler := handlers.NewImportHandler(importUsecase)
	demoHandler := handlers.NewDemoHandler(seedUsecase)

	requireAuth := middleware.RequireAuth(jwtService, sessionStore, cfg.Session.CookieName)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(metrics.Middleware())

	applyCORSMiddleware(r, cfg.Server.CORSAllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         authHandler,
		onboardingHandler:   onboardingHandler,
		reviewHandler:       reviewHandler,
		teamHandler:         teamHandler,
		platformTeamHandler: platformTeamHandler,
		transactionHandler:  transactionHandler,
		customerHandler:     customerHandler,
		invoiceHandler:      invoiceHandler,
		payoutHandler:       payoutHandler,
		settingsHandler:     settingsHandler,
		importHandler:       importHandler,
		demoHandler:         demoHandler,
		requireAuth:         requireAuth,
	})

	// Graceful shutdown: close the DB pool before exiting
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
		sqlDB.Close()
		os.Exit(0)
	}()

	log.Printf("PigBank backend starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
