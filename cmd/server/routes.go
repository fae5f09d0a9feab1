package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pigbank.backend/internal/interfaces/http/handlers"
	"pigbank.backend/internal/interfaces/http/middleware"
	"pigbank.backend/pkg/metrics"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	onboardingHandler   *handlers.OnboardingHandler
	reviewHandler       *handlers.ReviewHandler
	teamHandler         *handlers.TeamHandler
	platformTeamHandler *handlers.PlatformTeamHandler
	transactionHandler  *handlers.TransactionHandler
	customerHandler     *handlers.CustomerHandler
	invoiceHandler      *handlers.InvoiceHandler
	payoutHandler       *handlers.PayoutHandler
	settingsHandler     *handlers.SettingsHandler
	importHandler       *handlers.ImportHandler
	demoHandler         *handlers.DemoHandler
	requireAuth         gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/oauth/redirect", d.authHandler.OAuthRedirect)
			auth.GET("/oauth/callback", d.authHandler.OAuthCallback)
			auth.GET("/me", d.requireAuth, d.authHandler.GetMe)
			auth.PUT("/me", d.requireAuth, d.authHandler.UpdateMe)
			auth.POST("/change-password", d.requireAuth, d.authHandler.ChangePassword)
		}

		// Onboarding routes (protected)
		onboarding := v1.Group("/onboarding")
		onboarding.Use(d.requireAuth)
		{
			onboarding.GET("/application", d.onboardingHandler.GetApplication)
			onboarding.PUT("/application", d.onboardingHandler.UpdateApplication)
			onboarding.POST("/submit", d.onboardingHandler.Submit)
			onboarding.GET("/owners", d.onboardingHandler.ListOwners)
			onboarding.POST("/owners", d.onboardingHandler.AddOwner)
			onboarding.PUT("/owners/:id", d.onboardingHandler.UpdateOwner)
			onboarding.DELETE("/owners/:id", d.onboardingHandler.RemoveOwner)
		}

		// Merchant team routes (protected)
		team := v1.Group("/team")
		team.Use(d.requireAuth)
		{
			team.GET("", d.teamHandler.List)
			team.POST("/invite", d.teamHandler.Invite)
			team.PUT("/:id/role", d.teamHandler.ChangeRole)
			team.DELETE("/:id", d.teamHandler.Remove)
		}

		// Dashboard routes (protected)
		transactions := v1.Group("/transactions")
		transactions.Use(d.requireAuth)
		{
			transactions.GET("", d.transactionHandler.List)
			transactions.POST("", middleware.IdempotencyMiddleware(), d.transactionHandler.Create)
			transactions.GET("/:id", d.transactionHandler.Get)
			transactions.PUT("/:id", d.transactionHandler.Update)
			transactions.DELETE("/:id", d.transactionHandler.Delete)
		}

		customers := v1.Group("/customers")
		customers.Use(d.requireAuth)
		{
			customers.GET("", d.customerHandler.List)
			customers.POST("", d.customerHandler.Create)
			customers.GET("/:id", d.customerHandler.Get)
			customers.PUT("/:id", d.customerHandler.Update)
			customers.DELETE("/:id", d.customerHandler.Delete)
		}

		invoices := v1.Group("/invoices")
		invoices.Use(d.requireAuth)
		{
			invoices.GET("", d.invoiceHandler.List)
			invoices.POST("", d.invoiceHandler.Create)
			invoices.GET("/:id", d.invoiceHandler.Get)
			invoices.PUT("/:id", d.invoiceHandler.Update)
			invoices.DELETE("/:id", d.invoiceHandler.Delete)
		}

		payouts := v1.Group("/payouts")
		payouts.Use(d.requireAuth)
		{
			payouts.GET("", d.payoutHandler.List)
			payouts.POST("", d.payoutHandler.Create)
			payouts.GET("/:id", d.payoutHandler.Get)
			payouts.PUT("/:id", d.payoutHandler.Update)
			payouts.DELETE("/:id", d.payoutHandler.Delete)
		}

		// Settings routes (protected)
		settings := v1.Group("/settings")
		settings.Use(d.requireAuth)
		{
			settings.GET("/checkout", d.settingsHandler.GetCheckout)
			settings.PUT("/checkout", d.settingsHandler.UpdateCheckout)
			settings.GET("/wix", d.settingsHandler.GetWix)
			settings.PUT("/wix", d.settingsHandler.UpsertWix)
			settings.DELETE("/wix", d.settingsHandler.DeleteWix)
		}

		// Bankful import routes (protected)
		imports := v1.Group("/imports/bankful")
		imports.Use(d.requireAuth)
		{
			imports.POST("", d.importHandler.Run)
			imports.POST("/verify", d.importHandler.VerifyCredentials)
			imports.GET("", d.importHandler.History)
		}

		// Demo seeding routes (protected)
		demo := v1.Group("/demo")
		demo.Use(d.requireAuth)
		{
			demo.POST("/seed", d.demoHandler.Seed)
			demo.DELETE("/seed", d.demoHandler.Teardown)
		}

		// Review console (platform staff and admins; admin-only
		// actions are enforced in the usecases)
		admin := v1.Group("/admin")
		admin.Use(d.requireAuth, middleware.RequirePlatform())
		{
			admin.GET("/merchants", d.reviewHandler.List)
			admin.GET("/merchants/counts", d.reviewHandler.Counts)
			admin.GET("/merchants/:id", d.reviewHandler.Detail)
			admin.POST("/merchants/:id/approve", d.reviewHandler.Approve)
			admin.POST("/merchants/:id/reject", d.reviewHandler.Reject)
			admin.POST("/merchants/:id/request-action", d.reviewHandler.RequestAction)
			admin.POST("/merchants/:id/start-review", d.reviewHandler.StartReview)
			admin.POST("/merchants/:id/suspend", d.reviewHandler.Suspend)
			admin.DELETE("/merchants/:id", d.reviewHandler.Delete)
			admin.GET("/merchants/:id/notes", d.reviewHandler.ListNotes)
			admin.POST("/merchants/:id/notes", d.reviewHandler.AddNote)
			admin.GET("/merchants/:id/events", d.reviewHandler.ListEvents)

			// View-as-merchant: read-only access to any user's records
			admin.GET("/users/:id/transactions", d.transactionHandler.ListForUser)
			admin.GET("/users/:id/customers", d.customerHandler.ListForUser)
			admin.GET("/users/:id/invoices", d.invoiceHandler.ListForUser)
			admin.GET("/users/:id/payouts", d.payoutHandler.ListForUser)

			admin.GET("/operators", d.platformTeamHandler.List)
			admin.POST("/operators", d.platformTeamHandler.Invite)
			admin.PUT("/operators/:id/role", d.platformTeamHandler.ChangeRole)
			admin.DELETE("/operators/:id", d.platformTeamHandler.Remove)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		for _, allowed := range allowedOrigins {
			if allowed != "" && (allowed == "*" || allowed == origin) {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				break
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "pigbank-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", metrics.Handler())
}
