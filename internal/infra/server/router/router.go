// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	userController        *controller.UserController
	ledgerController      *controller.LedgerController
	accountController     *controller.AccountController
	transactionController *controller.TransactionController
	categoryController    *controller.CategoryController
	exportController      *controller.ExportController
	insightController     *controller.InsightController
	backupController      *controller.BackupController
	loginRateLimiter      *middleware.RateLimiter
	insightRateLimiter    *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
// A nil controller leaves its routes unregistered.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	ledgerController *controller.LedgerController,
	accountController *controller.AccountController,
	transactionController *controller.TransactionController,
	categoryController *controller.CategoryController,
	exportController *controller.ExportController,
	insightController *controller.InsightController,
	backupController *controller.BackupController,
	loginRateLimiter *middleware.RateLimiter,
	insightRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		userController:        userController,
		ledgerController:      ledgerController,
		accountController:     accountController,
		transactionController: transactionController,
		categoryController:    categoryController,
		exportController:      exportController,
		insightController:     insightController,
		backupController:      backupController,
		loginRateLimiter:      loginRateLimiter,
		insightRateLimiter:    insightRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		if r.authMiddleware == nil {
			return
		}

		if r.userController != nil {
			users := v1.Group("/users")
			users.Use(r.authMiddleware.Authenticate())
			{
				users.GET("/me", r.userController.GetProfile)
				users.PATCH("/me", r.userController.UpdateProfile)
				users.DELETE("/me", r.userController.DeleteAccount)
			}
		}

		if r.ledgerController != nil {
			ledger := v1.Group("/ledger")
			ledger.Use(r.authMiddleware.Authenticate())
			{
				ledger.GET("", r.ledgerController.Overview)
				ledger.PUT("/currency", r.ledgerController.SetCurrency)
				ledger.DELETE("", r.ledgerController.Reset)
				ledger.GET("/verify", r.ledgerController.Verify)
			}
		}

		if r.accountController != nil {
			accounts := v1.Group("/accounts")
			accounts.Use(r.authMiddleware.Authenticate())
			{
				accounts.GET("", r.accountController.List)
				accounts.POST("", r.accountController.Create)
				accounts.PATCH("/:id", r.accountController.Rename)
				accounts.DELETE("/:id", r.accountController.Delete)
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("/flows", r.transactionController.RecordFlow)
				transactions.POST("/transfers", r.transactionController.RecordTransfer)
				transactions.PATCH("/:id", r.transactionController.Edit)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.categoryController != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		if r.exportController != nil {
			export := v1.Group("/export")
			export.Use(r.authMiddleware.Authenticate())
			{
				export.GET("/csv", r.exportController.CSV)
			}
		}

		if r.insightController != nil {
			insights := v1.Group("/insights")
			insights.Use(r.authMiddleware.Authenticate())
			if r.insightRateLimiter != nil {
				// Keyed by user, so it must run after authentication.
				insights.Use(r.insightRateLimiter.Middleware())
			}
			{
				insights.POST("", r.insightController.Generate)
				insights.POST("/email", r.insightController.Email)
			}
		}

		if r.backupController != nil {
			backups := v1.Group("/backups")
			backups.Use(r.authMiddleware.Authenticate())
			{
				backups.GET("", r.backupController.List)
				backups.POST("", r.backupController.Create)
				backups.POST("/restore", r.backupController.Restore)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
