// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/application/usecase/account"
	"github.com/finance-tracker/ledger/internal/application/usecase/auth"
	"github.com/finance-tracker/ledger/internal/application/usecase/backup"
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/application/usecase/export"
	"github.com/finance-tracker/ledger/internal/application/usecase/insight"
	"github.com/finance-tracker/ledger/internal/application/usecase/settings"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/application/usecase/user"
	"github.com/finance-tracker/ledger/internal/infra/cache"
	"github.com/finance-tracker/ledger/internal/infra/scheduler"
	"github.com/finance-tracker/ledger/internal/infra/server/router"
	"github.com/finance-tracker/ledger/internal/integration/adapters"
	"github.com/finance-tracker/ledger/internal/integration/email"
	"github.com/finance-tracker/ledger/internal/integration/email/templates"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/storage"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Ledgers   *ledger.Registry
	Router    *router.Router
	Scheduler *scheduler.Scheduler
}

// Options carries optional collaborators, mostly for tests.
type Options struct {
	// Redis enables the Redis snapshot backend and shared rate limits.
	Redis *redis.Client
	// EmailSender replaces the Resend client.
	EmailSender adapter.EmailSender
	// InsightService replaces the Gemini service.
	InsightService adapter.InsightService
	// BackupStore replaces the S3 store and enables backup routes.
	BackupStore adapter.BackupStore
	// Clock replaces time.Now for ledger timestamps.
	Clock func() time.Time
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(ctx context.Context, cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	location, err := time.LoadLocation(cfg.Server.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid server location %q: %w", cfg.Server.Location, err)
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	snapshotStore := newSnapshotStore(cfg, db, opts.Redis)

	// Ledger registry
	var engineOpts []ledger.Option
	if opts.Clock != nil {
		engineOpts = append(engineOpts, ledger.WithClock(opts.Clock))
	}
	registry := ledger.NewRegistry(snapshotStore, slog.Default(), engineOpts...)
	registry.SetSaveTimeout(cfg.Storage.SaveTimeout)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	// Sessions run on the wall clock; opts.Clock only moves ledger time.
	tokenService := adapters.NewTokenService(cfg.JWT, tokenRepo, time.Now)

	insightService := opts.InsightService
	if insightService == nil {
		insightService = adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	}

	emailService, err := newEmailService(cfg, opts.EmailSender)
	if err != nil {
		return nil, err
	}

	backupStore, err := newBackupStore(ctx, cfg, opts.BackupStore)
	if err != nil {
		return nil, err
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, registry)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService, registry)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService, registry)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService, registry)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService, snapshotStore, registry)

	// Create user use cases
	getProfileUseCase := user.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := user.NewUpdateProfileUseCase(userRepo)

	// Create ledger use cases
	overviewUseCase := settings.NewGetOverviewUseCase(registry)
	setCurrencyUseCase := settings.NewSetCurrencyUseCase(registry)
	resetLedgerUseCase := settings.NewResetLedgerUseCase(registry)
	verifyLedgerUseCase := settings.NewVerifyLedgerUseCase(registry)

	listAccountsUseCase := account.NewListAccountsUseCase(registry)
	createAccountUseCase := account.NewCreateAccountUseCase(registry)
	renameAccountUseCase := account.NewRenameAccountUseCase(registry)
	deleteAccountLedgerUseCase := account.NewDeleteAccountUseCase(registry)

	listTransactionsUseCase := transaction.NewListTransactionsUseCase(registry)
	recordFlowUseCase := transaction.NewRecordFlowUseCase(registry)
	recordTransferUseCase := transaction.NewRecordTransferUseCase(registry)
	editTransactionUseCase := transaction.NewEditTransactionUseCase(registry)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(registry)

	listCategoriesUseCase := category.NewListCategoriesUseCase(registry)
	createCategoryUseCase := category.NewCreateCategoryUseCase(registry)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(registry)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(registry)

	exportCSVUseCase := export.NewExportCSVUseCase(registry)

	// Create insight use cases
	generateInsightsUseCase := insight.NewGenerateInsightsUseCase(registry, insightService)
	var emailInsightsUseCase *insight.EmailInsightsUseCase
	if emailService != nil {
		emailInsightsUseCase = insight.NewEmailInsightsUseCase(generateInsightsUseCase, userRepo, emailService)
	}

	// Create controllers
	probes := []controller.HealthProbe{{Name: "database", Check: func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}}}
	if opts.Redis != nil {
		probes = append(probes, controller.HealthProbe{Name: "cache", Check: cache.Ping(opts.Redis)})
	}
	healthController := controller.NewHealthController(probes...)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		getProfileUseCase,
		updateProfileUseCase,
		deleteAccountUseCase,
	)

	ledgerController := controller.NewLedgerController(
		overviewUseCase,
		setCurrencyUseCase,
		resetLedgerUseCase,
		verifyLedgerUseCase,
	)

	accountController := controller.NewAccountController(
		listAccountsUseCase,
		createAccountUseCase,
		renameAccountUseCase,
		deleteAccountLedgerUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		recordFlowUseCase,
		recordTransferUseCase,
		editTransactionUseCase,
		deleteTransactionUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	exportController := controller.NewExportController(exportCSVUseCase, location)
	insightController := controller.NewInsightController(generateInsightsUseCase, emailInsightsUseCase)

	var backupController *controller.BackupController
	if backupStore != nil {
		backupController = controller.NewBackupController(
			backup.NewCreateBackupUseCase(registry, backupStore),
			backup.NewListBackupsUseCase(backupStore),
			backup.NewRestoreBackupUseCase(registry, backupStore),
		)
	}

	// Create middleware
	var limitStore middleware.LimitStore
	var memoryLimits *middleware.MemoryLimitStore
	if opts.Redis != nil {
		limitStore = middleware.NewRedisLimitStore(opts.Redis)
	} else {
		memoryLimits = middleware.NewMemoryLimitStore()
		limitStore = memoryLimits
	}
	limits := cfg.Limits
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		limits.LoginAttempts, limits.LoginWindow = 1000, time.Minute
		limits.InsightRequests, limits.InsightWindow = 1000, time.Minute
	}
	loginRateLimiter := middleware.NewRateLimiterWithConfig(limitStore, "login", middleware.ClientIPKey, limits.LoginAttempts, limits.LoginWindow)
	insightRateLimiter := middleware.NewRateLimiterWithConfig(limitStore, "insights", middleware.UserKey, limits.InsightRequests, limits.InsightWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		ledgerController,
		accountController,
		transactionController,
		categoryController,
		exportController,
		insightController,
		backupController,
		loginRateLimiter,
		insightRateLimiter,
		authMiddleware,
	)

	// Background jobs
	sched := scheduler.New(slog.Default(), location, 30*time.Minute)
	if err := sched.AddJob("@daily", scheduler.NewTokenPurgeJob(tokenRepo)); err != nil {
		return nil, fmt.Errorf("failed to schedule token purge: %w", err)
	}
	if memoryLimits != nil {
		if err := sched.AddJob("@every 10m", scheduler.NewLimitCleanupJob(memoryLimits)); err != nil {
			return nil, fmt.Errorf("failed to schedule rate limit cleanup: %w", err)
		}
	}
	if cfg.Email.DigestEnabled && emailInsightsUseCase != nil {
		digest := insight.NewSendDigestUseCase(userRepo, emailInsightsUseCase, cfg.Email.DigestPeriod)
		if err := sched.AddJob(cfg.Email.DigestSchedule, scheduler.NewDigestJob(digest)); err != nil {
			return nil, fmt.Errorf("failed to schedule insight digest: %w", err)
		}
	}

	return &Injector{
		Config:    cfg,
		DB:        db,
		Redis:     opts.Redis,
		Ledgers:   registry,
		Router:    r,
		Scheduler: sched,
	}, nil
}

// newSnapshotStore picks the ledger snapshot backend.
func newSnapshotStore(cfg *config.Config, db *gorm.DB, client *redis.Client) adapter.SnapshotStore {
	if cfg.Storage.Backend == config.StorageBackendRedis {
		if client != nil {
			slog.Info("Ledger snapshots stored in redis")
			return persistence.NewRedisSnapshotStore(client)
		}
		slog.Warn("Redis snapshot backend requested without a redis connection, falling back to database")
	}
	return persistence.NewLedgerRepository(db)
}

// newEmailService returns nil when no sender is available.
func newEmailService(cfg *config.Config, sender adapter.EmailSender) (adapter.EmailService, error) {
	if sender == nil {
		if cfg.Email.ResendAPIKey == "" {
			slog.Warn("RESEND_API_KEY not set, insight emails disabled")
			return nil, nil
		}
		client, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL, cfg.Email.FromName, cfg.Email.FromEmail)
		if err != nil {
			return nil, err
		}
		sender = client
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	return email.NewService(sender, renderer), nil
}

// newBackupStore returns nil when backups are disabled.
func newBackupStore(ctx context.Context, cfg *config.Config, store adapter.BackupStore) (adapter.BackupStore, error) {
	if store != nil {
		return store, nil
	}
	if !cfg.S3.Enabled {
		return nil, nil
	}

	s3Store, err := storage.NewS3BackupStore(ctx, cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to create backup store: %w", err)
	}
	if err := s3Store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to prepare backup bucket: %w", err)
	}
	return s3Store, nil
}
