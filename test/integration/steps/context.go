//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/infra/dependency"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
	"github.com/finance-tracker/ledger/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	testPassword    = "SecurePass123!"
	resendEmailPath = "/emails"
)

// suite holds everything shared by all scenarios.
type suite struct {
	server   *httptest.Server
	db       *mock.Db
	timeMock *mock.Time
	apiMock  *mock.ApiMock
	insights *mock.InsightService
	backups  *mock.BackupStore
}

var shared *suite

type testContext struct {
	*suite

	headers      map[string]string
	client       *http.Client
	response     *response
	accessToken  string
	refreshToken string

	accounts      map[string]uuid.UUID
	categories    map[string]uuid.UUID
	transactionID uuid.UUID
	backupKey     string
}

type response struct {
	status  int
	headers http.Header
	raw     string
	body    any
}

// InitializeTestSuite starts the API once against in-memory collaborators.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))

		s := &suite{
			db: mock.NewDb(map[string]any{
				"users":               &model.UserModel{},
				"refresh_tokens":      &model.RefreshTokenModel{},
				"ledgers":             &model.LedgerModel{},
				"ledger_accounts":     &model.LedgerAccountModel{},
				"ledger_transactions": &model.LedgerTransactionModel{},
				"ledger_categories":   &model.LedgerCategoryModel{},
			}),
			timeMock: mock.NewTime(),
			apiMock:  mock.NewApiServer(),
			insights: mock.NewInsightService(),
		}
		s.backups = mock.NewBackupStore(s.timeMock)
		s.apiMock.Start()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Server.Location = "UTC"
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.BcryptCost = 4
		cfg.Storage.Backend = config.StorageBackendDatabase
		cfg.Email.ResendAPIKey = "re_test_key"
		cfg.Email.ResendBaseURL = s.apiMock.GetUrl()
		cfg.Email.DigestEnabled = false

		injector, err := dependency.NewInjector(context.Background(), cfg, s.db.DbConn, dependency.Options{
			Redis:          mock.NewRedis(),
			InsightService: s.insights,
			BackupStore:    s.backups,
			Clock:          s.timeMock.Now,
		})
		if err != nil {
			panic(fmt.Sprintf("failed to wire application: %v", err))
		}
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
		shared = s
	})

	ctx.AfterSuite(func() {
		if shared != nil && shared.server != nil {
			shared.server.Close()
		}
	})
}

// InitializeScenario registers every step and resets state between scenarios.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)

	// Ledger setup steps
	ctx.Given(`^I am registered as "([^"]*)"$`, test.iAmRegisteredAs)
	ctx.Given(`^the ledger currency is "([^"]*)"$`, test.theLedgerCurrencyIs)
	ctx.Given(`^an account "([^"]*)" exists with balance "([^"]*)"$`, test.anAccountExistsWithBalance)
	ctx.Given(`^an? "(income|expenditure)" of "([^"]*)" is recorded on "([^"]*)" with remarks "([^"]*)"$`, test.aFlowIsRecorded)
	ctx.Given(`^a transfer of "([^"]*)" from "([^"]*)" to "([^"]*)" is recorded$`, test.aTransferIsRecorded)

	// Collaborator steps
	ctx.Given(`^the insight model answers "([^"]*)"$`, test.theInsightModelAnswers)
	ctx.Given(`^the insight model is unavailable$`, test.theInsightModelIsUnavailable)
	ctx.Given(`^the email API responds with status (\d+)$`, test.theEmailAPIRespondsWithStatus)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response body should contain "([^"]*)"$`, test.theResponseBodyShouldContain)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Collaborator assertion steps
	ctx.Then(`^the email API should have received (\d+) requests?$`, test.theEmailAPIShouldHaveReceivedRequests)
	ctx.Then(`^the email sent to "([^"]*)" should contain "([^"]*)"$`, test.theEmailSentToShouldContain)
	ctx.Then(`^the insight model should have received (\d+) transactions?$`, test.theInsightModelShouldHaveReceivedTransactions)
}

func (t *testContext) before() error {
	t.suite = shared
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.accounts = make(map[string]uuid.UUID)
	t.categories = make(map[string]uuid.UUID)
	t.transactionID = uuid.Nil
	t.backupKey = ""

	t.timeMock.Reset()
	t.apiMock.Clear()
	t.apiMock.SetResponse(-1, http.MethodPost, resendEmailPath, http.StatusOK, map[string]any{"id": "msg-123"})
	t.insights.Reset()
	t.backups.Clear()

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	moment, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(moment)
	return nil
}
