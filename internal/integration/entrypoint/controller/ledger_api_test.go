package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/application/usecase/account"
	"github.com/finance-tracker/ledger/internal/application/usecase/export"
	"github.com/finance-tracker/ledger/internal/application/usecase/settings"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

type memorySnapshotStore struct {
	mu        sync.Mutex
	snapshots map[uuid.UUID]*entity.Snapshot
}

func (s *memorySnapshotStore) Load(_ context.Context, ownerID uuid.UUID) (*entity.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.snapshots[ownerID]
	if !ok {
		return nil, domainerror.ErrSnapshotNotFound
	}
	return snapshot, nil
}

func (s *memorySnapshotStore) Save(_ context.Context, ownerID uuid.UUID, snapshot *entity.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[ownerID] = snapshot
	return nil
}

func (s *memorySnapshotStore) Delete(_ context.Context, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, ownerID)
	return nil
}

type apiHarness struct {
	t      *testing.T
	engine *gin.Engine
	userID uuid.UUID
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memorySnapshotStore{snapshots: make(map[uuid.UUID]*entity.Snapshot)}
	registry := ledger.NewRegistry(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := &apiHarness{t: t, engine: gin.New(), userID: uuid.New()}

	ledgerController := NewLedgerController(
		settings.NewGetOverviewUseCase(registry),
		settings.NewSetCurrencyUseCase(registry),
		settings.NewResetLedgerUseCase(registry),
		settings.NewVerifyLedgerUseCase(registry),
	)
	accountController := NewAccountController(
		account.NewListAccountsUseCase(registry),
		account.NewCreateAccountUseCase(registry),
		account.NewRenameAccountUseCase(registry),
		account.NewDeleteAccountUseCase(registry),
	)
	transactionController := NewTransactionController(
		transaction.NewListTransactionsUseCase(registry),
		transaction.NewRecordFlowUseCase(registry),
		transaction.NewRecordTransferUseCase(registry),
		transaction.NewEditTransactionUseCase(registry),
		transaction.NewDeleteTransactionUseCase(registry),
	)
	exportController := NewExportController(export.NewExportCSVUseCase(registry), time.UTC)

	api := h.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set(string(middleware.UserIDKey), h.userID)
		c.Next()
	})
	api.GET("/ledger", ledgerController.Overview)
	api.PUT("/ledger/currency", ledgerController.SetCurrency)
	api.DELETE("/ledger", ledgerController.Reset)
	api.GET("/ledger/verify", ledgerController.Verify)
	api.GET("/accounts", accountController.List)
	api.POST("/accounts", accountController.Create)
	api.PATCH("/accounts/:id", accountController.Rename)
	api.DELETE("/accounts/:id", accountController.Delete)
	api.GET("/transactions", transactionController.List)
	api.POST("/transactions/flows", transactionController.RecordFlow)
	api.POST("/transactions/transfers", transactionController.RecordTransfer)
	api.PATCH("/transactions/:id", transactionController.Edit)
	api.DELETE("/transactions/:id", transactionController.Delete)
	api.GET("/export/csv", exportController.CSV)

	return h
}

func (h *apiHarness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestLedgerAPI_AccountRequiresCurrency(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPost, "/api/v1/accounts", map[string]any{"name": "Bank", "initial_balance": 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(domainerror.ErrCodeCurrencyNotSet), decode[dto.ErrorResponse](t, rec).Code)

	rec = h.do(http.MethodGet, "/api/v1/ledger", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.LedgerResponse](t, rec).NeedsSetup)
}

func TestLedgerAPI_FlowLifecycle(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPut, "/api/v1/ledger/currency", dto.SetCurrencyRequest{Currency: "usd"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "USD", decode[dto.CurrencyResponse](t, rec).Currency)

	rec = h.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{Name: "Bank", InitialBalance: 100})
	require.Equal(t, http.StatusCreated, rec.Code)
	bank := decode[dto.AccountResponse](t, rec)
	assert.Equal(t, "100", bank.Balance)

	rec = h.do(http.MethodPost, "/api/v1/transactions/flows", dto.RecordFlowRequest{
		Type:      "expenditure",
		Amount:    25.5,
		AccountID: bank.ID,
		Remarks:   "groceries",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	expense := decode[dto.TransactionResponse](t, rec)
	assert.Equal(t, "Bank", expense.AccountName)

	rec = h.do(http.MethodGet, "/api/v1/accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[dto.AccountListResponse](t, rec)
	require.Len(t, list.Accounts, 1)
	assert.Equal(t, "74.5", list.Accounts[0].Balance)
	assert.Equal(t, "74.5", list.TotalBalance)

	amount := 30.0
	rec = h.do(http.MethodPatch, "/api/v1/transactions/"+expense.ID, dto.EditTransactionRequest{Amount: &amount})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "30", decode[dto.TransactionResponse](t, rec).Amount)

	rec = h.do(http.MethodGet, "/api/v1/transactions?type=account_creation", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	creations := decode[dto.TransactionListResponse](t, rec)
	require.Len(t, creations.Transactions, 1)

	rec = h.do(http.MethodDelete, "/api/v1/transactions/"+creations.Transactions[0].ID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(domainerror.ErrCodeImmutableRecord), decode[dto.ErrorResponse](t, rec).Code)

	rec = h.do(http.MethodDelete, "/api/v1/accounts/"+bank.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = h.do(http.MethodGet, "/api/v1/ledger", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	overview := decode[dto.LedgerResponse](t, rec)
	assert.Equal(t, 0, overview.AccountCount)
	assert.Equal(t, 2, overview.OrphanedTransactions)
	assert.Equal(t, "0", overview.TotalBalance)

	rec = h.do(http.MethodGet, "/api/v1/ledger/verify", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.VerifyResponse](t, rec).Consistent)
}

func TestLedgerAPI_Transfer(t *testing.T) {
	h := newAPIHarness(t)
	require.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/v1/ledger/currency", dto.SetCurrencyRequest{Currency: "EUR"}).Code)

	bank := decode[dto.AccountResponse](t, h.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{Name: "Bank", InitialBalance: 200}))
	cash := decode[dto.AccountResponse](t, h.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{Name: "Cash"}))

	rec := h.do(http.MethodPost, "/api/v1/transactions/transfers", dto.RecordTransferRequest{
		Amount:        50,
		FromAccountID: bank.ID,
		ToAccountID:   bank.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(domainerror.ErrCodeSameAccountTransfer), decode[dto.ErrorResponse](t, rec).Code)

	rec = h.do(http.MethodPost, "/api/v1/transactions/transfers", dto.RecordTransferRequest{
		Amount:        50,
		FromAccountID: bank.ID,
		ToAccountID:   cash.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	transfer := decode[dto.TransactionResponse](t, rec)
	assert.Equal(t, "Cash", transfer.ToAccountName)

	list := decode[dto.AccountListResponse](t, h.do(http.MethodGet, "/api/v1/accounts", nil))
	require.Len(t, list.Accounts, 2)
	assert.Equal(t, "150", list.Accounts[0].Balance)
	assert.Equal(t, "50", list.Accounts[1].Balance)
	assert.Equal(t, "200", list.TotalBalance)

	rec = h.do(http.MethodGet, "/api/v1/transactions?account_id="+cash.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	// Cash's opening record plus the transfer.
	assert.Len(t, decode[dto.TransactionListResponse](t, rec).Transactions, 2)
}

func TestLedgerAPI_BadInput(t *testing.T) {
	h := newAPIHarness(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "bad path id", method: http.MethodPatch, path: "/api/v1/accounts/nope", body: dto.RenameAccountRequest{Name: "x"}},
		{name: "bad type filter", method: http.MethodGet, path: "/api/v1/transactions?type=refund"},
		{name: "bad date filter", method: http.MethodGet, path: "/api/v1/transactions?start_date=yesterday"},
		{name: "zero amount", method: http.MethodPost, path: "/api/v1/transactions/flows", body: map[string]any{"type": "income", "amount": 0, "account_id": uuid.NewString()}},
		{name: "unknown flow type", method: http.MethodPost, path: "/api/v1/transactions/flows", body: map[string]any{"type": "gift", "amount": 1, "account_id": uuid.NewString()}},
		{name: "currency length", method: http.MethodPut, path: "/api/v1/ledger/currency", body: map[string]any{"currency": "EURO"}},
		{name: "reset without confirmation", method: http.MethodDelete, path: "/api/v1/ledger", body: map[string]any{"confirmation": "yes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestLedgerAPI_ExportCSV(t *testing.T) {
	h := newAPIHarness(t)
	require.Equal(t, http.StatusOK, h.do(http.MethodPut, "/api/v1/ledger/currency", dto.SetCurrencyRequest{Currency: "USD"}).Code)
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{Name: "Bank", InitialBalance: 12.5}).Code)

	rec := h.do(http.MethodGet, "/api/v1/export/csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="transactions-`)
	assert.Equal(t, "1", rec.Header().Get("X-Export-Rows"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Date,Time,Type,Amount,Account,Remarks\n"))
	assert.Contains(t, rec.Body.String(), "account_creation,12.50,Bank")
}

func TestRespondError_Statuses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: domainerror.NewNotFoundError(domainerror.ErrCodeAccountNotFound, domainerror.ErrAccountNotFound), want: http.StatusNotFound},
		{name: "persistence", err: domainerror.NewPersistenceError(assert.AnError), want: http.StatusServiceUnavailable},
		{name: "insight rate limited", err: domainerror.NewInsightError(domainerror.ErrCodeInsightRateLimited, "slow down", domainerror.ErrInsightRateLimited), want: http.StatusTooManyRequests},
		{name: "email not configured", err: domainerror.NewEmailError(domainerror.ErrCodeEmailNotConfigured, "off", domainerror.ErrEmailNotConfigured), want: http.StatusServiceUnavailable},
		{name: "auth", err: domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "taken", nil), want: http.StatusConflict},
		{name: "unknown", err: assert.AnError, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(ctx, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
