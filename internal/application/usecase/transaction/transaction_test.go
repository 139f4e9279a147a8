package transaction

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type engineRunner struct {
	engine *ledger.Engine
}

func (r engineRunner) View(_ context.Context, _ uuid.UUID, fn func(ledger.Ledger) error) error {
	return fn(r.engine)
}

func (r engineRunner) Update(_ context.Context, _ uuid.UUID, fn func(ledger.Ledger) error) error {
	return fn(r.engine)
}

func (r engineRunner) SyncStatus(uuid.UUID) error { return nil }

func (r engineRunner) Evict(uuid.UUID) {}

type fixture struct {
	runner engineRunner
	userID uuid.UUID
	bank   *entity.Account
	cash   *entity.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	engine := ledger.NewEngine(ledger.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	require.NoError(t, engine.SetCurrency("USD"))
	bank, err := engine.CreateAccount("Bank", decimal.NewFromInt(500))
	require.NoError(t, err)
	cash, err := engine.CreateAccount("Cash", decimal.NewFromInt(20))
	require.NoError(t, err)
	return &fixture{runner: engineRunner{engine: engine}, userID: uuid.New(), bank: bank, cash: cash}
}

func (f *fixture) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	a, err := f.runner.engine.Account(id)
	require.NoError(t, err)
	return a.Balance
}

func TestRecordFlowUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewRecordFlowUseCase(f.runner)

	out, err := uc.Execute(ctx, RecordFlowInput{
		UserID:    f.userID,
		Type:      entity.TransactionKindIncome,
		Amount:    decimal.NewFromInt(100),
		AccountID: f.bank.ID,
		Remarks:   "  salary  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "salary", out.Transaction.Remarks)
	assert.Equal(t, "Bank", out.Transaction.AccountName)
	assert.True(t, f.balance(t, f.bank.ID).Equal(decimal.NewFromInt(600)))

	t.Run("remarks too long", func(t *testing.T) {
		_, err := uc.Execute(ctx, RecordFlowInput{
			UserID:    f.userID,
			Type:      entity.TransactionKindExpenditure,
			Amount:    decimal.NewFromInt(1),
			AccountID: f.bank.ID,
			Remarks:   strings.Repeat("x", MaxRemarksLength+1),
		})
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})

	t.Run("transfer kind is not a flow", func(t *testing.T) {
		_, err := uc.Execute(ctx, RecordFlowInput{
			UserID:    f.userID,
			Type:      entity.TransactionKindTransfer,
			Amount:    decimal.NewFromInt(1),
			AccountID: f.bank.ID,
		})
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := uc.Execute(ctx, RecordFlowInput{
			UserID:    f.userID,
			Type:      entity.TransactionKindExpenditure,
			Amount:    decimal.NewFromInt(1),
			AccountID: uuid.New(),
		})
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	})
}

func TestEditTransactionUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	transfer, err := NewRecordTransferUseCase(f.runner).Execute(ctx, RecordTransferInput{
		UserID:        f.userID,
		Amount:        decimal.NewFromInt(50),
		FromAccountID: f.bank.ID,
		ToAccountID:   f.cash.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cash", transfer.Transaction.ToAccountName)

	edit := NewEditTransactionUseCase(f.runner)

	t.Run("transfer amount moves both balances", func(t *testing.T) {
		amount := decimal.NewFromInt(80)
		_, err := edit.Execute(ctx, EditTransactionInput{UserID: f.userID, TransactionID: transfer.Transaction.ID, Amount: &amount})
		require.NoError(t, err)
		assert.True(t, f.balance(t, f.bank.ID).Equal(decimal.NewFromInt(420)))
		assert.True(t, f.balance(t, f.cash.ID).Equal(decimal.NewFromInt(100)))
	})

	t.Run("transfer cannot change account", func(t *testing.T) {
		_, err := edit.Execute(ctx, EditTransactionInput{UserID: f.userID, TransactionID: transfer.Transaction.ID, AccountID: &f.bank.ID})
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})

	t.Run("flow moves to another account", func(t *testing.T) {
		flow, err := NewRecordFlowUseCase(f.runner).Execute(ctx, RecordFlowInput{
			UserID:    f.userID,
			Type:      entity.TransactionKindExpenditure,
			Amount:    decimal.NewFromInt(10),
			AccountID: f.cash.ID,
		})
		require.NoError(t, err)

		out, err := edit.Execute(ctx, EditTransactionInput{UserID: f.userID, TransactionID: flow.Transaction.ID, AccountID: &f.bank.ID})
		require.NoError(t, err)
		assert.Equal(t, "Bank", out.Transaction.AccountName)
		assert.True(t, f.balance(t, f.cash.ID).Equal(decimal.NewFromInt(100)))
		assert.True(t, f.balance(t, f.bank.ID).Equal(decimal.NewFromInt(410)))
	})

	t.Run("missing transaction", func(t *testing.T) {
		_, err := edit.Execute(ctx, EditTransactionInput{UserID: f.userID, TransactionID: uuid.New()})
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	})
}

func TestDeleteTransactionUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	flow, err := NewRecordFlowUseCase(f.runner).Execute(ctx, RecordFlowInput{
		UserID:    f.userID,
		Type:      entity.TransactionKindExpenditure,
		Amount:    decimal.NewFromInt(5),
		AccountID: f.cash.ID,
	})
	require.NoError(t, err)

	remove := NewDeleteTransactionUseCase(f.runner)
	out, err := remove.Execute(ctx, DeleteTransactionInput{UserID: f.userID, TransactionID: flow.Transaction.ID})
	require.NoError(t, err)
	assert.True(t, out.Deleted)
	assert.True(t, f.balance(t, f.cash.ID).Equal(decimal.NewFromInt(20)))

	out, err = remove.Execute(ctx, DeleteTransactionInput{UserID: f.userID, TransactionID: flow.Transaction.ID})
	require.NoError(t, err)
	assert.False(t, out.Deleted)

	creations := f.runner.engine.Transactions(ledger.TransactionFilter{Kind: entity.TransactionKindAccountCreation})
	require.NotEmpty(t, creations)
	_, err = remove.Execute(ctx, DeleteTransactionInput{UserID: f.userID, TransactionID: creations[0].ID})
	assert.Equal(t, domainerror.KindImmutableRecord, domainerror.KindOf(err))
}

func TestListTransactionsUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	record := NewRecordFlowUseCase(f.runner)

	for i, remarks := range []string{"coffee", "rent", "Coffee beans"} {
		_, err := record.Execute(ctx, RecordFlowInput{
			UserID:    f.userID,
			Type:      entity.TransactionKindExpenditure,
			Amount:    decimal.NewFromInt(int64(i + 1)),
			AccountID: f.bank.ID,
			Remarks:   remarks,
		})
		require.NoError(t, err)
	}
	_, err := record.Execute(ctx, RecordFlowInput{
		UserID:    f.userID,
		Type:      entity.TransactionKindIncome,
		Amount:    decimal.NewFromInt(10),
		AccountID: f.cash.ID,
	})
	require.NoError(t, err)

	list := NewListTransactionsUseCase(f.runner)

	t.Run("search is case insensitive", func(t *testing.T) {
		out, err := list.Execute(ctx, ListTransactionsInput{UserID: f.userID, Search: "COFFEE"})
		require.NoError(t, err)
		require.Len(t, out.Transactions, 2)
		assert.Equal(t, "Coffee beans", out.Transactions[0].Remarks)
		assert.True(t, out.Totals.ExpenseTotal.Equal(decimal.NewFromInt(4)))
	})

	t.Run("pagination", func(t *testing.T) {
		out, err := list.Execute(ctx, ListTransactionsInput{UserID: f.userID, Page: 2, Limit: 4})
		require.NoError(t, err)
		assert.Len(t, out.Transactions, 2)
		assert.Equal(t, int64(6), out.Pagination.Total)
		assert.Equal(t, 2, out.Pagination.TotalPages)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		for _, page := range []int{3, 1 << 62} {
			var out *ListTransactionsOutput
			require.NotPanics(t, func() {
				out, err = list.Execute(ctx, ListTransactionsInput{UserID: f.userID, Page: page, Limit: MaxPageSize})
			})
			require.NoError(t, err)
			assert.Empty(t, out.Transactions)
			assert.Equal(t, int64(6), out.Pagination.Total)
			assert.Equal(t, page, out.Pagination.Page)
		}
	})

	t.Run("type and account filters", func(t *testing.T) {
		income := entity.TransactionKindIncome
		out, err := list.Execute(ctx, ListTransactionsInput{UserID: f.userID, Type: &income, AccountID: &f.cash.ID})
		require.NoError(t, err)
		require.Len(t, out.Transactions, 1)
		assert.True(t, out.Totals.NetTotal.Equal(decimal.NewFromInt(10)))
	})
}
