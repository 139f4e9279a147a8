package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type engineRunner struct {
	engine  *ledger.Engine
	syncErr error
}

func (r engineRunner) View(_ context.Context, _ uuid.UUID, fn func(ledger.Ledger) error) error {
	return fn(r.engine)
}

func (r engineRunner) Update(_ context.Context, _ uuid.UUID, fn func(ledger.Ledger) error) error {
	return fn(r.engine)
}

func (r engineRunner) SyncStatus(uuid.UUID) error { return r.syncErr }

func (r engineRunner) Evict(uuid.UUID) {}

func TestSetCurrencyUseCase(t *testing.T) {
	ctx := context.Background()
	runner := engineRunner{engine: ledger.NewEngine()}
	uc := NewSetCurrencyUseCase(runner)

	out, err := uc.Execute(ctx, SetCurrencyInput{UserID: uuid.New(), Currency: " usd "})
	require.NoError(t, err)
	assert.Equal(t, "USD", out.Currency)

	_, err = uc.Execute(ctx, SetCurrencyInput{UserID: uuid.New(), Currency: "NOPE"})
	assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	assert.Equal(t, "USD", runner.engine.Currency())
}

func TestGetOverviewUseCase(t *testing.T) {
	ctx := context.Background()
	runner := engineRunner{engine: ledger.NewEngine(), syncErr: errors.New("disk full")}
	uc := NewGetOverviewUseCase(runner)

	out, err := uc.Execute(ctx, GetOverviewInput{UserID: uuid.New()})
	require.NoError(t, err)
	assert.True(t, out.NeedsSetup)
	assert.Equal(t, "disk full", out.SyncWarning)

	require.NoError(t, runner.engine.SetCurrency("USD"))
	_, err = runner.engine.CreateAccount("Bank", decimal.NewFromInt(100))
	require.NoError(t, err)
	cash, err := runner.engine.CreateAccount("Cash", decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = runner.engine.RecordFlow(ledger.FlowInput{
		Kind:      entity.TransactionKindIncome,
		Amount:    decimal.NewFromInt(15),
		AccountID: cash.ID,
	})
	require.NoError(t, err)
	require.True(t, runner.engine.DeleteAccount(cash.ID))

	out, err = uc.Execute(ctx, GetOverviewInput{UserID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, out.NeedsSetup)
	assert.Equal(t, 1, out.AccountCount)
	assert.Equal(t, 3, out.TransactionCount)
	assert.Equal(t, 2, out.OrphanedTransactions)
	assert.True(t, out.TotalBalance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "$100.00", out.FormattedBalance)
}

func TestResetLedgerUseCase(t *testing.T) {
	ctx := context.Background()
	runner := engineRunner{engine: ledger.NewEngine()}
	require.NoError(t, runner.engine.SetCurrency("USD"))
	_, err := runner.engine.CreateAccount("Bank", decimal.NewFromInt(100))
	require.NoError(t, err)
	categories := len(runner.engine.Categories())

	uc := NewResetLedgerUseCase(runner)

	err = uc.Execute(ctx, ResetLedgerInput{UserID: uuid.New(), Confirmation: "reset"})
	assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	assert.Len(t, runner.engine.Accounts(), 1)

	require.NoError(t, uc.Execute(ctx, ResetLedgerInput{UserID: uuid.New(), Confirmation: ResetConfirmation}))
	assert.Empty(t, runner.engine.Accounts())
	assert.Empty(t, runner.engine.Transactions(ledger.TransactionFilter{}))
	assert.True(t, runner.engine.NeedsSetup())
	assert.Len(t, runner.engine.Categories(), categories)
}

func TestVerifyLedgerUseCase(t *testing.T) {
	ctx := context.Background()
	runner := engineRunner{engine: ledger.NewEngine()}
	require.NoError(t, runner.engine.SetCurrency("USD"))
	from, err := runner.engine.CreateAccount("Bank", decimal.NewFromInt(100))
	require.NoError(t, err)
	to, err := runner.engine.CreateAccount("Cash", decimal.Zero)
	require.NoError(t, err)
	_, err = runner.engine.RecordTransfer(ledger.TransferInput{
		Amount:        decimal.NewFromInt(30),
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
	})
	require.NoError(t, err)

	out, err := NewVerifyLedgerUseCase(runner).Execute(ctx, VerifyLedgerInput{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, "USD", out.Currency)
	assert.True(t, out.Report.Consistent)
	assert.Equal(t, 2, out.Report.Checked)
	assert.Empty(t, out.Report.Discrepancies)
}
