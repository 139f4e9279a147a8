package account

import (
	"context"
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

func TestCreateAccountUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	runner := engineRunner{engine: ledger.NewEngine()}
	create := NewCreateAccountUseCase(runner)

	_, err := create.Execute(ctx, CreateAccountInput{UserID: userID, Name: "Bank", InitialBalance: decimal.NewFromInt(10)})
	assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))

	require.NoError(t, runner.engine.SetCurrency("EUR"))

	tests := []struct {
		name    string
		input   CreateAccountInput
		wantErr bool
	}{
		{"valid", CreateAccountInput{UserID: userID, Name: " Bank ", InitialBalance: decimal.RequireFromString("100.25")}, false},
		{"zero balance", CreateAccountInput{UserID: userID, Name: "Wallet", InitialBalance: decimal.Zero}, false},
		{"blank name", CreateAccountInput{UserID: userID, Name: "   ", InitialBalance: decimal.Zero}, true},
		{"negative balance", CreateAccountInput{UserID: userID, Name: "Loan", InitialBalance: decimal.NewFromInt(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := create.Execute(ctx, tt.input)
			if tt.wantErr {
				assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.True(t, out.Account.Balance.Equal(tt.input.InitialBalance))
		})
	}

	list, err := NewListAccountsUseCase(runner).Execute(ctx, ListAccountsInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, list.Accounts, 2)
	assert.Equal(t, "Bank", list.Accounts[0].Name)
	assert.Equal(t, "EUR", list.Currency)
	assert.True(t, list.TotalBalance.Equal(decimal.RequireFromString("100.25")))
}

func TestRenameAndDeleteAccount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	runner := engineRunner{engine: ledger.NewEngine()}
	require.NoError(t, runner.engine.SetCurrency("USD"))

	bank, err := runner.engine.CreateAccount("Bank", decimal.NewFromInt(50))
	require.NoError(t, err)
	_, err = runner.engine.RecordFlow(ledger.FlowInput{
		Kind:      entity.TransactionKindExpenditure,
		Amount:    decimal.NewFromInt(5),
		AccountID: bank.ID,
	})
	require.NoError(t, err)

	renamed, err := NewRenameAccountUseCase(runner).Execute(ctx, RenameAccountInput{UserID: userID, AccountID: bank.ID, Name: "Savings"})
	require.NoError(t, err)
	assert.Equal(t, "Savings", renamed.Account.Name)
	for _, tx := range runner.engine.Transactions(ledger.TransactionFilter{AccountID: &bank.ID}) {
		assert.Equal(t, "Savings", tx.AccountName)
	}

	_, err = NewRenameAccountUseCase(runner).Execute(ctx, RenameAccountInput{UserID: userID, AccountID: uuid.New(), Name: "Other"})
	assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))

	remove := NewDeleteAccountUseCase(runner)
	out, err := remove.Execute(ctx, DeleteAccountInput{UserID: userID, AccountID: bank.ID})
	require.NoError(t, err)
	assert.True(t, out.Deleted)

	history := runner.engine.Transactions(ledger.TransactionFilter{})
	require.Len(t, history, 2)
	for _, tx := range history {
		assert.True(t, tx.IsOrphaned)
	}

	out, err = remove.Execute(ctx, DeleteAccountInput{UserID: userID, AccountID: bank.ID})
	require.NoError(t, err)
	assert.False(t, out.Deleted)
}
