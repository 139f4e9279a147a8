package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(step time.Duration) {
	c.now = c.now.Add(step)
}

func newTestEngine(t *testing.T) (*Engine, *fixedClock) {
	t.Helper()
	clock := &fixedClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	e := NewEngine(WithClock(clock.Now))
	require.NoError(t, e.SetCurrency("USD"))
	return e, clock
}

func balanceOf(t *testing.T, e *Engine, id uuid.UUID) decimal.Decimal {
	t.Helper()
	a, err := e.Account(id)
	require.NoError(t, err)
	return a.Balance
}

func assertBalance(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "expected balance %s, got %s", want, got)
}

func assertConsistent(t *testing.T, e *Engine) {
	t.Helper()
	report := e.Verify()
	assert.Truef(t, report.Consistent, "ledger replay disagrees: %+v", report.Discrepancies)
}

func TestEngine_ExampleScenario(t *testing.T) {
	e, _ := newTestEngine(t)

	cash, err := e.CreateAccount("Cash", d("100"))
	require.NoError(t, err)
	assertBalance(t, "100", e.TotalBalance())

	expense, err := e.RecordFlow(FlowInput{
		Kind:      entity.TransactionKindExpenditure,
		Amount:    d("30"),
		AccountID: cash.ID,
	})
	require.NoError(t, err)
	assertBalance(t, "70", balanceOf(t, e, cash.ID))
	assertBalance(t, "70", e.TotalBalance())

	bank, err := e.CreateAccount("Bank", decimal.Zero)
	require.NoError(t, err)

	transfer, err := e.RecordTransfer(TransferInput{
		Amount:        d("20"),
		FromAccountID: cash.ID,
		ToAccountID:   bank.ID,
	})
	require.NoError(t, err)
	assertBalance(t, "50", balanceOf(t, e, cash.ID))
	assertBalance(t, "20", balanceOf(t, e, bank.ID))
	assertBalance(t, "70", e.TotalBalance())

	_, err = e.EditFlow(expense.ID, FlowEdit{Amount: ptr(d("50"))})
	require.NoError(t, err)
	assertBalance(t, "30", balanceOf(t, e, cash.ID))
	assertBalance(t, "50", e.TotalBalance())

	require.True(t, e.DeleteAccount(bank.ID))
	accounts := e.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "Cash", accounts[0].Name)
	assertBalance(t, "30", accounts[0].Balance)
	assertBalance(t, "30", e.TotalBalance())

	got, err := e.Transaction(transfer.ID)
	require.NoError(t, err)
	assert.True(t, got.IsOrphaned)
	assertConsistent(t, e)
}

func TestEngine_CreateAccount(t *testing.T) {
	e, clock := newTestEngine(t)

	t.Run("records the opening balance", func(t *testing.T) {
		a, err := e.CreateAccount("  Wallet ", d("12.50"))
		require.NoError(t, err)
		assert.Equal(t, "Wallet", a.Name)
		assertBalance(t, "12.50", a.Balance)

		txs := e.Transactions(TransactionFilter{AccountID: &a.ID})
		require.Len(t, txs, 1)
		assert.Equal(t, entity.TransactionKindAccountCreation, txs[0].Kind)
		assertBalance(t, "12.50", txs[0].Amount)
		assert.Equal(t, "Wallet", txs[0].AccountName)
		assert.Equal(t, clock.now, txs[0].OccurredAt)
	})

	t.Run("rejects blank names", func(t *testing.T) {
		_, err := e.CreateAccount("   ", decimal.Zero)
		assert.ErrorIs(t, err, domainerror.ErrEmptyName)
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})

	t.Run("rejects negative opening balance", func(t *testing.T) {
		_, err := e.CreateAccount("Debt", d("-1"))
		assert.ErrorIs(t, err, domainerror.ErrNegativeInitialBalance)
	})
}

func TestEngine_RenameAccountPropagatesNames(t *testing.T) {
	e, _ := newTestEngine(t)
	cash, _ := e.CreateAccount("Cash", d("10"))
	bank, _ := e.CreateAccount("Bank", d("10"))
	_, err := e.RecordTransfer(TransferInput{Amount: d("5"), FromAccountID: bank.ID, ToAccountID: cash.ID})
	require.NoError(t, err)

	_, err = e.RenameAccount(cash.ID, "Pocket")
	require.NoError(t, err)

	for _, tx := range e.Transactions(TransactionFilter{AccountID: &cash.ID}) {
		if tx.AccountID == cash.ID {
			assert.Equal(t, "Pocket", tx.AccountName)
		}
		if tx.ToAccountID != nil && *tx.ToAccountID == cash.ID {
			assert.Equal(t, "Pocket", tx.ToAccountName)
			assert.Equal(t, "Bank", tx.AccountName)
		}
	}

	_, err = e.RenameAccount(uuid.New(), "Ghost")
	assert.ErrorIs(t, err, domainerror.ErrAccountNotFound)
	assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))

	_, err = e.RenameAccount(cash.ID, "")
	assert.ErrorIs(t, err, domainerror.ErrEmptyName)
}

func TestEngine_DeleteAccountPreservesHistory(t *testing.T) {
	e, _ := newTestEngine(t)
	cash, _ := e.CreateAccount("Cash", d("100"))
	bank, _ := e.CreateAccount("Bank", d("50"))
	_, err := e.RecordFlow(FlowInput{Kind: entity.TransactionKindIncome, Amount: d("10"), AccountID: bank.ID})
	require.NoError(t, err)
	before := len(e.Transactions(TransactionFilter{}))

	assert.False(t, e.DeleteAccount(uuid.New()))
	require.True(t, e.DeleteAccount(bank.ID))

	all := e.Transactions(TransactionFilter{})
	assert.Len(t, all, before)
	for _, tx := range e.Transactions(TransactionFilter{AccountID: &bank.ID}) {
		assert.True(t, tx.IsOrphaned)
		assert.Equal(t, "Bank", tx.AccountName)
	}
	_, err = e.Account(bank.ID)
	assert.ErrorIs(t, err, domainerror.ErrAccountNotFound)
	assertBalance(t, "100", e.TotalBalance())
	assertBalance(t, "100", balanceOf(t, e, cash.ID))
}

func TestEngine_RecordFlow(t *testing.T) {
	e, _ := newTestEngine(t)
	cash, _ := e.CreateAccount("Cash", d("10"))
	salary := entity.DefaultCategories()[0]
	food := entity.DefaultCategories()[5]

	tests := []struct {
		name    string
		input   FlowInput
		wantErr error
		balance string
	}{
		{
			name:    "income adds",
			input:   FlowInput{Kind: entity.TransactionKindIncome, Amount: d("5"), AccountID: cash.ID, CategoryID: &salary.ID},
			balance: "15",
		},
		{
			name:    "expenditure may overdraw",
			input:   FlowInput{Kind: entity.TransactionKindExpenditure, Amount: d("20"), AccountID: cash.ID, CategoryID: &food.ID},
			balance: "-5",
		},
		{
			name:    "zero amount",
			input:   FlowInput{Kind: entity.TransactionKindIncome, Amount: decimal.Zero, AccountID: cash.ID},
			wantErr: domainerror.ErrInvalidAmount,
			balance: "-5",
		},
		{
			name:    "unknown account",
			input:   FlowInput{Kind: entity.TransactionKindIncome, Amount: d("1"), AccountID: uuid.New()},
			wantErr: domainerror.ErrAccountNotFound,
			balance: "-5",
		},
		{
			name:    "transfer kind",
			input:   FlowInput{Kind: entity.TransactionKindTransfer, Amount: d("1"), AccountID: cash.ID},
			wantErr: domainerror.ErrNotAFlow,
			balance: "-5",
		},
		{
			name:    "category of the other type",
			input:   FlowInput{Kind: entity.TransactionKindIncome, Amount: d("1"), AccountID: cash.ID, CategoryID: &food.ID},
			wantErr: domainerror.ErrCategoryTypeMismatch,
			balance: "-5",
		},
		{
			name:    "unknown category",
			input:   FlowInput{Kind: entity.TransactionKindIncome, Amount: d("1"), AccountID: cash.ID, CategoryID: ptr(uuid.New())},
			wantErr: domainerror.ErrCategoryNotFound,
			balance: "-5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := len(e.Transactions(TransactionFilter{}))
			_, err := e.RecordFlow(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, e.Transactions(TransactionFilter{}), count)
			} else {
				require.NoError(t, err)
			}
			assertBalance(t, tt.balance, balanceOf(t, e, cash.ID))
		})
	}
	assertConsistent(t, e)
}

func TestEngine_RecordTransfer(t *testing.T) {
	e, _ := newTestEngine(t)
	a, _ := e.CreateAccount("A", d("100"))
	b, _ := e.CreateAccount("B", d("0"))

	tx, err := e.RecordTransfer(TransferInput{Amount: d("40.25"), FromAccountID: a.ID, ToAccountID: b.ID, Remarks: "rent"})
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionKindTransfer, tx.Kind)
	require.NotNil(t, tx.ToAccountID)
	assert.Equal(t, b.ID, *tx.ToAccountID)
	assert.Equal(t, "B", tx.ToAccountName)
	assertBalance(t, "59.75", balanceOf(t, e, a.ID))
	assertBalance(t, "40.25", balanceOf(t, e, b.ID))
	assertBalance(t, "100", e.TotalBalance())

	_, err = e.RecordTransfer(TransferInput{Amount: d("1"), FromAccountID: a.ID, ToAccountID: a.ID})
	assert.ErrorIs(t, err, domainerror.ErrSameAccountTransfer)

	_, err = e.RecordTransfer(TransferInput{Amount: d("1"), FromAccountID: a.ID, ToAccountID: uuid.New()})
	assert.ErrorIs(t, err, domainerror.ErrAccountNotFound)
	assertBalance(t, "59.75", balanceOf(t, e, a.ID))

	_, err = e.RecordTransfer(TransferInput{Amount: d("-1"), FromAccountID: a.ID, ToAccountID: b.ID})
	assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)
	assertConsistent(t, e)
}

func TestEngine_EditFlowRoundTrip(t *testing.T) {
	e, clock := newTestEngine(t)
	cash, _ := e.CreateAccount("Cash", d("100"))
	tx, err := e.RecordFlow(FlowInput{Kind: entity.TransactionKindIncome, Amount: d("25"), AccountID: cash.ID})
	require.NoError(t, err)
	original := balanceOf(t, e, cash.ID)

	clock.Advance(time.Hour)
	edited, err := e.EditFlow(tx.ID, FlowEdit{Amount: ptr(d("60")), Remarks: ptr("bonus")})
	require.NoError(t, err)
	assertBalance(t, "160", balanceOf(t, e, cash.ID))
	assert.Equal(t, "bonus", edited.Remarks)
	assert.Equal(t, tx.OccurredAt, edited.OccurredAt)
	assert.Equal(t, clock.now, edited.ModifiedAt)

	_, err = e.EditFlow(tx.ID, FlowEdit{Amount: ptr(d("25"))})
	require.NoError(t, err)
	assertBalance(t, original.String(), balanceOf(t, e, cash.ID))
	assertConsistent(t, e)
}

func TestEngine_EditFlowMovesAccount(t *testing.T) {
	e, _ := newTestEngine(t)
	cash, _ := e.CreateAccount("Cash", d("100"))
	bank, _ := e.CreateAccount("Bank", d("100"))
	tx, _ := e.RecordFlow(FlowInput{Kind: entity.TransactionKindExpenditure, Amount: d("30"), AccountID: cash.ID})

	edited, err := e.EditFlow(tx.ID, FlowEdit{Amount: ptr(d("10")), AccountID: &bank.ID})
	require.NoError(t, err)
	assert.Equal(t, bank.ID, edited.AccountID)
	assert.Equal(t, "Bank", edited.AccountName)
	assertBalance(t, "100", balanceOf(t, e, cash.ID))
	assertBalance(t, "90", balanceOf(t, e, bank.ID))

	_, err = e.EditFlow(tx.ID, FlowEdit{AccountID: ptr(uuid.New())})
	assert.ErrorIs(t, err, domainerror.ErrAccountNotFound)
	assertBalance(t, "90", balanceOf(t, e, bank.ID))
	assertConsistent(t, e)
}

func TestEngine_EditOrphanedFlow(t *testing.T) {
	e, _ := newTestEngine(t)
	cash, _ := e.CreateAccount("Cash", d("100"))
	bank, _ := e.CreateAccount("Bank", d("100"))
	tx, _ := e.RecordFlow(FlowInput{Kind: entity.TransactionKindExpenditure, Amount: d("30"), AccountID: bank.ID})
	require.True(t, e.DeleteAccount(bank.ID))

	t.Run("metadata only while orphaned", func(t *testing.T) {
		edited, err := e.EditFlow(tx.ID, FlowEdit{Amount: ptr(d("45")), Remarks: ptr("late fee")})
		require.NoError(t, err)
		assert.True(t, edited.IsOrphaned)
		assertBalance(t, "45", edited.Amount)
		assertBalance(t, "100", e.TotalBalance())
	})

	t.Run("moving to a live account applies the effect", func(t *testing.T) {
		edited, err := e.EditFlow(tx.ID, FlowEdit{AccountID: &cash.ID})
		require.NoError(t, err)
		assert.False(t, edited.IsOrphaned)
		assertBalance(t, "55", balanceOf(t, e, cash.ID))
	})
	assertConsistent(t, e)
}

func TestEngine_EditFlowRejections(t *testing.T) {
	e, _ := newTestEngine(t)
	a, _ := e.CreateAccount("A", d("10"))
	b, _ := e.CreateAccount("B", d("10"))
	transfer, _ := e.RecordTransfer(TransferInput{Amount: d("1"), FromAccountID: a.ID, ToAccountID: b.ID})
	creation := e.Transactions(TransactionFilter{Kind: entity.TransactionKindAccountCreation})[0]
	flow, _ := e.RecordFlow(FlowInput{Kind: entity.TransactionKindIncome, Amount: d("1"), AccountID: a.ID})
	snapshotBefore := e.Snapshot()

	_, err := e.EditFlow(creation.ID, FlowEdit{Amount: ptr(d("99"))})
	assert.ErrorIs(t, err, domainerror.ErrImmutableRecord)
	assert.Equal(t, domainerror.KindImmutableRecord, domainerror.KindOf(err))

	_, err = e.EditFlow(transfer.ID, FlowEdit{Amount: ptr(d("2"))})
	assert.ErrorIs(t, err, domainerror.ErrNotAFlow)

	_, err = e.EditFlow(uuid.New(), FlowEdit{})
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)

	_, err = e.EditFlow(flow.ID, FlowEdit{Amount: ptr(decimal.Zero)})
	assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)

	after := e.Snapshot()
	assert.Equal(t, snapshotBefore.Accounts, after.Accounts)
	assert.Equal(t, snapshotBefore.Transactions, after.Transactions)
}

func TestEngine_EditTransfer(t *testing.T) {
	e, _ := newTestEngine(t)
	a, _ := e.CreateAccount("A", d("100"))
	b, _ := e.CreateAccount("B", d("0"))
	tx, _ := e.RecordTransfer(TransferInput{Amount: d("20"), FromAccountID: a.ID, ToAccountID: b.ID})

	_, err := e.EditTransfer(tx.ID, TransferEdit{Amount: ptr(d("35"))})
	require.NoError(t, err)
	assertBalance(t, "65", balanceOf(t, e, a.ID))
	assertBalance(t, "35", balanceOf(t, e, b.ID))

	require.True(t, e.DeleteAccount(a.ID))
	_, err = e.EditTransfer(tx.ID, TransferEdit{Amount: ptr(d("5"))})
	require.NoError(t, err)
	assertBalance(t, "5", balanceOf(t, e, b.ID))
	assertConsistent(t, e)
}

func TestEngine_DeleteTransaction(t *testing.T) {
	e, _ := newTestEngine(t)
	a, _ := e.CreateAccount("A", d("100"))
	b, _ := e.CreateAccount("B", d("0"))

	t.Run("flow delete restores balance", func(t *testing.T) {
		tx, _ := e.RecordFlow(FlowInput{Kind: entity.TransactionKindExpenditure, Amount: d("12.34"), AccountID: a.ID})
		removed, err := e.DeleteTransaction(tx.ID)
		require.NoError(t, err)
		assert.True(t, removed)
		assertBalance(t, "100", balanceOf(t, e, a.ID))
		_, err = e.Transaction(tx.ID)
		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	})

	t.Run("transfer delete restores both sides", func(t *testing.T) {
		tx, _ := e.RecordTransfer(TransferInput{Amount: d("10"), FromAccountID: a.ID, ToAccountID: b.ID})
		removed, err := e.DeleteTransaction(tx.ID)
		require.NoError(t, err)
		assert.True(t, removed)
		assertBalance(t, "100", balanceOf(t, e, a.ID))
		assertBalance(t, "0", balanceOf(t, e, b.ID))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		removed, err := e.DeleteTransaction(uuid.New())
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("account creation is immutable", func(t *testing.T) {
		creation := e.Transactions(TransactionFilter{Kind: entity.TransactionKindAccountCreation})[0]
		removed, err := e.DeleteTransaction(creation.ID)
		assert.False(t, removed)
		assert.ErrorIs(t, err, domainerror.ErrImmutableRecord)
		_, err = e.Transaction(creation.ID)
		assert.NoError(t, err)
	})

	t.Run("orphaned transfer delete touches only the live side", func(t *testing.T) {
		tx, _ := e.RecordTransfer(TransferInput{Amount: d("10"), FromAccountID: a.ID, ToAccountID: b.ID})
		require.True(t, e.DeleteAccount(b.ID))
		removed, err := e.DeleteTransaction(tx.ID)
		require.NoError(t, err)
		assert.True(t, removed)
		assertBalance(t, "100", balanceOf(t, e, a.ID))
	})
	assertConsistent(t, e)
}

func TestEngine_TransactionsOrderAndFilter(t *testing.T) {
	e, clock := newTestEngine(t)
	a, _ := e.CreateAccount("A", d("0"))
	food := entity.DefaultCategories()[5]

	jan := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC)
	first, _ := e.RecordFlow(FlowInput{Kind: entity.TransactionKindExpenditure, Amount: d("1"), AccountID: a.ID, OccurredAt: &jan, CategoryID: &food.ID})
	second, _ := e.RecordFlow(FlowInput{Kind: entity.TransactionKindIncome, Amount: d("2"), AccountID: a.ID, OccurredAt: &feb})
	clock.Advance(time.Minute)
	third, _ := e.RecordFlow(FlowInput{Kind: entity.TransactionKindIncome, Amount: d("3"), AccountID: a.ID, OccurredAt: &feb})

	all := e.Transactions(TransactionFilter{})
	require.Len(t, all, 4)
	assert.Equal(t, entity.TransactionKindAccountCreation, all[0].Kind)
	assert.Equal(t, third.ID, all[1].ID)
	assert.Equal(t, second.ID, all[2].ID)
	assert.Equal(t, first.ID, all[3].ID)

	incomes := e.Transactions(TransactionFilter{Kind: entity.TransactionKindIncome})
	assert.Len(t, incomes, 2)

	byCategory := e.Transactions(TransactionFilter{CategoryID: &food.ID})
	require.Len(t, byCategory, 1)
	assert.Equal(t, first.ID, byCategory[0].ID)

	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Len(t, e.Transactions(TransactionFilter{To: &to}), 1)
	assert.Len(t, e.Transactions(TransactionFilter{Limit: 2}), 2)
}

func TestEngine_ReturnsCopies(t *testing.T) {
	e, _ := newTestEngine(t)
	a, _ := e.CreateAccount("A", d("10"))

	a.Balance = d("999")
	a.Name = "changed"
	got, err := e.Account(a.ID)
	require.NoError(t, err)
	assertBalance(t, "10", got.Balance)
	assert.Equal(t, "A", got.Name)

	txs := e.Transactions(TransactionFilter{})
	txs[0].Amount = d("999")
	assertConsistent(t, e)
}

func TestEngine_Categories(t *testing.T) {
	e, _ := newTestEngine(t)
	a, _ := e.CreateAccount("A", d("10"))
	defaults := entity.DefaultCategories()
	assert.Len(t, e.Categories(), len(defaults))

	custom, err := e.AddCategory("Pets", "paw", entity.CategoryTypeExpense)
	require.NoError(t, err)
	assert.False(t, custom.IsDefault)

	_, err = e.AddCategory("pets", "", entity.CategoryTypeExpense)
	assert.ErrorIs(t, err, domainerror.ErrCategoryNameExists)
	_, err = e.AddCategory("Pets", "", entity.CategoryTypeIncome)
	assert.NoError(t, err)
	_, err = e.AddCategory("Misc", "", "other")
	assert.ErrorIs(t, err, domainerror.ErrInvalidCategoryType)

	renamed, err := e.UpdateCategory(defaults[5].ID, CategoryUpdate{Name: ptr("Groceries"), Icon: ptr("cart")})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", renamed.Name)
	assert.True(t, renamed.IsDefault)

	err = e.DeleteCategory(defaults[5].ID)
	assert.ErrorIs(t, err, domainerror.ErrDefaultCategory)
	assert.Equal(t, domainerror.KindImmutableRecord, domainerror.KindOf(err))

	tx, err := e.RecordFlow(FlowInput{Kind: entity.TransactionKindExpenditure, Amount: d("1"), AccountID: a.ID, CategoryID: &custom.ID})
	require.NoError(t, err)
	require.NoError(t, e.DeleteCategory(custom.ID))
	got, _ := e.Transaction(tx.ID)
	assert.Nil(t, got.CategoryID)

	assert.ErrorIs(t, e.DeleteCategory(custom.ID), domainerror.ErrCategoryNotFound)
}

func TestEngine_CurrencyAndReset(t *testing.T) {
	e := NewEngine()
	assert.True(t, e.NeedsSetup())

	err := e.SetCurrency("nope")
	assert.ErrorIs(t, err, domainerror.ErrInvalidCurrency)
	assert.True(t, e.NeedsSetup())

	require.NoError(t, e.SetCurrency("eur"))
	assert.Equal(t, "EUR", e.Currency())
	a, _ := e.CreateAccount("A", d("10"))
	_, _ = e.RecordFlow(FlowInput{Kind: entity.TransactionKindIncome, Amount: d("5"), AccountID: a.ID})

	require.NoError(t, e.SetCurrency("BRL"))
	assertBalance(t, "15", e.TotalBalance())

	rev := e.Revision()
	e.ResetAll()
	assert.Greater(t, e.Revision(), rev)
	assert.True(t, e.NeedsSetup())
	assert.Empty(t, e.Accounts())
	assert.Empty(t, e.Transactions(TransactionFilter{}))
	assert.NotEmpty(t, e.Categories())
	assertBalance(t, "0", e.TotalBalance())
}

func TestEngine_SnapshotRestore(t *testing.T) {
	e, _ := newTestEngine(t)
	a, _ := e.CreateAccount("A", d("10"))
	b, _ := e.CreateAccount("B", d("0"))
	_, _ = e.RecordTransfer(TransferInput{Amount: d("4"), FromAccountID: a.ID, ToAccountID: b.ID})
	_, _ = e.AddCategory("Pets", "paw", entity.CategoryTypeExpense)
	snapshot := e.Snapshot()

	restored := NewEngine()
	require.NoError(t, restored.Restore(snapshot))
	assert.Equal(t, "USD", restored.Currency())
	assert.Equal(t, e.Accounts(), restored.Accounts())
	assert.Equal(t, e.Transactions(TransactionFilter{}), restored.Transactions(TransactionFilter{}))
	assert.Equal(t, e.Categories(), restored.Categories())
	assertConsistent(t, restored)

	t.Run("seeds default categories when none are stored", func(t *testing.T) {
		fresh := NewEngine()
		require.NoError(t, fresh.Restore(&entity.Snapshot{Version: 1}))
		assert.Len(t, fresh.Categories(), len(entity.DefaultCategories()))
	})

	t.Run("rejects malformed transfers", func(t *testing.T) {
		bad := &entity.Snapshot{Version: 1, Transactions: []*entity.Transaction{{ID: uuid.New(), Kind: entity.TransactionKindTransfer, Amount: d("1")}}}
		err := NewEngine().Restore(bad)
		assert.ErrorIs(t, err, domainerror.ErrMissingTransferTarget)
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		bad := &entity.Snapshot{Version: 1, Transactions: []*entity.Transaction{{ID: uuid.New(), Kind: "refund"}}}
		err := NewEngine().Restore(bad)
		assert.ErrorIs(t, err, domainerror.ErrInvalidTransactionKind)
	})

	t.Run("rejects null elements", func(t *testing.T) {
		for name, bad := range map[string]*entity.Snapshot{
			"account":     {Version: 1, Accounts: []*entity.Account{nil}},
			"transaction": {Version: 1, Transactions: []*entity.Transaction{nil}},
			"category":    {Version: 1, Categories: []*entity.Category{nil}},
		} {
			var err error
			assert.NotPanics(t, func() { err = NewEngine().Restore(bad) }, name)
			assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err), name)
		}
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		bad := e.Snapshot()
		bad.Transactions[0].Amount = d("-10")
		err := NewEngine().Restore(bad)
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		bad := e.Snapshot()
		bad.Accounts = append(bad.Accounts, bad.Accounts[0].Clone())
		err := NewEngine().Restore(bad)
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))

		bad = e.Snapshot()
		bad.Transactions = append(bad.Transactions, bad.Transactions[1].Clone())
		err = NewEngine().Restore(bad)
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	})

	t.Run("keeps the current state when rejecting", func(t *testing.T) {
		kept := NewEngine()
		require.NoError(t, kept.Restore(snapshot))
		require.Error(t, kept.Restore(&entity.Snapshot{Version: 1, Accounts: []*entity.Account{nil}}))
		assert.Equal(t, e.Accounts(), kept.Accounts())
	})
}

func TestEngine_VerifyDetectsDrift(t *testing.T) {
	e, _ := newTestEngine(t)
	a, _ := e.CreateAccount("A", d("10"))
	snapshot := e.Snapshot()
	snapshot.Accounts[0].Balance = d("11")

	drifted := NewEngine()
	require.NoError(t, drifted.Restore(snapshot))
	report := drifted.Verify()
	assert.False(t, report.Consistent)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, a.ID, report.Discrepancies[0].AccountID)
	assertBalance(t, "10", report.Discrepancies[0].Replayed)
}
