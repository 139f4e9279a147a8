package category

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

func defaultCategoryID(t *testing.T, l ledger.Ledger, name string) uuid.UUID {
	t.Helper()
	for _, c := range l.Categories() {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("default category %q not found", name)
	return uuid.Nil
}

func TestCategoryUseCases(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	runner := engineRunner{engine: ledger.NewEngine()}

	create := NewCreateCategoryUseCase(runner)
	list := NewListCategoriesUseCase(runner)
	update := NewUpdateCategoryUseCase(runner)
	remove := NewDeleteCategoryUseCase(runner)

	created, err := create.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Pets", Type: entity.CategoryTypeExpense})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCategoryIcon, created.Category.Icon)
	assert.False(t, created.Category.IsDefault)

	t.Run("duplicate names are rejected per type", func(t *testing.T) {
		_, err := create.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "food", Type: entity.CategoryTypeExpense})
		assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))

		_, err = create.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Food", Type: entity.CategoryTypeIncome})
		assert.NoError(t, err)
	})

	t.Run("statistics count categorized transactions", func(t *testing.T) {
		require.NoError(t, runner.engine.SetCurrency("USD"))
		bank, err := runner.engine.CreateAccount("Bank", decimal.NewFromInt(100))
		require.NoError(t, err)
		_, err = runner.engine.RecordFlow(ledger.FlowInput{
			Kind:       entity.TransactionKindExpenditure,
			Amount:     decimal.NewFromInt(12),
			AccountID:  bank.ID,
			CategoryID: &created.Category.ID,
		})
		require.NoError(t, err)

		expense := entity.CategoryTypeExpense
		out, err := list.Execute(ctx, ListCategoriesInput{UserID: userID, CategoryType: &expense})
		require.NoError(t, err)
		for _, c := range out.Categories {
			assert.Equal(t, entity.CategoryTypeExpense, c.Type)
			if c.ID == created.Category.ID {
				assert.Equal(t, 1, c.TransactionCount)
				assert.True(t, c.PeriodTotal.Equal(decimal.NewFromInt(12)))
			}
		}
	})

	t.Run("rename", func(t *testing.T) {
		name := "Animals"
		out, err := update.Execute(ctx, UpdateCategoryInput{UserID: userID, CategoryID: created.Category.ID, Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Animals", out.Category.Name)
	})

	t.Run("default categories cannot be deleted", func(t *testing.T) {
		err := remove.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: defaultCategoryID(t, runner.engine, "Food")})
		assert.Equal(t, domainerror.KindImmutableRecord, domainerror.KindOf(err))
	})

	t.Run("deleting a category uncategorizes its transactions", func(t *testing.T) {
		require.NoError(t, remove.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: created.Category.ID}))
		for _, tx := range runner.engine.Transactions(ledger.TransactionFilter{}) {
			assert.Nil(t, tx.CategoryID)
		}

		err := remove.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: created.Category.ID})
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	})
}
