// Package category contains category-related use cases.
package category

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID       uuid.UUID
	CategoryType *entity.CategoryType // Optional filter by category type
	StartDate    *time.Time           // Optional start date for statistics
	EndDate      *time.Time           // Optional end date for statistics
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID               uuid.UUID
	Name             string
	Icon             string
	Type             entity.CategoryType
	IsDefault        bool
	TransactionCount int
	PeriodTotal      decimal.Decimal
}

func toCategoryOutput(c *entity.Category) *CategoryOutput {
	return &CategoryOutput{
		ID:          c.ID,
		Name:        c.Name,
		Icon:        c.Icon,
		Type:        c.Type,
		IsDefault:   c.IsDefault,
		PeriodTotal: decimal.Zero,
	}
}

// ListCategoriesUseCase handles category listing logic.
type ListCategoriesUseCase struct {
	ledgers ledger.Runner
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(ledgers ledger.Runner) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		ledgers: ledgers,
	}
}

// Execute lists the categories with the number and total of transactions
// using each one within the optional date range.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	output := &ListCategoriesOutput{Categories: []*CategoryOutput{}}
	err := uc.ledgers.View(ctx, input.UserID, func(l ledger.Ledger) error {
		byID := make(map[uuid.UUID]*CategoryOutput)
		for _, c := range l.Categories() {
			if input.CategoryType != nil && c.Type != *input.CategoryType {
				continue
			}
			co := toCategoryOutput(c)
			byID[c.ID] = co
			output.Categories = append(output.Categories, co)
		}

		for _, t := range l.Transactions(ledger.TransactionFilter{From: input.StartDate, To: input.EndDate}) {
			if t.CategoryID == nil {
				continue
			}
			if co, ok := byID[*t.CategoryID]; ok {
				co.TransactionCount++
				co.PeriodTotal = co.PeriodTotal.Add(t.Amount)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
