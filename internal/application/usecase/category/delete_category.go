// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	ledgers ledger.Runner
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(ledgers ledger.Runner) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		ledgers: ledgers,
	}
}

// Execute deletes a user-defined category; its transactions become uncategorized.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	return uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		return l.DeleteCategory(input.CategoryID)
	})
}
