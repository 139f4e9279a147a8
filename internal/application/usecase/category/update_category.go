// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// UpdateCategoryInput represents the input for category update.
type UpdateCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       *string
	Icon       *string
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *CategoryOutput
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	ledgers ledger.Runner
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(ledgers ledger.Runner) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		ledgers: ledgers,
	}
}

// Execute renames or re-icons a category. Default categories are allowed.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
	}

	var output *UpdateCategoryOutput
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		category, err := l.UpdateCategory(input.CategoryID, ledger.CategoryUpdate{
			Name: input.Name,
			Icon: input.Icon,
		})
		if err != nil {
			return err
		}
		output = &UpdateCategoryOutput{Category: toCategoryOutput(category)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
