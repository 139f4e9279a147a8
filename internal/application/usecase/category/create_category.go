// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
	Icon   string
	Type   entity.CategoryType
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *CategoryOutput
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	ledgers ledger.Runner
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(ledgers ledger.Runner) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		ledgers: ledgers,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}

	var output *CreateCategoryOutput
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		category, err := l.AddCategory(input.Name, input.Icon, input.Type)
		if err != nil {
			return err
		}
		output = &CreateCategoryOutput{Category: toCategoryOutput(category)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

func validateName(name string) error {
	if len(name) > MaxCategoryNameLength {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidRequest,
			domainerror.KindValidation,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			nil,
		)
	}
	return nil
}
