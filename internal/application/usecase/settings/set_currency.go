// Package settings contains ledger-wide use cases: currency setup, overview and reset.
package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// SetCurrencyInput represents the input for choosing the ledger currency.
type SetCurrencyInput struct {
	UserID   uuid.UUID
	Currency string
}

// SetCurrencyOutput represents the output of choosing the ledger currency.
type SetCurrencyOutput struct {
	Currency string
}

// SetCurrencyUseCase handles the currency setup step.
type SetCurrencyUseCase struct {
	ledgers ledger.Runner
}

// NewSetCurrencyUseCase creates a new SetCurrencyUseCase instance.
func NewSetCurrencyUseCase(ledgers ledger.Runner) *SetCurrencyUseCase {
	return &SetCurrencyUseCase{
		ledgers: ledgers,
	}
}

// Execute sets the currency. Existing amounts keep their values.
func (uc *SetCurrencyUseCase) Execute(ctx context.Context, input SetCurrencyInput) (*SetCurrencyOutput, error) {
	output := &SetCurrencyOutput{}
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		if err := l.SetCurrency(input.Currency); err != nil {
			return err
		}
		output.Currency = l.Currency()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
