// Package account contains ledger account use cases.
package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID         uuid.UUID
	Name           string
	InitialBalance decimal.Decimal
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *AccountOutput
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	ledgers ledger.Runner
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(ledgers ledger.Runner) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		ledgers: ledgers,
	}
}

// Execute opens a new account. The ledger currency must be set up first.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	var output *CreateAccountOutput
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		if l.NeedsSetup() {
			return domainerror.NewValidationError(domainerror.ErrCodeCurrencyNotSet, domainerror.ErrCurrencyNotSet)
		}
		account, err := l.CreateAccount(input.Name, input.InitialBalance)
		if err != nil {
			return err
		}
		output = &CreateAccountOutput{Account: toAccountOutput(account)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
