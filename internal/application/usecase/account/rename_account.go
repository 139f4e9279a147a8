// Package account contains ledger account use cases.
package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// RenameAccountInput represents the input for renaming an account.
type RenameAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	Name      string
}

// RenameAccountOutput represents the output of renaming an account.
type RenameAccountOutput struct {
	Account *AccountOutput
}

// RenameAccountUseCase handles account renaming logic.
type RenameAccountUseCase struct {
	ledgers ledger.Runner
}

// NewRenameAccountUseCase creates a new RenameAccountUseCase instance.
func NewRenameAccountUseCase(ledgers ledger.Runner) *RenameAccountUseCase {
	return &RenameAccountUseCase{
		ledgers: ledgers,
	}
}

// Execute renames the account and the account name shown on its transactions.
func (uc *RenameAccountUseCase) Execute(ctx context.Context, input RenameAccountInput) (*RenameAccountOutput, error) {
	var output *RenameAccountOutput
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		account, err := l.RenameAccount(input.AccountID, input.Name)
		if err != nil {
			return err
		}
		output = &RenameAccountOutput{Account: toAccountOutput(account)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
