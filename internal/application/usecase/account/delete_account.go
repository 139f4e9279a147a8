// Package account contains ledger account use cases.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// DeleteAccountInput represents the input for deleting an account.
type DeleteAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// DeleteAccountOutput reports whether an account was removed.
type DeleteAccountOutput struct {
	Deleted bool
}

// DeleteAccountUseCase handles account deletion logic.
type DeleteAccountUseCase struct {
	ledgers ledger.Runner
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(ledgers ledger.Runner) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		ledgers: ledgers,
	}
}

// Execute removes the account. Its transactions stay in the history, orphaned.
// Deleting an unknown account is a no-op.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	output := &DeleteAccountOutput{}
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		output.Deleted = l.DeleteAccount(input.AccountID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if output.Deleted {
		slog.Info("Account deleted", "user_id", input.UserID, "account_id", input.AccountID)
	}
	return output, nil
}
