// Package settings contains ledger-wide use cases: currency setup, overview and reset.
package settings

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ResetConfirmation must be sent verbatim to reset a ledger.
const ResetConfirmation = "RESET"

// ResetLedgerInput represents the input for resetting a ledger.
type ResetLedgerInput struct {
	UserID       uuid.UUID
	Confirmation string
}

// ResetLedgerUseCase clears accounts, transactions and currency.
type ResetLedgerUseCase struct {
	ledgers ledger.Runner
}

// NewResetLedgerUseCase creates a new ResetLedgerUseCase instance.
func NewResetLedgerUseCase(ledgers ledger.Runner) *ResetLedgerUseCase {
	return &ResetLedgerUseCase{
		ledgers: ledgers,
	}
}

// Execute resets the ledger back to the "needs setup" state.
func (uc *ResetLedgerUseCase) Execute(ctx context.Context, input ResetLedgerInput) error {
	if input.Confirmation != ResetConfirmation {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidRequest,
			domainerror.KindValidation,
			"confirmation must be exactly '"+ResetConfirmation+"'",
			nil,
		)
	}
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		l.ResetAll()
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Ledger reset", "user_id", input.UserID)
	return nil
}
