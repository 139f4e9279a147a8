// Package settings contains ledger-wide use cases: currency setup, overview and reset.
package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// VerifyLedgerInput represents the input for a ledger replay check.
type VerifyLedgerInput struct {
	UserID uuid.UUID
}

// VerifyLedgerOutput is the replay report.
type VerifyLedgerOutput struct {
	Currency string
	Report   *ledger.VerifyReport
}

// VerifyLedgerUseCase replays the transaction log against stored balances.
type VerifyLedgerUseCase struct {
	ledgers ledger.Runner
}

// NewVerifyLedgerUseCase creates a new VerifyLedgerUseCase instance.
func NewVerifyLedgerUseCase(ledgers ledger.Runner) *VerifyLedgerUseCase {
	return &VerifyLedgerUseCase{
		ledgers: ledgers,
	}
}

// Execute runs the replay check.
func (uc *VerifyLedgerUseCase) Execute(ctx context.Context, input VerifyLedgerInput) (*VerifyLedgerOutput, error) {
	output := &VerifyLedgerOutput{}
	err := uc.ledgers.View(ctx, input.UserID, func(l ledger.Ledger) error {
		output.Currency = l.Currency()
		output.Report = l.Verify()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
