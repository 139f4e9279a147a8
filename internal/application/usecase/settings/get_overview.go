// Package settings contains ledger-wide use cases: currency setup, overview and reset.
package settings

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// GetOverviewInput represents the input for the ledger overview.
type GetOverviewInput struct {
	UserID uuid.UUID
}

// GetOverviewOutput summarizes the ledger state.
type GetOverviewOutput struct {
	Currency             string
	NeedsSetup           bool
	TotalBalance         decimal.Decimal
	FormattedBalance     string
	AccountCount         int
	TransactionCount     int
	OrphanedTransactions int
	SyncWarning          string // last persistence failure, if any
}

// GetOverviewUseCase handles the ledger overview.
type GetOverviewUseCase struct {
	ledgers ledger.Runner
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(ledgers ledger.Runner) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		ledgers: ledgers,
	}
}

// Execute returns the ledger overview. The total balance is recomputed from live accounts.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	output := &GetOverviewOutput{}
	err := uc.ledgers.View(ctx, input.UserID, func(l ledger.Ledger) error {
		output.Currency = l.Currency()
		output.NeedsSetup = l.NeedsSetup()
		output.TotalBalance = l.TotalBalance()
		output.FormattedBalance = valueobject.DisplayAmount(output.TotalBalance, output.Currency)
		output.AccountCount = len(l.Accounts())

		transactions := l.Transactions(ledger.TransactionFilter{})
		output.TransactionCount = len(transactions)
		for _, t := range transactions {
			if t.IsOrphaned {
				output.OrphanedTransactions++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if syncErr := uc.ledgers.SyncStatus(input.UserID); syncErr != nil {
		output.SyncWarning = syncErr.Error()
	}
	return output, nil
}
