// Package account contains ledger account use cases.
package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID uuid.UUID
}

// ListAccountsOutput represents the live accounts and their total.
type ListAccountsOutput struct {
	Accounts     []*AccountOutput
	TotalBalance decimal.Decimal
	Currency     string
}

// ListAccountsUseCase handles account listing logic.
type ListAccountsUseCase struct {
	ledgers ledger.Runner
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(ledgers ledger.Runner) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		ledgers: ledgers,
	}
}

// Execute returns the live accounts in creation order.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	output := &ListAccountsOutput{}
	err := uc.ledgers.View(ctx, input.UserID, func(l ledger.Ledger) error {
		accounts := l.Accounts()
		output.Accounts = make([]*AccountOutput, 0, len(accounts))
		for _, a := range accounts {
			output.Accounts = append(output.Accounts, toAccountOutput(a))
		}
		output.TotalBalance = l.TotalBalance()
		output.Currency = l.Currency()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
