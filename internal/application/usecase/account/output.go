// Package account contains ledger account use cases.
package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// AccountOutput represents a live account in use case outputs.
type AccountOutput struct {
	ID        uuid.UUID
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

func toAccountOutput(a *entity.Account) *AccountOutput {
	return &AccountOutput{
		ID:        a.ID,
		Name:      a.Name,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}
