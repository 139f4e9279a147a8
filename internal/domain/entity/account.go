// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a balance-holding asset (bank account, cash, card) in a ledger.
type Account struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewAccount creates a new Account entity with the given opening balance.
func NewAccount(name string, balance decimal.Decimal, now time.Time) *Account {
	return &Account{
		ID:        uuid.New(),
		Name:      name,
		Balance:   balance,
		CreatedAt: now,
	}
}

// Clone returns a copy of the account that can be handed out as a read-only view.
func (a *Account) Clone() *Account {
	c := *a
	return &c
}
