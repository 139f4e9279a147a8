// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// TransactionKind discriminates the balance rules a transaction follows.
// The set is closed: every switch over it must handle all four kinds.
type TransactionKind string

const (
	TransactionKindIncome          TransactionKind = "income"
	TransactionKindExpenditure     TransactionKind = "expenditure"
	TransactionKindAccountCreation TransactionKind = "account_creation"
	TransactionKindTransfer        TransactionKind = "transfer"
)

// IsValid reports whether k is one of the known transaction kinds.
func (k TransactionKind) IsValid() bool {
	switch k {
	case TransactionKindIncome, TransactionKindExpenditure, TransactionKindAccountCreation, TransactionKindTransfer:
		return true
	default:
		return false
	}
}

// IsFlow reports whether k is a single-account flow (income or expenditure).
func (k TransactionKind) IsFlow() bool {
	return k == TransactionKindIncome || k == TransactionKindExpenditure
}

// CategoryType returns the category type a flow of this kind may reference.
func (k TransactionKind) CategoryType() (CategoryType, bool) {
	switch k {
	case TransactionKindIncome:
		return CategoryTypeIncome, true
	case TransactionKindExpenditure:
		return CategoryTypeExpense, true
	default:
		return "", false
	}
}

// Transaction is an entry in the ledger log.
//
// AccountName and ToAccountName hold the account's display name at the last
// sync, so history stays readable after the account is deleted.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	Kind          TransactionKind `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // Magnitude, never negative
	AccountID     uuid.UUID       `json:"accountId"`
	AccountName   string          `json:"accountName"`
	ToAccountID   *uuid.UUID      `json:"toAccountId,omitempty"` // Transfers only
	ToAccountName string          `json:"toAccountName,omitempty"`
	OccurredAt    time.Time       `json:"date"`
	ModifiedAt    time.Time       `json:"modifiedAt"`
	Remarks       string          `json:"remarks,omitempty"`
	CategoryID    *uuid.UUID      `json:"category,omitempty"` // Income/expenditure only
	IsOrphaned    bool            `json:"isOrphaned"`
}

// Leg is the signed balance effect of a transaction on one account.
type Leg struct {
	AccountID uuid.UUID
	Delta     decimal.Decimal
}

// Legs returns the balance effects of the transaction.
// account_creation records have no legs: the opening balance is set on the account itself.
func (t *Transaction) Legs() ([]Leg, error) {
	switch t.Kind {
	case TransactionKindIncome:
		return []Leg{{AccountID: t.AccountID, Delta: t.Amount}}, nil
	case TransactionKindExpenditure:
		return []Leg{{AccountID: t.AccountID, Delta: t.Amount.Neg()}}, nil
	case TransactionKindAccountCreation:
		return nil, nil
	case TransactionKindTransfer:
		if t.ToAccountID == nil {
			return nil, domainerror.ErrMissingTransferTarget
		}
		return []Leg{
			{AccountID: t.AccountID, Delta: t.Amount.Neg()},
			{AccountID: *t.ToAccountID, Delta: t.Amount},
		}, nil
	default:
		return nil, domainerror.ErrInvalidTransactionKind
	}
}

// References reports whether the transaction touches the given account on either side.
func (t *Transaction) References(accountID uuid.UUID) bool {
	if t.AccountID == accountID {
		return true
	}
	return t.ToAccountID != nil && *t.ToAccountID == accountID
}

// Clone returns a deep copy of the transaction.
func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.ToAccountID != nil {
		id := *t.ToAccountID
		c.ToAccountID = &id
	}
	if t.CategoryID != nil {
		id := *t.CategoryID
		c.CategoryID = &id
	}
	return &c
}
