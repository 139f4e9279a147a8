// Package transaction contains transaction-related use cases.
package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID            uuid.UUID
	Type          entity.TransactionKind
	Amount        decimal.Decimal
	AccountID     uuid.UUID
	AccountName   string
	ToAccountID   *uuid.UUID
	ToAccountName string
	Date          time.Time
	ModifiedAt    time.Time
	Remarks       string
	CategoryID    *uuid.UUID
	Category      *CategoryOutput
	IsOrphaned    bool
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID   uuid.UUID
	Name string
	Icon string
	Type entity.CategoryType
}

// toTransactionOutput converts a transaction, resolving its category against l.
func toTransactionOutput(l ledger.Ledger, t *entity.Transaction) *TransactionOutput {
	output := &TransactionOutput{
		ID:            t.ID,
		Type:          t.Kind,
		Amount:        t.Amount,
		AccountID:     t.AccountID,
		AccountName:   t.AccountName,
		ToAccountID:   t.ToAccountID,
		ToAccountName: t.ToAccountName,
		Date:          t.OccurredAt,
		ModifiedAt:    t.ModifiedAt,
		Remarks:       t.Remarks,
		CategoryID:    t.CategoryID,
		IsOrphaned:    t.IsOrphaned,
	}
	if t.CategoryID != nil {
		if c, err := l.Category(*t.CategoryID); err == nil {
			output.Category = &CategoryOutput{
				ID:   c.ID,
				Name: c.Name,
				Icon: c.Icon,
				Type: c.Type,
			}
		}
	}
	return output
}
