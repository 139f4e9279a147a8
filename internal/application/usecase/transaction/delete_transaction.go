// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

// DeleteTransactionOutput reports whether a transaction was removed.
type DeleteTransactionOutput struct {
	Deleted bool
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	ledgers ledger.Runner
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(ledgers ledger.Runner) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		ledgers: ledgers,
	}
}

// Execute reverses the transaction's balance effect and removes it.
// Unknown ids are a no-op; account creation records are rejected.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	output := &DeleteTransactionOutput{}
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		deleted, err := l.DeleteTransaction(input.TransactionID)
		output.Deleted = deleted
		return err
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
