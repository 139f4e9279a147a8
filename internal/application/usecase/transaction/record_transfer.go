// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
)

// RecordTransferInput represents the input for recording a transfer.
type RecordTransferInput struct {
	UserID        uuid.UUID
	Amount        decimal.Decimal
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Remarks       string
	Date          *time.Time
}

// RecordTransferOutput represents the output of recording a transfer.
type RecordTransferOutput struct {
	Transaction *TransactionOutput
}

// RecordTransferUseCase handles transfers between two accounts.
type RecordTransferUseCase struct {
	ledgers ledger.Runner
}

// NewRecordTransferUseCase creates a new RecordTransferUseCase instance.
func NewRecordTransferUseCase(ledgers ledger.Runner) *RecordTransferUseCase {
	return &RecordTransferUseCase{
		ledgers: ledgers,
	}
}

// Execute records the transfer. Both balances change together.
func (uc *RecordTransferUseCase) Execute(ctx context.Context, input RecordTransferInput) (*RecordTransferOutput, error) {
	if err := validateRemarks(input.Remarks); err != nil {
		return nil, err
	}

	var output *RecordTransferOutput
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		t, err := l.RecordTransfer(ledger.TransferInput{
			Amount:        input.Amount,
			FromAccountID: input.FromAccountID,
			ToAccountID:   input.ToAccountID,
			Remarks:       input.Remarks,
			OccurredAt:    input.Date,
		})
		if err != nil {
			return err
		}
		output = &RecordTransferOutput{Transaction: toTransactionOutput(l, t)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
