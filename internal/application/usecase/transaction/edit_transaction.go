// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// EditTransactionInput represents the input for editing a transaction.
// Nil fields are left unchanged. AccountID and category fields apply to flows only.
type EditTransactionInput struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
	Amount        *decimal.Decimal
	Remarks       *string
	Date          *time.Time
	AccountID     *uuid.UUID
	CategoryID    *uuid.UUID
	ClearCategory bool
}

// EditTransactionOutput represents the output of editing a transaction.
type EditTransactionOutput struct {
	Transaction *TransactionOutput
}

// EditTransactionUseCase dispatches edits to the flow or transfer rules.
type EditTransactionUseCase struct {
	ledgers ledger.Runner
}

// NewEditTransactionUseCase creates a new EditTransactionUseCase instance.
func NewEditTransactionUseCase(ledgers ledger.Runner) *EditTransactionUseCase {
	return &EditTransactionUseCase{
		ledgers: ledgers,
	}
}

// Execute edits the transaction and re-applies its balance effect.
func (uc *EditTransactionUseCase) Execute(ctx context.Context, input EditTransactionInput) (*EditTransactionOutput, error) {
	if input.Remarks != nil {
		if err := validateRemarks(*input.Remarks); err != nil {
			return nil, err
		}
	}

	var output *EditTransactionOutput
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		current, err := l.Transaction(input.TransactionID)
		if err != nil {
			return err
		}

		var edited *entity.Transaction
		switch current.Kind {
		case entity.TransactionKindTransfer:
			if input.AccountID != nil || input.CategoryID != nil || input.ClearCategory {
				return domainerror.NewLedgerError(
					domainerror.ErrCodeInvalidRequest,
					domainerror.KindValidation,
					"transfers cannot change account or category",
					nil,
				)
			}
			edited, err = l.EditTransfer(input.TransactionID, ledger.TransferEdit{
				Amount:     input.Amount,
				Remarks:    input.Remarks,
				OccurredAt: input.Date,
			})
		case entity.TransactionKindIncome, entity.TransactionKindExpenditure, entity.TransactionKindAccountCreation:
			edited, err = l.EditFlow(input.TransactionID, ledger.FlowEdit{
				Amount:        input.Amount,
				Remarks:       input.Remarks,
				OccurredAt:    input.Date,
				AccountID:     input.AccountID,
				CategoryID:    input.CategoryID,
				ClearCategory: input.ClearCategory,
			})
		default:
			return domainerror.NewValidationError(domainerror.ErrCodeInvalidTransactionKind, domainerror.ErrInvalidTransactionKind)
		}
		if err != nil {
			return err
		}
		output = &EditTransactionOutput{Transaction: toTransactionOutput(l, edited)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}
