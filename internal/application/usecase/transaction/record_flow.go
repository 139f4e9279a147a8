// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// MaxRemarksLength is the maximum allowed length for transaction remarks.
const MaxRemarksLength = 1000

// RecordFlowInput represents the input for recording an income or expenditure.
type RecordFlowInput struct {
	UserID     uuid.UUID
	Type       entity.TransactionKind
	Amount     decimal.Decimal
	AccountID  uuid.UUID
	Remarks    string
	CategoryID *uuid.UUID
	Date       *time.Time
}

// RecordFlowOutput represents the output of recording a flow.
type RecordFlowOutput struct {
	Transaction *TransactionOutput
}

// RecordFlowUseCase handles income and expenditure recording.
type RecordFlowUseCase struct {
	ledgers ledger.Runner
}

// NewRecordFlowUseCase creates a new RecordFlowUseCase instance.
func NewRecordFlowUseCase(ledgers ledger.Runner) *RecordFlowUseCase {
	return &RecordFlowUseCase{
		ledgers: ledgers,
	}
}

// Execute records the flow and updates the account balance.
func (uc *RecordFlowUseCase) Execute(ctx context.Context, input RecordFlowInput) (*RecordFlowOutput, error) {
	if err := validateRemarks(input.Remarks); err != nil {
		return nil, err
	}

	var output *RecordFlowOutput
	err := uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		t, err := l.RecordFlow(ledger.FlowInput{
			Kind:       input.Type,
			Amount:     input.Amount,
			AccountID:  input.AccountID,
			Remarks:    input.Remarks,
			CategoryID: input.CategoryID,
			OccurredAt: input.Date,
		})
		if err != nil {
			return err
		}
		output = &RecordFlowOutput{Transaction: toTransactionOutput(l, t)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return output, nil
}

func validateRemarks(remarks string) error {
	if len(remarks) > MaxRemarksLength {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidRequest,
			domainerror.KindValidation,
			fmt.Sprintf("remarks must not exceed %d characters", MaxRemarksLength),
			nil,
		)
	}
	return nil
}
