// Package export contains ledger export use cases.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

const (
	csvDateLayout = "2006-01-02"
	csvTimeLayout = "15:04"
)

// ExportCSVInput represents the input for a CSV export.
type ExportCSVInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Location  *time.Location // Dates are rendered in this zone, UTC when nil
}

// ExportCSVOutput holds the rendered file.
type ExportCSVOutput struct {
	Filename string
	Content  []byte
	Rows     int
}

// ExportCSVUseCase renders the transaction history as CSV.
type ExportCSVUseCase struct {
	ledgers ledger.Runner
	now     func() time.Time
}

// NewExportCSVUseCase creates a new ExportCSVUseCase instance.
func NewExportCSVUseCase(ledgers ledger.Runner) *ExportCSVUseCase {
	return &ExportCSVUseCase{
		ledgers: ledgers,
		now:     time.Now,
	}
}

// Execute renders matching transactions newest first.
//
// The "To Account" column is only present when a transfer is exported and
// "Category" only when a row is categorized. Expenditures are negated.
func (uc *ExportCSVUseCase) Execute(ctx context.Context, input ExportCSVInput) (*ExportCSVOutput, error) {
	loc := input.Location
	if loc == nil {
		loc = time.UTC
	}

	var (
		currency     string
		transactions []*entity.Transaction
		categories   = make(map[uuid.UUID]string)
	)
	err := uc.ledgers.View(ctx, input.UserID, func(l ledger.Ledger) error {
		currency = l.Currency()
		transactions = l.Transactions(ledger.TransactionFilter{From: input.StartDate, To: input.EndDate})
		for _, c := range l.Categories() {
			categories[c.ID] = c.Name
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	withTransfer, withCategory := false, false
	for _, t := range transactions {
		if t.Kind == entity.TransactionKindTransfer {
			withTransfer = true
		}
		if t.CategoryID != nil {
			withCategory = true
		}
	}

	header := []string{"Date", "Time", "Type", "Amount", "Account"}
	if withTransfer {
		header = append(header, "To Account")
	}
	if withCategory {
		header = append(header, "Category")
	}
	header = append(header, "Remarks")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range transactions {
		amount := t.Amount
		if t.Kind == entity.TransactionKindExpenditure {
			amount = amount.Neg()
		}
		at := t.OccurredAt.In(loc)
		row := []string{
			at.Format(csvDateLayout),
			at.Format(csvTimeLayout),
			string(t.Kind),
			valueobject.PlainAmount(amount, currency),
			t.AccountName,
		}
		if withTransfer {
			row = append(row, t.ToAccountName)
		}
		if withCategory {
			name := ""
			if t.CategoryID != nil {
				name = categories[*t.CategoryID]
			}
			row = append(row, name)
		}
		row = append(row, t.Remarks)
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return &ExportCSVOutput{
		Filename: fmt.Sprintf("transactions-%s.csv", uc.now().In(loc).Format(csvDateLayout)),
		Content:  buf.Bytes(),
		Rows:     len(transactions),
	}, nil
}
