// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

const (
	// DefaultPageSize is used when no limit is requested.
	DefaultPageSize = 50
	// MaxPageSize caps a single page.
	MaxPageSize = 500
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	AccountID  *uuid.UUID
	CategoryID *uuid.UUID
	Type       *entity.TransactionKind
	Search     string
	Page       int
	Limit      int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// TotalsOutput represents aggregated totals over every matching transaction.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
	Totals       TotalsOutput
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	ledgers ledger.Runner
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(ledgers ledger.Runner) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		ledgers: ledgers,
	}
}

// Execute lists transactions newest first, including orphaned ones.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	filter := ledger.TransactionFilter{
		AccountID:  input.AccountID,
		CategoryID: input.CategoryID,
		From:       input.StartDate,
		To:         input.EndDate,
	}
	if input.Type != nil {
		filter.Kind = *input.Type
	}
	search := strings.ToLower(strings.TrimSpace(input.Search))

	output := &ListTransactionsOutput{
		Transactions: []*TransactionOutput{},
		Totals: TotalsOutput{
			IncomeTotal:  decimal.Zero,
			ExpenseTotal: decimal.Zero,
		},
	}
	err := uc.ledgers.View(ctx, input.UserID, func(l ledger.Ledger) error {
		matched := make([]*entity.Transaction, 0)
		for _, t := range l.Transactions(filter) {
			if search != "" && !matchesSearch(t, search) {
				continue
			}
			matched = append(matched, t)
			switch t.Kind {
			case entity.TransactionKindIncome:
				output.Totals.IncomeTotal = output.Totals.IncomeTotal.Add(t.Amount)
			case entity.TransactionKindExpenditure:
				output.Totals.ExpenseTotal = output.Totals.ExpenseTotal.Add(t.Amount)
			case entity.TransactionKindAccountCreation, entity.TransactionKindTransfer:
			}
		}

		total := len(matched)
		start := total
		if page-1 <= total/limit {
			start = min((page-1)*limit, total)
		}
		end := start + limit
		if end > total {
			end = total
		}
		for _, t := range matched[start:end] {
			output.Transactions = append(output.Transactions, toTransactionOutput(l, t))
		}
		output.Pagination = PaginationOutput{
			Page:       page,
			Limit:      limit,
			Total:      int64(total),
			TotalPages: (total + limit - 1) / limit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	output.Totals.NetTotal = output.Totals.IncomeTotal.Sub(output.Totals.ExpenseTotal)
	return output, nil
}

func matchesSearch(t *entity.Transaction, search string) bool {
	return strings.Contains(strings.ToLower(t.Remarks), search) ||
		strings.Contains(strings.ToLower(t.AccountName), search) ||
		strings.Contains(strings.ToLower(t.ToAccountName), search)
}
