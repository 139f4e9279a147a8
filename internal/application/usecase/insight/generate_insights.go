// Package insight contains AI spending insight use cases.
package insight

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// MaxInsightTransactions bounds how many recent transactions are sent to the model.
const MaxInsightTransactions = 200

// GenerateInsightsInput represents the input for insight generation.
type GenerateInsightsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// GenerateInsightsOutput represents the generated insights.
type GenerateInsightsOutput struct {
	Insights         string
	Currency         string
	TotalBalance     string
	TransactionCount int
	GeneratedAt      time.Time
}

// GenerateInsightsUseCase handles insight generation.
type GenerateInsightsUseCase struct {
	ledgers        ledger.Runner
	insightService adapter.InsightService
}

// NewGenerateInsightsUseCase creates a new GenerateInsightsUseCase instance.
func NewGenerateInsightsUseCase(ledgers ledger.Runner, insightService adapter.InsightService) *GenerateInsightsUseCase {
	return &GenerateInsightsUseCase{
		ledgers:        ledgers,
		insightService: insightService,
	}
}

// Execute sends the user's recent flows and transfers to the insight model.
// Account creation records are not sent.
func (uc *GenerateInsightsUseCase) Execute(ctx context.Context, input GenerateInsightsInput) (*GenerateInsightsOutput, error) {
	if !uc.insightService.IsAvailable() {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInsightsUnavailable,
			"insights are not available",
			domainerror.ErrInsightsUnavailable,
		)
	}

	var (
		currency string
		balance  string
		rows     []adapter.InsightTransaction
	)
	err := uc.ledgers.View(ctx, input.UserID, func(l ledger.Ledger) error {
		currency = l.Currency()
		balance = valueobject.DisplayAmount(l.TotalBalance(), currency)
		rows = ToInsightTransactions(l.Transactions(ledger.TransactionFilter{
			From: input.StartDate,
			To:   input.EndDate,
		}), currency, MaxInsightTransactions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeNoTransactionsForInsights,
			"record some transactions before asking for insights",
			domainerror.ErrNoTransactionsForInsights,
		)
	}

	result, err := uc.insightService.GenerateInsights(ctx, currency, rows)
	if err != nil {
		return nil, err
	}

	return &GenerateInsightsOutput{
		Insights:         result.Insights,
		Currency:         currency,
		TotalBalance:     balance,
		TransactionCount: len(rows),
		GeneratedAt:      time.Now().UTC(),
	}, nil
}

// ToInsightTransactions flattens up to limit transactions for the insight model,
// skipping account creation records. Transfers show both accounts.
func ToInsightTransactions(transactions []*entity.Transaction, currency string, limit int) []adapter.InsightTransaction {
	rows := make([]adapter.InsightTransaction, 0, len(transactions))
	for _, t := range transactions {
		if limit > 0 && len(rows) >= limit {
			break
		}
		account := t.AccountName
		switch t.Kind {
		case entity.TransactionKindAccountCreation:
			continue
		case entity.TransactionKindTransfer:
			account = t.AccountName + " → " + t.ToAccountName
		case entity.TransactionKindIncome, entity.TransactionKindExpenditure:
		}
		rows = append(rows, adapter.InsightTransaction{
			Date:    t.OccurredAt.Format("2006-01-02"),
			Time:    t.OccurredAt.Format("15:04"),
			Account: account,
			Amount:  valueobject.PlainAmount(t.Amount, currency),
			Remarks: t.Remarks,
			Type:    string(t.Kind),
		})
	}
	return rows
}
