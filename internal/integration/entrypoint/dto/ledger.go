// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finance-tracker/ledger/internal/application/usecase/settings"
)

// SetCurrencyRequest represents the request body for PUT /ledger/currency.
type SetCurrencyRequest struct {
	Currency string `json:"currency" binding:"required,len=3"`
}

// ResetLedgerRequest represents the request body for DELETE /ledger.
type ResetLedgerRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// LedgerResponse represents the ledger overview.
type LedgerResponse struct {
	Currency             string `json:"currency"`
	NeedsSetup           bool   `json:"needs_setup"`
	TotalBalance         string `json:"total_balance"`
	FormattedBalance     string `json:"formatted_balance"`
	AccountCount         int    `json:"account_count"`
	TransactionCount     int    `json:"transaction_count"`
	OrphanedTransactions int    `json:"orphaned_transactions"`
	SyncWarning          string `json:"sync_warning,omitempty"`
}

// CurrencyResponse represents the response for currency setup.
type CurrencyResponse struct {
	Currency string `json:"currency"`
}

// DiscrepancyResponse represents one account whose stored balance differs from the replay.
type DiscrepancyResponse struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Stored    string `json:"stored"`
	Replayed  string `json:"replayed"`
}

// VerifyResponse represents the result of a ledger consistency check.
type VerifyResponse struct {
	Consistent    bool                  `json:"consistent"`
	Checked       int                   `json:"checked"`
	Discrepancies []DiscrepancyResponse `json:"discrepancies"`
}

// ToLedgerResponse converts an overview output to a LedgerResponse DTO.
func ToLedgerResponse(out *settings.GetOverviewOutput) LedgerResponse {
	return LedgerResponse{
		Currency:             out.Currency,
		NeedsSetup:           out.NeedsSetup,
		TotalBalance:         out.TotalBalance.String(),
		FormattedBalance:     out.FormattedBalance,
		AccountCount:         out.AccountCount,
		TransactionCount:     out.TransactionCount,
		OrphanedTransactions: out.OrphanedTransactions,
		SyncWarning:          out.SyncWarning,
	}
}

// ToVerifyResponse converts a verify output to a VerifyResponse DTO.
func ToVerifyResponse(out *settings.VerifyLedgerOutput) VerifyResponse {
	resp := VerifyResponse{
		Consistent:    out.Report.Consistent,
		Checked:       out.Report.Checked,
		Discrepancies: make([]DiscrepancyResponse, 0, len(out.Report.Discrepancies)),
	}
	for _, d := range out.Report.Discrepancies {
		resp.Discrepancies = append(resp.Discrepancies, DiscrepancyResponse{
			AccountID: d.AccountID.String(),
			Name:      d.Name,
			Stored:    d.Stored.String(),
			Replayed:  d.Replayed.String(),
		})
	}
	return resp
}
