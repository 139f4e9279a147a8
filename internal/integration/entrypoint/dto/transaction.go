package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
)

// RecordFlowRequest represents the request body for an income or expenditure.
type RecordFlowRequest struct {
	Type       string  `json:"type" binding:"required,oneof=income expenditure"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	AccountID  string  `json:"account_id" binding:"required"`
	Remarks    string  `json:"remarks,omitempty" binding:"omitempty,max=1000"`
	CategoryID *string `json:"category_id,omitempty"`
	Date       *string `json:"date,omitempty"`
}

// RecordTransferRequest represents the request body for a transfer.
type RecordTransferRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	FromAccountID string  `json:"from_account_id" binding:"required"`
	ToAccountID   string  `json:"to_account_id" binding:"required"`
	Remarks       string  `json:"remarks,omitempty" binding:"omitempty,max=1000"`
	Date          *string `json:"date,omitempty"`
}

// EditTransactionRequest represents the request body for transaction edits.
type EditTransactionRequest struct {
	Amount        *float64 `json:"amount,omitempty"`
	Remarks       *string  `json:"remarks,omitempty" binding:"omitempty,max=1000"`
	Date          *string  `json:"date,omitempty"`
	AccountID     *string  `json:"account_id,omitempty"`
	CategoryID    *string  `json:"category_id,omitempty"`
	ClearCategory bool     `json:"clear_category,omitempty"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Type string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID            string                       `json:"id"`
	Type          string                       `json:"type"`
	Amount        string                       `json:"amount"`
	AccountID     string                       `json:"account_id"`
	AccountName   string                       `json:"account_name"`
	ToAccountID   *string                      `json:"to_account_id,omitempty"`
	ToAccountName string                       `json:"to_account_name,omitempty"`
	Date          time.Time                    `json:"date"`
	ModifiedAt    time.Time                    `json:"modified_at"`
	Remarks       string                       `json:"remarks"`
	CategoryID    *string                      `json:"category_id,omitempty"`
	Category      *TransactionCategoryResponse `json:"category,omitempty"`
	IsOrphaned    bool                         `json:"is_orphaned"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionTotalsResponse represents the flow totals of the filtered transactions.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       TransactionTotalsResponse     `json:"totals"`
}

// ToTransactionResponse converts a transaction output to a TransactionResponse DTO.
func ToTransactionResponse(t *transaction.TransactionOutput) TransactionResponse {
	resp := TransactionResponse{
		ID:            t.ID.String(),
		Type:          string(t.Type),
		Amount:        t.Amount.String(),
		AccountID:     t.AccountID.String(),
		AccountName:   t.AccountName,
		ToAccountName: t.ToAccountName,
		Date:          t.Date,
		ModifiedAt:    t.ModifiedAt,
		Remarks:       t.Remarks,
		IsOrphaned:    t.IsOrphaned,
	}
	if t.ToAccountID != nil {
		id := t.ToAccountID.String()
		resp.ToAccountID = &id
	}
	if t.CategoryID != nil {
		id := t.CategoryID.String()
		resp.CategoryID = &id
	}
	if t.Category != nil {
		resp.Category = &TransactionCategoryResponse{
			ID:   t.Category.ID.String(),
			Name: t.Category.Name,
			Icon: t.Category.Icon,
			Type: string(t.Category.Type),
		}
	}
	return resp
}

// ToTransactionListResponse converts the list output to a TransactionListResponse DTO.
func ToTransactionListResponse(out *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, 0, len(out.Transactions))
	for _, t := range out.Transactions {
		transactions = append(transactions, ToTransactionResponse(t))
	}
	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       out.Pagination.Page,
			Limit:      out.Pagination.Limit,
			Total:      out.Pagination.Total,
			TotalPages: out.Pagination.TotalPages,
		},
		Totals: TransactionTotalsResponse{
			IncomeTotal:  out.Totals.IncomeTotal.String(),
			ExpenseTotal: out.Totals.ExpenseTotal.String(),
			NetTotal:     out.Totals.NetTotal.String(),
		},
	}
}
