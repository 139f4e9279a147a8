package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/application/usecase/account"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=255"`
	InitialBalance float64 `json:"initial_balance"`
}

// RenameAccountRequest represents the request body for account rename.
type RenameAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts     []AccountResponse `json:"accounts"`
	TotalBalance string            `json:"total_balance"`
	Currency     string            `json:"currency"`
}

// ToAccountResponse converts an account output to an AccountResponse DTO.
func ToAccountResponse(a *account.AccountOutput) AccountResponse {
	return AccountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Balance:   a.Balance.String(),
		CreatedAt: a.CreatedAt,
	}
}

// ToAccountListResponse converts the list output to an AccountListResponse DTO.
func ToAccountListResponse(out *account.ListAccountsOutput) AccountListResponse {
	accounts := make([]AccountResponse, 0, len(out.Accounts))
	for _, a := range out.Accounts {
		accounts = append(accounts, ToAccountResponse(a))
	}
	return AccountListResponse{
		Accounts:     accounts,
		TotalBalance: out.TotalBalance.String(),
		Currency:     out.Currency,
	}
}
