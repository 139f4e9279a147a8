package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// Accounts returns copies of the live accounts in creation order.
func (e *Engine) Accounts() []*entity.Account {
	accounts := make([]*entity.Account, 0, len(e.accounts))
	for _, a := range e.accounts {
		accounts = append(accounts, a.Clone())
	}
	return accounts
}

// Account returns a copy of a live account.
func (e *Engine) Account(id uuid.UUID) (*entity.Account, error) {
	a := e.findAccount(id)
	if a == nil {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeAccountNotFound, domainerror.ErrAccountNotFound)
	}
	return a.Clone(), nil
}

// CreateAccount opens an account and appends the account_creation record of its opening balance.
// A negative initialBalance is rejected with ErrNegativeInitialBalance, so an
// account_creation amount is never below zero.
func (e *Engine) CreateAccount(name string, initialBalance decimal.Decimal) (*entity.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeEmptyName, domainerror.ErrEmptyName)
	}
	if initialBalance.IsNegative() {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeNegativeInitialBalance, domainerror.ErrNegativeInitialBalance)
	}

	now := e.now()
	account := entity.NewAccount(name, initialBalance, now)
	e.accounts = append(e.accounts, account)
	e.transactions = append(e.transactions, &entity.Transaction{
		ID:          uuid.New(),
		Kind:        entity.TransactionKindAccountCreation,
		Amount:      initialBalance,
		AccountID:   account.ID,
		AccountName: account.Name,
		OccurredAt:  now,
		ModifiedAt:  now,
	})
	e.touch()

	return account.Clone(), nil
}

// RenameAccount renames a live account and propagates the name to every
// transaction that references it on either side.
func (e *Engine) RenameAccount(id uuid.UUID, name string) (*entity.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeEmptyName, domainerror.ErrEmptyName)
	}
	account := e.findAccount(id)
	if account == nil {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeAccountNotFound, domainerror.ErrAccountNotFound)
	}

	account.Name = name
	for _, t := range e.transactions {
		if t.AccountID == id {
			t.AccountName = name
		}
		if t.ToAccountID != nil && *t.ToAccountID == id {
			t.ToAccountName = name
		}
	}
	e.touch()

	return account.Clone(), nil
}

// DeleteAccount removes a live account and orphans every transaction that
// references it. It reports false when the account does not exist.
func (e *Engine) DeleteAccount(id uuid.UUID) bool {
	idx := -1
	for i, a := range e.accounts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	e.accounts = append(e.accounts[:idx], e.accounts[idx+1:]...)
	for _, t := range e.transactions {
		if t.References(id) {
			t.IsOrphaned = true
		}
	}
	e.touch()

	return true
}
