// Package ledger implements the ledger engine: accounts, transactions and
// categories of one owner, kept consistent with each other on every operation.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// Ledger is the read and mutate surface of a single ledger.
// Implementations are not safe for concurrent use; see Registry.
type Ledger interface {
	Currency() string
	NeedsSetup() bool
	SetCurrency(code string) error
	ResetAll()
	TotalBalance() decimal.Decimal
	Revision() uint64

	Accounts() []*entity.Account
	Account(id uuid.UUID) (*entity.Account, error)
	CreateAccount(name string, initialBalance decimal.Decimal) (*entity.Account, error)
	RenameAccount(id uuid.UUID, name string) (*entity.Account, error)
	DeleteAccount(id uuid.UUID) bool

	Transactions(filter TransactionFilter) []*entity.Transaction
	Transaction(id uuid.UUID) (*entity.Transaction, error)
	RecordFlow(input FlowInput) (*entity.Transaction, error)
	RecordTransfer(input TransferInput) (*entity.Transaction, error)
	EditFlow(id uuid.UUID, edit FlowEdit) (*entity.Transaction, error)
	EditTransfer(id uuid.UUID, edit TransferEdit) (*entity.Transaction, error)
	DeleteTransaction(id uuid.UUID) (bool, error)

	Categories() []*entity.Category
	Category(id uuid.UUID) (*entity.Category, error)
	AddCategory(name, icon string, categoryType entity.CategoryType) (*entity.Category, error)
	UpdateCategory(id uuid.UUID, update CategoryUpdate) (*entity.Category, error)
	DeleteCategory(id uuid.UUID) error

	Snapshot() *entity.Snapshot
	Restore(snapshot *entity.Snapshot) error
	Verify() *VerifyReport
}

// Engine is the in-memory Ledger implementation.
//
// Every exported mutation validates all of its inputs before touching state,
// so a failed call leaves the engine unchanged.
type Engine struct {
	currency     string
	accounts     []*entity.Account
	transactions []*entity.Transaction // insertion order
	categories   []*entity.Category

	now      func() time.Time
	revision uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an empty ledger in "needs setup" mode with the default categories.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:        func() time.Time { return time.Now().UTC() },
		categories: entity.DefaultCategories(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ensure Engine implements Ledger.
var _ Ledger = (*Engine)(nil)

// Currency returns the ledger currency code, or "" when not set up.
func (e *Engine) Currency() string {
	return e.currency
}

// NeedsSetup reports whether the ledger currency still has to be chosen.
func (e *Engine) NeedsSetup() bool {
	return e.currency == ""
}

// SetCurrency replaces the ledger currency. Stored amounts are not converted.
func (e *Engine) SetCurrency(code string) error {
	normalized, err := valueobject.NormalizeCurrency(code)
	if err != nil {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidCurrency, err)
	}
	e.currency = normalized
	e.touch()
	return nil
}

// Revision increases on every successful mutation.
func (e *Engine) Revision() uint64 {
	return e.revision
}

// TotalBalance sums the balances of live accounts. It is never stored.
func (e *Engine) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range e.accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// ResetAll clears accounts, transactions and currency. Categories are kept.
func (e *Engine) ResetAll() {
	e.accounts = nil
	e.transactions = nil
	e.currency = ""
	e.touch()
}

func (e *Engine) touch() {
	e.revision++
}

func (e *Engine) findAccount(id uuid.UUID) *entity.Account {
	for _, a := range e.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (e *Engine) findTransaction(id uuid.UUID) (int, *entity.Transaction) {
	for i, t := range e.transactions {
		if t.ID == id {
			return i, t
		}
	}
	return -1, nil
}

func (e *Engine) findCategory(id uuid.UUID) *entity.Category {
	for _, c := range e.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// applyLegs adds sign*delta of each leg to its account. Legs of deleted accounts are skipped.
func (e *Engine) applyLegs(legs []entity.Leg, sign int64) {
	for _, leg := range legs {
		if a := e.findAccount(leg.AccountID); a != nil {
			a.Balance = a.Balance.Add(leg.Delta.Mul(decimal.NewFromInt(sign)))
		}
	}
}
