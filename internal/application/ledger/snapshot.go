package ledger

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

// Snapshot returns a deep copy of the ledger state for persistence.
func (e *Engine) Snapshot() *entity.Snapshot {
	snapshot := &entity.Snapshot{
		Version:      entity.SnapshotVersion,
		Currency:     e.currency,
		Accounts:     make([]*entity.Account, 0, len(e.accounts)),
		Transactions: make([]*entity.Transaction, 0, len(e.transactions)),
		Categories:   make([]*entity.Category, 0, len(e.categories)),
		SavedAt:      e.now(),
	}
	for _, a := range e.accounts {
		snapshot.Accounts = append(snapshot.Accounts, a.Clone())
	}
	for _, t := range e.transactions {
		snapshot.Transactions = append(snapshot.Transactions, t.Clone())
	}
	for _, c := range e.categories {
		snapshot.Categories = append(snapshot.Categories, c.Clone())
	}
	return snapshot
}

// Restore replaces the whole ledger state with a snapshot. Stored balances are
// taken as-is; use Verify to check them against the log. A snapshot without
// categories gets the default ones.
func (e *Engine) Restore(snapshot *entity.Snapshot) error {
	if snapshot == nil {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidRequest, fmt.Errorf("nil snapshot"))
	}
	if snapshot.Version > entity.SnapshotVersion {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidRequest,
			fmt.Errorf("unsupported snapshot version %d", snapshot.Version))
	}
	currency := ""
	if snapshot.Currency != "" {
		normalized, err := valueobject.NormalizeCurrency(snapshot.Currency)
		if err != nil {
			return domainerror.NewValidationError(domainerror.ErrCodeInvalidCurrency, err)
		}
		currency = normalized
	}

	invalid := func(format string, args ...any) error {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidRequest, fmt.Errorf(format, args...))
	}
	unique := func(seen map[uuid.UUID]struct{}, id uuid.UUID) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
		return true
	}
	accountIDs := make(map[uuid.UUID]struct{})
	transactionIDs := make(map[uuid.UUID]struct{})
	categoryIDs := make(map[uuid.UUID]struct{})

	accounts := make([]*entity.Account, 0, len(snapshot.Accounts))
	for i, a := range snapshot.Accounts {
		if a == nil {
			return invalid("account %d is null", i)
		}
		if !unique(accountIDs, a.ID) {
			return invalid("duplicate account id %s", a.ID)
		}
		accounts = append(accounts, a.Clone())
	}
	transactions := make([]*entity.Transaction, 0, len(snapshot.Transactions))
	for i, t := range snapshot.Transactions {
		if t == nil {
			return invalid("transaction %d is null", i)
		}
		if !unique(transactionIDs, t.ID) {
			return invalid("duplicate transaction id %s", t.ID)
		}
		if !t.Kind.IsValid() {
			return domainerror.NewValidationError(domainerror.ErrCodeInvalidTransactionKind,
				fmt.Errorf("transaction %s: %w", t.ID, domainerror.ErrInvalidTransactionKind))
		}
		if t.Amount.IsNegative() {
			return domainerror.NewValidationError(domainerror.ErrCodeInvalidAmount,
				fmt.Errorf("transaction %s: negative amount %s", t.ID, t.Amount))
		}
		if _, err := t.Legs(); err != nil {
			return domainerror.NewValidationError(domainerror.ErrCodeInvalidTransactionKind,
				fmt.Errorf("transaction %s: %w", t.ID, err))
		}
		transactions = append(transactions, t.Clone())
	}
	categories := make([]*entity.Category, 0, len(snapshot.Categories))
	for i, c := range snapshot.Categories {
		if c == nil {
			return invalid("category %d is null", i)
		}
		if !unique(categoryIDs, c.ID) {
			return invalid("duplicate category id %s", c.ID)
		}
		categories = append(categories, c.Clone())
	}
	if len(categories) == 0 {
		categories = entity.DefaultCategories()
	}

	e.currency = currency
	e.accounts = accounts
	e.transactions = transactions
	e.categories = categories
	e.touch()

	return nil
}

// Discrepancy is a live account whose stored balance differs from the replayed one.
type Discrepancy struct {
	AccountID uuid.UUID
	Name      string
	Stored    decimal.Decimal
	Replayed  decimal.Decimal
}

// VerifyReport is the result of replaying the transaction log.
type VerifyReport struct {
	Consistent    bool
	Checked       int
	Discrepancies []Discrepancy
}

// Verify replays the log in chronological order and compares each live
// account's balance with its opening balance plus every leg that references it.
func (e *Engine) Verify() *VerifyReport {
	ordered := make([]*entity.Transaction, len(e.transactions))
	copy(ordered, e.transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OccurredAt.Before(ordered[j].OccurredAt)
	})

	replayed := make(map[uuid.UUID]decimal.Decimal, len(e.accounts))
	for _, a := range e.accounts {
		replayed[a.ID] = decimal.Zero
	}
	for _, t := range ordered {
		if t.Kind == entity.TransactionKindAccountCreation {
			if balance, ok := replayed[t.AccountID]; ok {
				replayed[t.AccountID] = balance.Add(t.Amount)
			}
			continue
		}
		legs, err := t.Legs()
		if err != nil {
			continue
		}
		for _, leg := range legs {
			if balance, ok := replayed[leg.AccountID]; ok {
				replayed[leg.AccountID] = balance.Add(leg.Delta)
			}
		}
	}

	report := &VerifyReport{Consistent: true, Checked: len(e.accounts)}
	for _, a := range e.accounts {
		if want := replayed[a.ID]; !want.Equal(a.Balance) {
			report.Consistent = false
			report.Discrepancies = append(report.Discrepancies, Discrepancy{
				AccountID: a.ID,
				Name:      a.Name,
				Stored:    a.Balance,
				Replayed:  want,
			})
		}
	}
	return report
}
