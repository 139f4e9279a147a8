package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// FlowInput describes a new income or expenditure.
type FlowInput struct {
	Kind       entity.TransactionKind
	Amount     decimal.Decimal
	AccountID  uuid.UUID
	Remarks    string
	CategoryID *uuid.UUID
	OccurredAt *time.Time // defaults to now
}

// TransferInput describes a new transfer between two live accounts.
type TransferInput struct {
	Amount        decimal.Decimal
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Remarks       string
	OccurredAt    *time.Time // defaults to now
}

// FlowEdit holds the fields to change on an income or expenditure.
// Nil fields are left unchanged.
type FlowEdit struct {
	Amount        *decimal.Decimal
	Remarks       *string
	OccurredAt    *time.Time
	AccountID     *uuid.UUID
	CategoryID    *uuid.UUID
	ClearCategory bool
}

// TransferEdit holds the fields to change on a transfer.
type TransferEdit struct {
	Amount     *decimal.Decimal
	Remarks    *string
	OccurredAt *time.Time
}

// TransactionFilter narrows Transactions. Zero values match everything.
type TransactionFilter struct {
	Kind       entity.TransactionKind
	AccountID  *uuid.UUID // either side of a transfer
	CategoryID *uuid.UUID
	From       *time.Time // inclusive
	To         *time.Time // inclusive
	Limit      int
}

func (f TransactionFilter) matches(t *entity.Transaction) bool {
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if f.AccountID != nil && !t.References(*f.AccountID) {
		return false
	}
	if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
		return false
	}
	if f.From != nil && t.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && t.OccurredAt.After(*f.To) {
		return false
	}
	return true
}

// Transactions returns copies of the matching transactions, newest first.
// Records with the same date keep reverse insertion order.
func (e *Engine) Transactions(filter TransactionFilter) []*entity.Transaction {
	result := make([]*entity.Transaction, 0, len(e.transactions))
	for i := len(e.transactions) - 1; i >= 0; i-- {
		if t := e.transactions[i]; filter.matches(t) {
			result = append(result, t.Clone())
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OccurredAt.After(result[j].OccurredAt)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result
}

// Transaction returns a copy of a single transaction, orphaned or not.
func (e *Engine) Transaction(id uuid.UUID) (*entity.Transaction, error) {
	_, t := e.findTransaction(id)
	if t == nil {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeTransactionNotFound, domainerror.ErrTransactionNotFound)
	}
	return t.Clone(), nil
}

// RecordFlow appends an income or expenditure and applies it to the account balance.
// Overdrafts are allowed.
func (e *Engine) RecordFlow(input FlowInput) (*entity.Transaction, error) {
	if !input.Kind.IsFlow() {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeNotAFlow, domainerror.ErrNotAFlow)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidAmount, domainerror.ErrInvalidAmount)
	}
	account := e.findAccount(input.AccountID)
	if account == nil {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeAccountNotFound, domainerror.ErrAccountNotFound)
	}
	if err := e.checkCategory(input.Kind, input.CategoryID); err != nil {
		return nil, err
	}

	now := e.now()
	t := &entity.Transaction{
		ID:          uuid.New(),
		Kind:        input.Kind,
		Amount:      input.Amount,
		AccountID:   account.ID,
		AccountName: account.Name,
		OccurredAt:  now,
		ModifiedAt:  now,
		Remarks:     strings.TrimSpace(input.Remarks),
	}
	if input.OccurredAt != nil {
		t.OccurredAt = input.OccurredAt.UTC()
	}
	if input.CategoryID != nil {
		id := *input.CategoryID
		t.CategoryID = &id
	}

	legs, err := t.Legs()
	if err != nil {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidTransactionKind, err)
	}
	e.applyLegs(legs, 1)
	e.transactions = append(e.transactions, t)
	e.touch()

	return t.Clone(), nil
}

// RecordTransfer appends a transfer and moves the amount between both accounts.
func (e *Engine) RecordTransfer(input TransferInput) (*entity.Transaction, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidAmount, domainerror.ErrInvalidAmount)
	}
	if input.FromAccountID == input.ToAccountID {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeSameAccountTransfer, domainerror.ErrSameAccountTransfer)
	}
	from := e.findAccount(input.FromAccountID)
	to := e.findAccount(input.ToAccountID)
	if from == nil || to == nil {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeAccountNotFound, domainerror.ErrAccountNotFound)
	}

	now := e.now()
	toID := to.ID
	t := &entity.Transaction{
		ID:            uuid.New(),
		Kind:          entity.TransactionKindTransfer,
		Amount:        input.Amount,
		AccountID:     from.ID,
		AccountName:   from.Name,
		ToAccountID:   &toID,
		ToAccountName: to.Name,
		OccurredAt:    now,
		ModifiedAt:    now,
		Remarks:       strings.TrimSpace(input.Remarks),
	}
	if input.OccurredAt != nil {
		t.OccurredAt = input.OccurredAt.UTC()
	}

	legs, err := t.Legs()
	if err != nil {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidTransactionKind, err)
	}
	e.applyLegs(legs, 1)
	e.transactions = append(e.transactions, t)
	e.touch()

	return t.Clone(), nil
}

// EditFlow changes an income or expenditure, reversing its old balance effect
// and applying the new one.
//
// When the original account was deleted the old effect is gone with it, so
// only the record changes, unless the edit moves the flow onto a live account:
// the new effect then applies there and the record is no longer orphaned.
func (e *Engine) EditFlow(id uuid.UUID, edit FlowEdit) (*entity.Transaction, error) {
	_, current := e.findTransaction(id)
	if current == nil {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeTransactionNotFound, domainerror.ErrTransactionNotFound)
	}
	switch current.Kind {
	case entity.TransactionKindIncome, entity.TransactionKindExpenditure:
	case entity.TransactionKindAccountCreation:
		return nil, domainerror.NewImmutableRecordError(domainerror.ErrCodeImmutableRecord, domainerror.ErrImmutableRecord)
	case entity.TransactionKindTransfer:
		return nil, domainerror.NewValidationError(domainerror.ErrCodeNotAFlow, domainerror.ErrNotAFlow)
	default:
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidTransactionKind, domainerror.ErrInvalidTransactionKind)
	}

	updated := current.Clone()
	if edit.Amount != nil {
		if !edit.Amount.IsPositive() {
			return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidAmount, domainerror.ErrInvalidAmount)
		}
		updated.Amount = *edit.Amount
	}
	if edit.AccountID != nil && *edit.AccountID != current.AccountID {
		target := e.findAccount(*edit.AccountID)
		if target == nil {
			return nil, domainerror.NewNotFoundError(domainerror.ErrCodeAccountNotFound, domainerror.ErrAccountNotFound)
		}
		updated.AccountID = target.ID
		updated.AccountName = target.Name
		updated.IsOrphaned = false
	}
	switch {
	case edit.ClearCategory:
		updated.CategoryID = nil
	case edit.CategoryID != nil:
		if err := e.checkCategory(updated.Kind, edit.CategoryID); err != nil {
			return nil, err
		}
		categoryID := *edit.CategoryID
		updated.CategoryID = &categoryID
	}
	if edit.Remarks != nil {
		updated.Remarks = strings.TrimSpace(*edit.Remarks)
	}
	if edit.OccurredAt != nil {
		updated.OccurredAt = edit.OccurredAt.UTC()
	}
	updated.ModifiedAt = e.now()

	if err := e.replaceEffect(current, updated); err != nil {
		return nil, err
	}
	*current = *updated
	e.touch()

	return current.Clone(), nil
}

// EditTransfer changes a transfer's amount, remarks or date. The amount change
// is applied to whichever of its accounts are still live.
func (e *Engine) EditTransfer(id uuid.UUID, edit TransferEdit) (*entity.Transaction, error) {
	_, current := e.findTransaction(id)
	if current == nil {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeTransactionNotFound, domainerror.ErrTransactionNotFound)
	}
	switch current.Kind {
	case entity.TransactionKindTransfer:
	case entity.TransactionKindAccountCreation:
		return nil, domainerror.NewImmutableRecordError(domainerror.ErrCodeImmutableRecord, domainerror.ErrImmutableRecord)
	case entity.TransactionKindIncome, entity.TransactionKindExpenditure:
		return nil, domainerror.NewValidationError(domainerror.ErrCodeNotATransfer, domainerror.ErrNotATransfer)
	default:
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidTransactionKind, domainerror.ErrInvalidTransactionKind)
	}

	updated := current.Clone()
	if edit.Amount != nil {
		if !edit.Amount.IsPositive() {
			return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidAmount, domainerror.ErrInvalidAmount)
		}
		updated.Amount = *edit.Amount
	}
	if edit.Remarks != nil {
		updated.Remarks = strings.TrimSpace(*edit.Remarks)
	}
	if edit.OccurredAt != nil {
		updated.OccurredAt = edit.OccurredAt.UTC()
	}
	updated.ModifiedAt = e.now()

	if err := e.replaceEffect(current, updated); err != nil {
		return nil, err
	}
	*current = *updated
	e.touch()

	return current.Clone(), nil
}

// DeleteTransaction reverses a transaction's effect on its live accounts and
// removes it. It reports false when the transaction does not exist.
func (e *Engine) DeleteTransaction(id uuid.UUID) (bool, error) {
	idx, t := e.findTransaction(id)
	if t == nil {
		return false, nil
	}
	if t.Kind == entity.TransactionKindAccountCreation {
		return false, domainerror.NewImmutableRecordError(domainerror.ErrCodeImmutableRecord, domainerror.ErrImmutableRecord)
	}

	legs, err := t.Legs()
	if err != nil {
		return false, domainerror.NewValidationError(domainerror.ErrCodeInvalidTransactionKind, err)
	}
	e.applyLegs(legs, -1)
	e.transactions = append(e.transactions[:idx], e.transactions[idx+1:]...)
	e.touch()

	return true, nil
}

// replaceEffect swaps the balance effect of before for that of after.
// Both leg sets are computed first so a malformed record changes nothing.
func (e *Engine) replaceEffect(before, after *entity.Transaction) error {
	oldLegs, err := before.Legs()
	if err != nil {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidTransactionKind, err)
	}
	newLegs, err := after.Legs()
	if err != nil {
		return domainerror.NewValidationError(domainerror.ErrCodeInvalidTransactionKind, err)
	}
	e.applyLegs(oldLegs, -1)
	e.applyLegs(newLegs, 1)
	return nil
}

func (e *Engine) checkCategory(kind entity.TransactionKind, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	category := e.findCategory(*categoryID)
	if category == nil {
		return domainerror.NewNotFoundError(domainerror.ErrCodeCategoryNotFound, domainerror.ErrCategoryNotFound)
	}
	want, ok := kind.CategoryType()
	if !ok || category.Type != want {
		return domainerror.NewValidationError(domainerror.ErrCodeCategoryTypeMismatch, domainerror.ErrCategoryTypeMismatch)
	}
	return nil
}
