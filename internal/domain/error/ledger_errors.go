// Package error defines the domain errors of the ledger service and the codes clients see.
package error

import "errors"

// Ledger domain errors.
var (
	// ErrAccountNotFound is returned when an account id does not reference a live account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when a transaction is not found in the ledger.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrCategoryNotFound is returned when a category is not found in the ledger.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrImmutableRecord is returned on any attempt to edit or delete an account_creation record.
	ErrImmutableRecord = errors.New("account creation records cannot be edited or deleted")

	// ErrDefaultCategory is returned when deleting a built-in category.
	ErrDefaultCategory = errors.New("default categories cannot be deleted")

	// ErrInvalidAmount is returned when an amount is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrNegativeInitialBalance is returned when an account is opened with a negative balance.
	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")

	// ErrSameAccountTransfer is returned when a transfer names the same account twice.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

	// ErrEmptyName is returned when an account or category name is blank.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidCurrency is returned when a currency code is not a known ISO-4217 code.
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrCurrencyNotSet is returned when the ledger still needs its currency setup.
	ErrCurrencyNotSet = errors.New("ledger currency has not been set up")

	// ErrInvalidTransactionKind is returned for an unknown transaction type.
	ErrInvalidTransactionKind = errors.New("invalid transaction type")

	// ErrNotAFlow is returned when a flow operation targets a transfer or account creation.
	ErrNotAFlow = errors.New("transaction is not an income or expenditure")

	// ErrNotATransfer is returned when a transfer operation targets another kind.
	ErrNotATransfer = errors.New("transaction is not a transfer")

	// ErrMissingTransferTarget is returned when a transfer has no destination account.
	ErrMissingTransferTarget = errors.New("transfer has no destination account")

	// ErrCategoryTypeMismatch is returned when a flow references a category of the other type.
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")

	// ErrInvalidCategoryType is returned when a category type is neither income nor expense.
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrCategoryNameExists is returned when a category with the same name and type exists.
	ErrCategoryNameExists = errors.New("category with this name already exists")

	// ErrSnapshotNotFound is returned by a snapshot store when nothing was saved for an owner.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrPersistence is returned when the snapshot store cannot be read or written.
	ErrPersistence = errors.New("ledger persistence failed")

	// ErrBackupNotFound is returned when a backup key does not exist.
	ErrBackupNotFound = errors.New("backup not found")
)

// LedgerErrorKind classifies ledger errors for callers that map them to responses.
type LedgerErrorKind string

const (
	KindValidation      LedgerErrorKind = "validation"
	KindNotFound        LedgerErrorKind = "not_found"
	KindImmutableRecord LedgerErrorKind = "immutable_record"
	KindPersistence     LedgerErrorKind = "persistence"
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is the kind and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount          LedgerErrorCode = "LDG-010001"
	ErrCodeSameAccountTransfer    LedgerErrorCode = "LDG-010002"
	ErrCodeEmptyName              LedgerErrorCode = "LDG-010003"
	ErrCodeInvalidCurrency        LedgerErrorCode = "LDG-010004"
	ErrCodeInvalidTransactionKind LedgerErrorCode = "LDG-010005"
	ErrCodeCategoryTypeMismatch   LedgerErrorCode = "LDG-010006"
	ErrCodeNotAFlow               LedgerErrorCode = "LDG-010007"
	ErrCodeNotATransfer           LedgerErrorCode = "LDG-010008"
	ErrCodeCurrencyNotSet         LedgerErrorCode = "LDG-010009"
	ErrCodeNegativeInitialBalance LedgerErrorCode = "LDG-010010"
	ErrCodeInvalidCategoryType    LedgerErrorCode = "LDG-010011"
	ErrCodeCategoryNameExists     LedgerErrorCode = "LDG-010012"
	ErrCodeInvalidRequest         LedgerErrorCode = "LDG-010013"

	// Not found errors (02XXXX)
	ErrCodeAccountNotFound     LedgerErrorCode = "LDG-020001"
	ErrCodeTransactionNotFound LedgerErrorCode = "LDG-020002"
	ErrCodeCategoryNotFound    LedgerErrorCode = "LDG-020003"
	ErrCodeBackupNotFound      LedgerErrorCode = "LDG-020004"

	// Immutable record errors (03XXXX)
	ErrCodeImmutableRecord LedgerErrorCode = "LDG-030001"
	ErrCodeDefaultCategory LedgerErrorCode = "LDG-030002"

	// Persistence errors (04XXXX)
	ErrCodePersistence LedgerErrorCode = "LDG-040001"
)

// LedgerError represents a ledger error with code, kind and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Kind    LedgerErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, kind LedgerErrorKind, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation LedgerError wrapping err.
func NewValidationError(code LedgerErrorCode, err error) *LedgerError {
	return NewLedgerError(code, KindValidation, "validation failed", err)
}

// NewNotFoundError creates a not-found LedgerError wrapping err.
func NewNotFoundError(code LedgerErrorCode, err error) *LedgerError {
	return NewLedgerError(code, KindNotFound, "not found", err)
}

// NewImmutableRecordError creates an immutable-record LedgerError wrapping err.
func NewImmutableRecordError(code LedgerErrorCode, err error) *LedgerError {
	return NewLedgerError(code, KindImmutableRecord, "record is immutable", err)
}

// NewPersistenceError creates a persistence LedgerError wrapping err.
func NewPersistenceError(err error) *LedgerError {
	return NewLedgerError(ErrCodePersistence, KindPersistence, "ledger persistence failed", errors.Join(ErrPersistence, err))
}

// KindOf returns the kind of the first LedgerError in err's chain, or "" if there is none.
func KindOf(err error) LedgerErrorKind {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}
