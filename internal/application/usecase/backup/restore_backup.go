package backup

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// RestoreBackupInput represents the input for restoring a backup.
type RestoreBackupInput struct {
	UserID uuid.UUID
	Key    string
}

// RestoreBackupOutput reports the restored ledger and its consistency.
type RestoreBackupOutput struct {
	Accounts     int
	Transactions int
	Consistent   bool
}

// RestoreBackupUseCase replaces the owner's ledger with a stored backup.
type RestoreBackupUseCase struct {
	ledgers ledger.Runner
	store   adapter.BackupStore
}

// NewRestoreBackupUseCase creates a new RestoreBackupUseCase instance.
func NewRestoreBackupUseCase(ledgers ledger.Runner, store adapter.BackupStore) *RestoreBackupUseCase {
	return &RestoreBackupUseCase{
		ledgers: ledgers,
		store:   store,
	}
}

// Execute downloads the backup and restores it. An invalid backup leaves the ledger untouched.
func (uc *RestoreBackupUseCase) Execute(ctx context.Context, input RestoreBackupInput) (*RestoreBackupOutput, error) {
	if input.Key == "" {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeBackupNotFound, domainerror.ErrBackupNotFound)
	}

	snapshot, err := uc.store.Get(ctx, input.UserID, input.Key)
	if err != nil {
		if errors.Is(err, domainerror.ErrBackupNotFound) {
			return nil, domainerror.NewNotFoundError(domainerror.ErrCodeBackupNotFound, domainerror.ErrBackupNotFound)
		}
		return nil, domainerror.NewPersistenceError(err)
	}

	output := &RestoreBackupOutput{}
	err = uc.ledgers.Update(ctx, input.UserID, func(l ledger.Ledger) error {
		if err := l.Restore(snapshot); err != nil {
			return err
		}
		output.Accounts = len(l.Accounts())
		output.Transactions = len(l.Transactions(ledger.TransactionFilter{}))
		output.Consistent = l.Verify().Consistent
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Ledger restored from backup", "user_id", input.UserID, "key", input.Key)
	return output, nil
}
