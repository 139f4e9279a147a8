// Package backup contains use cases for point-in-time ledger backups.
package backup

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CreateBackupInput represents the input for creating a backup.
type CreateBackupInput struct {
	UserID uuid.UUID
}

// BackupOutput describes one stored backup.
type BackupOutput struct {
	Key       string
	Size      int64
	CreatedAt time.Time
}

// CreateBackupUseCase copies the current ledger snapshot into the backup store.
type CreateBackupUseCase struct {
	ledgers ledger.Runner
	store   adapter.BackupStore
}

// NewCreateBackupUseCase creates a new CreateBackupUseCase instance.
func NewCreateBackupUseCase(ledgers ledger.Runner, store adapter.BackupStore) *CreateBackupUseCase {
	return &CreateBackupUseCase{
		ledgers: ledgers,
		store:   store,
	}
}

// Execute takes a snapshot under the owner's lock and uploads it outside of it.
func (uc *CreateBackupUseCase) Execute(ctx context.Context, input CreateBackupInput) (*BackupOutput, error) {
	var snapshot *entity.Snapshot
	err := uc.ledgers.View(ctx, input.UserID, func(l ledger.Ledger) error {
		snapshot = l.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	backup, err := uc.store.Put(ctx, input.UserID, snapshot)
	if err != nil {
		return nil, domainerror.NewPersistenceError(err)
	}

	slog.Info("Ledger backup created", "user_id", input.UserID, "key", backup.Key, "size", backup.Size)
	return toBackupOutput(backup), nil
}

func toBackupOutput(b *entity.Backup) *BackupOutput {
	return &BackupOutput{
		Key:       b.Key,
		Size:      b.Size,
		CreatedAt: b.CreatedAt,
	}
}
