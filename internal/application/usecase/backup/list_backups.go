package backup

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListBackupsInput represents the input for listing backups.
type ListBackupsInput struct {
	UserID uuid.UUID
}

// ListBackupsOutput represents the owner's backups, newest first.
type ListBackupsOutput struct {
	Backups []*BackupOutput
}

// ListBackupsUseCase handles listing backups.
type ListBackupsUseCase struct {
	store adapter.BackupStore
}

// NewListBackupsUseCase creates a new ListBackupsUseCase instance.
func NewListBackupsUseCase(store adapter.BackupStore) *ListBackupsUseCase {
	return &ListBackupsUseCase{store: store}
}

// Execute lists the backups.
func (uc *ListBackupsUseCase) Execute(ctx context.Context, input ListBackupsInput) (*ListBackupsOutput, error) {
	backups, err := uc.store.List(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewPersistenceError(err)
	}

	output := &ListBackupsOutput{Backups: make([]*BackupOutput, 0, len(backups))}
	for _, b := range backups {
		output.Backups = append(output.Backups, toBackupOutput(b))
	}
	return output, nil
}
