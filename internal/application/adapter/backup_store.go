// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// BackupStore keeps point-in-time copies of ledger snapshots in object storage.
type BackupStore interface {
	// Put stores a snapshot and returns its backup descriptor.
	Put(ctx context.Context, ownerID uuid.UUID, snapshot *entity.Snapshot) (*entity.Backup, error)

	// List returns the owner's backups, newest first.
	List(ctx context.Context, ownerID uuid.UUID) ([]*entity.Backup, error)

	// Get reads a backup back. Keys of other owners are reported as not found.
	Get(ctx context.Context, ownerID uuid.UUID, key string) (*entity.Snapshot, error)
}
