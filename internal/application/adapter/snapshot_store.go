// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// SnapshotStore persists one ledger snapshot per owner.
type SnapshotStore interface {
	// Load returns the last saved snapshot, or domainerror.ErrSnapshotNotFound.
	Load(ctx context.Context, ownerID uuid.UUID) (*entity.Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, ownerID uuid.UUID, snapshot *entity.Snapshot) error

	// Delete removes the stored snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, ownerID uuid.UUID) error
}
