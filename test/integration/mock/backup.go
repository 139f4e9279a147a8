package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type storedBackup struct {
	backup  entity.Backup
	payload []byte
}

// BackupStore keeps backups in memory. Snapshots are stored encoded so a
// restore never shares state with the live ledger.
type BackupStore struct {
	mu      sync.Mutex
	clock   *Time
	objects map[uuid.UUID][]storedBackup
}

// NewBackupStore creates an in-memory backup store.
func NewBackupStore(clock *Time) *BackupStore {
	return &BackupStore{clock: clock, objects: map[uuid.UUID][]storedBackup{}}
}

// Clear drops every backup.
func (s *BackupStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = map[uuid.UUID][]storedBackup{}
}

// Put stores a copy of the snapshot.
func (s *BackupStore) Put(_ context.Context, ownerID uuid.UUID, snapshot *entity.Snapshot) (*entity.Backup, error) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	createdAt := s.clock.Now().UTC()
	stored := storedBackup{
		backup: entity.Backup{
			Key:       fmt.Sprintf("backups/%s/%d.json", ownerID, len(s.objects[ownerID])+1),
			Size:      int64(len(payload)),
			CreatedAt: createdAt,
		},
		payload: payload,
	}
	s.objects[ownerID] = append(s.objects[ownerID], stored)
	backup := stored.backup
	return &backup, nil
}

// List returns the owner's backups, newest first.
func (s *BackupStore) List(_ context.Context, ownerID uuid.UUID) ([]*entity.Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.objects[ownerID]
	backups := make([]*entity.Backup, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		backup := stored[i].backup
		backups = append(backups, &backup)
	}
	return backups, nil
}

// Get returns the snapshot stored under key.
func (s *BackupStore) Get(_ context.Context, ownerID uuid.UUID, key string) (*entity.Snapshot, error) {
	if !strings.HasPrefix(key, "backups/"+ownerID.String()+"/") {
		return nil, domainerror.ErrBackupNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stored := range s.objects[ownerID] {
		if stored.backup.Key != key {
			continue
		}
		var snapshot entity.Snapshot
		if err := json.Unmarshal(stored.payload, &snapshot); err != nil {
			return nil, err
		}
		return &snapshot, nil
	}
	return nil, domainerror.ErrBackupNotFound
}
