package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

const snapshotKeyPrefix = "ledger:snapshot:"

// redisSnapshotStore implements the adapter.SnapshotStore interface with one JSON value per owner.
type redisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore creates a new Redis-backed snapshot store.
func NewRedisSnapshotStore(client *redis.Client) adapter.SnapshotStore {
	return &redisSnapshotStore{
		client: client,
	}
}

func snapshotKey(ownerID uuid.UUID) string {
	return snapshotKeyPrefix + ownerID.String()
}

// Load reads and decodes the owner's snapshot.
func (s *redisSnapshotStore) Load(ctx context.Context, ownerID uuid.UUID) (*entity.Snapshot, error) {
	payload, err := s.client.Get(ctx, snapshotKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.ErrSnapshotNotFound
		}
		return nil, err
	}

	var snapshot entity.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, nil
}

// Save encodes the snapshot and overwrites the stored value.
func (s *redisSnapshotStore) Save(ctx context.Context, ownerID uuid.UUID, snapshot *entity.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.client.Set(ctx, snapshotKey(ownerID), payload, 0).Err()
}

// Delete removes the owner's snapshot.
func (s *redisSnapshotStore) Delete(ctx context.Context, ownerID uuid.UUID) error {
	return s.client.Del(ctx, snapshotKey(ownerID)).Err()
}
