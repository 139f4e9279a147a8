package persistence

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, server
}

func TestRedisSnapshotStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client, server := newTestRedis(t)
	store := NewRedisSnapshotStore(client)
	owner := uuid.New()

	_, err := store.Load(ctx, owner)
	assert.ErrorIs(t, err, domainerror.ErrSnapshotNotFound)

	snapshot := sampleSnapshot()
	require.NoError(t, store.Save(ctx, owner, snapshot))
	assert.True(t, server.Exists("ledger:snapshot:"+owner.String()))

	got, err := store.Load(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
	require.Len(t, got.Transactions, len(snapshot.Transactions))
	for i, want := range snapshot.Transactions {
		assert.Equal(t, want.ID, got.Transactions[i].ID)
		assert.True(t, want.Amount.Equal(got.Transactions[i].Amount))
	}
	assert.True(t, snapshot.SavedAt.Equal(got.SavedAt))

	require.NoError(t, store.Delete(ctx, owner))
	_, err = store.Load(ctx, owner)
	assert.ErrorIs(t, err, domainerror.ErrSnapshotNotFound)
}

func TestRedisSnapshotStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	client, server := newTestRedis(t)
	owner := uuid.New()
	require.NoError(t, server.Set("ledger:snapshot:"+owner.String(), "{not json"))

	_, err := NewRedisSnapshotStore(client).Load(ctx, owner)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerror.ErrSnapshotNotFound)
}
