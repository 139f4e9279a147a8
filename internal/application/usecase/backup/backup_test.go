package backup

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/application/ledger"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type engineRunner struct {
	engine *ledger.Engine
}

func (r engineRunner) View(_ context.Context, _ uuid.UUID, fn func(ledger.Ledger) error) error {
	return fn(r.engine)
}

func (r engineRunner) Update(_ context.Context, _ uuid.UUID, fn func(ledger.Ledger) error) error {
	return fn(r.engine)
}

func (r engineRunner) SyncStatus(uuid.UUID) error { return nil }

func (r engineRunner) Evict(uuid.UUID) {}

type memoryBackupStore struct {
	mu      sync.Mutex
	objects map[string]*entity.Snapshot
	backups map[uuid.UUID][]*entity.Backup
	clock   time.Time
}

func newMemoryBackupStore() *memoryBackupStore {
	return &memoryBackupStore{
		objects: make(map[string]*entity.Snapshot),
		backups: make(map[uuid.UUID][]*entity.Backup),
		clock:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memoryBackupStore) Put(_ context.Context, ownerID uuid.UUID, snapshot *entity.Snapshot) (*entity.Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = s.clock.Add(time.Minute)
	key := fmt.Sprintf("backups/%s/%s.json", ownerID, s.clock.Format("20060102T150405Z"))
	s.objects[key] = snapshot
	b := &entity.Backup{Key: key, Size: int64(len(snapshot.Transactions)), CreatedAt: s.clock}
	s.backups[ownerID] = append(s.backups[ownerID], b)
	return b, nil
}

func (s *memoryBackupStore) List(_ context.Context, ownerID uuid.UUID) ([]*entity.Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]*entity.Backup(nil), s.backups[ownerID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memoryBackupStore) Get(_ context.Context, ownerID uuid.UUID, key string) (*entity.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.backups[ownerID] {
		if b.Key == key {
			return s.objects[key], nil
		}
	}
	return nil, domainerror.ErrBackupNotFound
}

func TestBackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	engine := ledger.NewEngine()
	require.NoError(t, engine.SetCurrency("USD"))
	cash, err := engine.CreateAccount("Cash", decimal.NewFromInt(100))
	require.NoError(t, err)

	runner := engineRunner{engine: engine}
	store := newMemoryBackupStore()

	first, err := NewCreateBackupUseCase(runner, store).Execute(ctx, CreateBackupInput{UserID: owner})
	require.NoError(t, err)

	_, err = engine.RecordFlow(ledger.FlowInput{Kind: entity.TransactionKindExpenditure, Amount: decimal.NewFromInt(40), AccountID: cash.ID})
	require.NoError(t, err)
	second, err := NewCreateBackupUseCase(runner, store).Execute(ctx, CreateBackupInput{UserID: owner})
	require.NoError(t, err)

	list, err := NewListBackupsUseCase(store).Execute(ctx, ListBackupsInput{UserID: owner})
	require.NoError(t, err)
	require.Len(t, list.Backups, 2)
	assert.Equal(t, second.Key, list.Backups[0].Key)
	assert.Equal(t, first.Key, list.Backups[1].Key)

	out, err := NewRestoreBackupUseCase(runner, store).Execute(ctx, RestoreBackupInput{UserID: owner, Key: first.Key})
	require.NoError(t, err)
	assert.Equal(t, &RestoreBackupOutput{Accounts: 1, Transactions: 1, Consistent: true}, out)
	assert.True(t, decimal.NewFromInt(100).Equal(engine.TotalBalance()))
}

func TestRestoreBackup_NotFound(t *testing.T) {
	ctx := context.Background()
	runner := engineRunner{engine: ledger.NewEngine()}
	store := newMemoryBackupStore()

	other, err := NewCreateBackupUseCase(runner, store).Execute(ctx, CreateBackupInput{UserID: uuid.New()})
	require.NoError(t, err)

	for _, key := range []string{"", "backups/unknown.json", other.Key} {
		_, err := NewRestoreBackupUseCase(runner, store).Execute(ctx, RestoreBackupInput{UserID: uuid.New(), Key: key})
		assert.ErrorIs(t, err, domainerror.ErrBackupNotFound, key)
		assert.Equal(t, domainerror.KindNotFound, domainerror.KindOf(err))
	}
}

func TestRestoreBackup_InvalidSnapshotKeepsLedger(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	engine := ledger.NewEngine()
	require.NoError(t, engine.SetCurrency("EUR"))
	store := newMemoryBackupStore()
	b, err := store.Put(ctx, owner, &entity.Snapshot{Version: entity.SnapshotVersion + 1})
	require.NoError(t, err)

	_, err = NewRestoreBackupUseCase(engineRunner{engine: engine}, store).Execute(ctx, RestoreBackupInput{UserID: owner, Key: b.Key})
	assert.Equal(t, domainerror.KindValidation, domainerror.KindOf(err))
	assert.Equal(t, "EUR", engine.Currency())
}
