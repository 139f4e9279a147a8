package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// DefaultSaveTimeout bounds a snapshot write issued after a mutation.
const DefaultSaveTimeout = 10 * time.Second

// Runner runs ledger operations on behalf of an owner.
type Runner interface {
	View(ctx context.Context, ownerID uuid.UUID, fn func(Ledger) error) error
	Update(ctx context.Context, ownerID uuid.UUID, fn func(Ledger) error) error
	SyncStatus(ownerID uuid.UUID) error
	Evict(ownerID uuid.UUID)
}

// Ensure Registry implements Runner.
var _ Runner = (*Registry)(nil)

// Registry holds one Engine per owner. It loads each ledger from the store on
// first access, runs operations for the same owner one at a time, and mirrors
// the ledger back to the store after every mutation.
//
// The in-memory engine is the source of truth. A failed save is logged and
// reported by SyncStatus; it never rolls the engine back.
type Registry struct {
	store       adapter.SnapshotStore
	logger      *slog.Logger
	options     []Option
	saveTimeout time.Duration

	mu      sync.Mutex
	entries map[uuid.UUID]*registryEntry
}

type registryEntry struct {
	mu            sync.Mutex
	engine        *Engine
	loaded        bool
	unreachable   bool
	savedRevision uint64
	syncErr       error
}

// NewRegistry creates a new Registry backed by store. Engine options apply to every ledger.
func NewRegistry(store adapter.SnapshotStore, logger *slog.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		store:       store,
		logger:      logger,
		options:     opts,
		saveTimeout: DefaultSaveTimeout,
		entries:     make(map[uuid.UUID]*registryEntry),
	}
}

// SetSaveTimeout overrides DefaultSaveTimeout. Non-positive values are ignored.
func (r *Registry) SetSaveTimeout(d time.Duration) {
	if d > 0 {
		r.saveTimeout = d
	}
}

// View runs fn against the owner's ledger without saving afterwards.
// fn must only read; it must not keep the Ledger after it returns.
func (r *Registry) View(ctx context.Context, ownerID uuid.UUID, fn func(Ledger) error) error {
	e := r.entry(ownerID)
	e.mu.Lock()
	defer e.mu.Unlock()

	r.ensureLoaded(ctx, ownerID, e)
	err := fn(e.engine)
	if !e.loaded {
		r.discard(e)
	}
	return err
}

// Update runs fn against the owner's ledger and saves a snapshot if fn changed it.
// The error of fn is returned even when part of it was applied.
// While the store cannot be read, fn is not run and the persistence error is returned.
func (r *Registry) Update(ctx context.Context, ownerID uuid.UUID, fn func(Ledger) error) error {
	e := r.entry(ownerID)
	e.mu.Lock()
	defer e.mu.Unlock()

	r.ensureLoaded(ctx, ownerID, e)
	if e.unreachable {
		r.discard(e)
		return e.syncErr
	}
	err := fn(e.engine)
	r.settle(ctx, ownerID, e)
	return err
}

// SyncStatus returns the last persistence failure for the owner, or nil when
// the store mirrors the in-memory ledger.
func (r *Registry) SyncStatus(ownerID uuid.UUID) error {
	e := r.entry(ownerID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syncErr
}

// Evict drops the owner's in-memory ledger. The next access reloads it from the store.
func (r *Registry) Evict(ownerID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, ownerID)
}

func (r *Registry) entry(ownerID uuid.UUID) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[ownerID]
	if !ok {
		e = &registryEntry{engine: NewEngine(r.options...)}
		r.entries[ownerID] = e
	}
	return e
}

func (r *Registry) ensureLoaded(ctx context.Context, ownerID uuid.UUID, e *registryEntry) {
	if e.loaded {
		return
	}

	snapshot, err := r.store.Load(ctx, ownerID)
	e.unreachable = false
	switch {
	case errors.Is(err, domainerror.ErrSnapshotNotFound):
		e.loaded = true
		e.syncErr = nil
	case err != nil:
		r.logger.Warn("failed to load ledger, continuing read-only with an empty one",
			"owner_id", ownerID, "error", err)
		e.unreachable = true
		e.syncErr = domainerror.NewPersistenceError(err)
	default:
		if err := e.engine.Restore(snapshot); err != nil {
			r.logger.Warn("stored ledger snapshot is invalid, continuing with an empty one",
				"owner_id", ownerID, "error", err)
			e.syncErr = domainerror.NewPersistenceError(err)
			e.engine = NewEngine(r.options...)
			break
		}
		e.loaded = true
		e.syncErr = nil
		if report := e.engine.Verify(); !report.Consistent {
			r.logger.Warn("stored ledger balances disagree with the transaction log",
				"owner_id", ownerID, "accounts", len(report.Discrepancies))
		}
	}
	e.savedRevision = e.engine.Revision()
}

// settle saves the ledger when it changed. A ledger that could not be loaded
// and was not changed is discarded so the next access retries the load.
func (r *Registry) settle(ctx context.Context, ownerID uuid.UUID, e *registryEntry) {
	if e.engine.Revision() == e.savedRevision {
		if !e.loaded {
			r.discard(e)
		}
		return
	}
	e.loaded = true

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.saveTimeout)
	defer cancel()

	if err := r.store.Save(saveCtx, ownerID, e.engine.Snapshot()); err != nil {
		r.logger.Warn("failed to save ledger snapshot, changes kept in memory",
			"owner_id", ownerID, "revision", e.engine.Revision(), "error", err)
		e.syncErr = domainerror.NewPersistenceError(err)
		return
	}
	e.savedRevision = e.engine.Revision()
	e.syncErr = nil
	r.logger.Debug("ledger snapshot saved", "owner_id", ownerID, "revision", e.savedRevision)
}

func (r *Registry) discard(e *registryEntry) {
	e.engine = NewEngine(r.options...)
	e.savedRevision = e.engine.Revision()
}
