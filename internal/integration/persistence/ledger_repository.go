// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

const insertBatchSize = 200

// ledgerRepository implements the adapter.SnapshotStore interface on relational tables.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.SnapshotStore {
	return &ledgerRepository{
		db: db,
	}
}

// Load reads the owner's ledger back into a snapshot.
func (r *ledgerRepository) Load(ctx context.Context, ownerID uuid.UUID) (*entity.Snapshot, error) {
	db := r.db.WithContext(ctx)

	var header model.LedgerModel
	result := db.Where("owner_id = ?", ownerID).First(&header)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSnapshotNotFound
		}
		return nil, result.Error
	}

	var accounts []model.LedgerAccountModel
	if err := db.Where("owner_id = ?", ownerID).Order("position ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	var transactions []model.LedgerTransactionModel
	if err := db.Where("owner_id = ?", ownerID).Order("position ASC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	var categories []model.LedgerCategoryModel
	if err := db.Where("owner_id = ?", ownerID).Order("position ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	snapshot := &entity.Snapshot{
		Version:      header.Version,
		Currency:     header.Currency,
		Accounts:     make([]*entity.Account, 0, len(accounts)),
		Transactions: make([]*entity.Transaction, 0, len(transactions)),
		Categories:   make([]*entity.Category, 0, len(categories)),
		SavedAt:      header.SavedAt,
	}
	for i := range accounts {
		snapshot.Accounts = append(snapshot.Accounts, accounts[i].ToEntity())
	}
	for i := range transactions {
		snapshot.Transactions = append(snapshot.Transactions, transactions[i].ToEntity())
	}
	for i := range categories {
		snapshot.Categories = append(snapshot.Categories, categories[i].ToEntity())
	}
	return snapshot, nil
}

// Save replaces every row of the owner's ledger in a single database transaction.
func (r *ledgerRepository) Save(ctx context.Context, ownerID uuid.UUID, snapshot *entity.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, ownerID); err != nil {
			return err
		}

		header := &model.LedgerModel{
			OwnerID:   ownerID,
			Version:   snapshot.Version,
			Currency:  snapshot.Currency,
			SavedAt:   snapshot.SavedAt,
			CreatedAt: time.Now().UTC(),
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "currency", "saved_at"}),
		}).Create(header).Error
		if err != nil {
			return err
		}

		accounts := make([]*model.LedgerAccountModel, 0, len(snapshot.Accounts))
		for i, a := range snapshot.Accounts {
			accounts = append(accounts, model.AccountFromEntity(ownerID, i, a))
		}
		transactions := make([]*model.LedgerTransactionModel, 0, len(snapshot.Transactions))
		for i, t := range snapshot.Transactions {
			transactions = append(transactions, model.TransactionFromEntity(ownerID, i, t))
		}
		categories := make([]*model.LedgerCategoryModel, 0, len(snapshot.Categories))
		for i, c := range snapshot.Categories {
			categories = append(categories, model.CategoryFromEntity(ownerID, i, c))
		}

		if len(accounts) > 0 {
			if err := tx.CreateInBatches(accounts, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(transactions) > 0 {
			if err := tx.CreateInBatches(transactions, insertBatchSize).Error; err != nil {
				return err
			}
		}
		if len(categories) > 0 {
			if err := tx.CreateInBatches(categories, insertBatchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the owner's ledger. Deleting a missing ledger is not an error.
func (r *ledgerRepository) Delete(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, ownerID); err != nil {
			return err
		}
		return tx.Where("owner_id = ?", ownerID).Delete(&model.LedgerModel{}).Error
	})
}

func deleteChildren(tx *gorm.DB, ownerID uuid.UUID) error {
	for _, table := range []any{
		&model.LedgerTransactionModel{},
		&model.LedgerAccountModel{},
		&model.LedgerCategoryModel{},
	} {
		if err := tx.Where("owner_id = ?", ownerID).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}
