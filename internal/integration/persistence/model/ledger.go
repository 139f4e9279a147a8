// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// LedgerModel represents the ledgers table: one header row per owner.
type LedgerModel struct {
	OwnerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version   int       `gorm:"not null"`
	Currency  string    `gorm:"type:varchar(3)"`
	SavedAt   time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the LedgerModel.
func (LedgerModel) TableName() string {
	return "ledgers"
}

// LedgerTables lists every model that holds ledger state, children first.
func LedgerTables() []any {
	return []any{
		&LedgerTransactionModel{},
		&LedgerAccountModel{},
		&LedgerCategoryModel{},
		&LedgerModel{},
	}
}
