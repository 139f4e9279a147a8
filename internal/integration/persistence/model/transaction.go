package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// LedgerTransactionModel represents the ledger_transactions table.
// Position keeps the insertion order of the log.
type LedgerTransactionModel struct {
	OwnerID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position      int             `gorm:"not null"`
	Kind          string          `gorm:"type:varchar(20);not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountName   string          `gorm:"type:varchar(255);not null"`
	ToAccountID   *uuid.UUID      `gorm:"type:uuid"`
	ToAccountName string          `gorm:"type:varchar(255)"`
	OccurredAt    time.Time       `gorm:"not null;index"`
	ModifiedAt    time.Time       `gorm:"not null"`
	Remarks       string          `gorm:"type:text"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid"`
	IsOrphaned    bool            `gorm:"default:false"`
}

// TableName returns the table name for the LedgerTransactionModel.
func (LedgerTransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToEntity converts a LedgerTransactionModel to a domain Transaction entity.
func (m *LedgerTransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		Kind:          entity.TransactionKind(m.Kind),
		Amount:        m.Amount,
		AccountID:     m.AccountID,
		AccountName:   m.AccountName,
		ToAccountID:   m.ToAccountID,
		ToAccountName: m.ToAccountName,
		OccurredAt:    m.OccurredAt,
		ModifiedAt:    m.ModifiedAt,
		Remarks:       m.Remarks,
		CategoryID:    m.CategoryID,
		IsOrphaned:    m.IsOrphaned,
	}
}

// TransactionFromEntity creates a LedgerTransactionModel from a domain Transaction entity.
func TransactionFromEntity(ownerID uuid.UUID, position int, t *entity.Transaction) *LedgerTransactionModel {
	return &LedgerTransactionModel{
		OwnerID:       ownerID,
		ID:            t.ID,
		Position:      position,
		Kind:          string(t.Kind),
		Amount:        t.Amount,
		AccountID:     t.AccountID,
		AccountName:   t.AccountName,
		ToAccountID:   t.ToAccountID,
		ToAccountName: t.ToAccountName,
		OccurredAt:    t.OccurredAt,
		ModifiedAt:    t.ModifiedAt,
		Remarks:       t.Remarks,
		CategoryID:    t.CategoryID,
		IsOrphaned:    t.IsOrphaned,
	}
}
