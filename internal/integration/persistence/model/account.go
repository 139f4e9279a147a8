package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// LedgerAccountModel represents the ledger_accounts table.
type LedgerAccountModel struct {
	OwnerID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the LedgerAccountModel.
func (LedgerAccountModel) TableName() string {
	return "ledger_accounts"
}

// ToEntity converts a LedgerAccountModel to a domain Account entity.
func (m *LedgerAccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:        m.ID,
		Name:      m.Name,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
	}
}

// AccountFromEntity creates a LedgerAccountModel from a domain Account entity.
func AccountFromEntity(ownerID uuid.UUID, position int, a *entity.Account) *LedgerAccountModel {
	return &LedgerAccountModel{
		OwnerID:   ownerID,
		ID:        a.ID,
		Position:  position,
		Name:      a.Name,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
	}
}
