package model

import (
	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// LedgerCategoryModel represents the ledger_categories table.
// Default categories share IDs across owners, so the key includes the owner.
type LedgerCategoryModel struct {
	OwnerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"not null"`
	Name      string    `gorm:"type:varchar(50);not null"`
	Icon      string    `gorm:"type:varchar(50);default:'tag'"`
	Type      string    `gorm:"type:varchar(10);not null"`
	IsDefault bool      `gorm:"default:false"`
}

// TableName returns the table name for the LedgerCategoryModel.
func (LedgerCategoryModel) TableName() string {
	return "ledger_categories"
}

// ToEntity converts a LedgerCategoryModel to a domain Category entity.
func (m *LedgerCategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Icon:      m.Icon,
		Type:      entity.CategoryType(m.Type),
		IsDefault: m.IsDefault,
	}
}

// CategoryFromEntity creates a LedgerCategoryModel from a domain Category entity.
func CategoryFromEntity(ownerID uuid.UUID, position int, c *entity.Category) *LedgerCategoryModel {
	return &LedgerCategoryModel{
		OwnerID:   ownerID,
		ID:        c.ID,
		Position:  position,
		Name:      c.Name,
		Icon:      c.Icon,
		Type:      string(c.Type),
		IsDefault: c.IsDefault,
	}
}
