// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// IsValid reports whether t is a known category type.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category classifies income and expenditure transactions.
// Built-in categories (IsDefault) can be renamed or re-iconed but never deleted.
type Category struct {
	ID        uuid.UUID    `json:"id"`
	Name      string       `json:"name"`
	Icon      string       `json:"icon"`
	Type      CategoryType `json:"type"`
	IsDefault bool         `json:"isDefault"`
}

// NewCategory creates a new user-defined Category entity.
func NewCategory(name, icon string, categoryType CategoryType) *Category {
	if icon == "" {
		icon = DefaultCategoryIcon
	}
	return &Category{
		ID:   uuid.New(),
		Name: name,
		Icon: icon,
		Type: categoryType,
	}
}

// Clone returns a copy of the category.
func (c *Category) Clone() *Category {
	cc := *c
	return &cc
}

// categoryNamespace seeds the deterministic IDs of built-in categories.
var categoryNamespace = uuid.MustParse("6f1c2a9e-3d4b-4f7a-9c1e-2b8d5e7f0a13")

var defaultCategories = []struct {
	name string
	icon string
	typ  CategoryType
}{
	{"Salary", "briefcase", CategoryTypeIncome},
	{"Freelance", "wallet", CategoryTypeIncome},
	{"Investments", "chart-line", CategoryTypeIncome},
	{"Gifts", "gift", CategoryTypeIncome},
	{"Other Income", "coins", CategoryTypeIncome},
	{"Food", "utensils", CategoryTypeExpense},
	{"Transport", "car", CategoryTypeExpense},
	{"Shopping", "shopping-bag", CategoryTypeExpense},
	{"Bills", "bolt", CategoryTypeExpense},
	{"Entertainment", "film", CategoryTypeExpense},
	{"Health", "heart", CategoryTypeExpense},
	{"Education", "book", CategoryTypeExpense},
	{"Other Expenses", DefaultCategoryIcon, CategoryTypeExpense},
}

// DefaultCategories returns the built-in categories every ledger starts with.
// Their IDs are stable across ledgers.
func DefaultCategories() []*Category {
	categories := make([]*Category, 0, len(defaultCategories))
	for _, d := range defaultCategories {
		categories = append(categories, &Category{
			ID:        uuid.NewSHA1(categoryNamespace, []byte(string(d.typ)+"/"+d.name)),
			Name:      d.name,
			Icon:      d.icon,
			Type:      d.typ,
			IsDefault: true,
		})
	}
	return categories
}
