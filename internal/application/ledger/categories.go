package ledger

import (
	"strings"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// CategoryUpdate holds the category fields to change. Nil fields are left unchanged.
type CategoryUpdate struct {
	Name *string
	Icon *string
}

// Categories returns copies of all categories, built-in ones first.
func (e *Engine) Categories() []*entity.Category {
	categories := make([]*entity.Category, 0, len(e.categories))
	for _, c := range e.categories {
		categories = append(categories, c.Clone())
	}
	return categories
}

// Category returns a copy of a single category.
func (e *Engine) Category(id uuid.UUID) (*entity.Category, error) {
	c := e.findCategory(id)
	if c == nil {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeCategoryNotFound, domainerror.ErrCategoryNotFound)
	}
	return c.Clone(), nil
}

// AddCategory creates a user-defined category. Names are unique per type, ignoring case.
func (e *Engine) AddCategory(name, icon string, categoryType entity.CategoryType) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeEmptyName, domainerror.ErrEmptyName)
	}
	if !categoryType.IsValid() {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeInvalidCategoryType, domainerror.ErrInvalidCategoryType)
	}
	if e.categoryNameTaken(name, categoryType, uuid.Nil) {
		return nil, domainerror.NewValidationError(domainerror.ErrCodeCategoryNameExists, domainerror.ErrCategoryNameExists)
	}

	category := entity.NewCategory(name, strings.TrimSpace(icon), categoryType)
	e.categories = append(e.categories, category)
	e.touch()

	return category.Clone(), nil
}

// UpdateCategory renames or re-icons a category. Built-in categories may be updated too.
func (e *Engine) UpdateCategory(id uuid.UUID, update CategoryUpdate) (*entity.Category, error) {
	category := e.findCategory(id)
	if category == nil {
		return nil, domainerror.NewNotFoundError(domainerror.ErrCodeCategoryNotFound, domainerror.ErrCategoryNotFound)
	}

	name := category.Name
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, domainerror.NewValidationError(domainerror.ErrCodeEmptyName, domainerror.ErrEmptyName)
		}
		if e.categoryNameTaken(name, category.Type, category.ID) {
			return nil, domainerror.NewValidationError(domainerror.ErrCodeCategoryNameExists, domainerror.ErrCategoryNameExists)
		}
	}

	category.Name = name
	if update.Icon != nil {
		category.Icon = strings.TrimSpace(*update.Icon)
		if category.Icon == "" {
			category.Icon = entity.DefaultCategoryIcon
		}
	}
	e.touch()

	return category.Clone(), nil
}

// DeleteCategory removes a user-defined category and clears it from every
// transaction that used it.
func (e *Engine) DeleteCategory(id uuid.UUID) error {
	idx := -1
	for i, c := range e.categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domainerror.NewNotFoundError(domainerror.ErrCodeCategoryNotFound, domainerror.ErrCategoryNotFound)
	}
	if e.categories[idx].IsDefault {
		return domainerror.NewImmutableRecordError(domainerror.ErrCodeDefaultCategory, domainerror.ErrDefaultCategory)
	}

	e.categories = append(e.categories[:idx], e.categories[idx+1:]...)
	for _, t := range e.transactions {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}
	e.touch()

	return nil
}

func (e *Engine) categoryNameTaken(name string, categoryType entity.CategoryType, except uuid.UUID) bool {
	for _, c := range e.categories {
		if c.ID != except && c.Type == categoryType && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
