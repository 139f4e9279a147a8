package dto

import (
	"github.com/finance-tracker/ledger/internal/application/usecase/category"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
	Icon string `json:"icon,omitempty"`
	Type string `json:"type" binding:"required,oneof=expense income"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Icon *string `json:"icon,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Icon             string `json:"icon"`
	Type             string `json:"type"`
	IsDefault        bool   `json:"is_default"`
	TransactionCount int    `json:"transaction_count"`
	PeriodTotal      string `json:"period_total"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a category output to a CategoryResponse DTO.
func ToCategoryResponse(c *category.CategoryOutput) CategoryResponse {
	return CategoryResponse{
		ID:               c.ID.String(),
		Name:             c.Name,
		Icon:             c.Icon,
		Type:             string(c.Type),
		IsDefault:        c.IsDefault,
		TransactionCount: c.TransactionCount,
		PeriodTotal:      c.PeriodTotal.String(),
	}
}

// ToCategoryListResponse converts the list output to a CategoryListResponse DTO.
func ToCategoryListResponse(out *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, 0, len(out.Categories))
	for _, c := range out.Categories {
		categories = append(categories, ToCategoryResponse(c))
	}
	return CategoryListResponse{Categories: categories}
}
