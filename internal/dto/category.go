package dto

import (
	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name             string `json:"name" binding:"required"`
	ParentCategoryID string `json:"parentCategoryID"`
	Icon             string `json:"icon"`
	Color            string `json:"color"`
}

// UpdateCategoryRequest defines the fields that may change on a category.
type UpdateCategoryRequest struct {
	Name             *string `json:"name"`
	ParentCategoryID *string `json:"parentCategoryID"`
	Icon             *string `json:"icon"`
	Color            *string `json:"color"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID       string `json:"categoryID"`
	Name             string `json:"name"`
	ParentCategoryID string `json:"parentCategoryID,omitempty"`
	Icon             string `json:"icon,omitempty"`
	Color            string `json:"color,omitempty"`
	IsSystem         bool   `json:"isSystem"`
}

// ToCategoryResponse converts a domain.Category to its response DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:       c.CategoryID,
		Name:             c.Name,
		ParentCategoryID: c.ParentCategoryID,
		Icon:             c.Icon,
		Color:            c.Color,
		IsSystem:         c.IsSystem,
	}
}

// ToListCategoryResponse converts a slice of categories to response DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToCategoryResponse(&c)
	}
	return res
}
