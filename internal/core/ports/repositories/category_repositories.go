package repositories

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategoriesByUser retrieves a user's categories plus the system-seeded set.
	ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error)

	// FindCategoryByName retrieves a category by name within the owner scope
	// (system categories count as every owner's scope).
	FindCategoryByName(ctx context.Context, userID string, name string) (*domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category.
	UpdateCategory(ctx context.Context, category domain.Category) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
