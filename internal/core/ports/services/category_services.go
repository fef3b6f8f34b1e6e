package services

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// CategorySvcFacade manages the category tree.
type CategorySvcFacade interface {
	// CreateCategory persists a new category, rejecting parent links that
	// would introduce a cycle.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// UpdateCategory applies changes, re-validating the parent chain.
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// GetCategoryByID retrieves a specific category.
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategories retrieves the user's categories plus the system set.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)

	// SeedDefaultCategories installs the system category taxonomy if absent.
	SeedDefaultCategories(ctx context.Context) error
}
