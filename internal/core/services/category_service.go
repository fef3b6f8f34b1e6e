package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// defaultCategories is the system taxonomy seeded at startup. IDs are fixed
// so seeding stays idempotent and rules/budgets can reference them stably.
var defaultCategories = []domain.Category{
	{CategoryID: "sys_groceries", Name: "Groceries", Icon: "cart", Color: "#4CAF50"},
	{CategoryID: "sys_dining", Name: "Dining", Icon: "utensils", Color: "#FF9800"},
	{CategoryID: "sys_coffee", Name: "Coffee", ParentCategoryID: "sys_dining", Icon: "coffee", Color: "#795548"},
	{CategoryID: "sys_transport", Name: "Transport", Icon: "bus", Color: "#2196F3"},
	{CategoryID: "sys_utilities", Name: "Utilities", Icon: "bolt", Color: "#FFC107"},
	{CategoryID: "sys_housing", Name: "Housing", Icon: "home", Color: "#9C27B0"},
	{CategoryID: "sys_health", Name: "Health", Icon: "heart", Color: "#F44336"},
	{CategoryID: "sys_entertainment", Name: "Entertainment", Icon: "film", Color: "#E91E63"},
	{CategoryID: "sys_shopping", Name: "Shopping", Icon: "bag", Color: "#00BCD4"},
	{CategoryID: "sys_travel", Name: "Travel", Icon: "plane", Color: "#3F51B5"},
	{CategoryID: "sys_income", Name: "Income", Icon: "wallet", Color: "#8BC34A"},
	{CategoryID: "sys_other", Name: "Other", Icon: "dots", Color: "#9E9E9E"},
}

// SystemCategories returns the system taxonomy. The AI classifier builds its
// label set from this.
func SystemCategories() []domain.Category {
	out := make([]domain.Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// categoryServiceImpl implements the CategorySvcFacade interface
type categoryServiceImpl struct {
	BaseService
	catRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service
func NewCategoryService(catRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryServiceImpl{catRepo: catRepo}
}

// Ensure categoryServiceImpl implements the CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryServiceImpl)(nil)

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if req.ParentCategoryID != "" {
		if err := s.validateParent(ctx, userID, req.ParentCategoryID, ""); err != nil {
			return nil, err
		}
	}

	if existing, err := s.catRepo.FindCategoryByName(ctx, userID, req.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: category name %q already in use", apperrors.ErrDuplicate, req.Name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:       uuid.NewString(),
		UserID:           userID,
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
		Icon:             req.Icon,
		Color:            req.Color,
		IsSystem:         false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.catRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category",
			slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created",
		slog.String("category_id", category.CategoryID),
		slog.String("name", category.Name))
	return &category, nil
}

func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.catRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category",
				slog.String("category_id", categoryID))
		}
		return nil, err
	}
	if category.IsSystem {
		return nil, fmt.Errorf("%w: system categories cannot be modified", apperrors.ErrValidation)
	}
	if category.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	updated := false
	if req.Name != nil {
		category.Name = *req.Name
		updated = true
	}
	if req.ParentCategoryID != nil {
		if *req.ParentCategoryID != "" {
			if err := s.validateParent(ctx, userID, *req.ParentCategoryID, categoryID); err != nil {
				return nil, err
			}
		}
		category.ParentCategoryID = *req.ParentCategoryID
		updated = true
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
		updated = true
	}
	if req.Color != nil {
		category.Color = *req.Color
		updated = true
	}
	if !updated {
		return category, nil
	}

	now := time.Now()
	category.LastUpdatedAt = now
	category.LastUpdatedBy = userID

	if err := s.catRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category",
			slog.String("category_id", categoryID))
		return nil, err
	}

	return category, nil
}

// validateParent checks that the parent exists, is visible to the user, and
// that linking to it would not create a cycle. forID is the category being
// re-parented (empty for creates, which cannot introduce cycles).
func (s *categoryServiceImpl) validateParent(ctx context.Context, userID string, parentID string, forID string) error {
	// Walk ancestors from the proposed parent toward the root. Hitting forID
	// on the way means the link closes a cycle.
	seen := make(map[string]bool)
	current := parentID
	for current != "" {
		if current == forID {
			return fmt.Errorf("%w: parent link would create a category cycle", apperrors.ErrValidation)
		}
		if seen[current] {
			// Pre-existing cycle in stored data; refuse to extend it.
			return fmt.Errorf("%w: category ancestry is cyclic", apperrors.ErrValidation)
		}
		seen[current] = true

		parent, err := s.catRepo.FindCategoryByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent category %s does not exist", apperrors.ErrValidation, current)
			}
			return err
		}
		if !parent.IsSystem && parent.UserID != userID {
			return apperrors.ErrNotFound
		}
		current = parent.ParentCategoryID
	}
	return nil
}

func (s *categoryServiceImpl) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.catRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category by ID",
				slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.catRepo.ListCategoriesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryServiceImpl) SeedDefaultCategories(ctx context.Context) error {
	now := time.Now()
	for _, c := range defaultCategories {
		if _, err := s.catRepo.FindCategoryByID(ctx, c.CategoryID); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		c.IsSystem = true
		c.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		}
		if err := s.catRepo.SaveCategory(ctx, c); err != nil {
			s.LogError(ctx, err, "Failed to seed category",
				slog.String("category_id", c.CategoryID))
			return err
		}
	}
	s.LogInfo(ctx, "System categories seeded",
		slog.Int("count", len(defaultCategories)))
	return nil
}
