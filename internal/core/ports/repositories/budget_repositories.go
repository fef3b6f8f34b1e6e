package repositories

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgetsByUser retrieves all budgets owned by a user.
	ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error)

	// FindBudgetsForCategory retrieves a user's budgets monitoring the given
	// category, including "overall" budgets (empty category reference), which
	// match every category.
	FindBudgetsForCategory(ctx context.Context, userID string, categoryID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates an existing budget.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, budgetID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
