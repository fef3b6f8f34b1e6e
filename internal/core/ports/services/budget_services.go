package services

import (
	"context"
	"time"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// BudgetSvcFacade manages budget configuration. The budget monitor only ever
// reads budgets; all mutation goes through here.
type BudgetSvcFacade interface {
	// CreateBudget validates and persists a new budget.
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)

	// UpdateBudget validates and applies changes to an existing budget.
	UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, userID string, budgetID string) error

	// GetBudgetByID retrieves a specific budget owned by the user.
	GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves all budgets owned by the user.
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)

	// GetBudgetStatus reports the spend accumulated in the budget window
	// containing the given instant, recomputed from stored transactions.
	GetBudgetStatus(ctx context.Context, userID string, budgetID string, at time.Time) (*dto.BudgetStatusResponse, error)
}
