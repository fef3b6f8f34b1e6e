package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
	"github.com/spendlens/spendlens_backend/internal/dto"
)

// defaultAlertThreshold engages budget alerting at 80% of the limit unless the
// user configures otherwise.
var defaultAlertThreshold = decimal.RequireFromString("0.8")

// budgetServiceImpl implements the BudgetSvcFacade interface
type budgetServiceImpl struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	catRepo    portsrepo.CategoryReader
	txnRepo    portsrepo.TransactionReader
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	budgetRepo portsrepo.BudgetRepositoryFacade,
	catRepo portsrepo.CategoryReader,
	txnRepo portsrepo.TransactionReader,
) portssvc.BudgetSvcFacade {
	return &budgetServiceImpl{
		budgetRepo: budgetRepo,
		catRepo:    catRepo,
		txnRepo:    txnRepo,
	}
}

// Ensure budgetServiceImpl implements the BudgetSvcFacade interface
var _ portssvc.BudgetSvcFacade = (*budgetServiceImpl)(nil)

func (s *budgetServiceImpl) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if req.CategoryID != "" {
		category, err := s.catRepo.FindCategoryByID(ctx, req.CategoryID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to find category for budget",
					slog.String("category_id", req.CategoryID))
			}
			return nil, err
		}
		if !category.IsSystem && category.UserID != userID {
			return nil, apperrors.ErrNotFound
		}
	}

	now := time.Now()
	threshold := req.AlertThreshold
	if threshold.IsZero() {
		threshold = defaultAlertThreshold
	}
	startDate := now
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		UserID:         userID,
		CategoryID:     req.CategoryID,
		LimitAmount:    req.LimitAmount,
		Period:         req.Period,
		AlertThreshold: threshold,
		StartDate:      startDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget",
			slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget created",
		slog.String("budget_id", budget.BudgetID),
		slog.String("category_id", budget.CategoryID),
		slog.String("limit", budget.LimitAmount.StringFixed(2)))
	return &budget, nil
}

func (s *budgetServiceImpl) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.LimitAmount != nil {
		budget.LimitAmount = *req.LimitAmount
		updated = true
	}
	if req.AlertThreshold != nil {
		budget.AlertThreshold = *req.AlertThreshold
		updated = true
	}
	if !updated {
		return budget, nil
	}

	if err := budget.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget",
			slog.String("budget_id", budgetID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget updated",
		slog.String("budget_id", budgetID))
	return budget, nil
}

func (s *budgetServiceImpl) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	if _, err := s.GetBudgetByID(ctx, userID, budgetID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget",
			slog.String("budget_id", budgetID))
		return err
	}

	s.LogInfo(ctx, "Budget deleted",
		slog.String("budget_id", budgetID))
	return nil
}

func (s *budgetServiceImpl) GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget by ID",
				slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return budget, nil
}

func (s *budgetServiceImpl) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgetsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, err
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *budgetServiceImpl) GetBudgetStatus(ctx context.Context, userID string, budgetID string, at time.Time) (*dto.BudgetStatusResponse, error) {
	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	start, end := budget.PeriodWindow(at)

	txns, err := s.txnRepo.FindTransactionsInWindow(ctx, userID, budget.CategoryID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for budget status",
			slog.String("budget_id", budgetID))
		return nil, err
	}

	spend := decimal.Zero
	for i := range txns {
		if txns[i].IsExpense() {
			spend = spend.Add(txns[i].Magnitude())
		}
	}

	return &dto.BudgetStatusResponse{
		Budget:      dto.ToBudgetResponse(budget),
		PeriodStart: start,
		PeriodEnd:   end,
		Spend:       spend,
		Remaining:   budget.LimitAmount.Sub(spend),
	}, nil
}
