package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a budget. An empty
// categoryID creates an "overall" budget spanning all categories.
type CreateBudgetRequest struct {
	CategoryID     string              `json:"categoryID"`
	LimitAmount    decimal.Decimal     `json:"limitAmount" binding:"required"`
	Period         domain.BudgetPeriod `json:"period" binding:"required,oneof=WEEKLY MONTHLY YEARLY"`
	AlertThreshold decimal.Decimal     `json:"alertThreshold"` // Defaults to 0.8
	StartDate      *time.Time          `json:"startDate"`      // Defaults to now
}

// UpdateBudgetRequest defines the fields that may change on a budget.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBudgetRequest struct {
	LimitAmount    *decimal.Decimal `json:"limitAmount"`
	AlertThreshold *decimal.Decimal `json:"alertThreshold"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID       string              `json:"budgetID"`
	CategoryID     string              `json:"categoryID,omitempty"`
	LimitAmount    decimal.Decimal     `json:"limitAmount"`
	Period         domain.BudgetPeriod `json:"period"`
	AlertThreshold decimal.Decimal     `json:"alertThreshold"`
	StartDate      time.Time           `json:"startDate"`
}

// ToBudgetResponse converts a domain.Budget to its response DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:       b.BudgetID,
		CategoryID:     b.CategoryID,
		LimitAmount:    b.LimitAmount,
		Period:         b.Period,
		AlertThreshold: b.AlertThreshold,
		StartDate:      b.StartDate,
	}
}

// ToListBudgetResponse converts a slice of budgets to response DTOs
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b)
	}
	return res
}

// BudgetStatusResponse reports a budget's spend within one period window,
// recomputed from stored transactions at request time.
type BudgetStatusResponse struct {
	Budget      BudgetResponse  `json:"budget"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Spend       decimal.Decimal `json:"spend"`
	Remaining   decimal.Decimal `json:"remaining"`
}
