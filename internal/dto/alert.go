package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// AlertResponse defines the data returned for a budget alert.
type AlertResponse struct {
	AlertID         string          `json:"alertID"`
	BudgetID        string          `json:"budgetID"`
	Tier            string          `json:"tier"`
	Message         string          `json:"message"`
	CurrentSpending decimal.Decimal `json:"currentSpending"`
	BudgetLimit     decimal.Decimal `json:"budgetLimit"`
	CreatedAt       time.Time       `json:"createdAt"`
	IsRead          bool            `json:"isRead"`
}

// ToAlertResponse converts a domain.BudgetAlert to its response DTO
func ToAlertResponse(a *domain.BudgetAlert) AlertResponse {
	return AlertResponse{
		AlertID:         a.AlertID,
		BudgetID:        a.BudgetID,
		Tier:            a.Tier.String(),
		Message:         a.Message,
		CurrentSpending: a.CurrentSpending,
		BudgetLimit:     a.BudgetLimit,
		CreatedAt:       a.CreatedAt,
		IsRead:          a.IsRead,
	}
}

// ToListAlertResponse converts a slice of alerts to response DTOs
func ToListAlertResponse(alerts []domain.BudgetAlert) []AlertResponse {
	res := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		res[i] = ToAlertResponse(&a)
	}
	return res
}

// ListAlertsParams defines query parameters for listing alerts.
type ListAlertsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
