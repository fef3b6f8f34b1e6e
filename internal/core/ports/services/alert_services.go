package services

import (
	"context"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// AlertSvcFacade exposes generated budget alerts to the API surface.
type AlertSvcFacade interface {
	// ListAlerts retrieves the user's alerts, newest first.
	ListAlerts(ctx context.Context, userID string, limit int, offset int) ([]domain.BudgetAlert, error)

	// ListBudgetAlerts retrieves all alerts raised against one of the user's
	// budgets, newest first.
	ListBudgetAlerts(ctx context.Context, userID string, budgetID string) ([]domain.BudgetAlert, error)

	// MarkAlertRead flips the read flag on one of the user's alerts.
	MarkAlertRead(ctx context.Context, userID string, alertID string) error
}

// NotifierSvc is the outbound notification-delivery collaborator. Delivery is
// fire-and-forget from the core's point of view; failures are the
// collaborator's concern.
type NotifierSvc interface {
	SendAlert(ctx context.Context, ownerUserID string, alert domain.BudgetAlert)
}
