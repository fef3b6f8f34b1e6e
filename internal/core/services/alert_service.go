package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
	"github.com/spendlens/spendlens_backend/internal/core/domain"
	portsrepo "github.com/spendlens/spendlens_backend/internal/core/ports/repositories"
	portssvc "github.com/spendlens/spendlens_backend/internal/core/ports/services"
)

// alertServiceImpl implements the AlertSvcFacade interface. Alerts are
// created exclusively by the budget monitor; this service only exposes them.
type alertServiceImpl struct {
	BaseService
	alertRepo  portsrepo.AlertRepositoryFacade
	budgetRepo portsrepo.BudgetReader
}

// NewAlertService creates a new alert service
func NewAlertService(alertRepo portsrepo.AlertRepositoryFacade, budgetRepo portsrepo.BudgetReader) portssvc.AlertSvcFacade {
	return &alertServiceImpl{
		alertRepo:  alertRepo,
		budgetRepo: budgetRepo,
	}
}

// Ensure alertServiceImpl implements the AlertSvcFacade interface
var _ portssvc.AlertSvcFacade = (*alertServiceImpl)(nil)

func (s *alertServiceImpl) ListAlerts(ctx context.Context, userID string, limit int, offset int) ([]domain.BudgetAlert, error) {
	alerts, err := s.alertRepo.ListAlertsByUser(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list alerts",
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, err
	}
	if alerts == nil {
		return []domain.BudgetAlert{}, nil
	}
	return alerts, nil
}

func (s *alertServiceImpl) ListBudgetAlerts(ctx context.Context, userID string, budgetID string) ([]domain.BudgetAlert, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget",
				slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	if budget.UserID != userID {
		return nil, apperrors.ErrNotFound
	}

	alerts, err := s.alertRepo.ListAlertsByBudget(ctx, budgetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budget alerts",
			slog.String("budget_id", budgetID))
		return nil, err
	}
	if alerts == nil {
		return []domain.BudgetAlert{}, nil
	}
	return alerts, nil
}

func (s *alertServiceImpl) MarkAlertRead(ctx context.Context, userID string, alertID string) error {
	alert, err := s.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find alert",
				slog.String("alert_id", alertID))
		}
		return err
	}

	// Ownership is established through the budget the alert belongs to.
	budget, err := s.budgetRepo.FindBudgetByID(ctx, alert.BudgetID)
	if err != nil {
		return err
	}
	if budget.UserID != userID {
		return apperrors.ErrNotFound
	}

	if err := s.alertRepo.MarkAlertRead(ctx, alertID); err != nil {
		s.LogError(ctx, err, "Failed to mark alert read",
			slog.String("alert_id", alertID))
		return err
	}
	return nil
}
