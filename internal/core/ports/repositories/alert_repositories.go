package repositories

import (
	"context"
	"time"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// AlertReader defines read operations for budget alert data
type AlertReader interface {
	// FindAlertByID retrieves a specific alert.
	FindAlertByID(ctx context.Context, alertID string) (*domain.BudgetAlert, error)

	// ListAlertsByUser retrieves a user's alerts, newest first.
	ListAlertsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.BudgetAlert, error)

	// ListAlertsByBudget retrieves a budget's alerts, newest first.
	ListAlertsByBudget(ctx context.Context, budgetID string) ([]domain.BudgetAlert, error)

	// HighestTierForPeriod returns the most severe tier already alerted for a
	// budget period, or TierNone. The budget monitor consults this to keep the
	// one-alert-per-(budget, period, tier) guarantee across restarts.
	HighestTierForPeriod(ctx context.Context, budgetID string, periodStart time.Time) (domain.AlertTier, error)
}

// AlertWriter defines write operations for budget alert data
type AlertWriter interface {
	// SaveAlert persists a new alert.
	SaveAlert(ctx context.Context, alert domain.BudgetAlert) error

	// MarkAlertRead sets the read flag, the only mutation alerts permit.
	MarkAlertRead(ctx context.Context, alertID string) error
}

// AlertRepositoryFacade combines all alert-related repository interfaces
type AlertRepositoryFacade interface {
	AlertReader
	AlertWriter
}
