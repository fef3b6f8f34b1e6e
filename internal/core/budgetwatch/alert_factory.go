package budgetwatch

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/core/domain"
)

// AlertFactory maps a threshold crossing to a concrete alert record. The
// wording per tier is fixed; the factory performs no I/O and never fails for
// valid inputs.
type AlertFactory struct{}

// NewAlertFactory creates an alert factory.
func NewAlertFactory() *AlertFactory {
	return &AlertFactory{}
}

// CreateAlert builds the alert for one (budget, spend, tier) crossing.
func (f *AlertFactory) CreateAlert(budget *domain.Budget, spend decimal.Decimal, tier domain.AlertTier, periodStart time.Time) domain.BudgetAlert {
	return domain.BudgetAlert{
		AlertID:         uuid.NewString(),
		BudgetID:        budget.BudgetID,
		Tier:            tier,
		Message:         f.message(budget, spend, tier),
		CurrentSpending: spend,
		BudgetLimit:     budget.LimitAmount,
		PeriodStart:     periodStart,
		CreatedAt:       time.Now(),
		IsRead:          false,
	}
}

func (f *AlertFactory) message(budget *domain.Budget, spend decimal.Decimal, tier domain.AlertTier) string {
	switch tier {
	case domain.TierExceeded:
		return fmt.Sprintf("Budget exceeded! Spent %s of %s", spend.StringFixed(2), budget.LimitAmount.StringFixed(2))
	case domain.TierWarning90:
		return "Budget warning: 90% of budget used"
	default:
		return "Budget warning: 80% of budget used"
	}
}
