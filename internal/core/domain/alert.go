package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertTier is a fixed spend-ratio checkpoint against a budget limit. Tiers
// are ordered: a higher value always means a more severe crossing, which is
// what the monitor's per-period idempotence latch compares against.
type AlertTier int

const (
	TierNone AlertTier = iota
	TierWarning80
	TierWarning90
	TierExceeded
)

// String returns the storage representation of the tier.
func (t AlertTier) String() string {
	switch t {
	case TierWarning80:
		return "warning_80"
	case TierWarning90:
		return "warning_90"
	case TierExceeded:
		return "exceeded"
	default:
		return "none"
	}
}

// ParseAlertTier converts a storage representation back to an AlertTier.
func ParseAlertTier(s string) AlertTier {
	switch s {
	case "warning_80":
		return TierWarning80
	case "warning_90":
		return TierWarning90
	case "exceeded":
		return TierExceeded
	default:
		return TierNone
	}
}

// BudgetAlert records one threshold crossing for a budget period. At most one
// alert exists per (budget, period, tier); only the read flag is ever mutated
// after creation.
type BudgetAlert struct {
	AlertID         string          `json:"alertID"`  // Primary Key (UUID)
	BudgetID        string          `json:"budgetID"` // FK -> budgets.budget_id (Not Null)
	Tier            AlertTier       `json:"tier"`
	Message         string          `json:"message"`
	CurrentSpending decimal.Decimal `json:"currentSpending"` // Spend at generation time
	BudgetLimit     decimal.Decimal `json:"budgetLimit"`     // Limit at generation time
	PeriodStart     time.Time       `json:"periodStart"`
	CreatedAt       time.Time       `json:"createdAt"`
	IsRead          bool            `json:"isRead"`
}
