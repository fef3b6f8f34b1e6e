package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens_backend/internal/apperrors"
)

// BudgetPeriod is the time span over which a budget's spend accumulates
// before resetting.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "WEEKLY"
	PeriodMonthly BudgetPeriod = "MONTHLY"
	PeriodYearly  BudgetPeriod = "YEARLY"
)

var (
	ratio80  = decimal.RequireFromString("0.8")
	ratio90  = decimal.RequireFromString("0.9")
	ratio100 = decimal.RequireFromString("1.0")
)

// Budget caps spending for one category (or overall, when CategoryID is
// empty) over a rolling period. The budget monitor reads budgets; it never
// mutates them.
type Budget struct {
	BudgetID       string          `json:"budgetID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`   // FK -> users.user_id (Not Null)
	CategoryID     string          `json:"categoryID"` // Empty = overall budget across all categories
	LimitAmount    decimal.Decimal `json:"limitAmount"` // Positive
	Period         BudgetPeriod    `json:"period"`
	AlertThreshold decimal.Decimal `json:"alertThreshold"` // Fraction in (0,1]
	StartDate      time.Time       `json:"startDate"`
	AuditFields
}

// Validate rejects budgets whose limit or alert threshold is out of range.
func (b *Budget) Validate() error {
	if !b.LimitAmount.IsPositive() {
		return fmt.Errorf("%w: limit amount must be positive, got %s", apperrors.ErrInvalidBudgetConfiguration, b.LimitAmount)
	}
	if !b.AlertThreshold.IsPositive() || b.AlertThreshold.GreaterThan(ratio100) {
		return fmt.Errorf("%w: alert threshold must be in (0,1], got %s", apperrors.ErrInvalidBudgetConfiguration, b.AlertThreshold)
	}
	switch b.Period {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
	default:
		return fmt.Errorf("%w: unknown period %q", apperrors.ErrInvalidBudgetConfiguration, b.Period)
	}
	return nil
}

// PeriodWindow returns the [start, end) window of this budget that contains
// the given instant. Windows are anchored at the budget's start date and roll
// over by calendar arithmetic, so monthly windows track month lengths. When
// the instant precedes the start date the first window is returned; callers
// check containment.
func (b *Budget) PeriodWindow(at time.Time) (time.Time, time.Time) {
	start := b.StartDate
	for {
		end := b.advance(start)
		if at.Before(end) || at.Equal(start) {
			return start, end
		}
		start = end
	}
}

func (b *Budget) advance(from time.Time) time.Time {
	switch b.Period {
	case PeriodWeekly:
		return from.AddDate(0, 0, 7)
	case PeriodYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// Contains reports whether the instant falls inside the budget window that
// PeriodWindow would return for it. Instants before the budget start are
// never contained.
func (b *Budget) Contains(at time.Time) bool {
	return !at.Before(b.StartDate)
}

// TierFor determines the highest alert tier crossed by the given cumulative
// spend. The three tiers are fixed fractions (80%, 90%, 100%) of the limit
// itself, but the budget only engages once spend/limit has reached the
// user-configured alert threshold. A threshold above 0.8 therefore mutes the
// lower warning tiers; a threshold below 0.8 does not move them down.
func (b *Budget) TierFor(spend decimal.Decimal) AlertTier {
	if !b.LimitAmount.IsPositive() {
		return TierNone
	}
	ratio := spend.Div(b.LimitAmount)
	if ratio.LessThan(b.AlertThreshold) {
		return TierNone
	}
	switch {
	case ratio.GreaterThanOrEqual(ratio100):
		return TierExceeded
	case ratio.GreaterThanOrEqual(ratio90):
		return TierWarning90
	case ratio.GreaterThanOrEqual(ratio80):
		return TierWarning80
	default:
		return TierNone
	}
}
