package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetAlert represents a row in the budget_alerts table.
// (budget_id, period_start, tier) carries a unique constraint backing the
// one-alert-per-tier-per-period guarantee.
type BudgetAlert struct {
	AlertID         string          `db:"alert_id"`
	BudgetID        string          `db:"budget_id"`
	Tier            string          `db:"tier"`
	Message         string          `db:"message"`
	CurrentSpending decimal.Decimal `db:"current_spending"`
	BudgetLimit     decimal.Decimal `db:"budget_limit"`
	PeriodStart     time.Time       `db:"period_start"`
	CreatedAt       time.Time       `db:"created_at"`
	IsRead          bool            `db:"is_read"`
}
