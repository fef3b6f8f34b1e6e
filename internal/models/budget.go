package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a row in the budgets table. A NULL category_id means the
// budget monitors overall spend across every category.
type Budget struct {
	BudgetID       string          `db:"budget_id"`
	UserID         string          `db:"user_id"`
	CategoryID     string          `db:"category_id"` // Nullable
	LimitAmount    decimal.Decimal `db:"limit_amount"`
	Period         string          `db:"period"`
	AlertThreshold decimal.Decimal `db:"alert_threshold"`
	StartDate      time.Time       `db:"start_date"`
	AuditFields
}
