package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row in the transactions table. CategoryID is
// nullable: imports that fall through to manual review carry NULL until a
// user re-categorizes them.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountID       string          `db:"account_id"`
	Amount          decimal.Decimal `db:"amount"`
	Description     string          `db:"description"`
	MerchantName    string          `db:"merchant_name"`
	CategoryID      sql.NullString  `db:"category_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	IsRecurring     bool            `db:"is_recurring"`
	Confidence      string          `db:"confidence"`
	Method          string          `db:"categorization_method"`
	RequiresManual  bool            `db:"requires_manual"`
	AuditFields
}
