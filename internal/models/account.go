package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a row in the accounts table. Status and balance are
// only ever written together, under the row lock taken by the service layer.
type Account struct {
	AccountID   string          `db:"account_id"`
	UserID      string          `db:"user_id"`
	Name        string          `db:"name"`
	AccountType string          `db:"account_type"`
	Balance     decimal.Decimal `db:"balance"`
	Status      string          `db:"status"`
	AuditFields
}
