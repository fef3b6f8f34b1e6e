package models

// CategorizationRule represents a row in the categorization_rules table.
// (user_id, priority) carries a unique constraint.
type CategorizationRule struct {
	RuleID     string `db:"rule_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Kind       string `db:"kind"`
	Pattern    string `db:"pattern"`
	CategoryID string `db:"category_id"`
	Priority   int    `db:"priority"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
