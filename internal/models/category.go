package models

// Category represents a row in the categories table. System categories have
// a NULL user_id; user categories reference their owner.
type Category struct {
	CategoryID       string `db:"category_id"`
	UserID           string `db:"user_id"`           // Nullable for system categories
	Name             string `db:"name"`
	ParentCategoryID string `db:"parent_category_id"` // Nullable
	Icon             string `db:"icon"`
	Color            string `db:"color"`
	IsSystem         bool   `db:"is_system"`
	AuditFields
}
