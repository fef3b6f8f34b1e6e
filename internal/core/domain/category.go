package domain

// Category is a spending category. Categories form a tree via
// ParentCategoryID; the tree is validated for acyclicity by the category
// service before any parent link is persisted.
type Category struct {
	CategoryID       string `json:"categoryID"` // Primary Key (UUID)
	UserID           string `json:"userID"`     // Empty for system-seeded categories
	Name             string `json:"name"`       // Unique within owner scope
	ParentCategoryID string `json:"parentCategoryID"` // Empty for root categories
	Icon             string `json:"icon"`
	Color            string `json:"color"`
	IsSystem         bool   `json:"isSystem"`
	AuditFields
}
