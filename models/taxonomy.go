package models

// Category is a hierarchical taxonomy term. Categories self-reference
// through ParentID, parents before children on import.
type Category struct {
	ID       uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	TenantID string `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index;uniqueIndex:idx_category_tenant_slug"`
	Slug     string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_category_tenant_slug"`
	Name     string `json:"name" db:"name" gorm:"type:text;not null"`
	ParentID *uint  `json:"parentId,omitempty" db:"parent_id" gorm:"index"`
}

// Tag is a flat taxonomy term.
type Tag struct {
	ID       uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	TenantID string `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index;uniqueIndex:idx_tag_tenant_slug"`
	Slug     string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_tag_tenant_slug"`
	Name     string `json:"name" db:"name" gorm:"type:text;not null"`
}
