package models

import "gorm.io/datatypes"

// Page is the editable page identity. Layout documents, version history and
// components hang off it as dependent rows.
type Page struct {
	ID              uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	TenantID        string `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index;uniqueIndex:idx_page_tenant_slug"`
	Slug            string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_page_tenant_slug"`
	Name            string `json:"name" db:"name" gorm:"type:text;not null"`
	Status          string `json:"status" db:"status" gorm:"type:text;not null;default:'draft'"`
	MetaTitle       string `json:"metaTitle,omitempty" db:"meta_title" gorm:"type:text"`
	MetaDescription string `json:"metaDescription,omitempty" db:"meta_description" gorm:"type:text"`
	Version         int    `json:"version" db:"version" gorm:"type:integer;not null;default:1"`
}

// PageLayout holds one language's layout document for a page. The layout is
// an opaque tree of component nodes; embedded media ids inside it are not
// covered by foreign keys and are rewritten manually on import. Exactly one
// layout per page carries IsDefaultLanguage.
type PageLayout struct {
	ID                uint           `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	PageID            uint           `json:"pageId" db:"page_id" gorm:"not null;index;uniqueIndex:idx_page_layout_page_lang"`
	Language          string         `json:"language" db:"language" gorm:"type:text;not null;uniqueIndex:idx_page_layout_page_lang"`
	LayoutJSON        datatypes.JSON `json:"layout_json" db:"layout_json" gorm:"type:jsonb;not null;default:'{}'"`
	IsDefaultLanguage bool           `json:"isDefaultLanguage" db:"is_default_language" gorm:"not null;default:false"`
	Version           int            `json:"version" db:"version" gorm:"type:integer;not null;default:1"`
}

// PageVersion is an immutable historical snapshot of a page's fields and
// layout document, keyed by (page, version number).
type PageVersion struct {
	ID            uint           `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	PageID        uint           `json:"pageId" db:"page_id" gorm:"not null;index;uniqueIndex:idx_page_version_page_number"`
	VersionNumber int            `json:"versionNumber" db:"version_number" gorm:"type:integer;not null;uniqueIndex:idx_page_version_page_number"`
	Name          string         `json:"name" db:"name" gorm:"type:text;not null"`
	Status        string         `json:"status" db:"status" gorm:"type:text;not null"`
	LayoutJSON    datatypes.JSON `json:"layout_json" db:"layout_json" gorm:"type:jsonb;not null;default:'{}'"`
}

// PageComponent is one rendered component instance on a page, with its opaque
// props document and position.
type PageComponent struct {
	ID           uint           `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	PageID       uint           `json:"pageId" db:"page_id" gorm:"not null;index"`
	ComponentKey string         `json:"componentKey" db:"component_key" gorm:"type:text;not null"`
	Props        datatypes.JSON `json:"props" db:"props" gorm:"type:jsonb;not null;default:'{}'"`
	SortOrder    int            `json:"sortOrder" db:"sort_order" gorm:"type:integer;not null;default:0"`
}
