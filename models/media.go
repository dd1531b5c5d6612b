package models

// MediaFolder groups media rows into a tree. Folders self-reference through
// ParentFolderID, so parents must exist (or already be remapped) before their
// children when a graph is imported.
type MediaFolder struct {
	ID             uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	TenantID       string `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index;uniqueIndex:idx_media_folder_tenant_slug"`
	Slug           string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_media_folder_tenant_slug"`
	ParentFolderID *uint  `json:"parentFolderId,omitempty" db:"parent_folder_id" gorm:"index"`
	Name           string `json:"name" db:"name" gorm:"type:text;not null"`
	Path           string `json:"path" db:"path" gorm:"type:text;not null"`
}

// Media is the metadata row for one uploaded asset. Only metadata travels
// through export/import; binary re-upload happens before import runs.
type Media struct {
	ID           uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	TenantID     string `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index;uniqueIndex:idx_media_tenant_slug"`
	Slug         string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_media_tenant_slug"`
	URL          string `json:"url" db:"url" gorm:"type:text;not null"`
	RelativePath string `json:"relativePath,omitempty" db:"relative_path" gorm:"type:text"`
	MimeType     string `json:"mimeType,omitempty" db:"mime_type" gorm:"type:text"`
	FolderID     *uint  `json:"folderId,omitempty" db:"folder_id" gorm:"index"`
	Width        int    `json:"width,omitempty" db:"width" gorm:"type:integer;not null;default:0"`
	Height       int    `json:"height,omitempty" db:"height" gorm:"type:integer;not null;default:0"`
	SizeBytes    int64  `json:"sizeBytes,omitempty" db:"size_bytes" gorm:"type:bigint;not null;default:0"`
}
