package models

import "gorm.io/datatypes"

// Post is a blog-style content entry with an opaque content document and an
// optional featured image reference into the media library.
type Post struct {
	ID              uint           `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	TenantID        string         `json:"tenantId" db:"tenant_id" gorm:"type:text;not null;index;uniqueIndex:idx_post_tenant_slug"`
	Slug            string         `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_post_tenant_slug"`
	Title           string         `json:"title" db:"title" gorm:"type:text;not null"`
	Content         datatypes.JSON `json:"content" db:"content" gorm:"type:jsonb;not null;default:'{}'"`
	FeaturedImageID *uint          `json:"featuredImageId,omitempty" db:"featured_image_id" gorm:"index"`
	MetaTitle       string         `json:"metaTitle,omitempty" db:"meta_title" gorm:"type:text"`
	MetaDescription string         `json:"metaDescription,omitempty" db:"meta_description" gorm:"type:text"`
}

// PostCategory is a pure join row; it carries no identity of its own and
// inherits tenant scope through its post.
type PostCategory struct {
	PostID     uint `json:"postId" db:"post_id" gorm:"primaryKey;autoIncrement:false;not null"`
	CategoryID uint `json:"categoryId" db:"category_id" gorm:"primaryKey;autoIncrement:false;not null"`
}

// PostTag is a pure join row linking a post to a tag.
type PostTag struct {
	PostID uint `json:"postId" db:"post_id" gorm:"primaryKey;autoIncrement:false;not null"`
	TagID  uint `json:"tagId" db:"tag_id" gorm:"primaryKey;autoIncrement:false;not null"`
}
