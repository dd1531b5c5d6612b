package services

import (
	"context"
	"time"

	"github.com/nimbuscms/nimbus-backend/models"
)

// Store is the slice of the data layer the portability services consume.
// database.Database satisfies it; tests substitute an in-memory fake.
//
// Lookup methods return (nil, nil) when no row matches, so callers can tell
// "absent" apart from "store unreachable".
type Store interface {
	TenantByID(id string) (*models.Tenant, error)
	TenantIDs() ([]string, error)

	MediaFoldersByTenant(tenantID string) ([]models.MediaFolder, error)
	MediaFolderBySlug(tenantID, slug string) (*models.MediaFolder, error)
	AddMediaFolder(folder *models.MediaFolder) error

	MediaByTenant(tenantID string) ([]models.Media, error)
	MediaBySlug(tenantID, slug string) (*models.Media, error)
	AddMedia(media *models.Media) error

	CategoriesByTenant(tenantID string) ([]models.Category, error)
	CategoryBySlug(tenantID, slug string) (*models.Category, error)
	AddCategory(category *models.Category) error

	TagsByTenant(tenantID string) ([]models.Tag, error)
	TagBySlug(tenantID, slug string) (*models.Tag, error)
	AddTag(tag *models.Tag) error

	PagesByTenant(tenantID string) ([]models.Page, error)
	PageBySlug(tenantID, slug string) (*models.Page, error)
	AddPage(page *models.Page) error

	PageLayoutsByPageIDs(pageIDs []uint) ([]models.PageLayout, error)
	PageLayoutByPageAndLanguage(pageID uint, language string) (*models.PageLayout, error)
	PageHasDefaultLayout(pageID uint) (bool, error)
	AddPageLayout(layout *models.PageLayout) error

	PageVersionsByPageIDs(pageIDs []uint) ([]models.PageVersion, error)
	PageVersionByPageAndNumber(pageID uint, versionNumber int) (*models.PageVersion, error)
	AddPageVersion(version *models.PageVersion) error

	PageComponentsByPageIDs(pageIDs []uint) ([]models.PageComponent, error)
	PageComponentByPlacement(pageID uint, componentKey string, sortOrder int) (*models.PageComponent, error)
	AddPageComponent(component *models.PageComponent) error

	PostsByTenant(tenantID string) ([]models.Post, error)
	PostBySlug(tenantID, slug string) (*models.Post, error)
	AddPost(post *models.Post) error

	PostCategoriesByPostIDs(postIDs []uint) ([]models.PostCategory, error)
	PostCategoryExists(postID, categoryID uint) (bool, error)
	AddPostCategory(row *models.PostCategory) error

	PostTagsByPostIDs(postIDs []uint) ([]models.PostTag, error)
	PostTagExists(postID, tagID uint) (bool, error)
	AddPostTag(row *models.PostTag) error
}

// StoredObject describes one object found under a storage prefix.
type StoredObject struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ObjectStorage abstracts the blob store snapshots are written to.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte) (string, error)
	List(ctx context.Context, prefix string) ([]StoredObject, error)
	Delete(ctx context.Context, key string) error
}
