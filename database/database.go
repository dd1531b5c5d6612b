package database

import (
	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	tenantRepo        *TenantRepo
	mediaFolderRepo   *MediaFolderRepo
	mediaRepo         *MediaRepo
	categoryRepo      *CategoryRepo
	tagRepo           *TagRepo
	pageRepo          *PageRepo
	pageLayoutRepo    *PageLayoutRepo
	pageVersionRepo   *PageVersionRepo
	pageComponentRepo *PageComponentRepo
	postRepo          *PostRepo
	postCategoryRepo  *PostCategoryRepo
	postTagRepo       *PostTagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		tenantRepo:        NewTenantRepo(db),
		mediaFolderRepo:   NewMediaFolderRepo(db),
		mediaRepo:         NewMediaRepo(db),
		categoryRepo:      NewCategoryRepo(db),
		tagRepo:           NewTagRepo(db),
		pageRepo:          NewPageRepo(db),
		pageLayoutRepo:    NewPageLayoutRepo(db),
		pageVersionRepo:   NewPageVersionRepo(db),
		pageComponentRepo: NewPageComponentRepo(db),
		postRepo:          NewPostRepo(db),
		postCategoryRepo:  NewPostCategoryRepo(db),
		postTagRepo:       NewPostTagRepo(db),
	}
}

// The methods below form the flat store facade consumed by the services
// package; each delegates to the repository owning that entity.

func (d Database) TenantByID(id string) (*models.Tenant, error) {
	return d.tenantRepo.FindByID(id)
}

func (d Database) TenantIDs() ([]string, error) {
	return d.tenantRepo.FindAllIDs()
}

func (d Database) MediaFoldersByTenant(tenantID string) ([]models.MediaFolder, error) {
	return d.mediaFolderRepo.FindAllByTenant(tenantID)
}

func (d Database) MediaFolderBySlug(tenantID, slug string) (*models.MediaFolder, error) {
	return d.mediaFolderRepo.FindBySlug(tenantID, slug)
}

func (d Database) AddMediaFolder(folder *models.MediaFolder) error {
	return d.mediaFolderRepo.Add(folder)
}

func (d Database) MediaByTenant(tenantID string) ([]models.Media, error) {
	return d.mediaRepo.FindAllByTenant(tenantID)
}

func (d Database) MediaBySlug(tenantID, slug string) (*models.Media, error) {
	return d.mediaRepo.FindBySlug(tenantID, slug)
}

func (d Database) AddMedia(media *models.Media) error {
	return d.mediaRepo.Add(media)
}

func (d Database) CategoriesByTenant(tenantID string) ([]models.Category, error) {
	return d.categoryRepo.FindAllByTenant(tenantID)
}

func (d Database) CategoryBySlug(tenantID, slug string) (*models.Category, error) {
	return d.categoryRepo.FindBySlug(tenantID, slug)
}

func (d Database) AddCategory(category *models.Category) error {
	return d.categoryRepo.Add(category)
}

func (d Database) TagsByTenant(tenantID string) ([]models.Tag, error) {
	return d.tagRepo.FindAllByTenant(tenantID)
}

func (d Database) TagBySlug(tenantID, slug string) (*models.Tag, error) {
	return d.tagRepo.FindBySlug(tenantID, slug)
}

func (d Database) AddTag(tag *models.Tag) error {
	return d.tagRepo.Add(tag)
}

func (d Database) PagesByTenant(tenantID string) ([]models.Page, error) {
	return d.pageRepo.FindAllByTenant(tenantID)
}

func (d Database) PageBySlug(tenantID, slug string) (*models.Page, error) {
	return d.pageRepo.FindBySlug(tenantID, slug)
}

func (d Database) AddPage(page *models.Page) error {
	return d.pageRepo.Add(page)
}

func (d Database) PageLayoutsByPageIDs(pageIDs []uint) ([]models.PageLayout, error) {
	return d.pageLayoutRepo.FindByPageIDs(pageIDs)
}

func (d Database) PageLayoutByPageAndLanguage(pageID uint, language string) (*models.PageLayout, error) {
	return d.pageLayoutRepo.FindByPageAndLanguage(pageID, language)
}

func (d Database) PageHasDefaultLayout(pageID uint) (bool, error) {
	return d.pageLayoutRepo.HasDefaultLanguage(pageID)
}

func (d Database) AddPageLayout(layout *models.PageLayout) error {
	return d.pageLayoutRepo.Add(layout)
}

func (d Database) PageVersionsByPageIDs(pageIDs []uint) ([]models.PageVersion, error) {
	return d.pageVersionRepo.FindByPageIDs(pageIDs)
}

func (d Database) PageVersionByPageAndNumber(pageID uint, versionNumber int) (*models.PageVersion, error) {
	return d.pageVersionRepo.FindByPageAndNumber(pageID, versionNumber)
}

func (d Database) AddPageVersion(version *models.PageVersion) error {
	return d.pageVersionRepo.Add(version)
}

func (d Database) PageComponentsByPageIDs(pageIDs []uint) ([]models.PageComponent, error) {
	return d.pageComponentRepo.FindByPageIDs(pageIDs)
}

func (d Database) PageComponentByPlacement(pageID uint, componentKey string, sortOrder int) (*models.PageComponent, error) {
	return d.pageComponentRepo.FindByPlacement(pageID, componentKey, sortOrder)
}

func (d Database) AddPageComponent(component *models.PageComponent) error {
	return d.pageComponentRepo.Add(component)
}

func (d Database) PostsByTenant(tenantID string) ([]models.Post, error) {
	return d.postRepo.FindAllByTenant(tenantID)
}

func (d Database) PostBySlug(tenantID, slug string) (*models.Post, error) {
	return d.postRepo.FindBySlug(tenantID, slug)
}

func (d Database) AddPost(post *models.Post) error {
	return d.postRepo.Add(post)
}

func (d Database) PostCategoriesByPostIDs(postIDs []uint) ([]models.PostCategory, error) {
	return d.postCategoryRepo.FindByPostIDs(postIDs)
}

func (d Database) PostCategoryExists(postID, categoryID uint) (bool, error) {
	return d.postCategoryRepo.Exists(postID, categoryID)
}

func (d Database) AddPostCategory(row *models.PostCategory) error {
	return d.postCategoryRepo.Add(row)
}

func (d Database) PostTagsByPostIDs(postIDs []uint) ([]models.PostTag, error) {
	return d.postTagRepo.FindByPostIDs(postIDs)
}

func (d Database) PostTagExists(postID, tagID uint) (bool, error) {
	return d.postTagRepo.Exists(postID, tagID)
}

func (d Database) AddPostTag(row *models.PostTag) error {
	return d.postTagRepo.Add(row)
}
