package database

import (
	"errors"

	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type PageRepo struct {
	db *gorm.DB
}

func NewPageRepo(db *gorm.DB) *PageRepo {
	return &PageRepo{db}
}

// FindAllByTenant returns every page for a tenant, ordered by id
func (r *PageRepo) FindAllByTenant(tenantID string) ([]models.Page, error) {
	var pages []models.Page
	err := r.db.Where("tenant_id = ?", tenantID).Order("id").Find(&pages).Error
	return pages, err
}

// FindBySlug returns the page with the given slug in a tenant, or nil if none exists
func (r *PageRepo) FindBySlug(tenantID, slug string) (*models.Page, error) {
	var page models.Page
	err := r.db.Where("tenant_id = ? AND slug = ?", tenantID, slug).First(&page).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Add inserts a new page
func (r *PageRepo) Add(page *models.Page) error {
	return r.db.Create(page).Error
}
