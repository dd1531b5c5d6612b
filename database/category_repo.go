package database

import (
	"errors"

	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAllByTenant returns every category for a tenant, ordered by id
func (r *CategoryRepo) FindAllByTenant(tenantID string) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("tenant_id = ?", tenantID).Order("id").Find(&categories).Error
	return categories, err
}

// FindBySlug returns the category with the given slug in a tenant, or nil if none exists
func (r *CategoryRepo) FindBySlug(tenantID, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("tenant_id = ? AND slug = ?", tenantID, slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Add inserts a new category
func (r *CategoryRepo) Add(category *models.Category) error {
	return r.db.Create(category).Error
}
