package database

import (
	"errors"

	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAllByTenant returns every tag for a tenant, ordered by id
func (r *TagRepo) FindAllByTenant(tenantID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Where("tenant_id = ?", tenantID).Order("id").Find(&tags).Error
	return tags, err
}

// FindBySlug returns the tag with the given slug in a tenant, or nil if none exists
func (r *TagRepo) FindBySlug(tenantID, slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("tenant_id = ? AND slug = ?", tenantID, slug).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Add inserts a new tag
func (r *TagRepo) Add(tag *models.Tag) error {
	return r.db.Create(tag).Error
}
