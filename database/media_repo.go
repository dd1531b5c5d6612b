package database

import (
	"errors"

	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type MediaRepo struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{db}
}

// FindAllByTenant returns every media row for a tenant, ordered by id
func (r *MediaRepo) FindAllByTenant(tenantID string) ([]models.Media, error) {
	var media []models.Media
	err := r.db.Where("tenant_id = ?", tenantID).Order("id").Find(&media).Error
	return media, err
}

// FindBySlug returns the media row with the given slug in a tenant, or nil if none exists
func (r *MediaRepo) FindBySlug(tenantID, slug string) (*models.Media, error) {
	var media models.Media
	err := r.db.Where("tenant_id = ? AND slug = ?", tenantID, slug).First(&media).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// Add inserts a new media row
func (r *MediaRepo) Add(media *models.Media) error {
	return r.db.Create(media).Error
}
