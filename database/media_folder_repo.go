package database

import (
	"errors"

	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type MediaFolderRepo struct {
	db *gorm.DB
}

func NewMediaFolderRepo(db *gorm.DB) *MediaFolderRepo {
	return &MediaFolderRepo{db}
}

// FindAllByTenant returns every media folder for a tenant, ordered by id
func (r *MediaFolderRepo) FindAllByTenant(tenantID string) ([]models.MediaFolder, error) {
	var folders []models.MediaFolder
	err := r.db.Where("tenant_id = ?", tenantID).Order("id").Find(&folders).Error
	return folders, err
}

// FindBySlug returns the folder with the given slug in a tenant, or nil if none exists
func (r *MediaFolderRepo) FindBySlug(tenantID, slug string) (*models.MediaFolder, error) {
	var folder models.MediaFolder
	err := r.db.Where("tenant_id = ? AND slug = ?", tenantID, slug).First(&folder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// Add inserts a new media folder
func (r *MediaFolderRepo) Add(folder *models.MediaFolder) error {
	return r.db.Create(folder).Error
}
