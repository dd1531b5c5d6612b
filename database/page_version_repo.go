package database

import (
	"errors"

	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type PageVersionRepo struct {
	db *gorm.DB
}

func NewPageVersionRepo(db *gorm.DB) *PageVersionRepo {
	return &PageVersionRepo{db}
}

// FindByPageIDs returns the historical versions of the given pages, ordered by id
func (r *PageVersionRepo) FindByPageIDs(pageIDs []uint) ([]models.PageVersion, error) {
	if len(pageIDs) == 0 {
		return []models.PageVersion{}, nil
	}
	var versions []models.PageVersion
	err := r.db.Where("page_id IN ?", pageIDs).Order("id").Find(&versions).Error
	return versions, err
}

// FindByPageAndNumber returns one page version by its natural key, or nil if none exists
func (r *PageVersionRepo) FindByPageAndNumber(pageID uint, versionNumber int) (*models.PageVersion, error) {
	var version models.PageVersion
	err := r.db.Where("page_id = ? AND version_number = ?", pageID, versionNumber).First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// Add inserts a new page version
func (r *PageVersionRepo) Add(version *models.PageVersion) error {
	return r.db.Create(version).Error
}
