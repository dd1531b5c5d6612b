package database

import (
	"errors"

	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type PageLayoutRepo struct {
	db *gorm.DB
}

func NewPageLayoutRepo(db *gorm.DB) *PageLayoutRepo {
	return &PageLayoutRepo{db}
}

// FindByPageIDs returns the layouts of the given pages, ordered by id
func (r *PageLayoutRepo) FindByPageIDs(pageIDs []uint) ([]models.PageLayout, error) {
	if len(pageIDs) == 0 {
		return []models.PageLayout{}, nil
	}
	var layouts []models.PageLayout
	err := r.db.Where("page_id IN ?", pageIDs).Order("id").Find(&layouts).Error
	return layouts, err
}

// FindByPageAndLanguage returns the layout for one page/language pair, or nil if none exists
func (r *PageLayoutRepo) FindByPageAndLanguage(pageID uint, language string) (*models.PageLayout, error) {
	var layout models.PageLayout
	err := r.db.Where("page_id = ? AND language = ?", pageID, language).First(&layout).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

// HasDefaultLanguage reports whether the page already carries a default-language layout
func (r *PageLayoutRepo) HasDefaultLanguage(pageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PageLayout{}).
		Where("page_id = ? AND is_default_language = ?", pageID, true).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new page layout
func (r *PageLayoutRepo) Add(layout *models.PageLayout) error {
	return r.db.Create(layout).Error
}
