package database

import (
	"errors"

	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type PageComponentRepo struct {
	db *gorm.DB
}

func NewPageComponentRepo(db *gorm.DB) *PageComponentRepo {
	return &PageComponentRepo{db}
}

// FindByPageIDs returns the components of the given pages, ordered by id
func (r *PageComponentRepo) FindByPageIDs(pageIDs []uint) ([]models.PageComponent, error) {
	if len(pageIDs) == 0 {
		return []models.PageComponent{}, nil
	}
	var components []models.PageComponent
	err := r.db.Where("page_id IN ?", pageIDs).Order("id").Find(&components).Error
	return components, err
}

// FindByPlacement returns the component occupying one (page, key, sort order)
// slot, or nil if none exists. Components have no slug; this triple is the
// closest thing they have to a natural key.
func (r *PageComponentRepo) FindByPlacement(pageID uint, componentKey string, sortOrder int) (*models.PageComponent, error) {
	var component models.PageComponent
	err := r.db.
		Where("page_id = ? AND component_key = ? AND sort_order = ?", pageID, componentKey, sortOrder).
		First(&component).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &component, nil
}

// Add inserts a new page component
func (r *PageComponentRepo) Add(component *models.PageComponent) error {
	return r.db.Create(component).Error
}
