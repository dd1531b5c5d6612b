package database

import (
	"errors"

	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type TenantRepo struct {
	db *gorm.DB
}

func NewTenantRepo(db *gorm.DB) *TenantRepo {
	return &TenantRepo{db}
}

// FindByID returns a tenant by id, or nil if it does not exist
func (r *TenantRepo) FindByID(id string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.db.First(&tenant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindAllIDs returns the ids of every tenant, ordered for a stable sweep
func (r *TenantRepo) FindAllIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Tenant{}).Order("id").Pluck("id", &ids).Error
	return ids, err
}
