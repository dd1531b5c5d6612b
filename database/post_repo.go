package database

import (
	"errors"

	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// FindAllByTenant returns every post for a tenant, ordered by id
func (r *PostRepo) FindAllByTenant(tenantID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("tenant_id = ?", tenantID).Order("id").Find(&posts).Error
	return posts, err
}

// FindBySlug returns the post with the given slug in a tenant, or nil if none exists
func (r *PostRepo) FindBySlug(tenantID, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("tenant_id = ? AND slug = ?", tenantID, slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new post
func (r *PostRepo) Add(post *models.Post) error {
	return r.db.Create(post).Error
}
