package database

import (
	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type PostCategoryRepo struct {
	db *gorm.DB
}

func NewPostCategoryRepo(db *gorm.DB) *PostCategoryRepo {
	return &PostCategoryRepo{db}
}

// FindByPostIDs returns the post/category join rows of the given posts
func (r *PostCategoryRepo) FindByPostIDs(postIDs []uint) ([]models.PostCategory, error) {
	if len(postIDs) == 0 {
		return []models.PostCategory{}, nil
	}
	var rows []models.PostCategory
	err := r.db.Where("post_id IN ?", postIDs).Order("post_id, category_id").Find(&rows).Error
	return rows, err
}

// Exists reports whether the join row is already present
func (r *PostCategoryRepo) Exists(postID, categoryID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PostCategory{}).
		Where("post_id = ? AND category_id = ?", postID, categoryID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new post/category join row
func (r *PostCategoryRepo) Add(row *models.PostCategory) error {
	return r.db.Create(row).Error
}
