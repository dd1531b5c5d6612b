package database

import (
	"github.com/nimbuscms/nimbus-backend/models"
	"gorm.io/gorm"
)

type PostTagRepo struct {
	db *gorm.DB
}

func NewPostTagRepo(db *gorm.DB) *PostTagRepo {
	return &PostTagRepo{db}
}

// FindByPostIDs returns the post/tag join rows of the given posts
func (r *PostTagRepo) FindByPostIDs(postIDs []uint) ([]models.PostTag, error) {
	if len(postIDs) == 0 {
		return []models.PostTag{}, nil
	}
	var rows []models.PostTag
	err := r.db.Where("post_id IN ?", postIDs).Order("post_id, tag_id").Find(&rows).Error
	return rows, err
}

// Exists reports whether the join row is already present
func (r *PostTagRepo) Exists(postID, tagID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PostTag{}).
		Where("post_id = ? AND tag_id = ?", postID, tagID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new post/tag join row
func (r *PostTagRepo) Add(row *models.PostTag) error {
	return r.db.Create(row).Error
}
