package service

import (
	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"gorm.io/gorm"
)

// TagService is plain CRUD; tag names are unique per user.
type TagService struct {
	DB *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{DB: db}
}

func (s *TagService) List(userID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.DB.Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (s *TagService) Create(userID, name string) (*models.Tag, error) {
	var count int64
	if err := s.DB.Model(&models.Tag{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, util.NewConflictError("Tag already exists")
	}

	tag := models.Tag{UserID: userID, Name: name}
	if err := s.DB.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) Delete(tagID, userID string) error {
	var tag models.Tag
	if err := s.DB.Where("id = ?", tagID).First(&tag).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.NewNotFoundError("Tag not found")
		}
		return err
	}
	if tag.UserID != userID {
		return util.NewForbiddenError("You don't have access to this tag")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tagID).Delete(&models.TransactionTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, "id = ?", tagID).Error
	})
}
