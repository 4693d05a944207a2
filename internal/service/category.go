package service

import (
	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"gorm.io/gorm"
)

// CategoryService is plain CRUD over income/expense categories.
type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

type CategoryInput struct {
	Name  string
	Type  string
	Icon  string
	Color string
}

func (s *CategoryService) List(userID, categoryType string, archived *bool) ([]models.Category, error) {
	query := s.DB.Where("user_id = ?", userID)
	if categoryType != "" {
		query = query.Where("type = ?", categoryType)
	}
	if archived != nil {
		query = query.Where("is_archived = ?", *archived)
	}

	var categories []models.Category
	err := query.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s *CategoryService) Create(userID string, data CategoryInput) (*models.Category, error) {
	if data.Type != models.CategoryIncome && data.Type != models.CategoryExpense {
		return nil, util.NewValidationError("type must be INCOME or EXPENSE")
	}

	category := models.Category{
		UserID: userID,
		Name:   data.Name,
		Type:   data.Type,
		Icon:   data.Icon,
		Color:  data.Color,
	}
	if err := s.DB.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(categoryID, userID string, name, icon, color *string, archived *bool) (*models.Category, error) {
	if _, err := getOwnedCategory(s.DB, categoryID, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if icon != nil {
		updates["icon"] = *icon
	}
	if color != nil {
		updates["color"] = *color
	}
	if archived != nil {
		updates["is_archived"] = *archived
	}
	if len(updates) > 0 {
		if err := s.DB.Model(&models.Category{}).
			Where("id = ?", categoryID).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return getOwnedCategory(s.DB, categoryID, userID)
}

// Delete refuses to remove a category still referenced by live transactions.
func (s *CategoryService) Delete(categoryID, userID string) error {
	if _, err := getOwnedCategory(s.DB, categoryID, userID); err != nil {
		return err
	}

	var count int64
	if err := s.DB.Model(&models.Transaction{}).
		Where("category_id = ? AND is_deleted = ?", categoryID, false).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return util.NewValidationError("Category is still used by transactions")
	}
	return s.DB.Delete(&models.Category{}, "id = ?", categoryID).Error
}
