package service

import (
	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"gorm.io/gorm"
)

// Every cross-entity reference must belong to the requesting user before it
// is used: a missing row is NotFound, somebody else's row is Forbidden.

func getOwnedAccount(tx *gorm.DB, accountID, userID string) (*models.Account, error) {
	var account models.Account
	if err := tx.Where("id = ?", accountID).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Account not found")
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this account")
	}
	return &account, nil
}

func getOwnedCategory(tx *gorm.DB, categoryID, userID string) (*models.Category, error) {
	var category models.Category
	if err := tx.Where("id = ?", categoryID).First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Category not found")
		}
		return nil, err
	}
	if category.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this category")
	}
	return &category, nil
}

func getOwnedAsset(tx *gorm.DB, assetID, userID string) (*models.InvestmentAsset, error) {
	var asset models.InvestmentAsset
	if err := tx.Where("id = ?", assetID).First(&asset).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Investment asset not found")
		}
		return nil, err
	}
	if asset.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this investment asset")
	}
	return &asset, nil
}

// verifyTags checks that every tag id exists and belongs to the user.
func verifyTags(tx *gorm.DB, userID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(&models.Tag{}).
		Where("id IN ? AND user_id = ?", tagIDs, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(tagIDs)) {
		return util.NewValidationError("One or more tags not found or not accessible")
	}
	return nil
}
