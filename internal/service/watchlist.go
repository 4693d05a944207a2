package service

import (
	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WatchlistService pins assets and manages price alert rules. Alert
// evaluation against a live feed is out of scope; the rules are CRUD state.
type WatchlistService struct {
	DB *gorm.DB
}

func NewWatchlistService(db *gorm.DB) *WatchlistService {
	return &WatchlistService{DB: db}
}

func (s *WatchlistService) List(userID string) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem
	err := s.DB.Preload("Asset").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *WatchlistService) Add(userID, assetID string) (*models.WatchlistItem, error) {
	if _, err := getOwnedAsset(s.DB, assetID, userID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.WatchlistItem{}).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, util.NewConflictError("Asset is already on the watchlist")
	}

	item := models.WatchlistItem{UserID: userID, AssetID: assetID}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Preload("Asset").Where("id = ?", item.ID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *WatchlistService) Remove(userID, assetID string) error {
	res := s.DB.Where("user_id = ? AND asset_id = ?", userID, assetID).
		Delete(&models.WatchlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.NewNotFoundError("Asset is not on the watchlist")
	}
	return nil
}

func (s *WatchlistService) ListAlerts(userID string, active *bool) ([]models.PriceAlert, error) {
	query := s.DB.Preload("Asset").Where("user_id = ?", userID)
	if active != nil {
		query = query.Where("is_active = ?", *active)
	}

	var alerts []models.PriceAlert
	err := query.Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

func (s *WatchlistService) CreateAlert(userID, assetID, condition string, targetPrice decimal.Decimal) (*models.PriceAlert, error) {
	if _, err := getOwnedAsset(s.DB, assetID, userID); err != nil {
		return nil, err
	}
	if condition != models.AlertAbove && condition != models.AlertBelow {
		return nil, util.NewValidationError("condition must be ABOVE or BELOW")
	}
	if targetPrice.LessThanOrEqual(decimal.Zero) {
		return nil, util.NewValidationError("target price must be positive")
	}

	alert := models.PriceAlert{
		UserID:      userID,
		AssetID:     assetID,
		Condition:   condition,
		TargetPrice: targetPrice,
		IsActive:    true,
	}
	if err := s.DB.Create(&alert).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (s *WatchlistService) ToggleAlert(alertID, userID string) (*models.PriceAlert, error) {
	alert, err := s.getAlert(alertID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.PriceAlert{}).Where("id = ?", alertID).
		Update("is_active", !alert.IsActive).Error; err != nil {
		return nil, err
	}
	return s.getAlert(alertID, userID)
}

func (s *WatchlistService) DeleteAlert(alertID, userID string) error {
	if _, err := s.getAlert(alertID, userID); err != nil {
		return err
	}
	return s.DB.Delete(&models.PriceAlert{}, "id = ?", alertID).Error
}

func (s *WatchlistService) getAlert(alertID, userID string) (*models.PriceAlert, error) {
	var alert models.PriceAlert
	if err := s.DB.Where("id = ?", alertID).First(&alert).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.NewNotFoundError("Price alert not found")
		}
		return nil, err
	}
	if alert.UserID != userID {
		return nil, util.NewForbiddenError("You don't have access to this alert")
	}
	return &alert, nil
}
