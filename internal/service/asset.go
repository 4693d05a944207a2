package service

import (
	"strings"

	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"gorm.io/gorm"
)

// AssetService is plain CRUD over investment assets; symbols are unique per
// user.
type AssetService struct {
	DB *gorm.DB
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{DB: db}
}

type AssetInput struct {
	Symbol    string
	Name      string
	AssetType string
	Currency  string
}

func (s *AssetService) List(userID, assetType string) ([]models.InvestmentAsset, error) {
	query := s.DB.Where("user_id = ?", userID)
	if assetType != "" {
		query = query.Where("asset_type = ?", assetType)
	}

	var assets []models.InvestmentAsset
	err := query.Order("symbol ASC").Find(&assets).Error
	return assets, err
}

func (s *AssetService) Get(assetID, userID string) (*models.InvestmentAsset, error) {
	return getOwnedAsset(s.DB, assetID, userID)
}

func (s *AssetService) Create(userID string, data AssetInput) (*models.InvestmentAsset, error) {
	switch data.AssetType {
	case models.AssetStock, models.AssetFund, models.AssetCrypto, models.AssetBond, models.AssetOther:
	default:
		return nil, util.NewValidationError("invalid asset type")
	}

	symbol := strings.ToUpper(strings.TrimSpace(data.Symbol))
	if symbol == "" {
		return nil, util.NewValidationError("symbol is required")
	}

	var count int64
	if err := s.DB.Model(&models.InvestmentAsset{}).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, util.NewConflictError("Asset with this symbol already exists")
	}

	asset := models.InvestmentAsset{
		UserID:    userID,
		Symbol:    symbol,
		Name:      data.Name,
		AssetType: data.AssetType,
		Currency:  data.Currency,
	}
	if err := s.DB.Create(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *AssetService) Update(assetID, userID string, name *string) (*models.InvestmentAsset, error) {
	if _, err := getOwnedAsset(s.DB, assetID, userID); err != nil {
		return nil, err
	}
	if name != nil {
		if err := s.DB.Model(&models.InvestmentAsset{}).
			Where("id = ?", assetID).Update("name", *name).Error; err != nil {
			return nil, err
		}
	}
	return getOwnedAsset(s.DB, assetID, userID)
}

// Delete refuses to remove an asset with ledger history or an open holding.
func (s *AssetService) Delete(assetID, userID string) error {
	if _, err := getOwnedAsset(s.DB, assetID, userID); err != nil {
		return err
	}

	var count int64
	if err := s.DB.Model(&models.InvestmentTransaction{}).
		Where("asset_id = ?", assetID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return util.NewValidationError("Asset has investment transactions")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", assetID).Delete(&models.WatchlistItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", assetID).Delete(&models.PriceAlert{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.InvestmentAsset{}, "id = ?", assetID).Error
	})
}
