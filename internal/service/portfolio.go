package service

import (
	"github.com/muhammadarssy/backend-finances/internal/models"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PortfolioService reads holdings and rebuilds them from the ledger.
type PortfolioService struct {
	DB *gorm.DB
}

func NewPortfolioService(db *gorm.DB) *PortfolioService {
	return &PortfolioService{DB: db}
}

// PortfolioSummary aggregates the portfolio at cost.
type PortfolioSummary struct {
	TotalCostBasis decimal.Decimal   `json:"totalCostBasis"`
	RealizedPL     decimal.Decimal   `json:"realizedPL"`
	Allocation     []AllocationSlice `json:"allocation"`
}

// AllocationSlice is the cost basis held in one asset type.
type AllocationSlice struct {
	AssetType string          `json:"assetType"`
	Value     decimal.Decimal `json:"value"`
}

// HoldingView is a holding with its derived cost basis.
type HoldingView struct {
	models.Holding
	CostBasis decimal.Decimal `json:"costBasis"`
}

// RebuildResult reports what a rebuild produced.
type RebuildResult struct {
	HoldingsCreated       int `json:"holdingsCreated"`
	TransactionsProcessed int `json:"transactionsProcessed"`
}

// Summary computes total cost basis, allocation by asset type, and realized
// P/L. Realized P/L values each SELL against its own recorded price rather
// than FIFO/LIFO cost lots; the data model carries no lot tracking, so this
// stays a per-sell approximation.
func (s *PortfolioService) Summary(userID string) (*PortfolioSummary, error) {
	var holdings []models.Holding
	if err := s.DB.Preload("Asset").Where("user_id = ?", userID).Find(&holdings).Error; err != nil {
		return nil, err
	}

	totalCostBasis := decimal.Zero
	byType := map[string]decimal.Decimal{}
	for _, h := range holdings {
		costBasis := h.UnitsTotal.Mul(h.AvgBuyPrice)
		totalCostBasis = totalCostBasis.Add(costBasis)
		byType[h.Asset.AssetType] = byType[h.Asset.AssetType].Add(costBasis)
	}

	var sells []models.InvestmentTransaction
	if err := s.DB.Where("user_id = ? AND type = ?", userID, models.InvestmentSell).
		Find(&sells).Error; err != nil {
		return nil, err
	}

	realizedPL := decimal.Zero
	for _, sell := range sells {
		if !sell.Units.Valid || !sell.PricePerUnit.Valid {
			continue
		}
		costBasis := sell.Units.Decimal.Mul(sell.PricePerUnit.Decimal)
		realizedPL = realizedPL.Add(sell.NetAmount.Sub(costBasis))
	}

	allocation := make([]AllocationSlice, 0, len(byType))
	for assetType, value := range byType {
		allocation = append(allocation, AllocationSlice{AssetType: assetType, Value: value})
	}

	return &PortfolioSummary{
		TotalCostBasis: totalCostBasis,
		RealizedPL:     realizedPL,
		Allocation:     allocation,
	}, nil
}

// ListHoldings returns the user's holdings with cost basis, optionally
// filtered by asset type.
func (s *PortfolioService) ListHoldings(userID, assetType string) ([]HoldingView, error) {
	query := s.DB.Preload("Asset").Where("user_id = ?", userID)
	if assetType != "" {
		query = query.Joins("JOIN investment_assets ON investment_assets.id = holdings.asset_id").
			Where("investment_assets.asset_type = ?", assetType)
	}

	var holdings []models.Holding
	if err := query.Order("updated_at DESC").Find(&holdings).Error; err != nil {
		return nil, err
	}

	views := make([]HoldingView, 0, len(holdings))
	for _, h := range holdings {
		views = append(views, HoldingView{
			Holding:   h,
			CostBasis: h.UnitsTotal.Mul(h.AvgBuyPrice),
		})
	}
	return views, nil
}

// GetHoldingByAsset returns the holding for one asset plus its recent
// transaction history.
func (s *PortfolioService) GetHoldingByAsset(assetID, userID string) (*HoldingView, []models.InvestmentTransaction, error) {
	if _, err := getOwnedAsset(s.DB, assetID, userID); err != nil {
		return nil, nil, err
	}

	var holding models.Holding
	if err := s.DB.Preload("Asset").
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		First(&holding).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, util.NewNotFoundError("Holding not found for this asset")
		}
		return nil, nil, err
	}

	var txns []models.InvestmentTransaction
	if err := s.DB.Where("user_id = ? AND asset_id = ?", userID, assetID).
		Order("occurred_at DESC").Limit(50).Find(&txns).Error; err != nil {
		return nil, nil, err
	}

	return &HoldingView{
		Holding:   holding,
		CostBasis: holding.UnitsTotal.Mul(holding.AvgBuyPrice),
	}, txns, nil
}

// RebuildHoldings recomputes every holding for the user from the complete
// BUY/SELL history ordered by occurrence, replacing whatever rows exist.
// This is the reference the incremental path must agree with. A SELL that
// would push units below zero is inconsistent history and is skipped rather
// than failing the whole rebuild.
func (s *PortfolioService) RebuildHoldings(userID string) (*RebuildResult, error) {
	var txns []models.InvestmentTransaction
	if err := s.DB.Where("user_id = ? AND type IN ?", userID,
		[]string{models.InvestmentBuy, models.InvestmentSell}).
		Order("occurred_at ASC, created_at ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}

	positions := map[string]Position{}
	for _, txn := range txns {
		if !txn.Units.Valid || !txn.PricePerUnit.Valid {
			continue
		}
		pos := positions[txn.AssetID]

		switch txn.Type {
		case models.InvestmentBuy:
			positions[txn.AssetID] = pos.ApplyBuy(txn.Units.Decimal, txn.PricePerUnit.Decimal)
		case models.InvestmentSell:
			next, err := pos.ApplySell(txn.Units.Decimal, txn.PricePerUnit.Decimal)
			if err != nil {
				// inconsistent history, skip the sell
				continue
			}
			positions[txn.AssetID] = next
		}
	}

	created := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Holding{}).Error; err != nil {
			return err
		}
		for assetID, pos := range positions {
			if !pos.Held {
				continue
			}
			holding := models.Holding{
				UserID:      userID,
				AssetID:     assetID,
				UnitsTotal:  pos.Units,
				AvgBuyPrice: pos.AvgBuyPrice,
			}
			if err := tx.Create(&holding).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RebuildResult{
		HoldingsCreated:       created,
		TransactionsProcessed: len(txns),
	}, nil
}
