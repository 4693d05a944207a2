package handler

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// InvestmentHandler serves the investment ledger and asset endpoints.
type InvestmentHandler struct {
	Investments *service.InvestmentService
	Assets      *service.AssetService
}

func NewInvestmentHandler(investments *service.InvestmentService, assets *service.AssetService) *InvestmentHandler {
	return &InvestmentHandler{Investments: investments, Assets: assets}
}

type createAssetReq struct {
	Symbol    string `json:"symbol" binding:"required,max=32"`
	Name      string `json:"name" binding:"required,max=64"`
	AssetType string `json:"assetType" binding:"required,oneof=STOCK FUND CRYPTO BOND OTHER"`
	Currency  string `json:"currency" binding:"max=8"`
}

type updateAssetReq struct {
	Name *string `json:"name"`
}

type createInvestmentReq struct {
	AssetID       string           `json:"assetId" binding:"required"`
	Type          string           `json:"type" binding:"required,oneof=BUY SELL DIVIDEND FEE DEPOSIT WITHDRAW"`
	Units         *decimal.Decimal `json:"units"`
	PricePerUnit  *decimal.Decimal `json:"pricePerUnit"`
	GrossAmount   *decimal.Decimal `json:"grossAmount"`
	FeeAmount     *decimal.Decimal `json:"feeAmount"`
	TaxAmount     *decimal.Decimal `json:"taxAmount"`
	NetAmount     *decimal.Decimal `json:"netAmount"`
	OccurredAt    time.Time        `json:"occurredAt" binding:"required"`
	Note          string           `json:"note" binding:"max=255"`
	CashAccountID *string          `json:"cashAccountId"`
}

type updateInvestmentReq struct {
	AssetID       *string          `json:"assetId"`
	Type          *string          `json:"type"`
	Units         *decimal.Decimal `json:"units"`
	PricePerUnit  *decimal.Decimal `json:"pricePerUnit"`
	GrossAmount   *decimal.Decimal `json:"grossAmount"`
	FeeAmount     *decimal.Decimal `json:"feeAmount"`
	TaxAmount     *decimal.Decimal `json:"taxAmount"`
	NetAmount     *decimal.Decimal `json:"netAmount"`
	OccurredAt    *time.Time       `json:"occurredAt"`
	Note          *string          `json:"note"`
	CashAccountID *string          `json:"cashAccountId"`
}

// ---------- assets ----------

func (h *InvestmentHandler) ListAssets(c *gin.Context) {
	assets, err := h.Assets.List(currentUser(c).ID, c.Query("assetType"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"assets": assets})
}

func (h *InvestmentHandler) GetAsset(c *gin.Context) {
	asset, err := h.Assets.Get(c.Param("id"), currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"asset": asset})
}

func (h *InvestmentHandler) CreateAsset(c *gin.Context) {
	var req createAssetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	asset, err := h.Assets.Create(currentUser(c).ID, service.AssetInput{
		Symbol:    req.Symbol,
		Name:      req.Name,
		AssetType: req.AssetType,
		Currency:  req.Currency,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"asset": asset})
}

func (h *InvestmentHandler) UpdateAsset(c *gin.Context) {
	var req updateAssetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	asset, err := h.Assets.Update(c.Param("id"), currentUser(c).ID, req.Name)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"asset": asset})
}

func (h *InvestmentHandler) DeleteAsset(c *gin.Context) {
	if err := h.Assets.Delete(c.Param("id"), currentUser(c).ID); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"deleted": true})
}

// ---------- ledger ----------

func (h *InvestmentHandler) List(c *gin.Context) {
	filter := service.InvestmentFilter{
		AssetID: c.Query("assetId"),
		Type:    c.Query("type"),
		From:    queryTime(c, "from"),
		To:      queryTime(c, "to"),
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", 20),
	}

	txns, total, err := h.Investments.List(currentUser(c).ID, filter)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{
		"transactions": txns,
		"total":        total,
		"page":         filter.Page,
		"limit":        filter.Limit,
	})
}

func (h *InvestmentHandler) Get(c *gin.Context) {
	txn, err := h.Investments.Get(c.Param("id"), currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": txn})
}

func (h *InvestmentHandler) Create(c *gin.Context) {
	var req createInvestmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	txn, err := h.Investments.Create(currentUser(c).ID, service.CreateInvestmentInput{
		AssetID:       req.AssetID,
		Type:          req.Type,
		Units:         req.Units,
		PricePerUnit:  req.PricePerUnit,
		GrossAmount:   req.GrossAmount,
		FeeAmount:     req.FeeAmount,
		TaxAmount:     req.TaxAmount,
		NetAmount:     req.NetAmount,
		OccurredAt:    req.OccurredAt,
		Note:          req.Note,
		CashAccountID: req.CashAccountID,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": txn})
}

func (h *InvestmentHandler) Update(c *gin.Context) {
	var req updateInvestmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	txn, err := h.Investments.Update(c.Param("id"), currentUser(c).ID, service.UpdateInvestmentInput{
		AssetID:       req.AssetID,
		Type:          req.Type,
		Units:         req.Units,
		PricePerUnit:  req.PricePerUnit,
		GrossAmount:   req.GrossAmount,
		FeeAmount:     req.FeeAmount,
		TaxAmount:     req.TaxAmount,
		NetAmount:     req.NetAmount,
		OccurredAt:    req.OccurredAt,
		Note:          req.Note,
		CashAccountID: req.CashAccountID,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": txn})
}

func (h *InvestmentHandler) Delete(c *gin.Context) {
	if err := h.Investments.Delete(c.Param("id"), currentUser(c).ID); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"deleted": true})
}
