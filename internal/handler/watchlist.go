package handler

import (
	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// WatchlistHandler serves watchlist and price alert endpoints.
type WatchlistHandler struct {
	Watchlist *service.WatchlistService
}

func NewWatchlistHandler(watchlist *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{Watchlist: watchlist}
}

type addWatchlistReq struct {
	AssetID string `json:"assetId" binding:"required"`
}

type createAlertReq struct {
	AssetID     string          `json:"assetId" binding:"required"`
	Condition   string          `json:"condition" binding:"required,oneof=ABOVE BELOW"`
	TargetPrice decimal.Decimal `json:"targetPrice" binding:"required"`
}

func (h *WatchlistHandler) List(c *gin.Context) {
	items, err := h.Watchlist.List(currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"items": items})
}

func (h *WatchlistHandler) Add(c *gin.Context) {
	var req addWatchlistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	item, err := h.Watchlist.Add(currentUser(c).ID, req.AssetID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"item": item})
}

func (h *WatchlistHandler) Remove(c *gin.Context) {
	if err := h.Watchlist.Remove(currentUser(c).ID, c.Param("assetId")); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"removed": true})
}

func (h *WatchlistHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.Watchlist.ListAlerts(currentUser(c).ID, queryBool(c, "active"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"alerts": alerts})
}

func (h *WatchlistHandler) CreateAlert(c *gin.Context) {
	var req createAlertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	alert, err := h.Watchlist.CreateAlert(currentUser(c).ID, req.AssetID, req.Condition, req.TargetPrice)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"alert": alert})
}

func (h *WatchlistHandler) ToggleAlert(c *gin.Context) {
	alert, err := h.Watchlist.ToggleAlert(c.Param("id"), currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"alert": alert})
}

func (h *WatchlistHandler) DeleteAlert(c *gin.Context) {
	if err := h.Watchlist.DeleteAlert(c.Param("id"), currentUser(c).ID); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"deleted": true})
}
