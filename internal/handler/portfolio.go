package handler

import (
	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler serves holdings, summary and rebuild endpoints.
type PortfolioHandler struct {
	Portfolio *service.PortfolioService
}

func NewPortfolioHandler(portfolio *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{Portfolio: portfolio}
}

func (h *PortfolioHandler) Summary(c *gin.Context) {
	summary, err := h.Portfolio.Summary(currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"summary": summary})
}

func (h *PortfolioHandler) ListHoldings(c *gin.Context) {
	holdings, err := h.Portfolio.ListHoldings(currentUser(c).ID, c.Query("assetType"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"holdings": holdings})
}

func (h *PortfolioHandler) GetHolding(c *gin.Context) {
	holding, txns, err := h.Portfolio.GetHoldingByAsset(c.Param("assetId"), currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"holding": holding, "transactions": txns})
}

func (h *PortfolioHandler) Rebuild(c *gin.Context) {
	result, err := h.Portfolio.RebuildHoldings(currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"result": result})
}
