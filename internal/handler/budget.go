package handler

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BudgetHandler serves monthly budget endpoints.
type BudgetHandler struct {
	Budgets *service.BudgetService
}

func NewBudgetHandler(budgets *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{Budgets: budgets}
}

type budgetItemReq struct {
	CategoryID  string          `json:"categoryId" binding:"required"`
	LimitAmount decimal.Decimal `json:"limitAmount" binding:"required"`
}

type upsertBudgetReq struct {
	Month      int              `json:"month" binding:"required,min=1,max=12"`
	Year       int              `json:"year" binding:"required"`
	TotalLimit *decimal.Decimal `json:"totalLimit"`
	Items      []budgetItemReq  `json:"items"`
}

func (h *BudgetHandler) Upsert(c *gin.Context) {
	var req upsertBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	items := make([]service.BudgetItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.BudgetItemInput{
			CategoryID:  item.CategoryID,
			LimitAmount: item.LimitAmount,
		})
	}

	totalLimit := decimal.NullDecimal{}
	if req.TotalLimit != nil {
		totalLimit = decimal.NewNullDecimal(*req.TotalLimit)
	}

	budget, err := h.Budgets.Upsert(currentUser(c).ID, service.UpsertBudgetInput{
		Month:      req.Month,
		Year:       req.Year,
		TotalLimit: totalLimit,
		Items:      items,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"budget": budget})
}

func (h *BudgetHandler) Get(c *gin.Context) {
	now := time.Now()
	month := queryInt(c, "month", int(now.Month()))
	year := queryInt(c, "year", now.Year())

	status, err := h.Budgets.Get(currentUser(c).ID, month, year)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"budget": status})
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	now := time.Now()
	month := queryInt(c, "month", int(now.Month()))
	year := queryInt(c, "year", now.Year())

	if err := h.Budgets.Delete(currentUser(c).ID, month, year); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"deleted": true})
}
