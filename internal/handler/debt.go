package handler

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DebtHandler serves debt and debt payment endpoints.
type DebtHandler struct {
	Debts *service.DebtService
}

func NewDebtHandler(debts *service.DebtService) *DebtHandler {
	return &DebtHandler{Debts: debts}
}

type createDebtReq struct {
	Name           string           `json:"name" binding:"required,max=64"`
	Direction      string           `json:"direction" binding:"required,oneof=OWED_BY_ME OWED_TO_ME"`
	TotalAmount    decimal.Decimal  `json:"totalAmount" binding:"required"`
	MinimumPayment *decimal.Decimal `json:"minimumPayment"`
	DueDate        *time.Time       `json:"dueDate"`
	Note           string           `json:"note" binding:"max=255"`
}

type updateDebtReq struct {
	Name    *string    `json:"name"`
	Note    *string    `json:"note"`
	DueDate *time.Time `json:"dueDate"`
}

type payDebtReq struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	PaidAt     time.Time       `json:"paidAt"`
	AccountID  *string         `json:"accountId"`
	CategoryID *string         `json:"categoryId"`
}

func (h *DebtHandler) List(c *gin.Context) {
	debts, err := h.Debts.List(currentUser(c).ID, c.Query("direction"), c.Query("status"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"debts": debts})
}

func (h *DebtHandler) Get(c *gin.Context) {
	debt, err := h.Debts.Get(c.Param("id"), currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"debt": debt})
}

func (h *DebtHandler) Create(c *gin.Context) {
	var req createDebtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	minimum := decimal.NullDecimal{}
	if req.MinimumPayment != nil {
		minimum = decimal.NewNullDecimal(*req.MinimumPayment)
	}

	debt, err := h.Debts.Create(currentUser(c).ID, service.DebtInput{
		Name:           req.Name,
		Direction:      req.Direction,
		TotalAmount:    req.TotalAmount,
		MinimumPayment: minimum,
		DueDate:        req.DueDate,
		Note:           req.Note,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"debt": debt})
}

func (h *DebtHandler) Update(c *gin.Context) {
	var req updateDebtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	debt, err := h.Debts.Update(c.Param("id"), currentUser(c).ID, req.Name, req.Note, req.DueDate)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"debt": debt})
}

func (h *DebtHandler) Delete(c *gin.Context) {
	if err := h.Debts.Delete(c.Param("id"), currentUser(c).ID); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"deleted": true})
}

func (h *DebtHandler) Pay(c *gin.Context) {
	var req payDebtReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	debt, err := h.Debts.Pay(c.Param("id"), currentUser(c).ID, service.PayDebtInput{
		Amount:     req.Amount,
		PaidAt:     req.PaidAt,
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"debt": debt})
}
