package handler

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// BillHandler serves bill and bill payment endpoints.
type BillHandler struct {
	Bills *service.BillService
}

func NewBillHandler(bills *service.BillService) *BillHandler {
	return &BillHandler{Bills: bills}
}

type createBillReq struct {
	Name       string          `json:"name" binding:"required,max=64"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"max=8"`
	DueDate    time.Time       `json:"dueDate" binding:"required"`
	CategoryID *string         `json:"categoryId"`
	Note       string          `json:"note" binding:"max=255"`
}

type updateBillReq struct {
	Name    *string          `json:"name"`
	Amount  *decimal.Decimal `json:"amount"`
	DueDate *time.Time       `json:"dueDate"`
	Note    *string          `json:"note"`
}

type payBillReq struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	PaidAt     time.Time       `json:"paidAt"`
	AccountID  *string         `json:"accountId"`
	CategoryID *string         `json:"categoryId"`
}

func (h *BillHandler) List(c *gin.Context) {
	bills, err := h.Bills.List(currentUser(c).ID, c.Query("status"), queryTime(c, "dueBefore"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"bills": bills})
}

func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.Bills.Get(c.Param("id"), currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"bill": bill})
}

func (h *BillHandler) Create(c *gin.Context) {
	var req createBillReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	bill, err := h.Bills.Create(currentUser(c).ID, service.BillInput{
		Name:       req.Name,
		Amount:     req.Amount,
		Currency:   req.Currency,
		DueDate:    req.DueDate,
		CategoryID: req.CategoryID,
		Note:       req.Note,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"bill": bill})
}

func (h *BillHandler) Update(c *gin.Context) {
	var req updateBillReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	bill, err := h.Bills.Update(c.Param("id"), currentUser(c).ID,
		req.Name, req.Amount, req.DueDate, req.Note)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"bill": bill})
}

func (h *BillHandler) Delete(c *gin.Context) {
	if err := h.Bills.Delete(c.Param("id"), currentUser(c).ID); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"deleted": true})
}

func (h *BillHandler) Pay(c *gin.Context) {
	var req payBillReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	bill, err := h.Bills.Pay(c.Param("id"), currentUser(c).ID, service.PayBillInput{
		Amount:     req.Amount,
		PaidAt:     req.PaidAt,
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"bill": bill})
}
