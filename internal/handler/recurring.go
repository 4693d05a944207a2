package handler

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RecurringHandler serves recurring rule endpoints.
type RecurringHandler struct {
	Recurring *service.RecurringService
}

func NewRecurringHandler(recurring *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{Recurring: recurring}
}

type createRecurringReq struct {
	Name          string          `json:"name" binding:"required,max=64"`
	Type          string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"max=8"`
	CategoryID    string          `json:"categoryId" binding:"required"`
	AccountID     string          `json:"accountId" binding:"required"`
	ScheduleType  string          `json:"scheduleType" binding:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	ScheduleValue string          `json:"scheduleValue" binding:"required"`
	NextRunAt     time.Time       `json:"nextRunAt" binding:"required"`
	IsActive      *bool           `json:"isActive"`
}

type updateRecurringReq struct {
	Name          *string          `json:"name"`
	Type          *string          `json:"type"`
	Amount        *decimal.Decimal `json:"amount"`
	Currency      *string          `json:"currency"`
	CategoryID    *string          `json:"categoryId"`
	AccountID     *string          `json:"accountId"`
	ScheduleType  *string          `json:"scheduleType"`
	ScheduleValue *string          `json:"scheduleValue"`
	NextRunAt     *time.Time       `json:"nextRunAt"`
	IsActive      *bool            `json:"isActive"`
}

type toggleRecurringReq struct {
	IsActive bool `json:"isActive"`
}

func (h *RecurringHandler) List(c *gin.Context) {
	rules, err := h.Recurring.List(currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"rules": rules})
}

func (h *RecurringHandler) Get(c *gin.Context) {
	rule, err := h.Recurring.Get(c.Param("id"), currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"rule": rule})
}

func (h *RecurringHandler) Runs(c *gin.Context) {
	runs, err := h.Recurring.Runs(c.Param("id"), currentUser(c).ID, queryInt(c, "limit", 5))
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"runs": runs})
}

func (h *RecurringHandler) Create(c *gin.Context) {
	var req createRecurringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	rule, err := h.Recurring.Create(currentUser(c).ID, service.CreateRecurringInput{
		Name:          req.Name,
		Type:          req.Type,
		Amount:        req.Amount,
		Currency:      req.Currency,
		CategoryID:    req.CategoryID,
		AccountID:     req.AccountID,
		ScheduleType:  req.ScheduleType,
		ScheduleValue: req.ScheduleValue,
		NextRunAt:     req.NextRunAt,
		IsActive:      isActive,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"rule": rule})
}

func (h *RecurringHandler) Update(c *gin.Context) {
	var req updateRecurringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	rule, err := h.Recurring.Update(c.Param("id"), currentUser(c).ID, service.UpdateRecurringInput{
		Name:          req.Name,
		Type:          req.Type,
		Amount:        req.Amount,
		Currency:      req.Currency,
		CategoryID:    req.CategoryID,
		AccountID:     req.AccountID,
		ScheduleType:  req.ScheduleType,
		ScheduleValue: req.ScheduleValue,
		NextRunAt:     req.NextRunAt,
		IsActive:      req.IsActive,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"rule": rule})
}

func (h *RecurringHandler) Toggle(c *gin.Context) {
	var req toggleRecurringReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	rule, err := h.Recurring.Toggle(c.Param("id"), currentUser(c).ID, req.IsActive)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"rule": rule})
}

func (h *RecurringHandler) Delete(c *gin.Context) {
	if err := h.Recurring.Delete(c.Param("id"), currentUser(c).ID); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"deleted": true})
}

// Run executes a due rule immediately.
func (h *RecurringHandler) Run(c *gin.Context) {
	rule, err := h.Recurring.Run(c.Param("id"), currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"rule": rule})
}
