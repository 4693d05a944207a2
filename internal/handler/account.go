package handler

import (
	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountHandler serves account CRUD endpoints.
type AccountHandler struct {
	Accounts *service.AccountService
}

func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

type createAccountReq struct {
	Name            string          `json:"name" binding:"required,max=64"`
	Type            string          `json:"type" binding:"required,oneof=BANK CASH EWALLET OTHER"`
	Currency        string          `json:"currency" binding:"max=8"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
}

type updateAccountReq struct {
	Name       *string `json:"name"`
	IsArchived *bool   `json:"isArchived"`
}

func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.Accounts.List(currentUser(c).ID, c.Query("type"), queryBool(c, "archived"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"accounts": accounts})
}

func (h *AccountHandler) Get(c *gin.Context) {
	account, err := h.Accounts.Get(c.Param("id"), currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"account": account})
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req createAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	account, err := h.Accounts.Create(currentUser(c).ID, service.CreateAccountInput{
		Name:            req.Name,
		Type:            req.Type,
		Currency:        req.Currency,
		StartingBalance: req.StartingBalance,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"account": account})
}

func (h *AccountHandler) Update(c *gin.Context) {
	var req updateAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	account, err := h.Accounts.Update(c.Param("id"), currentUser(c).ID, service.UpdateAccountInput{
		Name:       req.Name,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"account": account})
}
