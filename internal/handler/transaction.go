package handler

import (
	"time"

	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler serves the transaction ledger endpoints.
type TransactionHandler struct {
	Transactions *service.TransactionService
}

func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions}
}

type createTransactionReq struct {
	Type       string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Currency   string          `json:"currency" binding:"max=8"`
	OccurredAt time.Time       `json:"occurredAt" binding:"required"`
	AccountID  *string         `json:"accountId" binding:"required"`
	CategoryID *string         `json:"categoryId"`
	Note       string          `json:"note" binding:"max=255"`
	ReceiptURL string          `json:"receiptUrl" binding:"max=255"`
	TagIDs     []string        `json:"tagIds"`
}

type createTransferReq struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency" binding:"max=8"`
	OccurredAt    time.Time       `json:"occurredAt" binding:"required"`
	FromAccountID string          `json:"fromAccountId" binding:"required"`
	ToAccountID   string          `json:"toAccountId" binding:"required"`
	Note          string          `json:"note" binding:"max=255"`
}

type updateTransactionReq struct {
	Type          *string          `json:"type"`
	Amount        *decimal.Decimal `json:"amount"`
	Currency      *string          `json:"currency"`
	OccurredAt    *time.Time       `json:"occurredAt"`
	AccountID     *string          `json:"accountId"`
	CategoryID    *string          `json:"categoryId"`
	Note          *string          `json:"note"`
	ReceiptURL    *string          `json:"receiptUrl"`
	FromAccountID *string          `json:"fromAccountId"`
	ToAccountID   *string          `json:"toAccountId"`
	TagIDs        *[]string        `json:"tagIds"`
}

func (h *TransactionHandler) List(c *gin.Context) {
	filter := service.TransactionFilter{
		Type:       c.Query("type"),
		AccountID:  c.Query("accountId"),
		CategoryID: c.Query("categoryId"),
		TagID:      c.Query("tagId"),
		From:       queryTime(c, "from"),
		To:         queryTime(c, "to"),
		Query:      c.Query("q"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 20),
	}

	txns, total, err := h.Transactions.List(currentUser(c).ID, filter)
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

func (h *TransactionHandler) Get(c *gin.Context) {
	txn, err := h.Transactions.Get(c.Param("id"), currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	tags, err := h.Transactions.Tags(txn.ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": txn, "tags": tags})
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	txn, err := h.Transactions.Create(currentUser(c).ID, service.CreateTransactionInput{
		Type:       req.Type,
		Amount:     req.Amount,
		Currency:   req.Currency,
		OccurredAt: req.OccurredAt,
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
		Note:       req.Note,
		ReceiptURL: req.ReceiptURL,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": txn})
}

func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	var req createTransferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	txn, err := h.Transactions.CreateTransfer(currentUser(c).ID, service.CreateTransferInput{
		Amount:        req.Amount,
		Currency:      req.Currency,
		OccurredAt:    req.OccurredAt,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Note:          req.Note,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": txn})
}

func (h *TransactionHandler) Update(c *gin.Context) {
	var req updateTransactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	txn, err := h.Transactions.Update(c.Param("id"), currentUser(c).ID, service.UpdateTransactionInput{
		Type:          req.Type,
		Amount:        req.Amount,
		Currency:      req.Currency,
		OccurredAt:    req.OccurredAt,
		AccountID:     req.AccountID,
		CategoryID:    req.CategoryID,
		Note:          req.Note,
		ReceiptURL:    req.ReceiptURL,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		TagIDs:        req.TagIDs,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"transaction": txn})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	if err := h.Transactions.Delete(c.Param("id"), currentUser(c).ID); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"deleted": true})
}
