package handler

import (
	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
)

// CategoryHandler serves category CRUD endpoints.
type CategoryHandler struct {
	Categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

type createCategoryReq struct {
	Name  string `json:"name" binding:"required,max=64"`
	Type  string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Icon  string `json:"icon" binding:"max=32"`
	Color string `json:"color" binding:"max=16"`
}

type updateCategoryReq struct {
	Name       *string `json:"name"`
	Icon       *string `json:"icon"`
	Color      *string `json:"color"`
	IsArchived *bool   `json:"isArchived"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.Categories.List(currentUser(c).ID, c.Query("type"), queryBool(c, "archived"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"categories": categories})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	category, err := h.Categories.Create(currentUser(c).ID, service.CategoryInput{
		Name:  req.Name,
		Type:  req.Type,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"category": category})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req updateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	category, err := h.Categories.Update(c.Param("id"), currentUser(c).ID,
		req.Name, req.Icon, req.Color, req.IsArchived)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"category": category})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Categories.Delete(c.Param("id"), currentUser(c).ID); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"deleted": true})
}
