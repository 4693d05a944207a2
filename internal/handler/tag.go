package handler

import (
	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
)

// TagHandler serves tag endpoints.
type TagHandler struct {
	Tags *service.TagService
}

func NewTagHandler(tags *service.TagService) *TagHandler {
	return &TagHandler{Tags: tags}
}

type createTagReq struct {
	Name string `json:"name" binding:"required,max=32"`
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.Tags.List(currentUser(c).ID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"tags": tags})
}

func (h *TagHandler) Create(c *gin.Context) {
	var req createTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	tag, err := h.Tags.Create(currentUser(c).ID, req.Name)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"tag": tag})
}

func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.Tags.Delete(c.Param("id"), currentUser(c).ID); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"deleted": true})
}
