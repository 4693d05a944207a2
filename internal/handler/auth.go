package handler

import (
	"github.com/muhammadarssy/backend-finances/internal/service"
	"github.com/muhammadarssy/backend-finances/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves register, login and profile endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type registerReq struct {
	Name            string `json:"name" binding:"required,max=64"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	DefaultCurrency string `json:"defaultCurrency" binding:"max=8"`
	Timezone        string `json:"timezone" binding:"max=64"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateProfileReq struct {
	Name            *string `json:"name"`
	DefaultCurrency *string `json:"defaultCurrency"`
	Timezone        *string `json:"timezone"`
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func userResp(u interface{}) util.Response {
	return util.Response{"user": u}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	user, err := h.Auth.Register(service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		DefaultCurrency: req.DefaultCurrency,
		Timezone:        req.Timezone,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, userResp(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	user, token, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"user": user, "token": token})
}

func (h *AuthHandler) Me(c *gin.Context) {
	util.Success(c, userResp(currentUser(c)))
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	user, err := h.Auth.UpdateProfile(currentUser(c).ID, req.Name, req.DefaultCurrency, req.Timezone)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, userResp(user))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, util.NewValidationError(err.Error()))
		return
	}

	if err := h.Auth.ChangePassword(currentUser(c).ID, req.OldPassword, req.NewPassword); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"changed": true})
}
