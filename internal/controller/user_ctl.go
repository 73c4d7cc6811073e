package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ebay_console_v1_202609/internal/api/dto"
	"ebay_console_v1_202609/internal/middleware"
	"ebay_console_v1_202609/internal/service"
)

// UserController 控制台用户管理
type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

// respondUserError 用户模块错误映射
func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidOldPassword):
		c.JSON(401, gin.H{"code": 401, "message": err.Error()})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(401, gin.H{"code": 401, "message": err.Error()})
	case errors.Is(err, service.ErrUserDisabled):
		c.JSON(403, gin.H{"code": 403, "message": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(404, gin.H{"code": 404, "message": err.Error()})
	case errors.Is(err, service.ErrUsernameExists):
		c.JSON(409, gin.H{"code": 409, "message": err.Error()})
	default:
		respondError(c, err)
	}
}

// Login 控制台登录
// @Summary 控制台用户登录
// @Tags User
// @Accept json
// @Param body body dto.LoginRequest true "登录信息"
// @Router /api/console/login [post]
func (ctrl *UserController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondUserError(c, err)
		return
	}
	respondOK(c, resp)
}

// RefreshToken 刷新控制台 Token
// @Summary 用 refresh token 换新的访问令牌
// @Tags User
// @Accept json
// @Param body body dto.RefreshTokenRequest true "刷新 Token"
// @Router /api/console/refresh [post]
func (ctrl *UserController) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	resp, err := ctrl.userService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondUserError(c, err)
		return
	}
	respondOK(c, resp)
}

// GetProfile 获取当前用户信息
// @Summary 获取当前登录用户信息
// @Tags User
// @Security BearerAuth
// @Router /api/console/profile [get]
func (ctrl *UserController) GetProfile(c *gin.Context) {
	profile, err := ctrl.userService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondUserError(c, err)
		return
	}
	respondOK(c, profile)
}

// ChangePassword 修改密码
// @Summary 修改当前用户密码
// @Tags User
// @Security BearerAuth
// @Accept json
// @Param body body dto.ChangePasswordRequest true "新旧密码"
// @Router /api/console/change-password [post]
func (ctrl *UserController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	if err := ctrl.userService.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req.OldPassword, req.NewPassword); err != nil {
		respondUserError(c, err)
		return
	}
	respondOK(c, nil)
}

// CreateUser 创建用户
// @Summary 创建控制台用户 (仅管理员)
// @Tags User
// @Security BearerAuth
// @Accept json
// @Param body body dto.CreateUserRequest true "用户信息"
// @Router /api/console/users [post]
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	user, err := ctrl.userService.CreateUser(c.Request.Context(), req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		respondUserError(c, err)
		return
	}
	respondOK(c, user)
}
