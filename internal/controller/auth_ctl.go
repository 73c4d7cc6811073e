package controller

import (
	"github.com/gin-gonic/gin"

	"ebay_console_v1_202609/internal/service"
)

// AuthController eBay 卖家授权 (OAuth 授权码流程)
type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// GetLoginURL 获取 eBay 授权链接
// @Summary 生成 eBay 授权页链接 (前端跳转)
// @Tags Auth
// @Router /api/auth/login-url [get]
func (ctrl *AuthController) GetLoginURL(c *gin.Context) {
	loginURL, err := ctrl.authService.BuildLoginURL(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"login_url": loginURL})
}

// HandleCallback eBay 授权回调
// @Summary 处理 eBay 授权回调，换取并保存 Token
// @Tags Auth
// @Param code query string true "授权码"
// @Param state query string true "防 CSRF 随机串"
// @Router /api/auth/callback [get]
func (ctrl *AuthController) HandleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		c.JSON(400, gin.H{"code": 400, "message": "缺少授权码"})
		return
	}

	account, err := ctrl.authService.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, account)
}

// RefreshToken 手动刷新当前账号 Token
// @Summary 立即刷新当前活跃账号的访问令牌
// @Tags Auth
// @Router /api/auth/refresh [post]
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	ctx := c.Request.Context()

	account, err := ctrl.authService.GetAccount(ctx, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctrl.authService.RefreshAccessToken(ctx, account); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, account)
}

// GetAccountStatus 查询授权状态
// @Summary 查询当前活跃卖家账号的授权状态
// @Tags Auth
// @Router /api/auth/status [get]
func (ctrl *AuthController) GetAccountStatus(c *gin.Context) {
	account, err := ctrl.authService.GetAccount(c.Request.Context(), 0)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"account":     account,
		"token_valid": account.HasValidToken(),
	})
}
