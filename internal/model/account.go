package model

import (
	"time"

	"github.com/lib/pq"
)

// Token 状态常量
const (
	TokenStatusValid   = "valid"        // 有效
	TokenStatusExpired = "expired"      // 已过期
	TokenStatusInvalid = "auth_invalid" // 需重新授权
)

// SellerAccount eBay 卖家账号 (OAuth 会话载体)
// 所有需要访问 eBay API 的操作都以一个有效的 SellerAccount 为前提
type SellerAccount struct {
	BaseModel

	// --- eBay 核心身份 ---
	EbayUserID    string `gorm:"size:64;index" json:"ebay_user_id"`
	Username      string `gorm:"size:100" json:"username"`
	MarketplaceID string `gorm:"size:20;default:'EBAY_AU'" json:"marketplace_id"`

	// 授权范围快照
	Scopes pq.StringArray `gorm:"type:text[]" json:"scopes"`

	// --- API Token ---
	// 周期检测 token 是否过期
	TokenStatus  string `gorm:"index;size:20;default:'auth_invalid'" json:"token_status"`
	AccessToken  string `gorm:"size:4096" json:"-"`
	RefreshToken string `gorm:"size:2048" json:"-"`
	// Token 具体的过期时间点
	TokenExpiresAt   time.Time `json:"token_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

func (SellerAccount) TableName() string {
	return "seller_accounts"
}

// HasValidToken 账号当前是否持有未过期的 AccessToken
func (a *SellerAccount) HasValidToken() bool {
	return a.TokenStatus == TokenStatusValid &&
		a.AccessToken != "" &&
		time.Now().Before(a.TokenExpiresAt)
}
