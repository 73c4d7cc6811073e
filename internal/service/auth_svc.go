package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"ebay_console_v1_202609/internal/model"
	"ebay_console_v1_202609/internal/repository"
	"ebay_console_v1_202609/pkg/ebay"
	"ebay_console_v1_202609/pkg/net"
	"ebay_console_v1_202609/pkg/utils"
)

// AuthService eBay 卖家授权服务 (OAuth 授权码流程)
type AuthService struct {
	cfg         *ebay.Config
	accountRepo repository.AccountRepository
	oauthClient *resty.Client
	dispatcher  net.Dispatcher
}

// NewAuthService 工厂方法
func NewAuthService(cfg *ebay.Config, accountRepo repository.AccountRepository, oauthClient *resty.Client, dispatcher net.Dispatcher) *AuthService {
	return &AuthService{
		cfg:         cfg,
		accountRepo: accountRepo,
		oauthClient: oauthClient,
		dispatcher:  dispatcher,
	}
}

// BuildLoginURL 生成 eBay 授权链接
func (s *AuthService) BuildLoginURL(ctx context.Context) (string, error) {
	// 1. 生成 State 并缓存 (10 分钟内有效)
	state, err := utils.GenerateRandomString(16)
	if err != nil {
		return "", fmt.Errorf("generate state: %v", err)
	}
	utils.SetCache(state, s.cfg.Env)

	// 2. 拼接 eBay 官方授权 URL
	params := url.Values{}
	params.Set("client_id", s.cfg.ClientID)
	params.Set("redirect_uri", s.cfg.RedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", strings.Join(ebay.DefaultScopes, " "))
	params.Set("state", state)

	return s.cfg.AuthBase() + "/oauth2/authorize?" + params.Encode(), nil
}

// HandleCallback 处理 eBay 回调 -> 换 Token -> 入库
func (s *AuthService) HandleCallback(ctx context.Context, code, state string) (*model.SellerAccount, error) {
	// 1. 校验 State 取缓存
	if _, exists := utils.GetCache(state); !exists {
		return nil, NewValidationError("state", "授权超时或 State 无效，请重新发起")
	}
	// 用完即焚
	utils.DeleteCache(state)

	// 2. 换取 Token (Basic 认证 + 表单)
	tokenResp, err := s.exchangeToken(ctx, map[string]string{
		"grant_type":   "authorization_code",
		"code":         code,
		"redirect_uri": s.cfg.RedirectURI,
	})
	if err != nil {
		return nil, err
	}

	// 3. 组装账号记录
	account := &model.SellerAccount{
		MarketplaceID:    s.cfg.MarketplaceID,
		Scopes:           ebay.DefaultScopes,
		TokenStatus:      model.TokenStatusValid,
		AccessToken:      tokenResp.AccessToken,
		RefreshToken:     tokenResp.RefreshToken,
		TokenExpiresAt:   time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second),
		RefreshExpiresAt: time.Now().Add(time.Duration(tokenResp.RefreshTokenExpiresIn) * time.Second),
	}

	// 4. 补充用户身份 (失败不阻断授权，仅记日志)
	if user, err := s.fetchIdentity(ctx, account); err != nil {
		log.Printf("[Auth] 获取 eBay 用户身份失败 (不影响授权): %v", err)
	} else {
		account.EbayUserID = user.UserID
		account.Username = user.Username
	}

	// 5. 同一 eBay 用户重复授权时更新原记录
	if account.EbayUserID != "" {
		existing, err := s.accountRepo.GetByEbayUserID(ctx, account.EbayUserID)
		if err == nil && existing != nil {
			existing.Scopes = account.Scopes
			existing.TokenStatus = model.TokenStatusValid
			existing.AccessToken = account.AccessToken
			existing.RefreshToken = account.RefreshToken
			existing.TokenExpiresAt = account.TokenExpiresAt
			existing.RefreshExpiresAt = account.RefreshExpiresAt
			if err := s.accountRepo.Update(ctx, existing); err != nil {
				return nil, fmt.Errorf("账号入库失败: %v", err)
			}
			return existing, nil
		}
	}

	// 6. 新账号入库
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("账号入库失败: %v", err)
	}
	return account, nil
}

// RefreshAccessToken 刷新账号 Token
func (s *AuthService) RefreshAccessToken(ctx context.Context, account *model.SellerAccount) error {
	tokenResp, err := s.exchangeToken(ctx, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": account.RefreshToken,
		"scope":         strings.Join(account.Scopes, " "),
	})
	if err != nil {
		// eBay 明确拒绝刷新 (refresh_token 失效) 时标记需重新授权
		if reject, ok := err.(*tokenRejectedError); ok {
			if updErr := s.accountRepo.UpdateTokenStatus(ctx, account.ID, model.TokenStatusInvalid); updErr != nil {
				log.Printf("[Auth] 标记账号 %d Token 失效出错: %v", account.ID, updErr)
			}
			return fmt.Errorf("refresh denied by eBay: %v", reject)
		}
		return err
	}

	// 更新入库
	account.AccessToken = tokenResp.AccessToken
	if tokenResp.RefreshToken != "" {
		account.RefreshToken = tokenResp.RefreshToken
	}
	account.TokenExpiresAt = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	account.TokenStatus = model.TokenStatusValid

	return s.accountRepo.Update(ctx, account)
}

// GetAccount 查询账号 (accountID 为 0 取当前活跃账号)
func (s *AuthService) GetAccount(ctx context.Context, accountID int64) (*model.SellerAccount, error) {
	if accountID == 0 {
		account, err := s.accountRepo.GetActive(ctx)
		if err != nil {
			return nil, err
		}
		if account == nil {
			return nil, ErrUnauthenticated
		}
		return account, nil
	}
	return s.accountRepo.GetByID(ctx, accountID)
}

// ==================== 内部实现 ====================

// tokenRejectedError eBay Token 端点返回 4xx (明确拒绝)
type tokenRejectedError struct {
	status int
	body   string
}

func (e *tokenRejectedError) Error() string {
	return fmt.Sprintf("token endpoint status %d: %s", e.status, e.body)
}

// exchangeToken 调用 eBay Token 端点 (授权码换取 / 刷新共用)
func (s *AuthService) exchangeToken(ctx context.Context, form map[string]string) (*ebay.TokenResp, error) {
	var tokenResp ebay.TokenResp

	resp, err := s.oauthClient.R().
		SetContext(ctx).
		SetBasicAuth(s.cfg.ClientID, s.cfg.ClientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(form).
		SetResult(&tokenResp).
		Post(s.cfg.TokenURL())

	// A. 网络层错误
	if err != nil {
		return nil, fmt.Errorf("token exchange network error: %v", err)
	}
	// B. 业务层错误 (eBay 明确拒绝)
	if resp.IsError() {
		if resp.StatusCode() >= 400 && resp.StatusCode() < 500 {
			return nil, &tokenRejectedError{status: resp.StatusCode(), body: string(resp.Body())}
		}
		return nil, fmt.Errorf("token exchange failed: status %d: %s", resp.StatusCode(), resp.Body())
	}
	// C. 成功处理
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token exchange returned empty access_token")
	}
	return &tokenResp, nil
}

// fetchIdentity 获取授权用户的 eBay 身份 (Identity API 走 apiz 域名)
func (s *AuthService) fetchIdentity(ctx context.Context, account *model.SellerAccount) (*ebay.UserResp, error) {
	req, err := net.BuildEbayGetRequest(ctx, s.cfg.CommerceBase()+"/commerce/identity/v1/user/",
		account.AccessToken, account.MarketplaceID, s.cfg.ContentLanguage)
	if err != nil {
		return nil, err
	}

	resp, err := s.dispatcher.Send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, ebay.NewAPIError(resp)
	}

	var user ebay.UserResp
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("identity json decode failed: %v", err)
	}
	return &user, nil
}
