package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ebay_console_v1_202609/internal/model"
	"ebay_console_v1_202609/internal/repository"
	"ebay_console_v1_202609/pkg/ebay"
	"ebay_console_v1_202609/pkg/net"
)

// ==================== eBay API 调用基座 ====================
// 各业务服务 (Taxonomy/Policy/Inventory/Order) 内嵌此结构
// 统一处理：账号 Token 前置校验、请求构建、发送、状态码判定、JSON 解码

type ebayClient struct {
	cfg         *ebay.Config
	accountRepo repository.AccountRepository
	dispatcher  net.Dispatcher
}

func newEbayClient(cfg *ebay.Config, accountRepo repository.AccountRepository, dispatcher net.Dispatcher) ebayClient {
	return ebayClient{
		cfg:         cfg,
		accountRepo: accountRepo,
		dispatcher:  dispatcher,
	}
}

// account 加载账号并校验 Token
// accountID 为 0 时取当前活跃账号
func (c *ebayClient) account(ctx context.Context, accountID int64) (*model.SellerAccount, error) {
	var account *model.SellerAccount
	var err error

	if accountID == 0 {
		account, err = c.accountRepo.GetActive(ctx)
	} else {
		account, err = c.accountRepo.GetByID(ctx, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("load seller account: %v", err)
	}
	if account == nil || !account.HasValidToken() {
		return nil, ErrUnauthenticated
	}
	return account, nil
}

// doJSON 发送请求并把 2xx 响应解码到 out (out 可为 nil)
// 非 2xx 统一包装为 *ebay.APIError，原始报文保留
func (c *ebayClient) doJSON(ctx context.Context, account *model.SellerAccount, method, url string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := net.BuildEbayRequest(ctx, method, url, reader, account.AccessToken, account.MarketplaceID, c.cfg.ContentLanguage)
	if err != nil {
		return err
	}

	resp, err := c.dispatcher.Send(req)
	if err != nil {
		return fmt.Errorf("ebay request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ebay.NewAPIError(resp)
	}

	if out == nil {
		return nil
	}
	// 204 等空响应直接返回
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ebay json decode failed: %v", err)
	}
	return nil
}

// doRaw 发送请求并原样返回 2xx 响应体 (订单透传等场景)
func (c *ebayClient) doRaw(ctx context.Context, account *model.SellerAccount, method, url string) (json.RawMessage, error) {
	req, err := net.BuildEbayRequest(ctx, method, url, nil, account.AccessToken, account.MarketplaceID, c.cfg.ContentLanguage)
	if err != nil {
		return nil, err
	}

	resp, err := c.dispatcher.Send(req)
	if err != nil {
		return nil, fmt.Errorf("ebay request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ebay.NewAPIError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ebay response: %v", err)
	}
	return data, nil
}
