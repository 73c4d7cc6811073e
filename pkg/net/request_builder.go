package net

import (
	"context"
	"io"
	"net/http"
)

// BuildEbayRequest 通用 eBay 请求构建器
// 适用方：TaxonomyService, InventoryService, PolicyService 等所有业务服务
// 职责：统一封装鉴权头 (Authorization) 与站点头 (X-EBAY-C-MARKETPLACE-ID, Content-Language)
// 注意：如果 Content-Type 不是 JSON (如 form)，调用方获取 req 后可手动覆盖 Header
func BuildEbayRequest(ctx context.Context, method, url string, body io.Reader, accessToken, marketplaceID, contentLanguage string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", marketplaceID)
	req.Header.Set("Content-Language", contentLanguage)

	return req, nil
}

// BuildEbayGetRequest 构建 eBay GET 请求
func BuildEbayGetRequest(ctx context.Context, url string, accessToken, marketplaceID, contentLanguage string) (*http.Request, error) {
	return BuildEbayRequest(ctx, http.MethodGet, url, nil, accessToken, marketplaceID, contentLanguage)
}

// BuildEbayPostRequest 构建 eBay POST 请求
func BuildEbayPostRequest(ctx context.Context, url string, body io.Reader, accessToken, marketplaceID, contentLanguage string) (*http.Request, error) {
	return BuildEbayRequest(ctx, http.MethodPost, url, body, accessToken, marketplaceID, contentLanguage)
}

// BuildEbayPutRequest 构建 eBay PUT 请求
func BuildEbayPutRequest(ctx context.Context, url string, body io.Reader, accessToken, marketplaceID, contentLanguage string) (*http.Request, error) {
	return BuildEbayRequest(ctx, http.MethodPut, url, body, accessToken, marketplaceID, contentLanguage)
}

// BuildEbayDeleteRequest 构建 eBay DELETE 请求
func BuildEbayDeleteRequest(ctx context.Context, url string, accessToken, marketplaceID, contentLanguage string) (*http.Request, error) {
	return BuildEbayRequest(ctx, http.MethodDelete, url, nil, accessToken, marketplaceID, contentLanguage)
}
