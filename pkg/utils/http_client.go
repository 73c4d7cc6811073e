package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewOAuthClient 创建一个配置好超时的 Resty 客户端
// 仅用于 OAuth Token 换取/刷新链路 (表单请求 + Basic 认证)
// 业务 API 链路走 pkg/net 的 Dispatcher
func NewOAuthClient() *resty.Client {
	return resty.New().
		SetTimeout(20 * time.Second). // Token 端点偶发抖动，给 20s
		SetHeader("User-Agent", "Ebay-Console-App/1.0")
}
