package ebay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ==========================================
// eBay API 错误模型
// 原则：原始错误报文必须完整保留，供前端诊断展示
// ==========================================

// APIError eBay 拒绝请求时的上游错误
// Body 保存未经加工的响应报文
type APIError struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *APIError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("ebay api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("ebay api error: status %d: %s", e.StatusCode, string(e.Body))
}

// NewAPIError 从 HTTP 响应构造 APIError（读取并保留响应体）
func NewAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)
	return &APIError{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
}

// ErrorDetail eBay 标准错误条目
type ErrorDetail struct {
	ErrorID  int    `json:"errorId"`
	Domain   string `json:"domain"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// errorEnvelope eBay 标准错误响应外层
type errorEnvelope struct {
	Errors []ErrorDetail `json:"errors"`
}

// Details 解析标准错误条目，解析失败返回空列表
func (e *APIError) Details() []ErrorDetail {
	var env errorEnvelope
	if err := json.Unmarshal(e.Body, &env); err != nil {
		return nil
	}
	return env.Errors
}

// IsNotFound 上游返回 404（如 SKU 尚无 offer / 库存项不存在）
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict 上游返回 409（如策略被引用 / 资源重复）
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsUnauthorized 上游返回 401（Token 失效）
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsInUse 上游以错误文案表明资源被占用
// eBay 删除被引用的策略时不一定返回 409，有时是 400 + usage 描述
func IsInUse(err error) bool {
	if IsConflict(err) {
		return true
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, d := range apiErr.Details() {
		msg := strings.ToLower(d.Message)
		if strings.Contains(msg, "usage") || strings.Contains(msg, "associated") {
			return true
		}
	}
	return false
}
