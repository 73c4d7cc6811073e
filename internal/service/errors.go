package service

import (
	"errors"
	"fmt"
	"strings"
)

// ==================== 业务错误定义 ====================

// 哨兵错误：Controller 层据此映射 HTTP 状态码
var (
	// ErrUnauthenticated 当前没有持有有效 Token 的卖家账号
	ErrUnauthenticated = errors.New("no authenticated ebay account")

	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound 类目不存在
	ErrCategoryNotFound = errors.New("category not found")
	// ErrSKUExists SKU 已存在
	ErrSKUExists = errors.New("sku already exists")
	// ErrCategoryExists eBay 类目已导入过
	ErrCategoryExists = errors.New("ebay category already imported")
	// ErrCategoryInUse 类目下仍有商品引用
	ErrCategoryInUse = errors.New("category still referenced by products")
	// ErrPolicyInUse 策略被在线 listing 引用，eBay 拒绝删除
	ErrPolicyInUse = errors.New("policy is in use by active listings")
)

// ValidationError 输入校验失败 (HTTP 400)
// Fields 逐项列出问题字段与原因
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError 单字段校验错误
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ==================== 发布链路错误 ====================

// 发布步骤常量，标记失败发生在哪一步
const (
	PublishStepValidate  = "validate"
	PublishStepLocation  = "location"
	PublishStepInventory = "inventory"
	PublishStepOffer     = "offer"
	PublishStepPublish   = "publish"
	PublishStepRecord    = "record"
)

// PublishError 发布链路失败
// 携带出错的步骤名与底层错误 (底层通常是 *ebay.APIError，原始报文保留)
type PublishError struct {
	Step string
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish failed at step %s: %v", e.Step, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// NotRecordedError listing 已在 eBay 上线，但本地回写失败
// 必须把 ListingID 透传给调用方，否则运营无法人工补录
type NotRecordedError struct {
	ListingID string
	Err       error
}

func (e *NotRecordedError) Error() string {
	return fmt.Sprintf("listing %s published but not recorded locally: %v", e.ListingID, e.Err)
}

func (e *NotRecordedError) Unwrap() error {
	return e.Err
}
