package controller

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"ebay_console_v1_202609/internal/service"
	"ebay_console_v1_202609/pkg/ebay"
)

// ==================== 统一响应 ====================

// respondOK 成功响应
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    data,
	})
}

// respondError 业务错误 -> HTTP 状态码映射
// 校验 400 / 未授权 401 / 不存在 404 / 冲突 409 / 上游及未知 500
func respondError(c *gin.Context, err error) {
	// 输入校验
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(400, gin.H{"code": 400, "message": vErr.Error(), "fields": vErr.Fields})
		return
	}

	// 未持有有效 eBay 授权
	if errors.Is(err, service.ErrUnauthenticated) {
		c.JSON(401, gin.H{"code": 401, "message": "请先完成 eBay 授权"})
		return
	}

	// 不存在
	if errors.Is(err, service.ErrProductNotFound) || errors.Is(err, service.ErrCategoryNotFound) {
		c.JSON(404, gin.H{"code": 404, "message": err.Error()})
		return
	}

	// 冲突
	if errors.Is(err, service.ErrSKUExists) ||
		errors.Is(err, service.ErrCategoryExists) ||
		errors.Is(err, service.ErrCategoryInUse) ||
		errors.Is(err, service.ErrPolicyInUse) {
		c.JSON(409, gin.H{"code": 409, "message": err.Error()})
		return
	}

	// eBay 上游错误：原始报文透传，供前端展示诊断
	var apiErr *ebay.APIError
	if errors.As(err, &apiErr) {
		c.JSON(500, gin.H{
			"code":    500,
			"message": "eBay API 调用失败",
			"status":  apiErr.StatusCode,
			"details": json.RawMessage(apiErr.Body),
		})
		return
	}

	c.JSON(500, gin.H{"code": 500, "message": err.Error()})
}
