package controller

import (
	"github.com/gin-gonic/gin"

	"ebay_console_v1_202609/internal/service"
	"ebay_console_v1_202609/pkg/ebay"
)

// PolicyController eBay 卖家策略管理
type PolicyController struct {
	policyService *service.PolicyService
}

func NewPolicyController(policyService *service.PolicyService) *PolicyController {
	return &PolicyController{policyService: policyService}
}

// ListAllPolicies 三类策略汇总
// @Summary 并发拉取付款/退货/物流三类策略 (发布前选择页)
// @Tags Policy
// @Router /api/ebay-policies [get]
func (ctrl *PolicyController) ListAllPolicies(c *gin.Context) {
	overview, err := ctrl.policyService.ListAllPolicies(c.Request.Context(), 0)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, overview)
}

// ListPolicies 按类型列出策略
// @Summary 按类型列出策略
// @Tags Policy
// @Param type path string true "策略类型" Enums(payment, return, fulfillment)
// @Router /api/ebay-policies/{type} [get]
func (ctrl *PolicyController) ListPolicies(c *gin.Context) {
	policies, err := ctrl.policyService.ListPolicies(c.Request.Context(), 0, c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, policies)
}

// GetPolicy 获取单条策略
// @Summary 获取单条策略
// @Tags Policy
// @Param type path string true "策略类型" Enums(payment, return, fulfillment)
// @Param id path string true "策略 ID"
// @Router /api/ebay-policies/{type}/{id} [get]
func (ctrl *PolicyController) GetPolicy(c *gin.Context) {
	policy, err := ctrl.policyService.GetPolicy(c.Request.Context(), 0, c.Param("type"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, policy)
}

// CreatePolicy 创建策略
// @Summary 创建策略 (请求体为 eBay 策略对象)
// @Tags Policy
// @Accept json
// @Param type path string true "策略类型" Enums(payment, return, fulfillment)
// @Router /api/ebay-policies/{type} [post]
func (ctrl *PolicyController) CreatePolicy(c *gin.Context) {
	var body ebay.Policy
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	created, err := ctrl.policyService.CreatePolicy(c.Request.Context(), 0, c.Param("type"), body)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, created)
}

// UpdatePolicy 更新策略
// @Summary 更新策略 (提交字段合并到现状后全量 PUT)
// @Tags Policy
// @Accept json
// @Param type path string true "策略类型" Enums(payment, return, fulfillment)
// @Param id path string true "策略 ID"
// @Router /api/ebay-policies/{type}/{id} [put]
func (ctrl *PolicyController) UpdatePolicy(c *gin.Context) {
	var patch ebay.Policy
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	updated, err := ctrl.policyService.UpdatePolicy(c.Request.Context(), 0, c.Param("type"), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, updated)
}

// DeletePolicy 删除策略
// @Summary 删除策略 (被在线 listing 引用时返回 409)
// @Tags Policy
// @Param type path string true "策略类型" Enums(payment, return, fulfillment)
// @Param id path string true "策略 ID"
// @Router /api/ebay-policies/{type}/{id} [delete]
func (ctrl *PolicyController) DeletePolicy(c *gin.Context) {
	if err := ctrl.policyService.DeletePolicy(c.Request.Context(), 0, c.Param("type"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}
