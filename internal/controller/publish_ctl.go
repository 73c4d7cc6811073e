package controller

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"ebay_console_v1_202609/internal/api/dto"
	"ebay_console_v1_202609/internal/service"
	"ebay_console_v1_202609/pkg/ebay"
)

// 已上线但本地回写失败的业务码，前端据此提示人工补录
const codePublishedNotRecorded = 1001

// PublishController 发布链路入口
type PublishController struct {
	productService *service.ProductService
	publishService *service.PublishService
}

func NewPublishController(productService *service.ProductService, publishService *service.PublishService) *PublishController {
	return &PublishController{
		productService: productService,
		publishService: publishService,
	}
}

// Publish 一键发布
// @Summary 把本地商品发布到 eBay (校验 -> 地点 -> 库存 -> Offer -> 发布 -> 回写)
// @Tags Publish
// @Accept json
// @Param sku path string true "SKU"
// @Param body body dto.PublishRequest true "发布参数"
// @Router /api/products/{sku}/publish [post]
func (ctrl *PublishController) Publish(c *gin.Context) {
	var req dto.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()

	// 1. 加载商品快照
	product, err := ctrl.productService.GetProduct(ctx, c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}

	// 2. 本地组装草稿并逐步推进状态
	draft, err := service.NewListingDraft(product, req.CategoryID, req.CategoryName)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Quantity > 0 {
		draft.Quantity = req.Quantity
	}
	if err := draft.SelectPolicies(req.Policies.FulfillmentPolicyID, req.Policies.PaymentPolicyID, req.Policies.ReturnPolicyID); err != nil {
		respondError(c, err)
		return
	}
	if err := draft.FillAspects(req.Aspects, req.RequiredAspects); err != nil {
		respondError(c, err)
		return
	}

	// 3. 执行发布链路
	result, err := ctrl.publishService.Publish(ctx, 0, draft)
	if err != nil {
		ctrl.respondPublishError(c, result, err)
		return
	}
	respondOK(c, result)
}

// respondPublishError 发布链路错误响应
// 回写失败是唯一携带结果返回的失败：listing 已在 eBay 上线，必须把 listing_id 带给前端
func (ctrl *PublishController) respondPublishError(c *gin.Context, result *service.PublishResult, err error) {
	var pubErr *service.PublishError
	if !errors.As(err, &pubErr) {
		respondError(c, err)
		return
	}

	if pubErr.Step == service.PublishStepRecord {
		var nrErr *service.NotRecordedError
		listingID := ""
		if errors.As(pubErr.Err, &nrErr) {
			listingID = nrErr.ListingID
		}
		c.JSON(200, gin.H{
			"code":       codePublishedNotRecorded,
			"message":    "发布成功，但本地记录失败，请人工补录 listing ID",
			"listing_id": listingID,
			"data":       result,
		})
		return
	}

	resp := gin.H{
		"code":    500,
		"message": "发布失败",
		"step":    pubErr.Step,
	}
	var apiErr *ebay.APIError
	if errors.As(pubErr.Err, &apiErr) {
		resp["status"] = apiErr.StatusCode
		resp["details"] = json.RawMessage(apiErr.Body)
	} else {
		resp["detail"] = pubErr.Err.Error()
	}
	c.JSON(500, resp)
}
