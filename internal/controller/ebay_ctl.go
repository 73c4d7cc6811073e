package controller

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"ebay_console_v1_202609/internal/api/dto"
	"ebay_console_v1_202609/internal/service"
	"ebay_console_v1_202609/pkg/ebay"
)

// EbayController eBay 平台侧的直通接口 (类目树 / 库存 / Offer)
type EbayController struct {
	taxonomyService  *service.TaxonomyService
	inventoryService *service.InventoryService
	cfg              *ebay.Config
}

func NewEbayController(taxonomyService *service.TaxonomyService, inventoryService *service.InventoryService, cfg *ebay.Config) *EbayController {
	return &EbayController{
		taxonomyService:  taxonomyService,
		inventoryService: inventoryService,
		cfg:              cfg,
	}
}

// SearchCategories 搜索 eBay 类目建议
// @Summary 按关键词搜索类目建议
// @Tags Ebay
// @Param q query string true "搜索关键词 (至少 2 个字符)"
// @Param leaf_only query bool false "只返回叶子类目"
// @Router /api/ebay/categories/search [get]
func (ctrl *EbayController) SearchCategories(c *gin.Context) {
	leafOnly := c.Query("leaf_only") == "true"

	suggestions, err := ctrl.taxonomyService.SearchCategories(c.Request.Context(), 0, c.Query("q"), leafOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, suggestions)
}

// GetCategorySubtree 获取类目子树
// @Summary 获取指定类目的子树 (树形浏览)
// @Tags Ebay
// @Param id path string true "eBay 类目 ID"
// @Router /api/ebay/categories/{id} [get]
func (ctrl *EbayController) GetCategorySubtree(c *gin.Context) {
	subtree, err := ctrl.taxonomyService.GetCategorySubtree(c.Request.Context(), 0, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, subtree)
}

// GetAspects 获取类目属性定义
// @Summary 获取类目的属性定义 (含必填标记)
// @Tags Ebay
// @Param categoryId path string true "eBay 类目 ID"
// @Router /api/ebay/aspects/{categoryId} [get]
func (ctrl *EbayController) GetAspects(c *gin.Context) {
	aspects, err := ctrl.taxonomyService.GetAspects(c.Request.Context(), 0, c.Param("categoryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, aspects)
}

// GetLocations 获取商户库存地点
// @Summary 获取卖家账号下的库存地点列表
// @Tags Ebay
// @Router /api/ebay/locations [get]
func (ctrl *EbayController) GetLocations(c *gin.Context) {
	locations, err := ctrl.inventoryService.GetLocations(c.Request.Context(), 0)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, locations)
}

// GetInventoryItem 查询库存项
// @Summary 查询 SKU 对应的 eBay 库存项
// @Tags Ebay
// @Param sku path string true "SKU"
// @Router /api/ebay/inventory/{sku} [get]
func (ctrl *EbayController) GetInventoryItem(c *gin.Context) {
	item, err := ctrl.inventoryService.GetInventoryItem(c.Request.Context(), 0, c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}
	if item == nil {
		c.JSON(404, gin.H{"code": 404, "message": "库存项不存在"})
		return
	}
	respondOK(c, item)
}

// GetOffers 查询 SKU 名下的 Offer
// @Summary 查询 SKU 名下的 Offer 列表
// @Tags Ebay
// @Param sku path string true "SKU"
// @Router /api/ebay/offers/{sku} [get]
func (ctrl *EbayController) GetOffers(c *gin.Context) {
	offers, err := ctrl.inventoryService.GetOffersBySKU(c.Request.Context(), 0, c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, offers)
}

// CreateOffer 细粒度创建 Offer
// @Summary 为 SKU 创建 Offer (不发布)
// @Tags Ebay
// @Accept json
// @Param body body dto.OfferCreateRequest true "Offer 参数"
// @Router /api/ebay/offer [post]
func (ctrl *EbayController) CreateOffer(c *gin.Context) {
	var req dto.OfferCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	locationKey := req.MerchantLocationKey
	if locationKey == "" {
		locationKey = "default"
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	offerID, err := ctrl.inventoryService.CreateOffer(c.Request.Context(), 0, &ebay.OfferCreateReq{
		SKU:               req.SKU,
		MarketplaceID:     ctrl.cfg.MarketplaceID,
		Format:            "FIXED_PRICE",
		AvailableQuantity: quantity,
		CategoryID:        req.CategoryID,
		ListingPolicies: ebay.ListingPolicies{
			FulfillmentPolicyID: req.Policies.FulfillmentPolicyID,
			PaymentPolicyID:     req.Policies.PaymentPolicyID,
			ReturnPolicyID:      req.Policies.ReturnPolicyID,
		},
		PricingSummary: ebay.PricingSummary{
			Price: ebay.Amount{
				Currency: ctrl.cfg.Currency,
				Value:    fmt.Sprintf("%.2f", req.Price),
			},
		},
		MerchantLocationKey: locationKey,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"offer_id": offerID})
}

// PublishOffer 细粒度发布 Offer
// @Summary 发布已存在的 Offer
// @Tags Ebay
// @Param offerId path string true "Offer ID"
// @Router /api/ebay/offer/{offerId}/publish [post]
func (ctrl *EbayController) PublishOffer(c *gin.Context) {
	listingID, err := ctrl.inventoryService.PublishOffer(c.Request.Context(), 0, c.Param("offerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"listing_id": listingID})
}
