package controller

import (
	"github.com/gin-gonic/gin"

	"ebay_console_v1_202609/internal/api/dto"
	"ebay_console_v1_202609/internal/repository"
	"ebay_console_v1_202609/internal/service"
)

type ProductController struct {
	productService   *service.ProductService
	inventoryService *service.InventoryService
}

func NewProductController(productService *service.ProductService, inventoryService *service.InventoryService) *ProductController {
	return &ProductController{
		productService:   productService,
		inventoryService: inventoryService,
	}
}

// CreateProduct 创建商品
// @Summary 创建本地商品
// @Tags Product
// @Accept json
// @Param body body dto.ProductCreateRequest true "商品信息"
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

// GetProducts 获取商品列表
// @Summary 获取商品列表
// @Tags Product
// @Param category_id query int false "类目筛选"
// @Param keyword query string false "标题/SKU 搜索"
// @Param published query bool false "上架状态筛选"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	var req dto.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	products, total, err := ctrl.productService.ListProducts(c.Request.Context(), repository.ProductFilter{
		CategoryID: req.CategoryID,
		Keyword:    req.Keyword,
		Published:  req.Published,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    products,
		"total":   total,
	})
}

// GetProduct 获取商品详情
// @Summary 获取单个商品详情
// @Tags Product
// @Param sku path string true "SKU"
// @Router /api/products/{sku} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	product, err := ctrl.productService.GetProduct(c.Request.Context(), c.Param("sku"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

// UpdateProduct 更新商品 (全量覆盖)
// @Summary 更新商品，未携带字段会被清空
// @Tags Product
// @Accept json
// @Param sku path string true "SKU"
// @Param body body dto.ProductUpdateRequest true "商品信息"
// @Router /api/products/{sku} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req dto.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), c.Param("sku"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, product)
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags Product
// @Param sku path string true "SKU"
// @Router /api/products/{sku} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	if err := ctrl.productService.DeleteProduct(c.Request.Context(), c.Param("sku")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// GetEbayStatus 查询商品在 eBay 侧的上架状态
// @Summary 查询 SKU 对应的 eBay 库存项与本地记录的 listing
// @Tags Product
// @Param sku path string true "SKU"
// @Router /api/ebay-status/{sku} [get]
func (ctrl *ProductController) GetEbayStatus(c *gin.Context) {
	ctx := c.Request.Context()
	sku := c.Param("sku")

	product, err := ctrl.productService.GetProduct(ctx, sku)
	if err != nil {
		respondError(c, err)
		return
	}

	item, err := ctrl.inventoryService.GetInventoryItem(ctx, 0, sku)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"sku":             sku,
		"ebay_listing_id": product.EbayListingID,
		"inventory_item":  item,
		"on_ebay":         item != nil,
	})
}
