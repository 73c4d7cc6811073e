package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"ebay_console_v1_202609/internal/api/dto"
	"ebay_console_v1_202609/internal/service"
)

type CategoryController struct {
	categoryService *service.CategoryService
	taxonomyService *service.TaxonomyService
}

func NewCategoryController(categoryService *service.CategoryService, taxonomyService *service.TaxonomyService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
		taxonomyService: taxonomyService,
	}
}

// parseCategoryID 解析路径中的类目 ID
func parseCategoryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的类目ID"})
		return 0, false
	}
	return id, true
}

// CreateCategory 创建本地类目
// @Summary 创建本地类目
// @Tags Category
// @Accept json
// @Param body body dto.CategoryCreateRequest true "类目信息"
// @Router /api/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req dto.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	category, err := ctrl.categoryService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category)
}

// GetCategories 获取类目列表
// @Summary 获取全部本地类目 (按路径排序)
// @Tags Category
// @Router /api/categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	categories, err := ctrl.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, categories)
}

// GetCategory 获取类目详情
// @Summary 获取单个类目
// @Tags Category
// @Param id path int true "类目ID"
// @Router /api/categories/{id} [get]
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	category, err := ctrl.categoryService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category)
}

// UpdateCategory 更新类目名称
// @Summary 更新类目名称 (路径不级联刷新)
// @Tags Category
// @Accept json
// @Param id path int true "类目ID"
// @Param body body dto.CategoryUpdateRequest true "类目信息"
// @Router /api/categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	var req dto.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	category, err := ctrl.categoryService.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category)
}

// DeleteCategory 删除类目
// @Summary 删除类目 (被商品引用时返回 409)
// @Tags Category
// @Param id path int true "类目ID"
// @Router /api/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	if err := ctrl.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// ImportCategory 从 eBay 类目树导入类目
// @Summary 导入 eBay 类目到本地 (重复导入返回 409)
// @Tags Category
// @Accept json
// @Param body body dto.CategoryImportRequest true "eBay 类目 ID"
// @Router /api/categories/import [post]
func (ctrl *CategoryController) ImportCategory(c *gin.Context) {
	var req dto.CategoryImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	category, err := ctrl.taxonomyService.ImportCategory(c.Request.Context(), 0, req.EbayCategoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, category)
}
