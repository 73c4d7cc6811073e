package dto

// ==================== 类目 ====================

// CategoryCreateRequest 创建本地类目请求
type CategoryCreateRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	ParentID       int64  `json:"parent_id"`
	EbayCategoryID string `json:"ebay_category_id" binding:"omitempty,max=32"`
}

// CategoryUpdateRequest 更新类目请求
type CategoryUpdateRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// CategoryImportRequest 从 eBay 导入类目请求
type CategoryImportRequest struct {
	EbayCategoryID string `json:"ebay_category_id" binding:"required,max=32"`
}
