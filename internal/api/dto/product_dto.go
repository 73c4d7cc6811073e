package dto

// ==================== 商品 ====================

// ProductCreateRequest 创建商品请求
type ProductCreateRequest struct {
	SKU            string   `json:"sku" binding:"required,max=64"`
	Title          string   `json:"title" binding:"required,max=255"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" binding:"required,gt=0"`
	ImageURL       string   `json:"image_url" binding:"omitempty,max=512"`
	ExtraImageURLs []string `json:"extra_image_urls"`
	CategoryID     int64    `json:"category_id"`
}

// ProductUpdateRequest 更新商品请求 (全量覆盖语义)
type ProductUpdateRequest struct {
	Title          string   `json:"title" binding:"required,max=255"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" binding:"required,gt=0"`
	ImageURL       string   `json:"image_url" binding:"omitempty,max=512"`
	ExtraImageURLs []string `json:"extra_image_urls"`
	CategoryID     int64    `json:"category_id"`
}

// ProductListRequest 商品列表请求
type ProductListRequest struct {
	CategoryID int64  `form:"category_id"`
	Keyword    string `form:"keyword"`
	Published  *bool  `form:"published"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=20"`
}
