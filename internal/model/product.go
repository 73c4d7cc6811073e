package model

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Product 本地商品目录
// SKU 即主键：发布链路全程以 SKU 对齐 eBay 库存项
type Product struct {
	SKU       string    `gorm:"primaryKey;size:64" json:"sku"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// --- 商品基本信息 ---
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(12,2);not null" json:"price"`

	// --- 图片 ---
	ImageURL       string         `gorm:"size:512" json:"image_url"`
	ExtraImageURLs pq.StringArray `gorm:"type:text[]" json:"extra_image_urls"`

	// --- 分类 (弱引用本地 Category.ID，0 表示未分类) ---
	CategoryID int64 `gorm:"index;default:0" json:"category_id"`

	// --- eBay 侧状态 ---
	// 发布成功后回写；为空表示尚未上架
	EbayListingID string `gorm:"size:64;index" json:"ebay_listing_id"`
	// 发布时使用的类目属性值，回写留档 {"Brand":["Apple"]}
	Aspects datatypes.JSON `gorm:"type:jsonb" json:"aspects"`
}

func (Product) TableName() string {
	return "products"
}

// AspectMap 解析已存档的属性值，未发布或解析失败返回空 map
func (p *Product) AspectMap() map[string][]string {
	result := make(map[string][]string)
	if len(p.Aspects) == 0 {
		return result
	}
	if err := json.Unmarshal(p.Aspects, &result); err != nil {
		return make(map[string][]string)
	}
	return result
}

// ImageURLList 主图 + 附图的完整列表 (主图在前)
func (p *Product) ImageURLList() []string {
	urls := make([]string, 0, len(p.ExtraImageURLs)+1)
	if p.ImageURL != "" {
		urls = append(urls, p.ImageURL)
	}
	urls = append(urls, p.ExtraImageURLs...)
	return urls
}
