package model

import "time"

// Category 本地类目
// 既支持手工建的本地层级，也支持从 eBay 类目树导入的节点
type Category struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// eBay 类目 ID，手工类目为空
	// 空串不参与唯一约束，Service 层另做前置查重以便返回 409
	EbayCategoryID string `gorm:"size:32;uniqueIndex:udx_categories_ebay_category_id,where:ebay_category_id <> ''" json:"ebay_category_id"`

	Name string `gorm:"size:255;not null" json:"name"`

	// 完整路径快照，如 "Electronics > Computers > Laptops"
	// 建立/导入时生成，之后不随父级改名联动
	Path string `gorm:"size:1024" json:"path"`

	// 弱引用父类目 Category.ID，0 表示根
	ParentID int64 `gorm:"index;default:0" json:"parent_id"`

	IsLeaf bool `gorm:"default:true" json:"is_leaf"`
}

func (Category) TableName() string {
	return "categories"
}
