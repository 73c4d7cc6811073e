package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 控制台实体公共字段
// 账号/用户等行政数据统一软删除，商品和类目有各自的删除语义，不内嵌此结构
type BaseModel struct {
	ID        int64          `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
