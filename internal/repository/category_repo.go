package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"ebay_console_v1_202609/internal/model"
)

// ==================== CategoryRepository 类目仓库 ====================

// CategoryRepository 类目仓储接口
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	// GetByEbayID 按 eBay 类目 ID 查找，未找到返回 (nil, nil)
	GetByEbayID(ctx context.Context, ebayCategoryID string) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Category, error)
	ListByParent(ctx context.Context, parentID int64) ([]model.Category, error)
}

// ==================== 实现 ====================

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository 创建类目仓储
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) GetByEbayID(ctx context.Context, ebayCategoryID string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("ebay_category_id = ?", ebayCategoryID).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Order("path ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) ListByParent(ctx context.Context, parentID int64) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}
