package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"ebay_console_v1_202609/internal/api/dto"
	"ebay_console_v1_202609/internal/model"
	"ebay_console_v1_202609/internal/repository"
)

// CategoryService 本地类目服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService 工厂方法
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// CreateCategory 创建本地类目
// 路径在创建时定格：父级路径 + " > " + 自身名称
func (s *CategoryService) CreateCategory(ctx context.Context, req *dto.CategoryCreateRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValidationError("name", "类目名称不能为空")
	}

	// 手工挂 eBay 类目 ID 时同样要查重，防止绕过导入接口制造重复映射
	if req.EbayCategoryID != "" {
		existing, err := s.categoryRepo.GetByEbayID(ctx, req.EbayCategoryID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCategoryExists
		}
	}

	path := name
	if req.ParentID > 0 {
		parent, err := s.categoryRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		path = parent.Path + " > " + name
	}

	category := &model.Category{
		EbayCategoryID: req.EbayCategoryID,
		Name:           name,
		Path:           path,
		ParentID:       req.ParentID,
		IsLeaf:         true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("类目入库失败: %v", err)
	}

	// 父级有了孩子就不再是叶子
	if req.ParentID > 0 {
		if parent, err := s.categoryRepo.GetByID(ctx, req.ParentID); err == nil && parent.IsLeaf {
			parent.IsLeaf = false
			if err := s.categoryRepo.Update(ctx, parent); err != nil {
				return nil, fmt.Errorf("父类目更新失败: %v", err)
			}
		}
	}
	return category, nil
}

// GetCategory 查询单个类目
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	return category, err
}

// UpdateCategory 更新类目名称
// 路径是创建时的快照，改名不级联刷新子级路径
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "类目名称不能为空")
	}

	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	// 同步修正自身路径的末段
	if idx := strings.LastIndex(category.Path, " > "); idx >= 0 {
		category.Path = category.Path[:idx+3] + name
	} else {
		category.Path = name
	}
	category.Name = name

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("类目更新失败: %v", err)
	}
	return category, nil
}

// DeleteCategory 删除类目
// 仍被商品引用的类目拒绝删除
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories 类目列表 (按路径排序，天然呈树形)
func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}
