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

// ProductService 本地商品目录服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 工厂方法
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.ProductCreateRequest) (*model.Product, error) {
	if err := s.validateFields(req.SKU, req.Title, req.Price); err != nil {
		return nil, err
	}

	// SKU 唯一性
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSKUExists
	}

	// 弱引用类目：非 0 时校验存在
	if req.CategoryID > 0 {
		if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	product := &model.Product{
		SKU:            strings.TrimSpace(req.SKU),
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		ExtraImageURLs: req.ExtraImageURLs,
		CategoryID:     req.CategoryID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("商品入库失败: %v", err)
	}
	return product, nil
}

// GetProduct 查询单个商品
func (s *ProductService) GetProduct(ctx context.Context, sku string) (*model.Product, error) {
	product, err := s.productRepo.GetBySKU(ctx, sku)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

// UpdateProduct 全量覆盖更新
// 契约即覆盖：请求未携带的可编辑字段会被清空 (上架状态字段除外)
func (s *ProductService) UpdateProduct(ctx context.Context, sku string, req *dto.ProductUpdateRequest) (*model.Product, error) {
	product, err := s.GetProduct(ctx, sku)
	if err != nil {
		return nil, err
	}

	if err := s.validateFields(sku, req.Title, req.Price); err != nil {
		return nil, err
	}
	if req.CategoryID > 0 {
		if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	product.Title = req.Title
	product.Description = req.Description
	product.Price = req.Price
	product.ImageURL = req.ImageURL
	product.ExtraImageURLs = req.ExtraImageURLs
	product.CategoryID = req.CategoryID

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("商品更新失败: %v", err)
	}
	return product, nil
}

// DeleteProduct 删除商品
func (s *ProductService) DeleteProduct(ctx context.Context, sku string) error {
	if _, err := s.GetProduct(ctx, sku); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, sku)
}

// ListProducts 商品列表
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.List(ctx, filter)
}

// validateFields 基础字段校验
func (s *ProductService) validateFields(sku, title string, price float64) error {
	fields := make(map[string]string)
	if strings.TrimSpace(sku) == "" {
		fields["sku"] = "SKU 不能为空"
	}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "标题不能为空"
	}
	if price <= 0 {
		fields["price"] = "价格必须大于 0"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
