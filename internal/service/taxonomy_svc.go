package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"ebay_console_v1_202609/internal/model"
	"ebay_console_v1_202609/internal/repository"
	"ebay_console_v1_202609/pkg/ebay"
	"ebay_console_v1_202609/pkg/net"
)

// 枚举值超过该数量的属性视为开放文本 (选择器不再穷举)
const aspectEnumLimit = 20

// CategorySuggestionVO 类目建议 (控制台展示用)
type CategorySuggestionVO struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	// 完整路径 "Electronics > Computers > Laptops"
	Path   string `json:"path"`
	IsLeaf bool   `json:"is_leaf"`
}

// AspectDef 类目属性定义 (保持 eBay 返回顺序)
// FreeText 为 true 时前端渲染输入框而非下拉
type AspectDef struct {
	Name     string   `json:"name"`
	Required bool     `json:"required"`
	FreeText bool     `json:"free_text"`
	Values   []string `json:"values"`
}

// TaxonomyService eBay 类目树服务
type TaxonomyService struct {
	ebayClient
	categoryRepo repository.CategoryRepository
}

// NewTaxonomyService 工厂方法
func NewTaxonomyService(cfg *ebay.Config, accountRepo repository.AccountRepository, dispatcher net.Dispatcher, categoryRepo repository.CategoryRepository) *TaxonomyService {
	return &TaxonomyService{
		ebayClient:   newEbayClient(cfg, accountRepo, dispatcher),
		categoryRepo: categoryRepo,
	}
}

// SearchCategories 按关键词搜索类目建议
// leafOnly 为 true 时只返回叶子类目 (只有叶子可用于发布)
func (s *TaxonomyService) SearchCategories(ctx context.Context, accountID int64, q string, leafOnly bool) ([]CategorySuggestionVO, error) {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return nil, NewValidationError("q", "搜索关键词至少 2 个字符")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/commerce/taxonomy/v1/category_tree/%s/get_category_suggestions?q=%s",
		s.cfg.APIBase(), s.cfg.CategoryTreeID, url.QueryEscape(q))

	var resp ebay.CategorySuggestionsResp
	if err := s.doJSON(ctx, account, "GET", reqURL, nil, &resp); err != nil {
		return nil, err
	}

	result := make([]CategorySuggestionVO, 0, len(resp.CategorySuggestions))
	for _, sug := range resp.CategorySuggestions {
		// 叶子标记以 eBay 返回的 leafCategoryTreeNode 为准
		isLeaf := sug.Category.LeafCategoryTreeNode
		if leafOnly && !isLeaf {
			continue
		}
		result = append(result, CategorySuggestionVO{
			CategoryID:   sug.Category.CategoryID,
			CategoryName: sug.Category.CategoryName,
			Path:         buildCategoryPath(sug.CategoryTreeNodeAncestors, sug.Category.CategoryName),
			IsLeaf:       isLeaf,
		})
	}
	return result, nil
}

// GetCategorySubtree 获取指定类目的子树 (控制台树形浏览)
func (s *TaxonomyService) GetCategorySubtree(ctx context.Context, accountID int64, categoryID string) (*ebay.CategorySubtreeResp, error) {
	if categoryID == "" {
		return nil, NewValidationError("category_id", "类目 ID 不能为空")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/commerce/taxonomy/v1/category_tree/%s/get_category_subtree?category_id=%s",
		s.cfg.APIBase(), s.cfg.CategoryTreeID, url.QueryEscape(categoryID))

	var resp ebay.CategorySubtreeResp
	if err := s.doJSON(ctx, account, "GET", reqURL, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAspects 获取类目的属性定义
// 返回顺序与 eBay 一致；候选值过多 (>= aspectEnumLimit) 的属性降级为开放文本
func (s *TaxonomyService) GetAspects(ctx context.Context, accountID int64, categoryID string) ([]AspectDef, error) {
	if categoryID == "" {
		return nil, NewValidationError("category_id", "类目 ID 不能为空")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/commerce/taxonomy/v1/category_tree/%s/get_item_aspects_for_category?category_id=%s",
		s.cfg.APIBase(), s.cfg.CategoryTreeID, url.QueryEscape(categoryID))

	var resp ebay.AspectsResp
	if err := s.doJSON(ctx, account, "GET", reqURL, nil, &resp); err != nil {
		return nil, err
	}

	return MapAspects(resp.Aspects), nil
}

// MapAspects 把 eBay 属性响应映射为控制台的属性定义
func MapAspects(aspects []ebay.Aspect) []AspectDef {
	defs := make([]AspectDef, 0, len(aspects))
	for _, a := range aspects {
		def := AspectDef{
			Name:     a.LocalizedAspectName,
			Required: a.AspectConstraint.AspectRequired,
		}
		if len(a.AspectValues) == 0 || len(a.AspectValues) >= aspectEnumLimit {
			def.FreeText = true
		} else {
			def.Values = make([]string, 0, len(a.AspectValues))
			for _, v := range a.AspectValues {
				def.Values = append(def.Values, v.LocalizedValue)
			}
		}
		defs = append(defs, def)
	}
	return defs
}

// ImportCategory 把 eBay 类目导入本地类目表
// 幂等性：同一 eBay 类目重复导入视为冲突，不做合并
func (s *TaxonomyService) ImportCategory(ctx context.Context, accountID int64, categoryID string) (*model.Category, error) {
	if categoryID == "" {
		return nil, NewValidationError("category_id", "类目 ID 不能为空")
	}

	// 1. 前置查重
	existing, err := s.categoryRepo.GetByEbayID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	// 2. 拉取类目子树，祖先链随响应一并返回
	subtree, err := s.GetCategorySubtree(ctx, accountID, categoryID)
	if err != nil {
		return nil, err
	}
	node := subtree.CategorySubtreeNode
	if node.Category.CategoryID == "" {
		return nil, ErrCategoryNotFound
	}

	// 3. 路径 = 反转后的祖先链 + 自身名称
	path := buildCategoryPath(subtree.CategoryTreeNodeAncestors, node.Category.CategoryName)
	isLeaf := node.LeafCategoryTreeNode || len(node.ChildCategoryTreeNodes) == 0

	category := &model.Category{
		EbayCategoryID: categoryID,
		Name:           node.Category.CategoryName,
		Path:           path,
		IsLeaf:         isLeaf,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("类目入库失败: %v", err)
	}
	return category, nil
}

// buildCategoryPath 拼接 "祖先 > ... > 自身" 路径
// eBay 返回的祖先链是从近到远 (直接父级在前)，拼接前需反转
func buildCategoryPath(ancestors []ebay.AncestorRef, name string) string {
	if len(ancestors) == 0 {
		return name
	}
	parts := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		parts = append(parts, ancestors[i].CategoryName)
	}
	parts = append(parts, name)
	return strings.Join(parts, " > ")
}
