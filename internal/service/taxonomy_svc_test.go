package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"ebay_console_v1_202609/internal/model"
	"ebay_console_v1_202609/pkg/ebay"
)

// ==================== 测试桩 ====================

// stubDispatcher 以固定响应代替真实 eBay 调用，并记录调用次数
type stubDispatcher struct {
	calls   int
	respond func(req *http.Request) (*http.Response, error)
}

func (d *stubDispatcher) Send(req *http.Request) (*http.Response, error) {
	d.calls++
	return d.respond(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// mockAccountRepo 始终返回持有效 Token 的活跃账号
type mockAccountRepo struct{}

func validAccount() *model.SellerAccount {
	return &model.SellerAccount{
		BaseModel:      model.BaseModel{ID: 1},
		Username:       "seller1",
		MarketplaceID:  "EBAY_AU",
		TokenStatus:    model.TokenStatusValid,
		AccessToken:    "token",
		TokenExpiresAt: time.Now().Add(time.Hour),
	}
}

func (m *mockAccountRepo) Create(ctx context.Context, account *model.SellerAccount) error {
	return nil
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id int64) (*model.SellerAccount, error) {
	return validAccount(), nil
}

func (m *mockAccountRepo) GetByEbayUserID(ctx context.Context, ebayUserID string) (*model.SellerAccount, error) {
	return nil, nil
}

func (m *mockAccountRepo) GetActive(ctx context.Context) (*model.SellerAccount, error) {
	return validAccount(), nil
}

func (m *mockAccountRepo) Update(ctx context.Context, account *model.SellerAccount) error {
	return nil
}

func (m *mockAccountRepo) UpdateTokenStatus(ctx context.Context, id int64, status string) error {
	return nil
}

func (m *mockAccountRepo) FindExpiring(ctx context.Context, within time.Duration) ([]model.SellerAccount, error) {
	return nil, nil
}

func (m *mockAccountRepo) List(ctx context.Context) ([]model.SellerAccount, error) {
	return nil, nil
}

type mockCategoryRepo struct {
	createFn       func(ctx context.Context, category *model.Category) error
	getByIDFn      func(ctx context.Context, id int64) (*model.Category, error)
	getByEbayIDFn  func(ctx context.Context, ebayCategoryID string) (*model.Category, error)
	updateFn       func(ctx context.Context, category *model.Category) error
	deleteFn       func(ctx context.Context, id int64) error
	listFn         func(ctx context.Context) ([]model.Category, error)
	listByParentFn func(ctx context.Context, parentID int64) ([]model.Category, error)
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *model.Category) error {
	if m.createFn != nil {
		return m.createFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCategoryRepo) GetByEbayID(ctx context.Context, ebayCategoryID string) (*model.Category, error) {
	if m.getByEbayIDFn != nil {
		return m.getByEbayIDFn(ctx, ebayCategoryID)
	}
	return nil, nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *model.Category) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, category)
	}
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCategoryRepo) ListByParent(ctx context.Context, parentID int64) ([]model.Category, error) {
	if m.listByParentFn != nil {
		return m.listByParentFn(ctx, parentID)
	}
	return nil, nil
}

// ==================== 路径拼接 ====================

func TestBuildCategoryPath(t *testing.T) {
	// eBay 返回的祖先链从近到远：直接父级在前
	ancestors := []ebay.AncestorRef{
		{CategoryID: "175672", CategoryName: "Computers"},
		{CategoryID: "293", CategoryName: "Electronics"},
	}

	path := buildCategoryPath(ancestors, "Laptops")
	if path != "Electronics > Computers > Laptops" {
		t.Errorf("路径拼接错误: got %q", path)
	}
}

func TestBuildCategoryPath_NoAncestors(t *testing.T) {
	if path := buildCategoryPath(nil, "Electronics"); path != "Electronics" {
		t.Errorf("无祖先时应只返回自身名称: got %q", path)
	}
}

// ==================== 属性映射 ====================

func TestMapAspects(t *testing.T) {
	aspects := []ebay.Aspect{
		{
			LocalizedAspectName: "Brand",
			AspectConstraint:    ebay.AspectConstraint{AspectRequired: true},
			AspectValues: []ebay.AspectValue{
				{LocalizedValue: "Apple"},
				{LocalizedValue: "Dell"},
			},
		},
		{
			LocalizedAspectName: "Model",
			AspectConstraint:    ebay.AspectConstraint{AspectRequired: true},
			// 无候选值：开放文本
		},
	}

	defs := MapAspects(aspects)
	if len(defs) != 2 {
		t.Fatalf("属性数量错误: got %d", len(defs))
	}

	if !defs[0].Required || defs[0].FreeText {
		t.Errorf("Brand 应为必填枚举: %+v", defs[0])
	}
	if len(defs[0].Values) != 2 || defs[0].Values[0] != "Apple" {
		t.Errorf("Brand 候选值错误: %v", defs[0].Values)
	}

	if !defs[1].FreeText {
		t.Errorf("无候选值的属性应降级为开放文本: %+v", defs[1])
	}
}

func TestMapAspects_TooManyValuesBecomesFreeText(t *testing.T) {
	values := make([]ebay.AspectValue, aspectEnumLimit)
	for i := range values {
		values[i] = ebay.AspectValue{LocalizedValue: fmt.Sprintf("Colour %d", i)}
	}

	defs := MapAspects([]ebay.Aspect{{
		LocalizedAspectName: "Colour",
		AspectValues:        values,
	}})

	if !defs[0].FreeText {
		t.Errorf("候选值达到 %d 个应降级为开放文本", aspectEnumLimit)
	}
	if len(defs[0].Values) != 0 {
		t.Errorf("开放文本属性不应携带候选值: got %d 个", len(defs[0].Values))
	}
}

func TestMapAspects_PreservesOrder(t *testing.T) {
	aspects := []ebay.Aspect{
		{LocalizedAspectName: "Brand"},
		{LocalizedAspectName: "Model"},
		{LocalizedAspectName: "Colour"},
	}

	defs := MapAspects(aspects)
	names := []string{"Brand", "Model", "Colour"}
	for i, name := range names {
		if defs[i].Name != name {
			t.Errorf("第 %d 个属性应为 %s: got %s", i, name, defs[i].Name)
		}
	}
}

// ==================== 类目导入 ====================

// 重复导入在任何网络调用之前就被拒绝
func TestImportCategory_DuplicateRejected(t *testing.T) {
	repo := &mockCategoryRepo{
		getByEbayIDFn: func(ctx context.Context, ebayCategoryID string) (*model.Category, error) {
			return &model.Category{EbayCategoryID: ebayCategoryID, Name: "Laptops"}, nil
		},
	}
	cfg := ebay.NewConfig(ebay.EnvSandbox, "id", "secret", "ru")
	svc := NewTaxonomyService(cfg, nil, nil, repo)

	_, err := svc.ImportCategory(context.Background(), 0, "177")
	if !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("重复导入应返回冲突: got %v", err)
	}
}

func TestImportCategory_EmptyIDRejected(t *testing.T) {
	cfg := ebay.NewConfig(ebay.EnvSandbox, "id", "secret", "ru")
	svc := NewTaxonomyService(cfg, nil, nil, &mockCategoryRepo{})

	_, err := svc.ImportCategory(context.Background(), 0, "")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("空类目 ID 应返回校验错误: got %v", err)
	}
}

// 叶子判定以 leafCategoryTreeNode 为准：带祖先链的非叶子节点必须被过滤
func TestSearchCategories_LeafOnlyFiltersNonLeaf(t *testing.T) {
	body := `{"categorySuggestions":[
		{"category":{"categoryId":"58058","categoryName":"Computers","leafCategoryTreeNode":false},
		 "categoryTreeNodeAncestors":[{"categoryId":"293","categoryName":"Electronics"}]},
		{"category":{"categoryId":"177","categoryName":"Laptops","leafCategoryTreeNode":true},
		 "categoryTreeNodeAncestors":[
			{"categoryId":"175672","categoryName":"Computers"},
			{"categoryId":"293","categoryName":"Electronics"}]}
	]}`
	dispatcher := &stubDispatcher{respond: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, body), nil
	}}
	cfg := ebay.NewConfig(ebay.EnvSandbox, "id", "secret", "ru")
	svc := NewTaxonomyService(cfg, &mockAccountRepo{}, dispatcher, &mockCategoryRepo{})

	leaves, err := svc.SearchCategories(context.Background(), 0, "laptop", true)
	if err != nil {
		t.Fatalf("搜索失败: %v", err)
	}
	if len(leaves) != 1 || leaves[0].CategoryID != "177" {
		t.Fatalf("只应保留叶子建议: %+v", leaves)
	}
	if !leaves[0].IsLeaf || leaves[0].Path != "Electronics > Computers > Laptops" {
		t.Errorf("叶子建议内容错误: %+v", leaves[0])
	}

	all, err := svc.SearchCategories(context.Background(), 0, "laptop", false)
	if err != nil {
		t.Fatalf("搜索失败: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("不过滤时应返回全部建议: got %d", len(all))
	}
	if all[0].IsLeaf {
		t.Errorf("Computers 带祖先链但不是叶子: %+v", all[0])
	}
}

// 导入路径取自子树响应携带的祖先链，单次网络调用
func TestImportCategory_PathFromSubtreeAncestors(t *testing.T) {
	var created *model.Category
	repo := &mockCategoryRepo{
		createFn: func(ctx context.Context, category *model.Category) error {
			created = category
			return nil
		},
	}
	body := `{
		"categoryTreeId":"15",
		"categorySubtreeNode":{
			"category":{"categoryId":"177","categoryName":"Laptops"},
			"leafCategoryTreeNode":true
		},
		"categoryTreeNodeAncestors":[
			{"categoryId":"175672","categoryName":"Computers"},
			{"categoryId":"293","categoryName":"Electronics"}
		]
	}`
	dispatcher := &stubDispatcher{respond: func(req *http.Request) (*http.Response, error) {
		return jsonResponse(200, body), nil
	}}
	cfg := ebay.NewConfig(ebay.EnvSandbox, "id", "secret", "ru")
	svc := NewTaxonomyService(cfg, &mockAccountRepo{}, dispatcher, repo)

	category, err := svc.ImportCategory(context.Background(), 0, "177")
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if category.Path != "Electronics > Computers > Laptops" {
		t.Errorf("导入路径错误: got %q", category.Path)
	}
	if !category.IsLeaf || category.EbayCategoryID != "177" {
		t.Errorf("导入结果错误: %+v", category)
	}
	if created == nil || created.Path != category.Path {
		t.Errorf("入库记录错误: %+v", created)
	}
	if dispatcher.calls != 1 {
		t.Errorf("导入只应调用一次子树接口: got %d", dispatcher.calls)
	}
}

func TestSearchCategories_ShortKeywordRejected(t *testing.T) {
	cfg := ebay.NewConfig(ebay.EnvSandbox, "id", "secret", "ru")
	svc := NewTaxonomyService(cfg, nil, nil, &mockCategoryRepo{})

	_, err := svc.SearchCategories(context.Background(), 0, " a ", false)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("过短关键词应返回校验错误: got %v", err)
	}
}
