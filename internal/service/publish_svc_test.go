package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ebay_console_v1_202609/internal/model"
	"ebay_console_v1_202609/pkg/ebay"
)

// ==================== 测试桩 ====================

// mockInventoryAPI 函数字段桩，calls 记录调用顺序
type mockInventoryAPI struct {
	calls []string

	getLocationsFn func(ctx context.Context, accountID int64) ([]ebay.Location, error)
	upsertItemFn   func(ctx context.Context, accountID int64, sku string, item *ebay.InventoryItemReq) error
	getOffersFn    func(ctx context.Context, accountID int64, sku string) ([]ebay.Offer, error)
	createOfferFn  func(ctx context.Context, accountID int64, offer *ebay.OfferCreateReq) (string, error)
	publishOfferFn func(ctx context.Context, accountID int64, offerID string) (string, error)
}

func (m *mockInventoryAPI) GetLocations(ctx context.Context, accountID int64) ([]ebay.Location, error) {
	m.calls = append(m.calls, "locations")
	if m.getLocationsFn != nil {
		return m.getLocationsFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockInventoryAPI) UpsertInventoryItem(ctx context.Context, accountID int64, sku string, item *ebay.InventoryItemReq) error {
	m.calls = append(m.calls, "inventory")
	if m.upsertItemFn != nil {
		return m.upsertItemFn(ctx, accountID, sku, item)
	}
	return nil
}

func (m *mockInventoryAPI) GetOffersBySKU(ctx context.Context, accountID int64, sku string) ([]ebay.Offer, error) {
	m.calls = append(m.calls, "offers_query")
	if m.getOffersFn != nil {
		return m.getOffersFn(ctx, accountID, sku)
	}
	return nil, nil
}

func (m *mockInventoryAPI) CreateOffer(ctx context.Context, accountID int64, offer *ebay.OfferCreateReq) (string, error) {
	m.calls = append(m.calls, "offer_create")
	if m.createOfferFn != nil {
		return m.createOfferFn(ctx, accountID, offer)
	}
	return "offer-1", nil
}

func (m *mockInventoryAPI) PublishOffer(ctx context.Context, accountID int64, offerID string) (string, error) {
	m.calls = append(m.calls, "publish")
	if m.publishOfferFn != nil {
		return m.publishOfferFn(ctx, accountID, offerID)
	}
	return "listing-1", nil
}

type mockProductWriter struct {
	updateFieldsFn func(ctx context.Context, sku string, fields map[string]interface{}) error
}

func (m *mockProductWriter) UpdateFields(ctx context.Context, sku string, fields map[string]interface{}) error {
	if m.updateFieldsFn != nil {
		return m.updateFieldsFn(ctx, sku, fields)
	}
	return nil
}

// ==================== 辅助构造 ====================

func testProduct() *model.Product {
	return &model.Product{
		SKU:      "SKU-100",
		Title:    "Mechanical Keyboard",
		Price:    89.90,
		ImageURL: "https://img.example.com/kb.jpg",
	}
}

// readyDraft 推进到属性就绪状态的草稿
func readyDraft(t *testing.T) *ListingDraft {
	t.Helper()

	draft, err := NewListingDraft(testProduct(), "177", "PC Laptops & Netbooks")
	if err != nil {
		t.Fatalf("创建草稿失败: %v", err)
	}
	if err := draft.SelectPolicies("fp-1", "pp-1", "rp-1"); err != nil {
		t.Fatalf("选择策略失败: %v", err)
	}
	if err := draft.FillAspects(map[string]string{"Brand": "Keychron"}, []string{"Brand"}); err != nil {
		t.Fatalf("填写属性失败: %v", err)
	}
	return draft
}

func newTestPublishService(inv *mockInventoryAPI, pw *mockProductWriter) *PublishService {
	cfg := ebay.NewConfig(ebay.EnvSandbox, "client-id", "client-secret", "ru-name")
	return NewPublishService(cfg, inv, pw)
}

// ==================== 草稿状态机 ====================

func TestListingDraft_StateProgression(t *testing.T) {
	draft, err := NewListingDraft(testProduct(), "177", "Laptops")
	if err != nil {
		t.Fatalf("创建草稿失败: %v", err)
	}
	if draft.State != StateCategorySelected {
		t.Fatalf("初始状态错误: got %s", draft.State)
	}

	// 跳过策略直接填属性应被拒绝
	if err := draft.FillAspects(nil, nil); err == nil {
		t.Fatal("未选策略时填属性应该报错")
	}

	if err := draft.SelectPolicies("fp-1", "pp-1", "rp-1"); err != nil {
		t.Fatalf("选择策略失败: %v", err)
	}
	if draft.State != StatePoliciesSelected {
		t.Fatalf("状态应为已选策略: got %s", draft.State)
	}

	if err := draft.FillAspects(map[string]string{"Brand": "X"}, []string{"Brand"}); err != nil {
		t.Fatalf("填写属性失败: %v", err)
	}
	if draft.State != StateAspectsValid {
		t.Fatalf("状态应为属性就绪: got %s", draft.State)
	}
}

func TestListingDraft_SelectPoliciesRequiresAllThree(t *testing.T) {
	draft, _ := NewListingDraft(testProduct(), "177", "Laptops")

	err := draft.SelectPolicies("fp-1", "", "rp-1")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("缺策略应返回校验错误: got %v", err)
	}
	if _, ok := vErr.Fields["payment_policy_id"]; !ok {
		t.Errorf("校验错误应指向 payment_policy_id: got %v", vErr.Fields)
	}
	if draft.State != StateCategorySelected {
		t.Errorf("校验失败不应推进状态: got %s", draft.State)
	}
}

func TestListingDraft_FillAspectsMissingRequired(t *testing.T) {
	draft, _ := NewListingDraft(testProduct(), "177", "Laptops")
	draft.SelectPolicies("fp-1", "pp-1", "rp-1")

	err := draft.FillAspects(map[string]string{"Brand": "X"}, []string{"Brand", "Model", "Colour"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("必填属性缺失应返回校验错误: got %v", err)
	}
	if len(vErr.Fields) != 2 {
		t.Errorf("应逐项列出缺失属性: got %v", vErr.Fields)
	}
	if _, ok := vErr.Fields["Model"]; !ok {
		t.Errorf("缺失属性应包含 Model: got %v", vErr.Fields)
	}
}

// ==================== 发布链路 ====================

// 校验失败时不得发出任何网络请求
func TestPublish_ValidationFailsWithoutNetwork(t *testing.T) {
	inv := &mockInventoryAPI{}
	svc := newTestPublishService(inv, &mockProductWriter{})

	draft, _ := NewListingDraft(testProduct(), "177", "Laptops")
	// 故意不选策略

	_, err := svc.Publish(context.Background(), 0, draft)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("应返回校验错误: got %v", err)
	}
	if len(inv.calls) != 0 {
		t.Errorf("校验失败不应触发任何 eBay 调用: got %v", inv.calls)
	}
	if draft.State != StateFailed {
		t.Errorf("校验失败后状态应为 failed: got %s", draft.State)
	}
}

// 地点查询失败归入缺省地点键，不阻断发布
func TestPublish_LocationFailureFallsBackToDefault(t *testing.T) {
	var capturedOffer *ebay.OfferCreateReq
	inv := &mockInventoryAPI{
		getLocationsFn: func(ctx context.Context, accountID int64) ([]ebay.Location, error) {
			return nil, fmt.Errorf("upstream 500")
		},
		createOfferFn: func(ctx context.Context, accountID int64, offer *ebay.OfferCreateReq) (string, error) {
			capturedOffer = offer
			return "offer-1", nil
		},
	}
	svc := newTestPublishService(inv, &mockProductWriter{})

	result, err := svc.Publish(context.Background(), 0, readyDraft(t))
	if err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	if result.MerchantLocationKey != "default" {
		t.Errorf("地点查询失败应落到缺省键: got %s", result.MerchantLocationKey)
	}
	if capturedOffer == nil || capturedOffer.MerchantLocationKey != "default" {
		t.Errorf("Offer 请求应携带缺省地点键: got %+v", capturedOffer)
	}
}

// 库存步骤失败终止链路，后续步骤不执行
func TestPublish_InventoryFailureStopsChain(t *testing.T) {
	inv := &mockInventoryAPI{
		upsertItemFn: func(ctx context.Context, accountID int64, sku string, item *ebay.InventoryItemReq) error {
			return fmt.Errorf("invalid aspects payload")
		},
	}
	svc := newTestPublishService(inv, &mockProductWriter{})

	draft := readyDraft(t)
	_, err := svc.Publish(context.Background(), 0, draft)

	var pubErr *PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("应返回发布链路错误: got %v", err)
	}
	if pubErr.Step != PublishStepInventory {
		t.Errorf("失败步骤应为 inventory: got %s", pubErr.Step)
	}
	for _, call := range inv.calls {
		if call == "offer_create" || call == "publish" {
			t.Errorf("库存失败后不应再调用 %s", call)
		}
	}
	if draft.State != StateFailed {
		t.Errorf("失败后状态应为 failed: got %s", draft.State)
	}
}

// 已有 Offer 直接复用，不做字段比对
func TestPublish_ReusesExistingOffer(t *testing.T) {
	inv := &mockInventoryAPI{
		getOffersFn: func(ctx context.Context, accountID int64, sku string) ([]ebay.Offer, error) {
			return []ebay.Offer{{OfferID: "offer-old", SKU: sku}}, nil
		},
	}
	svc := newTestPublishService(inv, &mockProductWriter{})

	result, err := svc.Publish(context.Background(), 0, readyDraft(t))
	if err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	if !result.OfferReused {
		t.Error("应标记 Offer 为复用")
	}
	if result.OfferID != "offer-old" {
		t.Errorf("应复用已有 Offer: got %s", result.OfferID)
	}
	for _, call := range inv.calls {
		if call == "offer_create" {
			t.Error("复用时不应创建新 Offer")
		}
	}
}

// Offer 查询失败按无 Offer 处理，转为创建
func TestPublish_OfferQueryFailureFallsBackToCreate(t *testing.T) {
	created := false
	inv := &mockInventoryAPI{
		getOffersFn: func(ctx context.Context, accountID int64, sku string) ([]ebay.Offer, error) {
			return nil, fmt.Errorf("upstream timeout")
		},
		createOfferFn: func(ctx context.Context, accountID int64, offer *ebay.OfferCreateReq) (string, error) {
			created = true
			return "offer-new", nil
		},
	}
	svc := newTestPublishService(inv, &mockProductWriter{})

	result, err := svc.Publish(context.Background(), 0, readyDraft(t))
	if err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	if !created {
		t.Error("查询失败后应转为创建 Offer")
	}
	if result.OfferReused {
		t.Error("新建 Offer 不应标记复用")
	}
}

// 回写失败必须返回独立错误并携带 listing ID
func TestPublish_RecordFailureCarriesListingID(t *testing.T) {
	pw := &mockProductWriter{
		updateFieldsFn: func(ctx context.Context, sku string, fields map[string]interface{}) error {
			// 属性留档放行，只让 listing 回写失败
			if _, ok := fields["ebay_listing_id"]; ok {
				return fmt.Errorf("db connection lost")
			}
			return nil
		},
	}
	inv := &mockInventoryAPI{
		publishOfferFn: func(ctx context.Context, accountID int64, offerID string) (string, error) {
			return "listing-777", nil
		},
	}
	svc := newTestPublishService(inv, pw)

	draft := readyDraft(t)
	result, err := svc.Publish(context.Background(), 0, draft)

	var pubErr *PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("应返回发布链路错误: got %v", err)
	}
	if pubErr.Step != PublishStepRecord {
		t.Errorf("失败步骤应为 record: got %s", pubErr.Step)
	}

	var nrErr *NotRecordedError
	if !errors.As(err, &nrErr) {
		t.Fatalf("应包装为未记录错误: got %v", err)
	}
	if nrErr.ListingID != "listing-777" {
		t.Errorf("必须携带 listing ID 供人工补录: got %s", nrErr.ListingID)
	}

	// 回写失败时结果依然返回：listing 已经在 eBay 上线
	if result == nil {
		t.Fatal("回写失败也应返回结果")
	}
	if result.Recorded {
		t.Error("Recorded 应为 false")
	}
	if result.ListingID != "listing-777" {
		t.Errorf("结果应携带 listing ID: got %s", result.ListingID)
	}
	if draft.State != StatePublished {
		t.Errorf("listing 已上线，状态应为 published: got %s", draft.State)
	}
}

// 全链路成功场景：校验调用顺序与结果
func TestPublish_EndToEnd(t *testing.T) {
	var inventorySKU string
	var capturedItem *ebay.InventoryItemReq
	var recordedFields map[string]interface{}

	inv := &mockInventoryAPI{
		getLocationsFn: func(ctx context.Context, accountID int64) ([]ebay.Location, error) {
			return []ebay.Location{{MerchantLocationKey: "warehouse-syd"}}, nil
		},
		upsertItemFn: func(ctx context.Context, accountID int64, sku string, item *ebay.InventoryItemReq) error {
			inventorySKU = sku
			capturedItem = item
			return nil
		},
		createOfferFn: func(ctx context.Context, accountID int64, offer *ebay.OfferCreateReq) (string, error) {
			if offer.MerchantLocationKey != "warehouse-syd" {
				t.Errorf("Offer 应使用第一个库存地点: got %s", offer.MerchantLocationKey)
			}
			if offer.PricingSummary.Price.Value != "89.90" {
				t.Errorf("价格格式错误: got %s", offer.PricingSummary.Price.Value)
			}
			if offer.PricingSummary.Price.Currency != "AUD" {
				t.Errorf("币种应为 AUD: got %s", offer.PricingSummary.Price.Currency)
			}
			return "offer-42", nil
		},
		publishOfferFn: func(ctx context.Context, accountID int64, offerID string) (string, error) {
			if offerID != "offer-42" {
				t.Errorf("应发布刚创建的 Offer: got %s", offerID)
			}
			return "listing-42", nil
		},
	}
	pw := &mockProductWriter{
		updateFieldsFn: func(ctx context.Context, sku string, fields map[string]interface{}) error {
			if _, ok := fields["ebay_listing_id"]; ok {
				recordedFields = fields
			}
			return nil
		},
	}
	svc := newTestPublishService(inv, pw)

	draft := readyDraft(t)
	result, err := svc.Publish(context.Background(), 0, draft)
	if err != nil {
		t.Fatalf("发布失败: %v", err)
	}

	expected := []string{"locations", "inventory", "offers_query", "offer_create", "publish"}
	if len(inv.calls) != len(expected) {
		t.Fatalf("调用序列错误: got %v", inv.calls)
	}
	for i, call := range expected {
		if inv.calls[i] != call {
			t.Errorf("第 %d 步应为 %s: got %s", i+1, call, inv.calls[i])
		}
	}

	if inventorySKU != "SKU-100" {
		t.Errorf("库存项 SKU 错误: got %s", inventorySKU)
	}
	if capturedItem.Product.Aspects["Brand"][0] != "Keychron" {
		t.Errorf("库存项属性错误: got %v", capturedItem.Product.Aspects)
	}
	if result.ListingID != "listing-42" || !result.Recorded {
		t.Errorf("结果错误: %+v", result)
	}
	if recordedFields["ebay_listing_id"] != "listing-42" {
		t.Errorf("回写字段错误: %v", recordedFields)
	}
	if draft.State != StatePublished {
		t.Errorf("状态应为 published: got %s", draft.State)
	}
}

// 无图商品使用占位图补足
func TestPublish_PlaceholderImageWhenNoImages(t *testing.T) {
	var capturedItem *ebay.InventoryItemReq
	inv := &mockInventoryAPI{
		upsertItemFn: func(ctx context.Context, accountID int64, sku string, item *ebay.InventoryItemReq) error {
			capturedItem = item
			return nil
		},
	}
	svc := newTestPublishService(inv, &mockProductWriter{})

	product := testProduct()
	product.ImageURL = ""
	draft, _ := NewListingDraft(product, "177", "Laptops")
	draft.SelectPolicies("fp-1", "pp-1", "rp-1")
	draft.FillAspects(nil, nil)

	if _, err := svc.Publish(context.Background(), 0, draft); err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	if len(capturedItem.Product.ImageUrls) != 1 || capturedItem.Product.ImageUrls[0] != placeholderImageURL {
		t.Errorf("无图商品应使用占位图: got %v", capturedItem.Product.ImageUrls)
	}
}
