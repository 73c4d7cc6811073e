package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"ebay_console_v1_202609/internal/model"
	"ebay_console_v1_202609/pkg/ebay"
)

// ==================== 发布草稿状态机 ====================

// 草稿状态常量，只允许沿固定顺序推进
const (
	StateCategorySelected = "category_selected"
	StatePoliciesSelected = "policies_selected"
	StateAspectsValid     = "aspects_valid"
	StatePublishing       = "publishing"
	StatePublished        = "published"
	StateFailed           = "failed"
)

// 缺省商户地点键：卖家账号下没有任何库存地点时使用
const defaultLocationKey = "default"

// 无图商品的占位图 (eBay 要求库存项至少一张图)
const placeholderImageURL = "https://via.placeholder.com/500x500.png?text=No+Image"

// ListingDraft 发布草稿 (内存态，不落库)
// 承载一次发布会话中用户逐步选定的全部参数
type ListingDraft struct {
	DraftID string
	SKU     string

	// 商品快照 (创建草稿时加载，发布时不再回查)
	Product *model.Product

	// 类目选择
	CategoryID   string
	CategoryName string

	// 三类策略
	FulfillmentPolicyID string
	PaymentPolicyID     string
	ReturnPolicyID      string

	// 属性值与必填属性名 (必填名单在拉取属性定义时捕获)
	Aspects         map[string]string
	RequiredAspects []string

	MerchantLocationKey string
	Quantity            int

	State string
}

// NewListingDraft 创建草稿，进入已选类目状态
func NewListingDraft(product *model.Product, categoryID, categoryName string) (*ListingDraft, error) {
	if product == nil {
		return nil, NewValidationError("sku", "商品不存在")
	}
	if categoryID == "" {
		return nil, NewValidationError("category_id", "必须先选择类目")
	}
	return &ListingDraft{
		DraftID:      uuid.NewString(),
		SKU:          product.SKU,
		Product:      product,
		CategoryID:   categoryID,
		CategoryName: categoryName,
		Aspects:      make(map[string]string),
		Quantity:     1,
		State:        StateCategorySelected,
	}, nil
}

// SelectPolicies 绑定三类策略，进入已选策略状态
func (d *ListingDraft) SelectPolicies(fulfillmentID, paymentID, returnID string) error {
	if d.State != StateCategorySelected && d.State != StatePoliciesSelected {
		return NewValidationError("state", fmt.Sprintf("当前状态 %s 不允许选择策略", d.State))
	}

	fields := make(map[string]string)
	if fulfillmentID == "" {
		fields["fulfillment_policy_id"] = "物流策略不能为空"
	}
	if paymentID == "" {
		fields["payment_policy_id"] = "付款策略不能为空"
	}
	if returnID == "" {
		fields["return_policy_id"] = "退货策略不能为空"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	d.FulfillmentPolicyID = fulfillmentID
	d.PaymentPolicyID = paymentID
	d.ReturnPolicyID = returnID
	d.State = StatePoliciesSelected
	return nil
}

// FillAspects 填入属性值并校验必填项，通过后进入属性就绪状态
// requiredNames 是拉取属性定义时捕获的必填属性名单
func (d *ListingDraft) FillAspects(values map[string]string, requiredNames []string) error {
	if d.State != StatePoliciesSelected && d.State != StateAspectsValid {
		return NewValidationError("state", fmt.Sprintf("当前状态 %s 不允许填写属性", d.State))
	}

	if values == nil {
		values = make(map[string]string)
	}
	d.Aspects = values
	d.RequiredAspects = requiredNames

	if missing := d.missingAspects(); len(missing) > 0 {
		fields := make(map[string]string, len(missing))
		for _, name := range missing {
			fields[name] = "必填属性缺失"
		}
		return &ValidationError{Fields: fields}
	}

	d.State = StateAspectsValid
	return nil
}

// missingAspects 列出缺失的必填属性 (字典序，便于稳定展示)
func (d *ListingDraft) missingAspects() []string {
	var missing []string
	for _, name := range d.RequiredAspects {
		if v, ok := d.Aspects[name]; !ok || v == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// ==================== 外部服务依赖 ====================
// InventoryAPI 由同包 InventoryService 实现；测试中以函数桩替换

// InventoryAPI 发布链路用到的 eBay Inventory 操作
type InventoryAPI interface {
	GetLocations(ctx context.Context, accountID int64) ([]ebay.Location, error)
	UpsertInventoryItem(ctx context.Context, accountID int64, sku string, item *ebay.InventoryItemReq) error
	GetOffersBySKU(ctx context.Context, accountID int64, sku string) ([]ebay.Offer, error)
	CreateOffer(ctx context.Context, accountID int64, offer *ebay.OfferCreateReq) (string, error)
	PublishOffer(ctx context.Context, accountID int64, offerID string) (string, error)
}

// ProductWriter 发布结果回写本地目录
type ProductWriter interface {
	UpdateFields(ctx context.Context, sku string, fields map[string]interface{}) error
}

// ==================== 发布服务 ====================

// PublishResult 一次发布的结果
type PublishResult struct {
	DraftID             string `json:"draft_id"`
	SKU                 string `json:"sku"`
	OfferID             string `json:"offer_id"`
	OfferReused         bool   `json:"offer_reused"`
	ListingID           string `json:"listing_id"`
	MerchantLocationKey string `json:"merchant_location_key"`
	// Recorded 为 false 表示已上线但本地回写失败，需要人工补录
	Recorded bool `json:"recorded"`
}

// PublishService 发布服务：驱动草稿完成上架
type PublishService struct {
	cfg       *ebay.Config
	inventory InventoryAPI
	products  ProductWriter
}

// NewPublishService 工厂方法
func NewPublishService(cfg *ebay.Config, inventory InventoryAPI, products ProductWriter) *PublishService {
	return &PublishService{
		cfg:       cfg,
		inventory: inventory,
		products:  products,
	}
}

// Publish 执行发布链路
// 步骤固定：校验 -> 地点 -> 库存 -> Offer -> 发布 -> 回写
// 不重试、不回滚：每一步失败原样携带步骤名与上游报文返回
func (s *PublishService) Publish(ctx context.Context, accountID int64, draft *ListingDraft) (*PublishResult, error) {
	// 0. 纯本地校验，不发任何网络请求
	if err := s.validate(draft); err != nil {
		return nil, err
	}
	draft.State = StatePublishing

	result := &PublishResult{
		DraftID: draft.DraftID,
		SKU:     draft.SKU,
	}

	// 1. 解析商户地点
	// 查询失败与空列表同样处理：落到哨兵值，让 eBay 在后续步骤自行裁决
	locationKey := defaultLocationKey
	if locations, err := s.inventory.GetLocations(ctx, accountID); err != nil {
		log.Printf("[Publish] 查询库存地点失败，使用缺省地点键: %v", err)
	} else if len(locations) > 0 {
		locationKey = locations[0].MerchantLocationKey
	}
	draft.MerchantLocationKey = locationKey
	result.MerchantLocationKey = locationKey

	// 2. 库存项 upsert (致命步骤)
	aspects := toEbayAspects(draft.Aspects)
	item := s.buildInventoryItem(draft, aspects)
	if err := s.inventory.UpsertInventoryItem(ctx, accountID, draft.SKU, item); err != nil {
		draft.State = StateFailed
		return nil, &PublishError{Step: PublishStepInventory, Err: err}
	}

	// 库存项已建，属性值先行留档 (失败只记日志，发布继续)
	if data, err := json.Marshal(aspects); err == nil {
		if err := s.products.UpdateFields(ctx, draft.SKU, map[string]interface{}{
			"aspects": datatypes.JSON(data),
		}); err != nil {
			log.Printf("[Publish] 属性留档失败 (不阻断发布) SKU=%s: %v", draft.SKU, err)
		}
	}

	// 3. Offer 解析：优先复用已有 Offer
	// 查询失败或列表为空都走创建；复用时不做字段比对
	offerID := ""
	if offers, err := s.inventory.GetOffersBySKU(ctx, accountID, draft.SKU); err != nil {
		log.Printf("[Publish] 查询 Offer 失败，转为创建 SKU=%s: %v", draft.SKU, err)
	} else if len(offers) > 0 {
		offerID = offers[0].OfferID
		result.OfferReused = true
	}

	if offerID == "" {
		created, err := s.inventory.CreateOffer(ctx, accountID, s.buildOffer(draft, locationKey))
		if err != nil {
			draft.State = StateFailed
			return nil, &PublishError{Step: PublishStepOffer, Err: err}
		}
		offerID = created
	}
	result.OfferID = offerID

	// 4. 发布
	listingID, err := s.inventory.PublishOffer(ctx, accountID, offerID)
	if err != nil {
		draft.State = StateFailed
		return nil, &PublishError{Step: PublishStepPublish, Err: err}
	}
	draft.State = StatePublished
	result.ListingID = listingID

	// 5. 回写本地目录
	// 此时 listing 已在 eBay 上线，回写失败必须以独立结果上报
	aspectsJSON, _ := json.Marshal(aspects)
	if err := s.products.UpdateFields(ctx, draft.SKU, map[string]interface{}{
		"ebay_listing_id": listingID,
		"aspects":         datatypes.JSON(aspectsJSON),
	}); err != nil {
		return result, &PublishError{
			Step: PublishStepRecord,
			Err:  &NotRecordedError{ListingID: listingID, Err: err},
		}
	}
	result.Recorded = true

	return result, nil
}

// validate 发布前的本地校验
func (s *PublishService) validate(draft *ListingDraft) error {
	if draft == nil || draft.Product == nil {
		return NewValidationError("draft", "草稿无效")
	}

	fields := make(map[string]string)
	if draft.CategoryID == "" {
		fields["category_id"] = "必须先选择类目"
	}
	if draft.FulfillmentPolicyID == "" || draft.PaymentPolicyID == "" || draft.ReturnPolicyID == "" {
		fields["policies"] = "三类策略必须全部选定"
	}
	for _, name := range draft.missingAspects() {
		fields[name] = "必填属性缺失"
	}
	if draft.Product.Title == "" {
		fields["title"] = "商品标题不能为空"
	}
	if draft.Product.Price <= 0 {
		fields["price"] = "商品价格必须大于 0"
	}
	if len(fields) > 0 {
		draft.State = StateFailed
		return &ValidationError{Fields: fields}
	}
	return nil
}

// buildInventoryItem 组装库存项请求
func (s *PublishService) buildInventoryItem(draft *ListingDraft, aspects map[string][]string) *ebay.InventoryItemReq {
	quantity := draft.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	images := draft.Product.ImageURLList()
	if len(images) == 0 {
		images = []string{placeholderImageURL}
	}

	return &ebay.InventoryItemReq{
		Availability: ebay.Availability{
			ShipToLocationAvailability: ebay.ShipToLocationAvailability{Quantity: quantity},
		},
		Condition: "NEW",
		Product: ebay.InventoryProduct{
			Title:       draft.Product.Title,
			Description: draft.Product.Description,
			Aspects:     aspects,
			ImageUrls:   images,
		},
	}
}

// buildOffer 组装 Offer 创建请求
func (s *PublishService) buildOffer(draft *ListingDraft, locationKey string) *ebay.OfferCreateReq {
	return &ebay.OfferCreateReq{
		SKU:           draft.SKU,
		MarketplaceID: s.cfg.MarketplaceID,
		Format:        "FIXED_PRICE",
		// Offer 数量固定为 1，与线上行为保持一致
		AvailableQuantity:  1,
		CategoryID:         draft.CategoryID,
		ListingDescription: draft.Product.Description,
		ListingPolicies: ebay.ListingPolicies{
			FulfillmentPolicyID: draft.FulfillmentPolicyID,
			PaymentPolicyID:     draft.PaymentPolicyID,
			ReturnPolicyID:      draft.ReturnPolicyID,
		},
		PricingSummary: ebay.PricingSummary{
			Price: ebay.Amount{
				Currency: s.cfg.Currency,
				Value:    fmt.Sprintf("%.2f", draft.Product.Price),
			},
		},
		MerchantLocationKey: locationKey,
	}
}

// toEbayAspects 单值属性表转为 eBay 的多值形式
func toEbayAspects(values map[string]string) map[string][]string {
	aspects := make(map[string][]string, len(values))
	for name, value := range values {
		if value == "" {
			continue
		}
		aspects[name] = []string{value}
	}
	return aspects
}
