package ebay

// ==========================================
// DTO: 发往 eBay Sell API 的请求结构
// ==========================================

// ShipToLocationAvailability 可售数量
type ShipToLocationAvailability struct {
	Quantity int `json:"quantity"`
}

// Availability 库存可用性
type Availability struct {
	ShipToLocationAvailability ShipToLocationAvailability `json:"shipToLocationAvailability"`
}

// InventoryProduct 库存商品描述（标题/描述/属性/图片）
type InventoryProduct struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Aspects     map[string][]string `json:"aspects,omitempty"`
	ImageUrls   []string            `json:"imageUrls,omitempty"`
}

// InventoryItemReq 创建/更新库存项请求
// PUT /sell/inventory/v1/inventory_item/{sku}
type InventoryItemReq struct {
	Availability Availability     `json:"availability"`
	Condition    string           `json:"condition"` // NEW
	Product      InventoryProduct `json:"product"`
}

// Amount 金额
type Amount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

// PricingSummary 定价信息
type PricingSummary struct {
	Price Amount `json:"price"`
}

// ListingPolicies 挂载到 Offer 上的三类策略 ID
type ListingPolicies struct {
	FulfillmentPolicyID string `json:"fulfillmentPolicyId"`
	PaymentPolicyID     string `json:"paymentPolicyId"`
	ReturnPolicyID      string `json:"returnPolicyId"`
}

// OfferCreateReq 创建 Offer 请求
// POST /sell/inventory/v1/offer
type OfferCreateReq struct {
	SKU                 string          `json:"sku"`
	MarketplaceID       string          `json:"marketplaceId"`
	Format              string          `json:"format"` // FIXED_PRICE
	AvailableQuantity   int             `json:"availableQuantity"`
	CategoryID          string          `json:"categoryId"`
	ListingDescription  string          `json:"listingDescription"`
	ListingPolicies     ListingPolicies `json:"listingPolicies"`
	PricingSummary      PricingSummary  `json:"pricingSummary"`
	MerchantLocationKey string          `json:"merchantLocationKey"`
}
