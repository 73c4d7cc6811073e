package ebay

import "encoding/json"

// ==========================================
// DTO: 用于接收 eBay API 返回的原始 JSON 数据
// ==========================================

// TokenResp OAuth Token 响应
// POST /identity/v1/oauth2/token
type TokenResp struct {
	AccessToken           string `json:"access_token"`
	TokenType             string `json:"token_type"`
	ExpiresIn             int64  `json:"expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

// UserResp eBay 用户身份响应
// GET /commerce/identity/v1/user/
type UserResp struct {
	UserID                    string `json:"userId"`
	Username                  string `json:"username"`
	AccountType               string `json:"accountType"`
	RegistrationMarketplaceID string `json:"registrationMarketplaceId"`
}

// CategoryRef 类目引用（id + 名称）
// 类目建议接口把叶子标记放在 category 对象内部
type CategoryRef struct {
	CategoryID           string `json:"categoryId"`
	CategoryName         string `json:"categoryName"`
	LeafCategoryTreeNode bool   `json:"leafCategoryTreeNode"`
}

// AncestorRef 祖先类目节点
type AncestorRef struct {
	CategoryID              string `json:"categoryId"`
	CategoryName            string `json:"categoryName"`
	CategoryTreeNodeLevel   int    `json:"categoryTreeNodeLevel"`
	CategorySubtreeNodeHref string `json:"categorySubtreeNodeHref"`
}

// CategorySuggestion 单条类目建议
type CategorySuggestion struct {
	Category                  CategoryRef   `json:"category"`
	CategoryTreeNodeLevel     int           `json:"categoryTreeNodeLevel"`
	CategoryTreeNodeAncestors []AncestorRef `json:"categoryTreeNodeAncestors"`
	Relevancy                 string        `json:"relevancy"`
}

// CategorySuggestionsResp 类目建议响应
// GET /commerce/taxonomy/v1/category_tree/{tree_id}/get_category_suggestions
type CategorySuggestionsResp struct {
	CategorySuggestions []CategorySuggestion `json:"categorySuggestions"`
}

// CategoryTreeNode 类目树节点（递归）
type CategoryTreeNode struct {
	Category               CategoryRef        `json:"category"`
	CategoryTreeNodeLevel  int                `json:"categoryTreeNodeLevel"`
	LeafCategoryTreeNode   bool               `json:"leafCategoryTreeNode"`
	ChildCategoryTreeNodes []CategoryTreeNode `json:"childCategoryTreeNodes"`
}

// CategorySubtreeResp 类目子树响应
// GET /commerce/taxonomy/v1/category_tree/{tree_id}/get_category_subtree
// CategoryTreeNodeAncestors 是根节点到请求类目的祖先链 (从近到远)
type CategorySubtreeResp struct {
	CategoryTreeID            string           `json:"categoryTreeId"`
	CategorySubtreeNode       CategoryTreeNode `json:"categorySubtreeNode"`
	CategoryTreeNodeAncestors []AncestorRef    `json:"categoryTreeNodeAncestors"`
}

// AspectConstraint 属性约束
type AspectConstraint struct {
	AspectRequired          bool   `json:"aspectRequired"`
	AspectUsage             string `json:"aspectUsage"`
	AspectMode              string `json:"aspectMode"`
	ItemToAspectCardinality string `json:"itemToAspectCardinality"`
}

// AspectValue 属性候选值
type AspectValue struct {
	LocalizedValue string `json:"localizedValue"`
}

// Aspect 单个类目属性
type Aspect struct {
	LocalizedAspectName string           `json:"localizedAspectName"`
	AspectConstraint    AspectConstraint `json:"aspectConstraint"`
	AspectValues        []AspectValue    `json:"aspectValues"`
}

// AspectsResp 类目属性响应
// GET /commerce/taxonomy/v1/category_tree/{tree_id}/get_item_aspects_for_category
type AspectsResp struct {
	Aspects []Aspect `json:"aspects"`
}

// Location 商户库存地点
type Location struct {
	MerchantLocationKey    string `json:"merchantLocationKey"`
	Name                   string `json:"name"`
	MerchantLocationStatus string `json:"merchantLocationStatus"`
}

// LocationsResp 商户地点列表响应
// GET /sell/inventory/v1/location
type LocationsResp struct {
	Locations []Location `json:"locations"`
	Total     int        `json:"total"`
}

// Offer Offer 概要（按 SKU 查询时返回）
type Offer struct {
	OfferID       string `json:"offerId"`
	SKU           string `json:"sku"`
	MarketplaceID string `json:"marketplaceId"`
	Format        string `json:"format"`
	Status        string `json:"status"`
	ListingID     string `json:"listingId"`
}

// OffersResp Offer 列表响应
// GET /sell/inventory/v1/offer?sku={sku}
type OffersResp struct {
	Offers []Offer `json:"offers"`
	Total  int     `json:"total"`
}

// OfferCreateResp 创建 Offer 响应
// POST /sell/inventory/v1/offer
type OfferCreateResp struct {
	OfferID string `json:"offerId"`
}

// PublishResp 发布 Offer 响应
// POST /sell/inventory/v1/offer/{offer_id}/publish
type PublishResp struct {
	ListingID string `json:"listingId"`
}

// Policy 策略对象
// eBay 三类策略字段差异较大，统一以泛型 map 承载并透传前端
type Policy map[string]interface{}

// PolicyListResp 策略列表响应
// GET /sell/account/v1/{fulfillment|payment|return}_policy?marketplace_id=...
// 三类策略的列表键名不同，解码后按键取值
type PolicyListResp struct {
	FulfillmentPolicies []Policy `json:"fulfillmentPolicies"`
	PaymentPolicies     []Policy `json:"paymentPolicies"`
	ReturnPolicies      []Policy `json:"returnPolicies"`
	Total               int      `json:"total"`
}

// OrdersResp 订单列表响应
// GET /sell/fulfillment/v1/order
// 订单结构字段极多且控制台仅做透传展示，保留原始 JSON
type OrdersResp struct {
	Orders []json.RawMessage `json:"orders"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}
