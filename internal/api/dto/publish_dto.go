package dto

// ==================== 发布 ====================

// PublishPolicies 发布时选定的三类策略 ID
type PublishPolicies struct {
	FulfillmentPolicyID string `json:"fulfillment_policy_id" binding:"required"`
	PaymentPolicyID     string `json:"payment_policy_id" binding:"required"`
	ReturnPolicyID      string `json:"return_policy_id" binding:"required"`
}

// PublishRequest 一次发布会话的完整参数
// required_aspects 是前端拉取属性定义时捕获的必填属性名单，随发布请求回传
type PublishRequest struct {
	CategoryID      string            `json:"category_id" binding:"required"`
	CategoryName    string            `json:"category_name"`
	Policies        PublishPolicies   `json:"policies" binding:"required"`
	Aspects         map[string]string `json:"aspects"`
	RequiredAspects []string          `json:"required_aspects"`
	Quantity        int               `json:"quantity"`
}

// OfferCreateRequest 细粒度创建 Offer 请求 (直通接口)
// 价格必填：没有 pricingSummary 的 Offer 无法发布
type OfferCreateRequest struct {
	SKU                 string          `json:"sku" binding:"required"`
	CategoryID          string          `json:"category_id" binding:"required"`
	Price               float64         `json:"price" binding:"required,gt=0"`
	Quantity            int             `json:"quantity"`
	Policies            PublishPolicies `json:"policies" binding:"required"`
	MerchantLocationKey string          `json:"merchant_location_key"`
}
