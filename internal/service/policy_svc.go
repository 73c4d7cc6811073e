package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"

	"ebay_console_v1_202609/internal/repository"
	"ebay_console_v1_202609/pkg/ebay"
	"ebay_console_v1_202609/pkg/net"
)

// 策略类型常量 (控制台侧统一命名)
const (
	PolicyKindPayment     = "payment"
	PolicyKindReturn      = "return"
	PolicyKindFulfillment = "fulfillment"
)

// policyResources 控制台策略类型 -> eBay Account API 资源名
var policyResources = map[string]string{
	PolicyKindPayment:     "payment_policy",
	PolicyKindReturn:      "return_policy",
	PolicyKindFulfillment: "fulfillment_policy",
}

// policyReadOnlyFields eBay 策略对象中的只读字段，更新时必须剥离
var policyReadOnlyFields = []string{
	"fulfillmentPolicyId", "paymentPolicyId", "returnPolicyId",
	"href", "warnings",
}

// PolicyService eBay 卖家策略服务 (付款 / 退货 / 物流)
type PolicyService struct {
	ebayClient
}

// NewPolicyService 工厂方法
func NewPolicyService(cfg *ebay.Config, accountRepo repository.AccountRepository, dispatcher net.Dispatcher) *PolicyService {
	return &PolicyService{
		ebayClient: newEbayClient(cfg, accountRepo, dispatcher),
	}
}

// resource 校验策略类型并返回 eBay 资源名
func (s *PolicyService) resource(kind string) (string, error) {
	res, ok := policyResources[kind]
	if !ok {
		return "", NewValidationError("type", fmt.Sprintf("未知策略类型: %s", kind))
	}
	return res, nil
}

// ListPolicies 按类型列出当前站点的策略
func (s *PolicyService) ListPolicies(ctx context.Context, accountID int64, kind string) ([]ebay.Policy, error) {
	res, err := s.resource(kind)
	if err != nil {
		return nil, err
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/sell/account/v1/%s?marketplace_id=%s",
		s.cfg.APIBase(), res, url.QueryEscape(account.MarketplaceID))

	var resp ebay.PolicyListResp
	if err := s.doJSON(ctx, account, "GET", reqURL, nil, &resp); err != nil {
		return nil, err
	}

	switch kind {
	case PolicyKindPayment:
		return resp.PaymentPolicies, nil
	case PolicyKindReturn:
		return resp.ReturnPolicies, nil
	default:
		return resp.FulfillmentPolicies, nil
	}
}

// PolicyOverview 三类策略的汇总视图 (发布前选择页一次拉取)
type PolicyOverview struct {
	Payment     []ebay.Policy `json:"payment"`
	Return      []ebay.Policy `json:"return"`
	Fulfillment []ebay.Policy `json:"fulfillment"`
}

// ListAllPolicies 并发拉取三类策略
// 单类失败不阻断整体展示，仅记日志并返回空列表
func (s *PolicyService) ListAllPolicies(ctx context.Context, accountID int64) (*PolicyOverview, error) {
	// Token 校验提前做，三路并发共用一次账号加载
	if _, err := s.account(ctx, accountID); err != nil {
		return nil, err
	}

	overview := &PolicyOverview{}
	var wg sync.WaitGroup

	fetch := func(kind string, dest *[]ebay.Policy) {
		defer wg.Done()
		policies, err := s.ListPolicies(ctx, accountID, kind)
		if err != nil {
			log.Printf("[Policy] 拉取 %s 策略失败 (汇总视图容忍): %v", kind, err)
			*dest = []ebay.Policy{}
			return
		}
		*dest = policies
	}

	wg.Add(3)
	go fetch(PolicyKindPayment, &overview.Payment)
	go fetch(PolicyKindReturn, &overview.Return)
	go fetch(PolicyKindFulfillment, &overview.Fulfillment)
	wg.Wait()

	return overview, nil
}

// GetPolicy 获取单条策略
func (s *PolicyService) GetPolicy(ctx context.Context, accountID int64, kind, policyID string) (ebay.Policy, error) {
	res, err := s.resource(kind)
	if err != nil {
		return nil, err
	}
	if policyID == "" {
		return nil, NewValidationError("policy_id", "策略 ID 不能为空")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/sell/account/v1/%s/%s", s.cfg.APIBase(), res, url.PathEscape(policyID))

	var policy ebay.Policy
	if err := s.doJSON(ctx, account, "GET", reqURL, nil, &policy); err != nil {
		return nil, err
	}
	return policy, nil
}

// CreatePolicy 创建策略
// name 必填；marketplaceId 缺省补当前站点
func (s *PolicyService) CreatePolicy(ctx context.Context, accountID int64, kind string, body ebay.Policy) (ebay.Policy, error) {
	res, err := s.resource(kind)
	if err != nil {
		return nil, err
	}
	if name, _ := body["name"].(string); name == "" {
		return nil, NewValidationError("name", "策略名称不能为空")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if _, ok := body["marketplaceId"]; !ok {
		body["marketplaceId"] = account.MarketplaceID
	}

	reqURL := fmt.Sprintf("%s/sell/account/v1/%s", s.cfg.APIBase(), res)

	var created ebay.Policy
	if err := s.doJSON(ctx, account, "POST", reqURL, body, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdatePolicy 更新策略 (GET 现状 -> 合并提交字段 -> 剥离只读字段 -> PUT)
// eBay 的 PUT 是全量覆盖，不做合并会把未提交字段清掉
func (s *PolicyService) UpdatePolicy(ctx context.Context, accountID int64, kind, policyID string, patch ebay.Policy) (ebay.Policy, error) {
	res, err := s.resource(kind)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetPolicy(ctx, accountID, kind, policyID)
	if err != nil {
		return nil, err
	}

	merged := MergePolicy(existing, patch)

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/sell/account/v1/%s/%s", s.cfg.APIBase(), res, url.PathEscape(policyID))

	var updated ebay.Policy
	if err := s.doJSON(ctx, account, "PUT", reqURL, merged, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePolicy 删除策略
// 被在线 listing 引用的策略 eBay 拒绝删除，转换为 ErrPolicyInUse
func (s *PolicyService) DeletePolicy(ctx context.Context, accountID int64, kind, policyID string) error {
	res, err := s.resource(kind)
	if err != nil {
		return err
	}
	if policyID == "" {
		return NewValidationError("policy_id", "策略 ID 不能为空")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/sell/account/v1/%s/%s", s.cfg.APIBase(), res, url.PathEscape(policyID))

	if err := s.doJSON(ctx, account, "DELETE", reqURL, nil, nil); err != nil {
		if ebay.IsInUse(err) {
			return ErrPolicyInUse
		}
		return err
	}
	return nil
}

// MergePolicy 把 patch 合入 existing 并剥离只读字段
// 一级字段整体覆盖；三个已知的嵌套设置块做二级合并，避免覆盖丢字段
func MergePolicy(existing, patch ebay.Policy) ebay.Policy {
	merged := make(ebay.Policy, len(existing)+len(patch))
	for k, v := range existing {
		merged[k] = v
	}

	// 已知的嵌套设置块，需要做二级合并
	nestedBlocks := map[string]bool{
		"fulfillmentInstructions": true,
		"paymentInstructions":     true,
		"returnPolicyDetails":     true,
	}

	for k, v := range patch {
		if nestedBlocks[k] {
			patchSub, okPatch := v.(map[string]interface{})
			existSub, okExist := merged[k].(map[string]interface{})
			if okPatch && okExist {
				sub := make(map[string]interface{}, len(existSub)+len(patchSub))
				for sk, sv := range existSub {
					sub[sk] = sv
				}
				for sk, sv := range patchSub {
					sub[sk] = sv
				}
				merged[k] = sub
				continue
			}
		}
		merged[k] = v
	}

	for _, field := range policyReadOnlyFields {
		delete(merged, field)
	}
	return merged
}
