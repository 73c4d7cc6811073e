package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"ebay_console_v1_202609/internal/repository"
	"ebay_console_v1_202609/pkg/ebay"
	"ebay_console_v1_202609/pkg/net"
)

// OrderService eBay 订单查询服务 (Fulfillment API 透传)
// 订单结构字段极多且控制台只做展示，不落库、不建模
type OrderService struct {
	ebayClient
}

// NewOrderService 工厂方法
func NewOrderService(cfg *ebay.Config, accountRepo repository.AccountRepository, dispatcher net.Dispatcher) *OrderService {
	return &OrderService{
		ebayClient: newEbayClient(cfg, accountRepo, dispatcher),
	}
}

// ListOrders 订单列表 (limit/offset 透传)
func (s *OrderService) ListOrders(ctx context.Context, accountID int64, limit, offset int) (json.RawMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/sell/fulfillment/v1/order?limit=%d&offset=%d", s.cfg.APIBase(), limit, offset)
	return s.doRaw(ctx, account, "GET", reqURL)
}

// GetOrder 订单详情
func (s *OrderService) GetOrder(ctx context.Context, accountID int64, orderID string) (json.RawMessage, error) {
	if orderID == "" {
		return nil, NewValidationError("order_id", "订单 ID 不能为空")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/sell/fulfillment/v1/order/%s", s.cfg.APIBase(), url.PathEscape(orderID))
	return s.doRaw(ctx, account, "GET", reqURL)
}
