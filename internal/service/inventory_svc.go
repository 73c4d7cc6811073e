package service

import (
	"context"
	"fmt"
	"net/url"

	"ebay_console_v1_202609/internal/repository"
	"ebay_console_v1_202609/pkg/ebay"
	"ebay_console_v1_202609/pkg/net"
)

// InventoryService eBay 库存 / Offer 服务
// 发布链路的 2~4 步都经由这里调用 Inventory API
type InventoryService struct {
	ebayClient
}

// NewInventoryService 工厂方法
func NewInventoryService(cfg *ebay.Config, accountRepo repository.AccountRepository, dispatcher net.Dispatcher) *InventoryService {
	return &InventoryService{
		ebayClient: newEbayClient(cfg, accountRepo, dispatcher),
	}
}

// GetLocations 获取商户库存地点列表
func (s *InventoryService) GetLocations(ctx context.Context, accountID int64) ([]ebay.Location, error) {
	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := s.cfg.APIBase() + "/sell/inventory/v1/location"

	var resp ebay.LocationsResp
	if err := s.doJSON(ctx, account, "GET", reqURL, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Locations, nil
}

// UpsertInventoryItem 创建/更新库存项 (幂等 PUT)
func (s *InventoryService) UpsertInventoryItem(ctx context.Context, accountID int64, sku string, item *ebay.InventoryItemReq) error {
	if sku == "" {
		return NewValidationError("sku", "SKU 不能为空")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/sell/inventory/v1/inventory_item/%s", s.cfg.APIBase(), url.PathEscape(sku))
	return s.doJSON(ctx, account, "PUT", reqURL, item, nil)
}

// GetInventoryItem 查询库存项 (上架状态检查)
// 未找到时返回 (nil, nil)
func (s *InventoryService) GetInventoryItem(ctx context.Context, accountID int64, sku string) (map[string]interface{}, error) {
	if sku == "" {
		return nil, NewValidationError("sku", "SKU 不能为空")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/sell/inventory/v1/inventory_item/%s", s.cfg.APIBase(), url.PathEscape(sku))

	var item map[string]interface{}
	if err := s.doJSON(ctx, account, "GET", reqURL, nil, &item); err != nil {
		if ebay.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// GetOffersBySKU 查询 SKU 名下的 Offer 列表
// SKU 尚无 Offer 时 eBay 返回 404，这里归一化为空列表
func (s *InventoryService) GetOffersBySKU(ctx context.Context, accountID int64, sku string) ([]ebay.Offer, error) {
	if sku == "" {
		return nil, NewValidationError("sku", "SKU 不能为空")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/sell/inventory/v1/offer?sku=%s", s.cfg.APIBase(), url.QueryEscape(sku))

	var resp ebay.OffersResp
	if err := s.doJSON(ctx, account, "GET", reqURL, nil, &resp); err != nil {
		if ebay.IsNotFound(err) {
			return []ebay.Offer{}, nil
		}
		return nil, err
	}
	return resp.Offers, nil
}

// CreateOffer 创建 Offer
func (s *InventoryService) CreateOffer(ctx context.Context, accountID int64, offer *ebay.OfferCreateReq) (string, error) {
	account, err := s.account(ctx, accountID)
	if err != nil {
		return "", err
	}

	reqURL := s.cfg.APIBase() + "/sell/inventory/v1/offer"

	var resp ebay.OfferCreateResp
	if err := s.doJSON(ctx, account, "POST", reqURL, offer, &resp); err != nil {
		return "", err
	}
	if resp.OfferID == "" {
		return "", fmt.Errorf("ebay returned empty offerId")
	}
	return resp.OfferID, nil
}

// PublishOffer 发布 Offer，返回上线的 listingId
func (s *InventoryService) PublishOffer(ctx context.Context, accountID int64, offerID string) (string, error) {
	if offerID == "" {
		return "", NewValidationError("offer_id", "Offer ID 不能为空")
	}

	account, err := s.account(ctx, accountID)
	if err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/sell/inventory/v1/offer/%s/publish", s.cfg.APIBase(), url.PathEscape(offerID))

	var resp ebay.PublishResp
	if err := s.doJSON(ctx, account, "POST", reqURL, nil, &resp); err != nil {
		return "", err
	}
	if resp.ListingID == "" {
		return "", fmt.Errorf("ebay returned empty listingId")
	}
	return resp.ListingID, nil
}
