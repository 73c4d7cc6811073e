package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"ebay_console_v1_202609/internal/model"
)

// ==================== AccountRepository 卖家账号仓库 ====================

// AccountRepository 卖家账号仓储接口
type AccountRepository interface {
	Create(ctx context.Context, account *model.SellerAccount) error
	GetByID(ctx context.Context, id int64) (*model.SellerAccount, error)
	// GetByEbayUserID 按 eBay 用户 ID 查找，未找到返回 (nil, nil)
	GetByEbayUserID(ctx context.Context, ebayUserID string) (*model.SellerAccount, error)
	// GetActive 获取当前持有有效 Token 的账号 (单账号控制台取最新一条)
	GetActive(ctx context.Context) (*model.SellerAccount, error)
	Update(ctx context.Context, account *model.SellerAccount) error
	UpdateTokenStatus(ctx context.Context, id int64, status string) error
	// FindExpiring 查询 Token 将在 within 时间内过期且仍标记有效的账号
	FindExpiring(ctx context.Context, within time.Duration) ([]model.SellerAccount, error)
	List(ctx context.Context) ([]model.SellerAccount, error)
}

// ==================== 实现 ====================

type accountRepo struct {
	db *gorm.DB
}

// NewAccountRepository 创建卖家账号仓储
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, account *model.SellerAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepo) GetByID(ctx context.Context, id int64) (*model.SellerAccount, error) {
	var account model.SellerAccount
	err := r.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) GetByEbayUserID(ctx context.Context, ebayUserID string) (*model.SellerAccount, error) {
	var account model.SellerAccount
	err := r.db.WithContext(ctx).
		Where("ebay_user_id = ?", ebayUserID).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) GetActive(ctx context.Context) (*model.SellerAccount, error) {
	var account model.SellerAccount
	err := r.db.WithContext(ctx).
		Where("token_status = ?", model.TokenStatusValid).
		Order("updated_at DESC").
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepo) Update(ctx context.Context, account *model.SellerAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *accountRepo) UpdateTokenStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.SellerAccount{}).
		Where("id = ?", id).
		Update("token_status", status).Error
}

func (r *accountRepo) FindExpiring(ctx context.Context, within time.Duration) ([]model.SellerAccount, error) {
	var accounts []model.SellerAccount
	deadline := time.Now().Add(within)
	err := r.db.WithContext(ctx).
		Where("token_status = ? AND token_expires_at < ?", model.TokenStatusValid, deadline).
		Find(&accounts).Error
	return accounts, err
}

func (r *accountRepo) List(ctx context.Context) ([]model.SellerAccount, error) {
	var accounts []model.SellerAccount
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&accounts).Error
	return accounts, err
}
