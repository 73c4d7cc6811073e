package ebay

// ==========================================
// eBay API 环境配置
// ==========================================

// 环境常量
const (
	EnvSandbox    = "SANDBOX"
	EnvProduction = "PRODUCTION"
)

// 业务默认值
const (
	// DefaultMarketplaceID 默认澳洲站点
	DefaultMarketplaceID = "EBAY_AU"
	// DefaultCategoryTreeID EBAY_AU 对应的类目树 ID
	DefaultCategoryTreeID = "15"
	// DefaultContentLanguage Inventory API 要求的 Content-Language
	DefaultContentLanguage = "en-AU"
	// DefaultCurrency 报价默认币种
	DefaultCurrency = "AUD"
)

// OAuth 授权范围（与 eBay 后台应用配置保持一致）
var DefaultScopes = []string{
	"https://api.ebay.com/oauth/api_scope",
	"https://api.ebay.com/oauth/api_scope/sell.fulfillment",
	"https://api.ebay.com/oauth/api_scope/sell.inventory",
	"https://api.ebay.com/oauth/api_scope/sell.account",
	"https://api.ebay.com/oauth/api_scope/commerce.identity.readonly",
}

// Config eBay 应用配置
type Config struct {
	Env             string // SANDBOX / PRODUCTION
	ClientID        string
	ClientSecret    string
	RedirectURI     string // eBay 后台的 RuName
	MarketplaceID   string
	CategoryTreeID  string
	ContentLanguage string
	Currency        string
}

// NewConfig 创建配置并填充默认值
func NewConfig(env, clientID, clientSecret, redirectURI string) *Config {
	if env != EnvProduction {
		env = EnvSandbox
	}
	return &Config{
		Env:             env,
		ClientID:        clientID,
		ClientSecret:    clientSecret,
		RedirectURI:     redirectURI,
		MarketplaceID:   DefaultMarketplaceID,
		CategoryTreeID:  DefaultCategoryTreeID,
		ContentLanguage: DefaultContentLanguage,
		Currency:        DefaultCurrency,
	}
}

// APIBase 返回 Sell/Taxonomy API 根地址
func (c *Config) APIBase() string {
	if c.Env == EnvProduction {
		return "https://api.ebay.com"
	}
	return "https://api.sandbox.ebay.com"
}

// AuthBase 返回用户授权页根地址
func (c *Config) AuthBase() string {
	if c.Env == EnvProduction {
		return "https://auth.ebay.com"
	}
	return "https://auth.sandbox.ebay.com"
}

// CommerceBase 返回 Identity API 根地址 (apiz 域名)
func (c *Config) CommerceBase() string {
	if c.Env == EnvProduction {
		return "https://apiz.ebay.com"
	}
	return "https://apiz.sandbox.ebay.com"
}

// TokenURL OAuth 换取/刷新 Token 的地址
func (c *Config) TokenURL() string {
	return c.APIBase() + "/identity/v1/oauth2/token"
}
