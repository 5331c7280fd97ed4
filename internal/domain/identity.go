package domain

import "github.com/google/uuid"

// Header names of the catalog service tenant routing contract.
const (
	HeaderEnvironmentID = "Magento-Environment-Id"
	HeaderWebsiteCode   = "Magento-Website-Code"
	HeaderStoreCode     = "Magento-Store-Code"
	HeaderStoreViewCode = "Magento-Store-View-Code"
	HeaderAPIKey        = "X-Api-Key" //nolint:gosec // header name, not a credential
	HeaderRequestID     = "X-Request-Id"
	HeaderContentType   = "Content-Type"
	HeaderCustomerGroup = "Magento-Customer-Group"
)

// SearchUnitID groups all analytics events of one embedded search widget.
const SearchUnitID = "livesearch-plp"

// Identity routes a request to a tenant environment.
type Identity struct {
	EnvironmentID string
	WebsiteCode   string
	StoreCode     string
	StoreViewCode string
	APIKey        string
	// RequestID pins X-Request-Id. Empty means a fresh UUID per call.
	RequestID string
}

// Headers returns the full header set for one call. Every header is present,
// customerGroup included when empty.
func (i Identity) Headers(customerGroup string) map[string]string {
	requestID := i.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return map[string]string{
		HeaderEnvironmentID: i.EnvironmentID,
		HeaderWebsiteCode:   i.WebsiteCode,
		HeaderStoreCode:     i.StoreCode,
		HeaderStoreViewCode: i.StoreViewCode,
		HeaderAPIKey:        i.APIKey,
		HeaderRequestID:     requestID,
		HeaderContentType:   "application/json",
		HeaderCustomerGroup: customerGroup,
	}
}

// ViewHistoryEntry is one product the shopper viewed.
type ViewHistoryEntry struct {
	SKU      string `json:"sku"`
	DateTime string `json:"dateTime"`
}

// QueryContext carries personalization data sent with search variables.
type QueryContext struct {
	CustomerGroup   string             `json:"customerGroup"`
	UserViewHistory []ViewHistoryEntry `json:"userViewHistory"`
}

// CustomerGroupOf returns the customer group of ctx, or "" when ctx is nil.
func CustomerGroupOf(ctx *QueryContext) string {
	if ctx == nil {
		return ""
	}
	return ctx.CustomerGroup
}

// NormalizeContext fills absent fields the way the storefront provider does.
func NormalizeContext(ctx *QueryContext) QueryContext {
	if ctx == nil {
		return QueryContext{UserViewHistory: []ViewHistoryEntry{}}
	}
	out := *ctx
	if out.UserViewHistory == nil {
		out.UserViewHistory = []ViewHistoryEntry{}
	}
	return out
}
