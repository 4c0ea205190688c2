package bidder

// Profile describes the bidder as registered with the contracting portal.
type Profile struct {
	// Name is only used for logging and reports.
	Name string `json:"name,omitempty" mapstructure:"name"`
	// Categories holds the UNSPSC codes the bidder is registered for.
	Categories []string `json:"categories" mapstructure:"categories"`
	// Indicators may be nil when the bidder has not configured financial data.
	Indicators *FinancialIndicators `json:"indicators,omitempty" mapstructure:"indicators"`
}

// FinancialIndicators is the raw financial bundle behind the capacity figure.
// All amounts are in COP.
type FinancialIndicators struct {
	CurrentAssets      float64 `json:"current_assets" mapstructure:"current-assets"`
	CurrentLiabilities float64 `json:"current_liabilities" mapstructure:"current-liabilities"`
	AnnualRevenue      float64 `json:"annual_revenue" mapstructure:"annual-revenue"`
}
