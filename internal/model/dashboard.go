package model

// Dashboard bundles everything the landing page needs in one response.
type Dashboard struct {
	Currency     DisplayUnit      `json:"currency"`
	TotalDisplay string           `json:"total_display"`
	Market       MarketOverview   `json:"market"`
	Portfolio    PortfolioSummary `json:"portfolio"`
	Series       Series           `json:"series"`
}
