package model

// MarketCoin is one entry of the market overview list.
type MarketCoin struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	MarketCap float64 `json:"market_cap"`
	Volume24h float64 `json:"volume_24h"`
	Image     string  `json:"image,omitempty"`
}

// MarketOverview is the top-N coin list returned to the dashboard.
// UsedFallback is true when Coins is the built-in demo list.
type MarketOverview struct {
	Coins        []MarketCoin `json:"coins"`
	UsedFallback bool         `json:"used_fallback"`
}
