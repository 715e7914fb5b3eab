package model

import "time"

// Asset is a manually entered portfolio position.
type Asset struct {
	ID         string    `json:"id"`
	CoinID     string    `json:"coin_id"`
	Name       string    `json:"name"`
	Symbol     string    `json:"symbol"`
	Amount     float64   `json:"amount"`
	Price      float64   `json:"price"`
	Change24h  float64   `json:"change_24h"`
	Value      float64   `json:"value"`
	AcquiredOn time.Time `json:"acquired_on"`
}

// PortfolioSummary aggregates the asset list.
// Change24h is the 24h change in percent weighted by each asset's share of TotalValue.
type PortfolioSummary struct {
	Assets     []Asset `json:"assets"`
	TotalValue float64 `json:"total_value"`
	Change24h  float64 `json:"change_24h"`
	AssetCount int     `json:"asset_count"`
}
