package request

// CreateAssetRequest represents the request body for adding a portfolio asset
type CreateAssetRequest struct {
	CoinID string  `json:"coin_id"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
}
