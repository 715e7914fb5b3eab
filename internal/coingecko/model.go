package coingecko

import "time"

// MarketsResponse is the raw JSON array returned by the /coins/markets endpoint.
// Only the fields the dashboard renders are decoded.
type MarketsResponse []struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Symbol                   string   `json:"symbol"`
	CurrentPrice             float64  `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	MarketCap                float64  `json:"market_cap"`
	TotalVolume              float64  `json:"total_volume"`
	Image                    string   `json:"image"`
}

// MarketChartResponse represents the raw JSON response of the /coins/{id}/market_chart endpoint.
//
// Prices holds [epochMillis, price] pairs. Pointers let ParseMarketChart tell a
// JSON null apart from a real zero.
type MarketChartResponse struct {
	Prices [][]*float64 `json:"prices"`
}

// PricePoint is a parsed sample of a market chart, ordered by Time.
type PricePoint struct {
	Time  time.Time
	Price float64
}

// errorResponse covers both error shapes the API uses for non-2xx responses.
type errorResponse struct {
	Error  string `json:"error"`
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
}

func (e errorResponse) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Status.ErrorMessage
}
