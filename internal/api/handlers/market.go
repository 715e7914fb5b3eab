package handlers

import (
	"net/http"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/currency"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
)

// MarketHandler handles market overview requests.
type MarketHandler struct {
	marketService     *service.MarketService
	preferenceService *service.PreferenceService
	defaultLimit      int
}

// NewMarketHandler creates a new MarketHandler serving defaultLimit coins when no limit is given.
func NewMarketHandler(marketService *service.MarketService, preferenceService *service.PreferenceService, defaultLimit int) *MarketHandler {
	return &MarketHandler{
		marketService:     marketService,
		preferenceService: preferenceService,
		defaultLimit:      defaultLimit,
	}
}

// MarketCoinResponse is a coin with its amounts rendered in the active unit.
type MarketCoinResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	PriceDisplay     string  `json:"price_display"`
	Change24h        float64 `json:"change_24h"`
	MarketCap        float64 `json:"market_cap"`
	MarketCapDisplay string  `json:"market_cap_display"`
	Volume24h        float64 `json:"volume_24h"`
	Image            string  `json:"image,omitempty"`
}

// MarketResponse represents the market overview response
type MarketResponse struct {
	Currency     model.DisplayUnit    `json:"currency"`
	Coins        []MarketCoinResponse `json:"coins"`
	UsedFallback bool                 `json:"used_fallback"`
}

// Overview handles GET requests for the top coins by market cap.
//
// Endpoint: GET /api/market?limit=10&search=btc
// Response: 200 OK with MarketResponse (used_fallback set when demo data is shown)
// Error: 400 Bad Request if limit is not between 1 and 250
func (h *MarketHandler) Overview(w http.ResponseWriter, r *http.Request) {
	limit, err := request.ParseLimit(r.URL.Query().Get("limit"), h.defaultLimit)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidLimit.Error(), err.Error())
		return
	}

	overview, err := h.marketService.Overview(r.Context(), limit, r.URL.Query().Get("search"))
	if err != nil {
		response.RespondError(w, statusFor(err), "failed to load market overview", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newMarketResponse(overview, h.preferenceService.Formatter()))
}

func newMarketResponse(overview model.MarketOverview, formatter currency.Formatter) MarketResponse {
	coins := make([]MarketCoinResponse, len(overview.Coins))
	for i, c := range overview.Coins {
		coins[i] = MarketCoinResponse{
			ID:               c.ID,
			Name:             c.Name,
			Symbol:           c.Symbol,
			Price:            c.Price,
			PriceDisplay:     formatter.Format(c.Price),
			Change24h:        c.Change24h,
			MarketCap:        c.MarketCap,
			MarketCapDisplay: formatter.Format(c.MarketCap),
			Volume24h:        c.Volume24h,
			Image:            c.Image,
		}
	}

	return MarketResponse{
		Currency:     formatter.Unit(),
		Coins:        coins,
		UsedFallback: overview.UsedFallback,
	}
}
