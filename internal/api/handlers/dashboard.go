package handlers

import (
	"net/http"
	"strings"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
)

// DefaultDashboardAsset is charted when the request does not name an asset.
const DefaultDashboardAsset = "bitcoin"

// DashboardHandler serves the combined landing page payload.
type DashboardHandler struct {
	dashboardService  *service.DashboardService
	preferenceService *service.PreferenceService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService, preferenceService *service.PreferenceService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:  dashboardService,
		preferenceService: preferenceService,
	}
}

// DashboardResponse bundles the market, portfolio and series responses.
// Every section renders money in the same unit.
type DashboardResponse struct {
	Currency     model.DisplayUnit `json:"currency"`
	TotalDisplay string            `json:"total_display"`
	Market       MarketResponse    `json:"market"`
	Portfolio    PortfolioResponse `json:"portfolio"`
	Series       SeriesResponse    `json:"series"`
}

// Dashboard handles GET requests for the landing page.
//
// Endpoint: GET /api/dashboard?asset=bitcoin&window=7d
// Response: 200 OK with DashboardResponse
// Error: 400 Bad Request for an unknown window
// Error: 500 Internal Server Error if the portfolio cannot be read
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	window, err := request.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidWindow.Error(), err.Error())
		return
	}

	asset := strings.TrimSpace(r.URL.Query().Get("asset"))
	if asset == "" {
		asset = DefaultDashboardAsset
	}

	dash, err := h.dashboardService.Load(r.Context(), asset, window)
	if err != nil {
		response.RespondError(w, statusFor(err), apperrors.ErrFailedToLoadDashboard.Error(), err.Error())
		return
	}

	formatter := h.preferenceService.Formatter()
	response.RespondJSON(w, http.StatusOK, DashboardResponse{
		Currency:     formatter.Unit(),
		TotalDisplay: formatter.Format(dash.Portfolio.TotalValue),
		Market:       newMarketResponse(dash.Market, formatter),
		Portfolio:    newPortfolioResponse(dash.Portfolio, formatter),
		Series:       newSeriesResponse(dash.Series, formatter),
	})
}
