package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/currency"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
)

// fallbackNotice accompanies placeholder series.
const fallbackNotice = "live chart data is unavailable; showing placeholder data"

// ChartHandler handles price history requests.
type ChartHandler struct {
	chartService      *service.ChartService
	preferenceService *service.PreferenceService
}

// NewChartHandler creates a new ChartHandler
func NewChartHandler(chartService *service.ChartService, preferenceService *service.PreferenceService) *ChartHandler {
	return &ChartHandler{
		chartService:      chartService,
		preferenceService: preferenceService,
	}
}

// SampleResponse is one chart point with its price rendered in the active unit.
type SampleResponse struct {
	Timestamp    time.Time `json:"timestamp"`
	Date         string    `json:"date"`
	Price        float64   `json:"price"`
	PriceDisplay string    `json:"price_display"`
}

// SeriesResponse represents the price history response
type SeriesResponse struct {
	AssetID      string            `json:"asset_id"`
	Window       model.Window      `json:"window"`
	Days         int               `json:"days"`
	Currency     model.DisplayUnit `json:"currency"`
	UsedFallback bool              `json:"used_fallback"`
	Notice       string            `json:"notice,omitempty"`
	Samples      []SampleResponse  `json:"samples"`
}

// History handles GET requests for the price series of one asset.
//
// Endpoint: GET /api/market/{assetId}/history?window=7d
// Response: 200 OK with SeriesResponse; used_fallback is set when placeholder data is returned
// Error: 400 Bad Request for an unknown window
func (h *ChartHandler) History(w http.ResponseWriter, r *http.Request) {
	window, err := request.ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidWindow.Error(), err.Error())
		return
	}

	series, err := h.chartService.LoadSeries(r.Context(), chi.URLParam(r, "assetId"), window)
	if err != nil {
		response.RespondError(w, statusFor(err), "failed to load price history", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newSeriesResponse(series, h.preferenceService.Formatter()))
}

func newSeriesResponse(series model.Series, formatter currency.Formatter) SeriesResponse {
	samples := make([]SampleResponse, len(series.Samples))
	for i, s := range series.Samples {
		samples[i] = SampleResponse{
			Timestamp:    s.Timestamp,
			Date:         s.Date,
			Price:        s.Price,
			PriceDisplay: formatter.Format(s.Price),
		}
	}

	resp := SeriesResponse{
		AssetID:      series.AssetID,
		Window:       series.Window,
		Days:         series.Days,
		Currency:     formatter.Unit(),
		UsedFallback: series.UsedFallback,
		Samples:      samples,
	}
	if series.UsedFallback {
		resp.Notice = fallbackNotice
	}
	return resp
}
