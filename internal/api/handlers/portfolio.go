package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/currency"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/validation"
)

// PortfolioHandler handles HTTP requests for the manually entered asset list.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolioService.
type PortfolioHandler struct {
	portfolioService  *service.PortfolioService
	preferenceService *service.PreferenceService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService, preferenceService *service.PreferenceService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService:  portfolioService,
		preferenceService: preferenceService,
	}
}

// AssetResponse represents one asset with amounts rendered in the active unit.
type AssetResponse struct {
	ID           string  `json:"id"`
	CoinID       string  `json:"coin_id"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Amount       float64 `json:"amount"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"price_display"`
	Change24h    float64 `json:"change_24h"`
	Value        float64 `json:"value"`
	ValueDisplay string  `json:"value_display"`
	AcquiredOn   string  `json:"acquired_on"`
}

// PortfolioResponse represents the portfolio summary response.
// Change24h is the value-weighted 24h change in percent.
type PortfolioResponse struct {
	Currency     model.DisplayUnit `json:"currency"`
	TotalValue   float64           `json:"total_value"`
	TotalDisplay string            `json:"total_display"`
	Change24h    float64           `json:"change_24h"`
	AssetCount   int               `json:"asset_count"`
	Assets       []AssetResponse   `json:"assets"`
}

// Portfolio handles GET requests for every asset and the total value.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with PortfolioResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.Summary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, newPortfolioResponse(summary, h.preferenceService.Formatter()))
}

// CreateAsset handles POST requests to add an asset acquired today.
//
// Endpoint: POST /api/portfolio/assets
// Request Body: CreateAssetRequest (name, symbol, amount, price and optionally coin_id)
// Response: 201 Created with AssetResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.portfolioService.AddAsset(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, newAssetResponse(asset, h.preferenceService.Formatter()))
}

// DeleteAsset handles DELETE requests to remove an asset.
// The uuid URL parameter is validated by middleware.ValidateUUIDMiddleware.
//
// Endpoint: DELETE /api/portfolio/assets/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the asset does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *PortfolioHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "uuid")

	if _, err := h.portfolioService.DeleteAsset(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), id)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

func newPortfolioResponse(summary model.PortfolioSummary, formatter currency.Formatter) PortfolioResponse {
	assets := make([]AssetResponse, len(summary.Assets))
	for i, a := range summary.Assets {
		assets[i] = newAssetResponse(a, formatter)
	}

	return PortfolioResponse{
		Currency:     formatter.Unit(),
		TotalValue:   summary.TotalValue,
		TotalDisplay: formatter.Format(summary.TotalValue),
		Change24h:    summary.Change24h,
		AssetCount:   summary.AssetCount,
		Assets:       assets,
	}
}

func newAssetResponse(a model.Asset, formatter currency.Formatter) AssetResponse {
	return AssetResponse{
		ID:           a.ID,
		CoinID:       a.CoinID,
		Name:         a.Name,
		Symbol:       a.Symbol,
		Amount:       a.Amount,
		Price:        a.Price,
		PriceDisplay: formatter.Format(a.Price),
		Change24h:    a.Change24h,
		Value:        a.Value,
		ValueDisplay: formatter.Format(a.Value),
		AcquiredOn:   a.AcquiredOn.Format("2006-01-02"),
	}
}
