package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
)

// PreferenceHandler handles display currency, notification and formatting requests.
type PreferenceHandler struct {
	preferenceService *service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(preferenceService *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
	}
}

// Preferences returns the active currency and notification switches.
//
// Endpoint: GET /api/preferences
// Response: 200 OK with model.Preferences
func (h *PreferenceHandler) Preferences(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.preferenceService.Preferences())
}

// UpdateCurrency selects the display currency. Tokens are matched case-insensitively.
//
// Endpoint: PUT /api/preferences/currency
// Request Body: UpdateCurrencyRequest (currency: EUR, USD or BTC)
// Response: 200 OK with model.Preferences
// Error: 400 Bad Request for an unknown currency
// Error: 500 Internal Server Error if the preference cannot be stored
func (h *PreferenceHandler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateCurrencyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	unit, ok := model.ParseDisplayUnit(strings.ToUpper(strings.TrimSpace(req.Currency)))
	if !ok {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDisplayUnit.Error(), "currency must be one of EUR, USD, BTC")
		return
	}

	if err := h.preferenceService.SetUnit(r.Context(), unit); err != nil {
		response.RespondError(w, statusFor(err), apperrors.ErrFailedToSavePreference.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.preferenceService.Preferences())
}

// UpdateNotifications replaces every notification switch.
//
// Endpoint: PUT /api/preferences/notifications
// Request Body: UpdateNotificationsRequest (email, price, news, portfolio)
// Response: 200 OK with model.Preferences
func (h *PreferenceHandler) UpdateNotifications(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateNotificationsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.preferenceService.SetNotifications(r.Context(), req); err != nil {
		response.RespondError(w, statusFor(err), apperrors.ErrFailedToSavePreference.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, h.preferenceService.Preferences())
}

// ToggleNotification flips one notification switch.
//
// Endpoint: POST /api/preferences/notifications/{key}/toggle
// Response: 200 OK with model.NotificationPreferences
// Error: 400 Bad Request for an unknown key
func (h *PreferenceHandler) ToggleNotification(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	prefs, err := h.preferenceService.ToggleNotification(r.Context(), key)
	if err != nil {
		response.RespondError(w, statusFor(err), "failed to toggle notification", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prefs)
}

// FormatResponse is a single amount rendered in the active unit.
type FormatResponse struct {
	Amount    float64           `json:"amount"`
	Currency  model.DisplayUnit `json:"currency"`
	Formatted string            `json:"formatted"`
}

// Format renders an amount in the active display unit.
//
// Endpoint: GET /api/format?amount=12345.678
// Response: 200 OK with FormatResponse
// Error: 400 Bad Request if amount is missing or not a number
func (h *PreferenceHandler) Format(w http.ResponseWriter, r *http.Request) {
	amount, err := request.ParseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidAmount.Error(), err.Error())
		return
	}

	formatter := h.preferenceService.Formatter()
	response.RespondJSON(w, http.StatusOK, FormatResponse{
		Amount:    amount,
		Currency:  formatter.Unit(),
		Formatted: formatter.Format(amount),
	})
}
