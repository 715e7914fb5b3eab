package request

import "github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"

// UpdateCurrencyRequest represents the request body for selecting the display currency
type UpdateCurrencyRequest struct {
	Currency string `json:"currency"`
}

// UpdateNotificationsRequest replaces every notification switch at once.
type UpdateNotificationsRequest = model.NotificationPreferences
