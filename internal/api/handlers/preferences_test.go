package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/testutil"
)

func setupPreferenceHandler(t *testing.T) (*PreferenceHandler, *service.PreferenceService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ps := testutil.NewTestPreferenceService(t, db)
	return NewPreferenceHandler(ps), ps
}

func TestPreferenceHandler_Preferences(t *testing.T) {
	t.Run("returns defaults before anything is stored", func(t *testing.T) {
		handler, _ := setupPreferenceHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/preferences", nil)
		w := httptest.NewRecorder()

		handler.Preferences(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Preferences
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Currency != model.UnitEUR {
			t.Errorf("Expected currency EUR, got %s", response.Currency)
		}
		if response.Notifications != model.DefaultNotificationPreferences() {
			t.Errorf("Expected default notifications, got %+v", response.Notifications)
		}
	})
}

func TestPreferenceHandler_UpdateCurrency(t *testing.T) {
	t.Run("switches the active unit", func(t *testing.T) {
		handler, ps := setupPreferenceHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/preferences/currency", strings.NewReader(`{"currency":"usd"}`))
		w := httptest.NewRecorder()

		handler.UpdateCurrency(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if ps.Unit() != model.UnitUSD {
			t.Errorf("Expected active unit USD, got %s", ps.Unit())
		}
	})

	t.Run("returns 400 for an unknown currency", func(t *testing.T) {
		handler, ps := setupPreferenceHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/preferences/currency", strings.NewReader(`{"currency":"GBP"}`))
		w := httptest.NewRecorder()

		handler.UpdateCurrency(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		if ps.Unit() != model.UnitEUR {
			t.Errorf("Expected unit to stay EUR, got %s", ps.Unit())
		}
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		handler, _ := setupPreferenceHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/preferences/currency", strings.NewReader(`{"currency":`))
		w := httptest.NewRecorder()

		handler.UpdateCurrency(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPreferenceHandler_Notifications(t *testing.T) {
	t.Run("replaces every switch", func(t *testing.T) {
		handler, ps := setupPreferenceHandler(t)

		body := `{"email":false,"price":false,"news":true,"portfolio":false}`
		req := httptest.NewRequest(http.MethodPut, "/api/preferences/notifications", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.UpdateNotifications(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		want := model.NotificationPreferences{News: true}
		if ps.Notifications() != want {
			t.Errorf("Expected %+v, got %+v", want, ps.Notifications())
		}
	})

	t.Run("toggles a single switch", func(t *testing.T) {
		handler, _ := setupPreferenceHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/preferences/notifications/news/toggle",
			map[string]string{"key": "news"})
		w := httptest.NewRecorder()

		handler.ToggleNotification(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.NotificationPreferences
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.News {
			t.Error("Expected news to be switched on")
		}
		if !response.Email {
			t.Error("Expected email to stay on")
		}
	})

	t.Run("returns 400 for an unknown key", func(t *testing.T) {
		handler, _ := setupPreferenceHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/preferences/notifications/sms/toggle",
			map[string]string{"key": "sms"})
		w := httptest.NewRecorder()

		handler.ToggleNotification(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPreferenceHandler_Format(t *testing.T) {
	tests := []struct {
		name   string
		unit   model.DisplayUnit
		amount string
		want   string
	}{
		{"formats euro by default", model.UnitEUR, "12345.678", "12\u202f345,68\u00a0€"},
		{"formats dollars", model.UnitUSD, "12345.678", "$12,345.68"},
		{"formats bitcoin", model.UnitBTC, "25000", "₿0.50000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, ps := setupPreferenceHandler(t)
			if err := ps.SetUnit(t.Context(), tt.unit); err != nil {
				t.Fatalf("SetUnit() error = %v", err)
			}

			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/format", map[string]string{"amount": tt.amount})
			w := httptest.NewRecorder()

			handler.Format(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
			}

			var response FormatResponse
			//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
			json.NewDecoder(w.Body).Decode(&response)

			if response.Formatted != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, response.Formatted)
			}
			if response.Currency != tt.unit {
				t.Errorf("Expected currency %s, got %s", tt.unit, response.Currency)
			}
		})
	}

	t.Run("returns 400 when amount is missing", func(t *testing.T) {
		handler, _ := setupPreferenceHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/format", nil)
		w := httptest.NewRecorder()

		handler.Format(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
