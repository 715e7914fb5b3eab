package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
)

// TestParseJSON tests the parseJSON helper function.
// This is an internal test (package handlers, not handlers_test) because
// parseJSON is unexported.
func TestParseJSON(t *testing.T) {
	t.Run("decodes a valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Bitcoin","amount":0.5}`))

		got, err := parseJSON[request.CreateAssetRequest](req)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got.Name != "Bitcoin" || got.Amount != 0.5 {
			t.Errorf("Unexpected request: %+v", got)
		}
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		if _, err := parseJSON[request.CreateAssetRequest](req); err == nil || !strings.Contains(err.Error(), "empty") {
			t.Errorf("Expected empty body error, got %v", err)
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

		if _, err := parseJSON[request.CreateAssetRequest](req); err == nil {
			t.Error("Expected an error for malformed JSON")
		}
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", apperrors.ErrInvalidWindow), http.StatusBadRequest},
		{apperrors.ErrInvalidDisplayUnit, http.StatusBadRequest},
		{apperrors.ErrAssetNotFound, http.StatusNotFound},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
