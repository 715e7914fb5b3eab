package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/middleware"
)

func requestWithUUID(id string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/portfolio/assets/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uuid", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestValidateUUIDMiddleware(t *testing.T) {
	t.Run("passes through valid UUID", func(t *testing.T) {
		handlerCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
			w.WriteHeader(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		middleware.ValidateUUIDMiddleware(next).ServeHTTP(w, requestWithUUID("550e8400-e29b-41d4-a716-446655440000"))

		if !handlerCalled {
			t.Error("Expected next handler to be called")
		}
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d", w.Code)
		}
	})

	t.Run("returns 400 for invalid UUID", func(t *testing.T) {
		handlerCalled := false
		next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
		})

		w := httptest.NewRecorder()
		middleware.ValidateUUIDMiddleware(next).ServeHTTP(w, requestWithUUID("invalid-id"))

		if handlerCalled {
			t.Error("Expected next handler not to be called")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 when the parameter is missing", func(t *testing.T) {
		next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			t.Error("Expected next handler not to be called")
		})

		w := httptest.NewRecorder()
		middleware.ValidateUUIDMiddleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/", nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
