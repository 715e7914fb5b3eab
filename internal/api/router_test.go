package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/config"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db := testutil.SetupTestDB(t)
	client := testutil.NewMockCoinGeckoClient()

	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Market.ListLimit = 10

	return NewRouter(Services{
		System:      testutil.NewTestSystemService(t, db),
		Market:      testutil.NewTestMarketService(t, client),
		Chart:       testutil.NewTestChartService(t, client),
		Portfolio:   testutil.NewTestPortfolioService(t, db),
		Preferences: testutil.NewTestPreferenceService(t, db),
		Dashboard:   testutil.NewTestDashboardService(t, db, client),
		Stream: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	}, cfg, zap.NewNop())
}

func TestNewRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/system/health", "", http.StatusOK},
		{http.MethodGet, "/api/system/version", "", http.StatusOK},
		{http.MethodGet, "/api/dashboard", "", http.StatusOK},
		{http.MethodGet, "/api/market", "", http.StatusOK},
		{http.MethodGet, "/api/market/bitcoin/history?window=7d", "", http.StatusOK},
		{http.MethodGet, "/api/market/bitcoin/history?window=2w", "", http.StatusBadRequest},
		{http.MethodGet, "/api/portfolio", "", http.StatusOK},
		{http.MethodPost, "/api/portfolio/assets", `{"name":"Solana","symbol":"sol","amount":1,"price":130}`, http.StatusCreated},
		{http.MethodDelete, "/api/portfolio/assets/not-a-uuid", "", http.StatusBadRequest},
		{http.MethodDelete, "/api/portfolio/assets/" + testutil.MakeID(), "", http.StatusNotFound},
		{http.MethodGet, "/api/preferences", "", http.StatusOK},
		{http.MethodPut, "/api/preferences/currency", `{"currency":"BTC"}`, http.StatusOK},
		{http.MethodPost, "/api/preferences/notifications/price/toggle", "", http.StatusOK},
		{http.MethodGet, "/api/format?amount=1", "", http.StatusOK},
		{http.MethodGet, "/api/stream", "", http.StatusTeapot},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestNewRouter_CORS(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/market", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Less(t, w.Code, 300)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
