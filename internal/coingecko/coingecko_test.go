package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *FinanceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFinanceClient(2*time.Second, WithBaseURL(srv.URL), WithAPIKey("demo-key"))
}

func TestFinanceClient_QueryMarkets(t *testing.T) {
	var gotQuery, gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get(apiKeyHeader)
		assert.Equal(t, "/coins/markets", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"bitcoin","name":"Bitcoin","symbol":"btc","current_price":51000.5,
			 "price_change_percentage_24h":2.5,"market_cap":1000000000,"total_volume":2000,
			 "image":"https://img/btc.png"},
			{"id":"tether","name":"Tether","symbol":"usdt","current_price":0.92,
			 "price_change_percentage_24h":null,"market_cap":10,"total_volume":20,"image":""}
		]`))
	})

	coins, err := client.QueryMarkets(context.Background(), "eur", 2)
	require.NoError(t, err)
	require.Len(t, coins, 2)

	assert.Equal(t, "BTC", coins[0].Symbol)
	assert.Equal(t, 51000.5, coins[0].Price)
	assert.Equal(t, 2.5, coins[0].Change24h)
	assert.Equal(t, "USDT", coins[1].Symbol)
	assert.Zero(t, coins[1].Change24h)

	assert.Contains(t, gotQuery, "vs_currency=eur")
	assert.Contains(t, gotQuery, "per_page=2")
	assert.Contains(t, gotQuery, "order=market_cap_desc")
	assert.Equal(t, "demo-key", gotKey)
}

func TestFinanceClient_QueryMarkets_Non2xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"status":{"error_code":429,"error_message":"rate limited"}}`))
	})

	_, err := client.QueryMarkets(context.Background(), "eur", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestFinanceClient_QueryMarketChart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("days"))
		_, _ = w.Write([]byte(`{"prices":[[1700000000000,42000.1],[1700086400000,43000.2]]}`))
	})

	resp, err := client.QueryMarketChart(context.Background(), "bitcoin", "eur", 7)
	require.NoError(t, err)

	points, err := client.ParseMarketChart(resp)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), points[0].Time)
	assert.Equal(t, 42000.1, points[0].Price)
	assert.Equal(t, 43000.2, points[1].Price)
}

func TestFinanceClient_QueryMarketChart_Errors(t *testing.T) {
	t.Run("undecodable body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		})
		_, err := client.QueryMarketChart(context.Background(), "bitcoin", "eur", 7)
		assert.ErrorContains(t, err, "decode")
	})

	t.Run("missing prices", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"market_caps":[]}`))
		})
		_, err := client.QueryMarketChart(context.Background(), "bitcoin", "eur", 7)
		assert.ErrorContains(t, err, "no prices")
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		_, err := client.QueryMarketChart(context.Background(), "bitcoin", "eur", 7)
		assert.ErrorContains(t, err, "status 502")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		t.Cleanup(srv.Close)

		client := NewFinanceClient(50*time.Millisecond, WithBaseURL(srv.URL))
		_, err := client.QueryMarketChart(context.Background(), "bitcoin", "eur", 7)
		assert.Error(t, err)
	})
}

func TestFinanceClient_ParseMarketChart(t *testing.T) {
	c := NewFinanceClient(0)
	f := func(v float64) *float64 { return &v }

	t.Run("sorts ascending", func(t *testing.T) {
		points, err := c.ParseMarketChart(MarketChartResponse{Prices: [][]*float64{
			{f(1700086400000), f(2)},
			{f(1700000000000), f(1)},
		}})
		require.NoError(t, err)
		assert.Equal(t, 1.0, points[0].Price)
		assert.Equal(t, 2.0, points[1].Price)
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := c.ParseMarketChart(MarketChartResponse{})
		assert.Error(t, err)
	})

	t.Run("rejects short pair", func(t *testing.T) {
		_, err := c.ParseMarketChart(MarketChartResponse{Prices: [][]*float64{{f(1)}}})
		assert.ErrorContains(t, err, "malformed")
	})

	t.Run("rejects null price", func(t *testing.T) {
		_, err := c.ParseMarketChart(MarketChartResponse{Prices: [][]*float64{{f(1), nil}}})
		assert.ErrorContains(t, err, "malformed")
	})
}
