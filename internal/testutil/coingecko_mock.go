package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/coingecko"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// MockCoinGeckoClient is a mock implementation of coingecko.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockCoinGeckoClient struct {
	mu sync.Mutex

	// MockChart is the response to return from QueryMarketChart
	MockChart coingecko.MarketChartResponse
	// MockCoins is the response to return from QueryMarkets
	MockCoins []model.MarketCoin
	// MockError is the error to return from query methods
	MockError error
	// Delay blocks every query until it elapses or the context is done
	Delay time.Duration
	// QueryCount tracks how many times a query method was called
	QueryCount int
	// LastDays and LastLimit record the last requested day count and page size
	LastDays  int
	LastLimit int
}

// NewMockCoinGeckoClient creates a new mock client with default test data:
// seven daily bitcoin prices ending yesterday and a short market list.
func NewMockCoinGeckoClient() *MockCoinGeckoClient {
	return &MockCoinGeckoClient{
		MockChart: CreateMockMarketChart(7, time.Now().UTC()),
		MockCoins: CreateMockMarketCoins(),
	}
}

// QueryMarkets returns MockCoins truncated to limit, or MockError.
func (m *MockCoinGeckoClient) QueryMarkets(ctx context.Context, _ string, limit int) ([]model.MarketCoin, error) {
	if err := m.record(ctx, 0, limit); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit < len(m.MockCoins) {
		return append([]model.MarketCoin(nil), m.MockCoins[:limit]...), nil
	}
	return append([]model.MarketCoin(nil), m.MockCoins...), nil
}

// QueryMarketChart returns MockChart, or MockError.
func (m *MockCoinGeckoClient) QueryMarketChart(ctx context.Context, _, _ string, days int) (coingecko.MarketChartResponse, error) {
	if err := m.record(ctx, days, 0); err != nil {
		return coingecko.MarketChartResponse{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.MockChart, nil
}

// ParseMarketChart delegates to the real ParseMarketChart method since it's pure logic with no side effects.
func (m *MockCoinGeckoClient) ParseMarketChart(resp coingecko.MarketChartResponse) ([]coingecko.PricePoint, error) {
	return coingecko.NewFinanceClient(0).ParseMarketChart(resp)
}

// WithError configures the mock to return the specified error.
func (m *MockCoinGeckoClient) WithError(err error) *MockCoinGeckoClient {
	m.MockError = err
	return m
}

// WithChart configures the mock to return the specified chart response.
func (m *MockCoinGeckoClient) WithChart(resp coingecko.MarketChartResponse) *MockCoinGeckoClient {
	m.MockChart = resp
	return m
}

// WithCoins configures the mock to return the specified market list.
func (m *MockCoinGeckoClient) WithCoins(coins []model.MarketCoin) *MockCoinGeckoClient {
	m.MockCoins = coins
	return m
}

// WithDelay makes every query wait for d or until its context is done.
func (m *MockCoinGeckoClient) WithDelay(d time.Duration) *MockCoinGeckoClient {
	m.Delay = d
	return m
}

// Calls returns the number of queries made so far.
func (m *MockCoinGeckoClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}

func (m *MockCoinGeckoClient) record(ctx context.Context, days, limit int) error {
	m.mu.Lock()
	m.QueryCount++
	if days > 0 {
		m.LastDays = days
	}
	if limit > 0 {
		m.LastLimit = limit
	}
	delay, mockErr := m.Delay, m.MockError
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return mockErr
}

// CreateMockMarketChart builds a chart response with one price per day for
// the days days before end. Prices start at 42000 and rise by 100 per day.
func CreateMockMarketChart(days int, end time.Time) coingecko.MarketChartResponse {
	prices := make([][]*float64, days)
	for i := range days {
		ts := float64(end.Add(-time.Duration(days-i) * 24 * time.Hour).UnixMilli())
		price := 42000 + float64(i)*100
		prices[i] = []*float64{&ts, &price}
	}
	return coingecko.MarketChartResponse{Prices: prices}
}

// CreateMockMarketCoins returns a small market list ordered by market cap.
func CreateMockMarketCoins() []model.MarketCoin {
	return []model.MarketCoin{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Price: 51000, Change24h: 1.5, MarketCap: 1e12, Volume24h: 3e10},
		{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", Price: 3100, Change24h: -0.4, MarketCap: 3.7e11, Volume24h: 1.6e10},
		{ID: "solana", Name: "Solana", Symbol: "SOL", Price: 130, Change24h: 5.1, MarketCap: 5.5e10, Volume24h: 2.6e9},
	}
}
