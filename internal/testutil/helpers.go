package testutil

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/coingecko"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/currency"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/repository"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
)

// FixedNow is the clock used by test services.
var FixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// NewTestPreferenceService creates a PreferenceService backed by db with the
// default BTC rate. Stored values are not loaded.
func NewTestPreferenceService(t *testing.T, db *sql.DB) *service.PreferenceService {
	t.Helper()

	return service.NewPreferenceService(
		repository.NewPreferenceRepository(db),
		decimal.NewFromInt(currency.DefaultBTCRate),
		nil,
	)
}

// NewTestFallbackGenerator creates a seeded generator pinned to FixedNow.
func NewTestFallbackGenerator(t *testing.T) *service.FallbackGenerator {
	t.Helper()
	return service.NewFallbackGenerator(42, func() time.Time { return FixedNow })
}

// NewTestChartService creates a ChartService quoting in eur.
func NewTestChartService(t *testing.T, client coingecko.Client) *service.ChartService {
	t.Helper()
	return service.NewChartService(client, NewTestFallbackGenerator(t), "eur", nil)
}

// NewTestMarketService creates a MarketService quoting in eur.
func NewTestMarketService(t *testing.T, client coingecko.Client) *service.MarketService {
	t.Helper()
	return service.NewMarketService(client, "eur", nil)
}

// NewTestPortfolioService creates a PortfolioService backed by db.
func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()
	return service.NewPortfolioService(db, repository.NewAssetRepository(db), nil)
}

// NewTestDashboardService wires a DashboardService from test services.
func NewTestDashboardService(t *testing.T, db *sql.DB, client coingecko.Client) *service.DashboardService {
	t.Helper()
	return service.NewDashboardService(
		NewTestMarketService(t, client),
		NewTestPortfolioService(t, db),
		NewTestChartService(t, client),
		NewTestPreferenceService(t, db),
	)
}

// NewTestSystemService creates a SystemService backed by db.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, map[string]bool{"stream": true})
}

// MakeID generates a new UUID string for testing.
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol derives a ticker-like symbol from a coin ID.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("ethereum")
//	// Returns: "ETH"
func MakeSymbol(coinID string) string {
	s := strings.ToUpper(coinID)
	if len(s) > 3 {
		s = s[:3]
	}
	return s
}
