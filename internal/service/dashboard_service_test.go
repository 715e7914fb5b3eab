package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/testutil"
)

// TestDashboardService_Load tests the aggregate landing page.
func TestDashboardService_Load(t *testing.T) {
	t.Run("combines market, portfolio and series", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateAsset(t, db, "bitcoin", 0.5, 50000)
		svc := testutil.NewTestDashboardService(t, db, testutil.NewMockCoinGeckoClient())

		dash, err := svc.Load(context.Background(), "bitcoin", model.Window7D)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if dash.Currency != model.UnitEUR {
			t.Errorf("Expected EUR, got %s", dash.Currency)
		}
		if len(dash.Market.Coins) != 3 {
			t.Errorf("Expected 3 coins, got %d", len(dash.Market.Coins))
		}
		if dash.Portfolio.TotalValue != 25000 {
			t.Errorf("Expected total 25000, got %f", dash.Portfolio.TotalValue)
		}
		if dash.TotalDisplay != "25\u202f000,00\u00a0€" {
			t.Errorf("Unexpected total display %q", dash.TotalDisplay)
		}
		if len(dash.Series.Samples) != 7 || dash.Series.UsedFallback {
			t.Errorf("Expected 7 live samples, got %d (fallback=%v)", len(dash.Series.Samples), dash.Series.UsedFallback)
		}
	})

	t.Run("degrades to placeholder data when the provider is down", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockCoinGeckoClient().WithError(errors.New("offline"))
		svc := testutil.NewTestDashboardService(t, db, client)

		dash, err := svc.Load(context.Background(), "bitcoin", model.Window30D)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if !dash.Market.UsedFallback || !dash.Series.UsedFallback {
			t.Error("Expected both market and series to be placeholder data")
		}
		if len(dash.Series.Samples) != 30 {
			t.Errorf("Expected 30 samples, got %d", len(dash.Series.Samples))
		}
	})

	t.Run("reports an invalid window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDashboardService(t, db, testutil.NewMockCoinGeckoClient())

		_, err := svc.Load(context.Background(), "bitcoin", model.Window("3d"))
		if !errors.Is(err, apperrors.ErrInvalidWindow) {
			t.Errorf("Expected ErrInvalidWindow, got %v", err)
		}
	})
}
