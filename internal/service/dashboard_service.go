package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// DashboardService assembles the landing page from the other services.
type DashboardService struct {
	market      *MarketService
	portfolio   *PortfolioService
	chart       *ChartService
	preferences *PreferenceService
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	market *MarketService,
	portfolio *PortfolioService,
	chart *ChartService,
	preferences *PreferenceService,
) *DashboardService {
	return &DashboardService{
		market:      market,
		portfolio:   portfolio,
		chart:       chart,
		preferences: preferences,
	}
}

// Load fetches the market overview, the portfolio summary and the series of
// assetID concurrently. The first failure cancels the others.
func (s *DashboardService) Load(ctx context.Context, assetID string, window model.Window) (model.Dashboard, error) {
	var (
		dash      model.Dashboard
		formatter = s.preferences.Formatter()
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		overview, err := s.market.Overview(gctx, DefaultMarketLimit, "")
		if err != nil {
			return err
		}
		dash.Market = overview
		return nil
	})

	g.Go(func() error {
		summary, err := s.portfolio.Summary(gctx)
		if err != nil {
			return err
		}
		dash.Portfolio = summary
		return nil
	})

	g.Go(func() error {
		series, err := s.chart.LoadSeries(gctx, assetID, window)
		if err != nil {
			return err
		}
		dash.Series = series
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.Dashboard{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoadDashboard, err)
	}

	dash.Currency = formatter.Unit()
	dash.TotalDisplay = formatter.Format(dash.Portfolio.TotalValue)
	return dash, nil
}
