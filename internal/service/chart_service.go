package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/coingecko"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// ChartService builds price series for the chart surfaces.
// It holds no per-request state and LoadSeries may be called concurrently.
type ChartService struct {
	client   coingecko.Client
	fallback *FallbackGenerator
	quote    string
	logger   *zap.Logger
}

// NewChartService creates a ChartService quoting prices in quote (e.g. "eur").
func NewChartService(client coingecko.Client, fallback *FallbackGenerator, quote string, logger *zap.Logger) *ChartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChartService{
		client:   client,
		fallback: fallback,
		quote:    strings.ToLower(quote),
		logger:   logger.With(zap.String("component", "chart")),
	}
}

// LoadSeries returns the price series of assetID over window.
//
// Provider failures are not returned: the placeholder series is returned
// instead with UsedFallback set. Errors are limited to an empty asset ID, an
// unknown window and cancellation of ctx. On success len(Samples) equals the
// window's day count.
func (s *ChartService) LoadSeries(ctx context.Context, assetID string, window model.Window) (model.Series, error) {
	if strings.TrimSpace(assetID) == "" {
		return model.Series{}, apperrors.ErrEmptyAssetID
	}
	days, ok := window.Days()
	if !ok {
		return model.Series{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidWindow, window)
	}

	samples, err := s.fetchSeries(ctx, assetID, days)
	if err == nil {
		return model.Series{
			AssetID: assetID,
			Window:  window,
			Days:    days,
			Samples: samples,
		}, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return model.Series{}, ctxErr
	}

	s.logger.Warn("market chart unavailable, serving placeholder series",
		zap.String("asset", assetID),
		zap.String("window", string(window)),
		zap.Error(err),
	)
	return s.fallback.Generate(assetID, window), nil
}

func (s *ChartService) fetchSeries(ctx context.Context, assetID string, days int) ([]model.ChartSample, error) {
	resp, err := s.client.QueryMarketChart(ctx, assetID, s.quote, days)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrProviderUnavailable, err)
	}

	points, err := s.client.ParseMarketChart(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrProviderUnavailable, err)
	}

	return dailySamples(points, days)
}

// dailySamples keeps the last point of every UTC day and returns the newest
// days of them. points must be sorted ascending.
func dailySamples(points []coingecko.PricePoint, days int) ([]model.ChartSample, error) {
	daily := make([]coingecko.PricePoint, 0, days+1)
	for _, p := range points {
		if n := len(daily); n > 0 && sameUTCDay(daily[n-1].Time, p.Time) {
			daily[n-1] = p
			continue
		}
		daily = append(daily, p)
	}

	if len(daily) < days {
		return nil, fmt.Errorf("%w: got %d daily samples, need %d", apperrors.ErrShortSeries, len(daily), days)
	}
	daily = daily[len(daily)-days:]

	samples := make([]model.ChartSample, len(daily))
	for i, p := range daily {
		samples[i] = model.NewChartSample(p.Time.UTC(), p.Price)
	}
	return samples, nil
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
