// Package scheduler runs the periodic market refresh.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// MarketSource provides market overviews. *service.MarketService satisfies it.
type MarketSource interface {
	Overview(ctx context.Context, limit int, search string) (model.MarketOverview, error)
}

// QuoteSink receives live quotes. *service.PortfolioService satisfies it.
type QuoteSink interface {
	ApplyQuotes(ctx context.Context, coins []model.MarketCoin) (int64, error)
}

// Publisher fans snapshots out to clients. *stream.Hub satisfies it.
type Publisher interface {
	Publish(overview model.MarketOverview, at time.Time)
}

// MarketRefresher fetches the market overview on a cron schedule, publishes it
// and copies live quotes onto the portfolio.
type MarketRefresher struct {
	source    MarketSource
	quotes    QuoteSink
	publisher Publisher
	schedule  string
	limit     int
	logger    *zap.Logger
	now       func() time.Time

	mu sync.Mutex // serialises refreshes
}

// NewMarketRefresher creates a refresher running on schedule, a seconds-enabled
// cron expression or descriptor such as "@every 1m".
func NewMarketRefresher(
	source MarketSource,
	quotes QuoteSink,
	publisher Publisher,
	schedule string,
	limit int,
	logger *zap.Logger,
) *MarketRefresher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarketRefresher{
		source:    source,
		quotes:    quotes,
		publisher: publisher,
		schedule:  schedule,
		limit:     limit,
		logger:    logger.With(zap.String("component", "scheduler")),
		now:       time.Now,
	}
}

// Refresh runs one refresh. Placeholder market data is published but never
// copied onto the portfolio.
func (r *MarketRefresher) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	overview, err := r.source.Overview(ctx, r.limit, "")
	if err != nil {
		return fmt.Errorf("refresh market overview: %w", err)
	}

	r.publisher.Publish(overview, r.now())

	if overview.UsedFallback {
		r.logger.Warn("market refresh served demo data")
		return nil
	}

	updated, err := r.quotes.ApplyQuotes(ctx, overview.Coins)
	if err != nil {
		return fmt.Errorf("apply quotes: %w", err)
	}

	r.logger.Info("market refreshed",
		zap.Int("coins", len(overview.Coins)),
		zap.Int64("assets_updated", updated),
	)
	return nil
}

// Run refreshes once immediately, then on every tick of the schedule until
// ctx is done. It waits for a running refresh before returning.
func (r *MarketRefresher) Run(ctx context.Context) error {
	c := cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(r.schedule, func() { r.refreshAndLog(ctx) }); err != nil {
		return fmt.Errorf("register market refresh %q: %w", r.schedule, err)
	}

	r.refreshAndLog(ctx)

	c.Start()
	r.logger.Info("scheduler started", zap.String("schedule", r.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	r.logger.Info("scheduler stopped")
	return ctx.Err()
}

func (r *MarketRefresher) refreshAndLog(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
		r.logger.Error("market refresh failed", zap.Error(err))
	}
}
