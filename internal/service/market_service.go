package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/coingecko"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// DefaultMarketLimit is the overview size used by the dashboard.
const DefaultMarketLimit = 10

// demoCoins is served when the provider cannot be reached.
var demoCoins = []model.MarketCoin{
	{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Price: 50000, Change24h: 2.5, MarketCap: 950_000_000_000, Volume24h: 28_000_000_000},
	{ID: "ethereum", Name: "Ethereum", Symbol: "ETH", Price: 3000, Change24h: 1.8, MarketCap: 360_000_000_000, Volume24h: 15_000_000_000},
	{ID: "tether", Name: "Tether", Symbol: "USDT", Price: 0.92, Change24h: 0.01, MarketCap: 95_000_000_000, Volume24h: 40_000_000_000},
	{ID: "binancecoin", Name: "BNB", Symbol: "BNB", Price: 380, Change24h: -0.6, MarketCap: 58_000_000_000, Volume24h: 1_200_000_000},
	{ID: "solana", Name: "Solana", Symbol: "SOL", Price: 120, Change24h: 4.2, MarketCap: 52_000_000_000, Volume24h: 2_500_000_000},
	{ID: "ripple", Name: "XRP", Symbol: "XRP", Price: 0.55, Change24h: -1.1, MarketCap: 30_000_000_000, Volume24h: 1_100_000_000},
	{ID: "cardano", Name: "Cardano", Symbol: "ADA", Price: 0.5, Change24h: -1.2, MarketCap: 17_500_000_000, Volume24h: 450_000_000},
	{ID: "dogecoin", Name: "Dogecoin", Symbol: "DOGE", Price: 0.08, Change24h: 3.4, MarketCap: 11_000_000_000, Volume24h: 600_000_000},
	{ID: "polkadot", Name: "Polkadot", Symbol: "DOT", Price: 6.5, Change24h: -2.3, MarketCap: 8_500_000_000, Volume24h: 200_000_000},
	{ID: "chainlink", Name: "Chainlink", Symbol: "LINK", Price: 14, Change24h: 0.9, MarketCap: 8_000_000_000, Volume24h: 350_000_000},
}

// MarketService serves the top-coins overview.
type MarketService struct {
	client coingecko.Client
	quote  string
	logger *zap.Logger
}

// NewMarketService creates a MarketService quoting prices in quote.
func NewMarketService(client coingecko.Client, quote string, logger *zap.Logger) *MarketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarketService{
		client: client,
		quote:  strings.ToLower(quote),
		logger: logger.With(zap.String("component", "market")),
	}
}

// Overview returns up to limit coins ordered by market capitalisation.
//
// A non-empty search keeps coins whose name, symbol or ID contains it, ignoring
// case; the search runs over the provider's largest page. When the provider
// fails the demo list is filtered the same way and UsedFallback is set.
func (s *MarketService) Overview(ctx context.Context, limit int, search string) (model.MarketOverview, error) {
	if limit < 1 || limit > request.MaxMarketLimit {
		return model.MarketOverview{}, fmt.Errorf("%w: must be between 1 and %d", apperrors.ErrInvalidLimit, request.MaxMarketLimit)
	}
	search = strings.ToLower(strings.TrimSpace(search))

	fetchLimit := limit
	if search != "" {
		fetchLimit = request.MaxMarketLimit
	}

	coins, err := s.client.QueryMarkets(ctx, s.quote, fetchLimit)
	if err == nil {
		return model.MarketOverview{Coins: filterCoins(coins, search, limit)}, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return model.MarketOverview{}, ctxErr
	}

	s.logger.Warn("market overview unavailable, serving demo list",
		zap.Int("limit", limit),
		zap.Error(err),
	)
	return model.MarketOverview{
		Coins:        filterCoins(demoCoins, search, limit),
		UsedFallback: true,
	}, nil
}

func filterCoins(coins []model.MarketCoin, search string, limit int) []model.MarketCoin {
	out := make([]model.MarketCoin, 0, min(limit, len(coins)))
	for _, c := range coins {
		if len(out) == limit {
			break
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Symbol), search) &&
			!strings.Contains(strings.ToLower(c.ID), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}
