// Package coingecko is a thin client for the CoinGecko v3 public market-data API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// DefaultBaseURL is the public CoinGecko v3 API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// apiKeyHeader carries the optional demo-plan API key.
const apiKeyHeader = "x-cg-demo-api-key"

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 8 << 20

// Client is the subset of the market-data API the services depend on.
// It is satisfied by *FinanceClient and by test doubles.
type Client interface {
	QueryMarkets(ctx context.Context, vsCurrency string, limit int) ([]model.MarketCoin, error)
	QueryMarketChart(ctx context.Context, coinID, vsCurrency string, days int) (MarketChartResponse, error)
	ParseMarketChart(resp MarketChartResponse) ([]PricePoint, error)
}

// FinanceClient provides methods for fetching market data from the CoinGecko API.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option customises a FinanceClient.
type Option func(*FinanceClient)

// WithBaseURL points the client at another API root (a proxy or a test server).
func WithBaseURL(baseURL string) Option {
	return func(c *FinanceClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithAPIKey sends key with every request.
func WithAPIKey(key string) Option {
	return func(c *FinanceClient) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *FinanceClient) {
		c.httpClient = hc
	}
}

// NewFinanceClient creates a client whose requests time out after timeout.
// A non-positive timeout leaves the transport default in place.
func NewFinanceClient(timeout time.Duration, opts ...Option) *FinanceClient {
	hc := &http.Client{}
	if timeout > 0 {
		hc.Timeout = timeout
	}
	c := &FinanceClient{
		httpClient: hc,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryMarkets fetches the top coins ordered by market capitalisation, quoted in vsCurrency.
//
// Symbols are upper-cased; a missing 24h change is reported as zero.
func (c *FinanceClient) QueryMarkets(ctx context.Context, vsCurrency string, limit int) ([]model.MarketCoin, error) {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("order", "market_cap_desc")
	q.Set("per_page", strconv.Itoa(limit))
	q.Set("page", "1")
	q.Set("sparkline", "false")
	q.Set("price_change_percentage", "24h")

	var raw MarketsResponse
	if err := c.query(ctx, "/coins/markets", q, &raw); err != nil {
		return nil, err
	}

	coins := make([]model.MarketCoin, 0, len(raw))
	for _, r := range raw {
		coin := model.MarketCoin{
			ID:        r.ID,
			Name:      r.Name,
			Symbol:    strings.ToUpper(r.Symbol),
			Price:     r.CurrentPrice,
			MarketCap: r.MarketCap,
			Volume24h: r.TotalVolume,
			Image:     r.Image,
		}
		if r.PriceChangePercentage24h != nil {
			coin.Change24h = *r.PriceChangePercentage24h
		}
		coins = append(coins, coin)
	}
	return coins, nil
}

// QueryMarketChart fetches the historical prices of coinID over the last days days.
func (c *FinanceClient) QueryMarketChart(ctx context.Context, coinID, vsCurrency string, days int) (MarketChartResponse, error) {
	q := url.Values{}
	q.Set("vs_currency", vsCurrency)
	q.Set("days", strconv.Itoa(days))

	var resp MarketChartResponse
	if err := c.query(ctx, "/coins/"+url.PathEscape(coinID)+"/market_chart", q, &resp); err != nil {
		return MarketChartResponse{}, err
	}
	if resp.Prices == nil {
		return MarketChartResponse{}, fmt.Errorf("no prices returned for %s", coinID)
	}
	return resp, nil
}

// ParseMarketChart converts the raw [epochMillis, price] pairs into price points.
//
// The method rejects pairs that do not have exactly two non-null finite
// elements. The result is sorted by time, oldest first; prices are untouched.
func (c *FinanceClient) ParseMarketChart(resp MarketChartResponse) ([]PricePoint, error) {
	if len(resp.Prices) == 0 {
		return nil, fmt.Errorf("no price data returned")
	}

	points := make([]PricePoint, len(resp.Prices))
	for i, pair := range resp.Prices {
		if len(pair) != 2 || pair[0] == nil || pair[1] == nil {
			return nil, fmt.Errorf("malformed price pair at index %d", i)
		}
		if math.IsNaN(*pair[1]) || math.IsInf(*pair[1], 0) {
			return nil, fmt.Errorf("non-finite price at index %d", i)
		}
		points[i] = PricePoint{
			Time:  time.UnixMilli(int64(*pair[0])).UTC(),
			Price: *pair[1],
		}
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}

// query is an internal helper that executes a GET request against the API and
// decodes the JSON body into out.
//
// Any non-2xx status is an error carrying the API's own message when present.
func (c *FinanceClient) query(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("coingecko read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.message() != "" {
			return fmt.Errorf("coingecko: status %d: %s", resp.StatusCode, apiErr.message())
		}
		return fmt.Errorf("coingecko: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("coingecko decode: %w", err)
	}
	return nil
}
