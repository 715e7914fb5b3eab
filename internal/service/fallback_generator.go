package service

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

// FallbackSeedPrice is the first price the placeholder walk starts from.
const FallbackSeedPrice = 50000.0

// Bounds of the daily percentage step of the placeholder walk: [-2, +3).
const (
	fallbackStepMin   = -2.0
	fallbackStepRange = 5.0
)

// FallbackGenerator produces placeholder series for when the market-data
// provider cannot be reached. The values are a random walk and carry no
// meaning beyond keeping a chart populated.
type FallbackGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewFallbackGenerator creates a generator whose walk is reproducible for a
// given seed. A nil now uses time.Now.
func NewFallbackGenerator(seed uint64, now func() time.Time) *FallbackGenerator {
	if now == nil {
		now = time.Now
	}
	return &FallbackGenerator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: now,
	}
}

// Generate returns a placeholder series of window.Days() samples for assetID.
//
// Sample i is dated now minus (days - i) days, so dates are strictly
// ascending and the newest is one day before now. Each price is the previous
// one moved by a uniform step in [-2%, +3%). Unknown windows are treated as
// model.DefaultWindow.
func (g *FallbackGenerator) Generate(assetID string, window model.Window) model.Series {
	days, ok := window.Days()
	if !ok {
		window = model.DefaultWindow
		days, _ = window.Days()
	}

	now := g.now().UTC()
	samples := make([]model.ChartSample, days)

	g.mu.Lock()
	price := FallbackSeedPrice
	for i := range days {
		change := g.rng.Float64()*fallbackStepRange + fallbackStepMin
		price *= 1 + change/100
		ts := now.Add(-time.Duration(days-i) * 24 * time.Hour)
		samples[i] = model.NewChartSample(ts, price)
	}
	g.mu.Unlock()

	return model.Series{
		AssetID:      assetID,
		Window:       window,
		Days:         days,
		Samples:      samples,
		UsedFallback: true,
	}
}
