package model

import (
	"time"
)

// Window is the requested time span of a chart series.
type Window string

const (
	Window1D  Window = "1d"
	Window7D  Window = "7d"
	Window30D Window = "30d"
	Window1Y  Window = "1y"
)

// DefaultWindow is used when a request does not name a window.
const DefaultWindow = Window7D

// windowDays maps every window to the number of daily samples it covers.
var windowDays = map[Window]int{
	Window1D:  1,
	Window7D:  7,
	Window30D: 30,
	Window1Y:  365,
}

// Days returns the number of daily samples for the window.
// The second return value is false for unknown windows.
func (w Window) Days() (int, bool) {
	days, ok := windowDays[w]
	return days, ok
}

// ChartDateLayout renders sample dates the way the dashboard shows them (fr-FR, date only).
const ChartDateLayout = "02/01/2006"

// ChartSample is a single (timestamp, price) point of a series.
type ChartSample struct {
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"`
	Price     float64   `json:"price"`
}

// NewChartSample builds a sample, rendering the date label from ts.
func NewChartSample(ts time.Time, price float64) ChartSample {
	return ChartSample{
		Timestamp: ts,
		Date:      ts.Format(ChartDateLayout),
		Price:     price,
	}
}

// Series is an ordered run of samples for one asset and window.
// Samples are strictly ascending by timestamp and len(Samples) == Days.
//
// UsedFallback is true when the samples are placeholder data produced because
// the market-data provider could not be used.
type Series struct {
	AssetID      string        `json:"asset_id"`
	Window       Window        `json:"window"`
	Days         int           `json:"days"`
	Samples      []ChartSample `json:"samples"`
	UsedFallback bool          `json:"used_fallback"`
}
