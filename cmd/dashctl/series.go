package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/currency"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
)

type seriesCmd struct {
	asset  string
	window string
	unit   string
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "prints the daily price series of an asset" }
func (*seriesCmd) Usage() string {
	return `dashctl series [-asset <id>] [-window <window>] [-unit <unit>]

  Prints one line per day with the date and the price. When the provider cannot
  be reached a placeholder series is printed and flagged on stderr.

Usage Examples:
# Last 30 days of bitcoin in dollars
$ dashctl series -asset bitcoin -window 30d -unit USD

`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "bitcoin", "Provider id of the asset to chart.")
	f.StringVar(&c.window, "window", string(model.DefaultWindow), "Window: 1d, 7d, 30d or 1y.")
	f.StringVar(&c.unit, "unit", string(model.DefaultDisplayUnit), "Display unit: EUR, USD or BTC.")
}

func (c *seriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if strings.TrimSpace(c.asset) == "" {
		fmt.Fprintf(os.Stderr, "Error: -asset is required\n")
		return subcommands.ExitUsageError
	}
	window, err := request.ParseWindow(c.window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	unit, ok := model.ParseDisplayUnit(strings.ToUpper(c.unit))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown unit %q\n", c.unit)
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	charts := service.NewChartService(newClient(cfg),
		service.NewFallbackGenerator(uint64(time.Now().UnixNano()), time.Now),
		cfg.Market.QuoteCurrency, nil)

	series, err := charts.LoadSeries(ctx, c.asset, window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if series.UsedFallback {
		fmt.Fprintf(os.Stderr, "Warning: provider unavailable, showing placeholder data\n")
	}

	printSeries(series, currency.NewFormatter(unit, cfg.Currency.BTCRate))
	return subcommands.ExitSuccess
}

func printSeries(series model.Series, formatter currency.Formatter) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, s := range series.Samples {
		fmt.Fprintf(w, "%s\t%s\t\n", s.Date, formatter.Format(s.Price))
	}
	w.Flush()
}
