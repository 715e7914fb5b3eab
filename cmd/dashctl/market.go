package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/currency"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/service"
)

type marketCmd struct {
	limit  int
	search string
	unit   string
}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "lists the top coins by market capitalisation" }
func (*marketCmd) Usage() string {
	return `dashctl market [-limit <n>] [-search <text>] [-unit <unit>]

  Lists coins with their price, 24h change and market cap. When the provider
  cannot be reached the built-in demo list is printed and flagged on stderr.

`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "limit", service.DefaultMarketLimit, "Number of coins, between 1 and 250.")
	f.StringVar(&c.search, "search", "", "Only list coins whose name, symbol or id contains this text.")
	f.StringVar(&c.unit, "unit", string(model.DefaultDisplayUnit), "Display unit: EUR, USD or BTC.")
}

func (c *marketCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	markets := service.NewMarketService(newClient(cfg), cfg.Market.QuoteCurrency, nil)
	overview, err := markets.Overview(ctx, c.limit, c.search)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if overview.UsedFallback {
		fmt.Fprintf(os.Stderr, "Warning: provider unavailable, showing demo data\n")
	}

	printMarket(overview, currency.NewFormatter(unit, cfg.Currency.BTCRate))
	return subcommands.ExitSuccess
}

func printMarket(overview model.MarketOverview, formatter currency.Formatter) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tPRICE\t24H\tMARKET CAP")
	for _, coin := range overview.Coins {
		fmt.Fprintf(w, "%s\t%s\t%s\t%+.2f%%\t%s\n",
			coin.Symbol, coin.Name, formatter.Format(coin.Price), coin.Change24h, formatter.Format(coin.MarketCap))
	}
	w.Flush()
}
