package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/currency"
	"github.com/ndewijer/Crypto-Dashboard-Backend/internal/model"
)

type formatCmd struct {
	unit string
	rate string
}

func (*formatCmd) Name() string     { return "format" }
func (*formatCmd) Synopsis() string { return "renders amounts in a display unit" }
func (*formatCmd) Usage() string {
	return `dashctl format [-unit <unit>] [-rate <base units per BTC>] <amount>...

  Renders each amount on its own line. Amounts are in the base unit (euro).
  No configuration or network access is needed.

Usage Examples:
$ dashctl format -unit BTC 25000
₿0.50000000

`
}

func (c *formatCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.unit, "unit", string(model.DefaultDisplayUnit), "Display unit: EUR, USD or BTC.")
	f.StringVar(&c.rate, "rate", fmt.Sprint(currency.DefaultBTCRate), "Base units per bitcoin for the BTC unit.")
}

func (c *formatCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: expected at least one amount\n")
		return subcommands.ExitUsageError
	}
	unit, ok := model.ParseDisplayUnit(strings.ToUpper(c.unit))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown unit %q\n", c.unit)
		return subcommands.ExitUsageError
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil || !rate.IsPositive() {
		fmt.Fprintf(os.Stderr, "Error: rate must be a positive number\n")
		return subcommands.ExitUsageError
	}

	formatter := currency.NewFormatter(unit, rate)
	for _, arg := range f.Args() {
		amount, err := request.ParseAmount(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %q: %v\n", arg, err)
			return subcommands.ExitUsageError
		}
		fmt.Fprintln(stdout, formatter.Format(amount))
	}
	return subcommands.ExitSuccess
}
