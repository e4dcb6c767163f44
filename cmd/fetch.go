package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tradesim/ledger"
)

type fetchCmd struct {
	symbol string
	isin   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch the latest traded price and update the quotes file" }
func (*fetchCmd) Usage() string {
	return `tsim fetch -s <symbol> -isin <isin>

  Fetches the latest traded price for the symbol from Tradegate and records
  it in the quotes file, where trading and valuation commands read it.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to quote.")
	f.StringVar(&c.isin, "isin", "", "ISIN of the security on Tradegate.")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.isin == "" {
		fmt.Fprintln(os.Stderr, "Error: -s and -isin are both required.")
		return subcommands.ExitUsageError
	}

	live := ledger.NewTradegateOracle(map[string]string{c.symbol: c.isin}, *currencyFlag)
	price, err := live.PriceOf(c.symbol)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	oracle, err := loadOracle()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	oracle.Set(c.symbol, price)
	if err := saveQuotes(oracle); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Quoted %s at %s\n", c.symbol, price)
	return subcommands.ExitSuccess
}
