package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/tradesim/ledger/renderer"
)

type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display cash, portfolio value and profit/loss" }
func (*summaryCmd) Usage() string {
	return `tsim summary [-d <instant>]

  Displays the account summary: cash balance, portfolio value at current
  prices, and profit/loss against the funding baseline.

  With -d (RFC 3339, e.g. 2025-03-01T15:04:05Z), the account state is
  reconstructed by replaying the recorded transactions up to that instant,
  then valued at current prices.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Report as of this instant (RFC 3339). Defaults to now.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, err := DecodeAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.date == "" {
		printMarkdown(renderer.Summary(account.Summary()))
		return subcommands.ExitSuccess
	}

	at, err := time.Parse(time.RFC3339, c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing instant: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Summary(account.ReportAt(at)))
	return subcommands.ExitSuccess
}
