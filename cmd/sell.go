package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tradesim/ledger"
)

type sellCmd struct {
	symbol   string
	quantity int64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell held shares at the current quoted price" }
func (*sellCmd) Usage() string {
	return `tsim sell -s <symbol> -q <quantity>

  Sells shares of a held symbol at its current quote. Fails when the position
  does not cover the quantity or when the symbol has no quote.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to sell.")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares to sell.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, err := DecodeAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := account.Sell(c.symbol, ledger.Quantity(c.quantity))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if status := EncodeTransaction(tx); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Sold %d %s for %s, cash balance is %s\n",
		c.quantity, c.symbol, tx.Cash(), account.CashBalance())
	return subcommands.ExitSuccess
}
