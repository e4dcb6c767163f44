package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tradesim/ledger"
)

type buyCmd struct {
	symbol   string
	quantity int64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the current quoted price" }
func (*buyCmd) Usage() string {
	return `tsim buy -s <symbol> -q <quantity>

  Buys shares of a symbol at its current quote. Fails when the symbol has no
  quote or when the cost exceeds the cash balance.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Symbol to buy.")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares to buy.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, err := DecodeAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := account.Buy(c.symbol, ledger.Quantity(c.quantity))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if status := EncodeTransaction(tx); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Bought %d %s for %s, cash balance is %s\n",
		c.quantity, c.symbol, tx.Cash(), account.CashBalance())
	return subcommands.ExitSuccess
}
