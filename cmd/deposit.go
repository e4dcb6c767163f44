package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tradesim/ledger"
)

type depositCmd struct {
	amount float64
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "add external cash to the account" }
func (*depositCmd) Usage() string {
	return `tsim deposit -amount <amount>

  Deposits cash into the account. The amount must be strictly positive.
  Deposits raise the profit/loss baseline.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Amount to deposit.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, err := DecodeAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := account.Deposit(ledger.M(c.amount, *currencyFlag))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if status := EncodeTransaction(tx); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Deposited %s, cash balance is %s\n", tx.Cash(), account.CashBalance())
	return subcommands.ExitSuccess
}
