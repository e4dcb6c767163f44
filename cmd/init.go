package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tradesim/ledger"
)

type initCmd struct {
	amount float64
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new account ledger with an opening deposit" }
func (*initCmd) Usage() string {
	return `tsim init [-amount <opening_deposit>]

  Creates the ledger file for a new account. The opening deposit must be
  non-negative; when positive it becomes the first transaction of the log.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Opening deposit amount.")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(*ledgerFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: ledger file %q already exists\n", *ledgerFile)
		return subcommands.ExitFailure
	}

	account, err := ledger.NewAccount(ledger.M(c.amount, *currencyFlag), ledger.NewStaticOracle(nil))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	out, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer out.Close()

	if err := ledger.EncodeLog(out, account.Transactions()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created %s with opening deposit %s\n", *ledgerFile, account.CashBalance())
	return subcommands.ExitSuccess
}
