package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tradesim/ledger"
)

type withdrawCmd struct {
	amount float64
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "remove external cash from the account" }
func (*withdrawCmd) Usage() string {
	return `tsim withdraw -amount <amount>

  Withdraws cash from the account. The amount must be strictly positive and
  no greater than the cash balance. Withdrawals lower the profit/loss
  baseline.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Amount to withdraw.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	account, err := DecodeAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := account.Withdraw(ledger.M(c.amount, *currencyFlag))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if status := EncodeTransaction(tx); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Withdrew %s, cash balance is %s\n", tx.Cash(), account.CashBalance())
	return subcommands.ExitSuccess
}
