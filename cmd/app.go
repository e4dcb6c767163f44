// Package cmd implements the CLI application driving a trading ledger.
//
// The ledger core is in-memory only; this package owns all the file I/O:
// it decodes the JSONL ledger file, replays it into an account, applies one
// operation, and appends the resulting record back to the file.
package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/tradesim/ledger"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "account")
	c.Register(&depositCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&txCmd{}, "reports")
	c.Register(&holdingCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&fetchCmd{}, "quotes")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var quotesFile = flag.String("quotes-file", "quotes.json", "Path to the current quotes table (JSON, symbol to unit price)")
var currencyFlag = flag.String("currency", ledger.DefaultCurrency, "Currency code used for amounts")

// loadOracle reads the quotes file into the fixed-table oracle consulted by
// every trading and valuation command.
func loadOracle() (*ledger.StaticOracle, error) {
	content, err := os.ReadFile(*quotesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, quotes file %q does not exist, starting with no quotes", *quotesFile)
		return ledger.NewStaticOracle(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read quotes file %q: %w", *quotesFile, err)
	}

	var table map[string]decimal.Decimal
	if err := json.Unmarshal(content, &table); err != nil {
		return nil, fmt.Errorf("could not parse quotes file %q: %w", *quotesFile, err)
	}

	oracle := ledger.NewStaticOracle(nil)
	for symbol, price := range table {
		oracle.Set(symbol, ledger.M(price, *currencyFlag))
	}
	return oracle, nil
}

// saveQuotes writes the oracle's table back to the quotes file.
func saveQuotes(oracle *ledger.StaticOracle) error {
	table := make(map[string]decimal.Decimal)
	for symbol, price := range oracle.Prices() {
		table[symbol] = price.Decimal()
	}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal quotes: %w", err)
	}
	if err := os.WriteFile(*quotesFile, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("could not write quotes file %q: %w", *quotesFile, err)
	}
	return nil
}

// DecodeAccount reads the ledger file and replays it into an Account backed
// by the quotes-file oracle. The -currency flag must match the ledger's
// currency, so that every amount the commands build is in the right one.
func DecodeAccount() (*ledger.Account, error) {
	oracle, err := loadOracle()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("ledger file %q does not exist, run 'init' first", *ledgerFile)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	txs, err := ledger.DecodeLog(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", *ledgerFile, err)
	}
	if len(txs) == 0 {
		// An empty log has no currency yet; the flag decides it.
		return ledger.NewAccount(ledger.M(0, *currencyFlag), oracle)
	}
	account, err := ledger.Replay(txs, oracle)
	if err != nil {
		return nil, fmt.Errorf("ledger file %q is corrupt: %w", *ledgerFile, err)
	}
	if got := account.Currency(); got != *currencyFlag {
		return nil, fmt.Errorf("ledger file %q is in %s, not %s: pass -currency %s", *ledgerFile, got, *currencyFlag, got)
	}
	return account, nil
}

// EncodeTransaction appends a single transaction into the app ledger file.
func EncodeTransaction(tx ledger.Transaction) subcommands.ExitStatus {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := ledger.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown to the terminal. It degrades to the raw
// markdown when the terminal renderer cannot be used.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(md)
}
