// Package renderer renders ledger reports to markdown strings, ready for
// terminal display or publication.
package renderer

import (
	"fmt"
	"strings"

	"github.com/tradesim/ledger"
)

const stampFormat = "2006-01-02 15:04:05"

// Transaction renders a one-line description of a transaction.
func Transaction(tx ledger.Transaction) string {
	switch v := tx.(type) {
	case ledger.Buy:
		return fmt.Sprintf("Bought %d %s at %s for %s", v.Quantity, v.Symbol, v.UnitPrice, v.Amount)
	case ledger.Sell:
		return fmt.Sprintf("Sold %d %s at %s for %s", v.Quantity, v.Symbol, v.UnitPrice, v.Amount)
	case ledger.Deposit:
		return fmt.Sprintf("Deposited %s", v.Amount)
	case ledger.Withdrawal:
		return fmt.Sprintf("Withdrew %s", v.Amount)
	default:
		return string(tx.What())
	}
}

// Transactions renders the transaction log as a markdown table, in
// chronological order.
func Transactions(txs []ledger.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions recorded.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Time | Kind | Cash Moved | Detail |")
	fmt.Fprintln(&b, "|:---|:---|---:|:---|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			tx.When().Format(stampFormat),
			tx.What(),
			tx.Cash(),
			Transaction(tx),
		)
	}
	return b.String()
}

// Holdings renders a holdings report as a markdown table. Unpriced symbols
// keep their line but show no price fields.
func Holdings(r ledger.HoldingsReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings on %s\n\n", r.At.Format(stampFormat))
	if len(r.Lines) == 0 {
		fmt.Fprintln(&b, "No holdings.")
	} else {
		fmt.Fprintln(&b, "| Symbol | Quantity | Unit Price | Market Value |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|")
		for _, line := range r.Lines {
			price, value := "n/a", "n/a"
			if line.Priced {
				price, value = line.UnitPrice.String(), line.MarketValue.String()
			}
			fmt.Fprintf(&b, "| %s | %d | %s | %s |\n", line.Symbol, line.Quantity, price, value)
		}
		fmt.Fprintf(&b, "\nTotal market value: %s\n", r.TotalValue)
	}
	fmt.Fprintf(&b, "\nCash balance: %s\n", r.Cash)
	return b.String()
}

// Summary renders an account summary as markdown.
func Summary(s ledger.Summary) string {
	var b strings.Builder
	if s.PointInTime {
		fmt.Fprintf(&b, "# Account Summary as of %s\n\n", s.At.Format(stampFormat))
	} else {
		fmt.Fprintf(&b, "# Account Summary on %s\n\n", s.At.Format(stampFormat))
	}
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Cash Balance | %s |\n", s.Cash)
	fmt.Fprintf(&b, "| Portfolio Value | %s |\n", s.PortfolioValue)
	fmt.Fprintf(&b, "| Initial Capital | %s |\n", s.InitialCapital)
	fmt.Fprintf(&b, "| Profit/Loss | %s |\n", s.ProfitOrLoss.SignedString())
	if s.PointInTime {
		fmt.Fprintln(&b, "\nHoldings reconstructed at the report instant are valued at current prices.")
	}
	return b.String()
}
