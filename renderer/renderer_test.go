package renderer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tradesim/ledger"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var at = time.Date(2025, 3, 1, 9, 1, 0, 0, time.UTC)

func usd(v float64) ledger.Money { return ledger.M(v, "USD") }

// toHTML runs the rendered markdown through a GFM parser, so malformed tables
// fail the test instead of degrading silently in the terminal.
func toHTML(t *testing.T, markdown string) string {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		t.Fatalf("markdown does not parse: %v", err)
	}
	return buf.String()
}

func TestTransaction(t *testing.T) {
	tests := []struct {
		tx   ledger.Transaction
		want string
	}{
		{ledger.NewDeposit(at, usd(5_000)), "Deposited $5,000.00"},
		{ledger.NewWithdrawal(at, usd(2_000)), "Withdrew $2,000.00"},
		{ledger.NewBuy(at, "AAPL", 10, usd(150)), "Bought 10 AAPL at $150.00 for $1,500.00"},
		{ledger.NewSell(at, "AAPL", 5, usd(150)), "Sold 5 AAPL at $150.00 for $750.00"},
	}
	for _, tc := range tests {
		if got := Transaction(tc.tx); got != tc.want {
			t.Errorf("Transaction = %q, want %q", got, tc.want)
		}
	}
}

func TestTransactionsTable(t *testing.T) {
	txs := []ledger.Transaction{
		ledger.NewDeposit(at, usd(10_000)),
		ledger.NewBuy(at.Add(time.Minute), "AAPL", 10, usd(150)),
	}

	html := toHTML(t, Transactions(txs))
	if !strings.Contains(html, "<table>") {
		t.Fatalf("output is not a markdown table:\n%s", html)
	}
	for _, want := range []string{"deposit", "buy", "Bought 10 AAPL", "2025-03-01 09:01:00"} {
		if !strings.Contains(html, want) {
			t.Errorf("output misses %q:\n%s", want, html)
		}
	}
}

func TestTransactionsEmpty(t *testing.T) {
	if got := Transactions(nil); !strings.Contains(got, "No transactions recorded.") {
		t.Errorf("empty log output = %q", got)
	}
}

func TestHoldingsTable(t *testing.T) {
	report := ledger.HoldingsReport{
		At:   at,
		Cash: usd(12_250),
		Lines: []ledger.HoldingLine{
			{Symbol: "AAPL", Quantity: 5, UnitPrice: usd(150), MarketValue: usd(750), Priced: true},
			{Symbol: "TSLA", Quantity: 2},
		},
		TotalValue: usd(750),
	}

	html := toHTML(t, Holdings(report))
	if !strings.Contains(html, "<table>") {
		t.Fatalf("output is not a markdown table:\n%s", html)
	}
	for _, want := range []string{"AAPL", "$750.00", "TSLA", "n/a", "$12,250.00"} {
		if !strings.Contains(html, want) {
			t.Errorf("output misses %q:\n%s", want, html)
		}
	}
}

func TestHoldingsEmpty(t *testing.T) {
	report := ledger.HoldingsReport{At: at, Cash: usd(100), TotalValue: usd(0)}
	got := Holdings(report)
	if !strings.Contains(got, "No holdings.") {
		t.Errorf("empty report output = %q", got)
	}
	if !strings.Contains(got, "$100.00") {
		t.Errorf("empty report output misses the cash balance: %q", got)
	}
}

func TestSummary(t *testing.T) {
	s := ledger.Summary{
		At:             at,
		Cash:           usd(12_250),
		PortfolioValue: usd(750),
		InitialCapital: usd(13_000),
		ProfitOrLoss:   usd(0),
	}

	got := Summary(s)
	if !strings.Contains(got, "# Account Summary on") {
		t.Errorf("live summary heading is wrong: %q", got)
	}
	html := toHTML(t, got)
	for _, want := range []string{"<table>", "$12,250.00", "$750.00", "$13,000.00"} {
		if !strings.Contains(html, want) {
			t.Errorf("output misses %q:\n%s", want, html)
		}
	}
	// Zero profit/loss renders as a dash, not as $0.00.
	if !strings.Contains(got, "| Profit/Loss | - |") {
		t.Errorf("zero profit/loss line is wrong: %q", got)
	}
}

func TestSummaryPointInTime(t *testing.T) {
	s := ledger.Summary{
		At:             at,
		Cash:           usd(15_000),
		PortfolioValue: usd(0),
		InitialCapital: usd(15_000),
		ProfitOrLoss:   usd(0),
		PointInTime:    true,
	}

	got := Summary(s)
	if !strings.Contains(got, "# Account Summary as of") {
		t.Errorf("point-in-time heading is wrong: %q", got)
	}
	if !strings.Contains(got, "valued at current prices") {
		t.Errorf("point-in-time note missing: %q", got)
	}
}
