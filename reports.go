package ledger

import (
	"slices"
	"time"

	xmaps "golang.org/x/exp/maps"
)

// Summary is an at-a-glance view of the account: cash, the market value of
// the holdings, and the profit or loss against the funding baseline.
type Summary struct {
	At             time.Time
	Cash           Money
	PortfolioValue Money
	InitialCapital Money
	ProfitOrLoss   Money
	PointInTime    bool // true when produced by replaying up to a past instant
}

// HoldingLine details one held symbol in a holdings report.
type HoldingLine struct {
	Symbol      string
	Quantity    Quantity
	UnitPrice   Money // current quote; meaningless when Priced is false
	MarketValue Money // Quantity × UnitPrice; zero when Priced is false
	Priced      bool  // false when the oracle has no quote for the symbol
}

// HoldingsReport lists every held symbol with its best-effort valuation.
type HoldingsReport struct {
	At         time.Time
	Cash       Money
	Lines      []HoldingLine
	TotalValue Money // sum of the priced lines' market values
}

// portfolioValue sums quantity × current price over the holdings. A symbol
// whose price is unavailable is excluded rather than failing the report: a
// stale or incomplete feed degrades the number, never the call.
func portfolioValue(holdings map[string]Quantity, oracle PriceOracle, currency string) Money {
	total := M(0, currency)
	for symbol, quantity := range holdings {
		price, err := oracle.PriceOf(symbol)
		if err != nil {
			continue
		}
		total = total.Add(price.Mul(quantity))
	}
	return total
}

// PortfolioValue returns the market value of the current holdings at current
// prices. It always produces a number: unpriced symbols contribute zero.
func (a *Account) PortfolioValue() Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return portfolioValue(a.holdings, a.oracle, a.cash.Currency())
}

// ProfitOrLoss returns cash balance + portfolio value - initial capital.
// It is zero immediately after the account is opened.
func (a *Account) ProfitOrLoss() Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	pv := portfolioValue(a.holdings, a.oracle, a.cash.Currency())
	return a.cash.Add(pv).Sub(a.initialCapital)
}

// Summary reports the current account state.
func (a *Account) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	pv := portfolioValue(a.holdings, a.oracle, a.cash.Currency())
	return Summary{
		At:             a.now(),
		Cash:           a.cash,
		PortfolioValue: pv,
		InitialCapital: a.initialCapital,
		ProfitOrLoss:   a.cash.Add(pv).Sub(a.initialCapital),
	}
}

// ReportAt reports the account as of a past instant: transaction facts up to
// the cutoff, valued at current prices.
func (a *Account) ReportAt(at time.Time) Summary {
	return a.SnapshotAt(at).Summary()
}

// HoldingsReport details every held symbol: quantity, current unit price and
// extended value. Price fields are omitted (Priced=false) for a symbol the
// oracle cannot quote; the line itself is always present.
func (a *Account) HoldingsReport() HoldingsReport {
	a.mu.Lock()
	defer a.mu.Unlock()

	report := HoldingsReport{
		At:         a.now(),
		Cash:       a.cash,
		TotalValue: M(0, a.cash.Currency()),
	}
	symbols := xmaps.Keys(a.holdings)
	slices.Sort(symbols)
	for _, symbol := range symbols {
		quantity := a.holdings[symbol]
		line := HoldingLine{Symbol: symbol, Quantity: quantity}
		if price, err := a.oracle.PriceOf(symbol); err == nil {
			line.UnitPrice = price
			line.MarketValue = price.Mul(quantity)
			line.Priced = true
			report.TotalValue = report.TotalValue.Add(line.MarketValue)
		}
		report.Lines = append(report.Lines, line)
	}
	return report
}
