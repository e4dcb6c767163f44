package ledger

import (
	"fmt"
	"maps"
	"slices"

	xmaps "golang.org/x/exp/maps"
)

// PriceOracle is the external source of current unit prices, keyed by symbol.
//
// PriceOf returns the current unit price for a symbol, or an error wrapping
// [ErrUnknownSymbol] when the symbol has no quote. Implementations must be
// deterministic for the duration of a single ledger operation: the account
// calls the oracle at most once per trade and uses that single quote for
// both the cash effect and the recorded unit price.
type PriceOracle interface {
	PriceOf(symbol string) (Money, error)
}

// StaticOracle is a PriceOracle backed by a fixed in-memory table. It is the
// reference implementation for tests and simulations, and the natural target
// for quotes loaded from a file.
type StaticOracle struct {
	prices map[string]Money
}

// NewStaticOracle creates a StaticOracle quoting the given table. The table
// is copied; later mutation of the argument does not affect the oracle.
func NewStaticOracle(prices map[string]Money) *StaticOracle {
	return &StaticOracle{prices: maps.Clone(prices)}
}

// PriceOf returns the quoted price for symbol.
func (o *StaticOracle) PriceOf(symbol string) (Money, error) {
	p, ok := o.prices[symbol]
	if !ok {
		return Money{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, symbol)
	}
	return p, nil
}

// Set quotes (or re-quotes) a symbol.
func (o *StaticOracle) Set(symbol string, price Money) {
	if o.prices == nil {
		o.prices = make(map[string]Money)
	}
	o.prices[symbol] = price
}

// Symbols returns the quoted symbols in lexical order.
func (o *StaticOracle) Symbols() []string {
	symbols := xmaps.Keys(o.prices)
	slices.Sort(symbols)
	return symbols
}

// Prices returns a copy of the quote table.
func (o *StaticOracle) Prices() map[string]Money {
	return maps.Clone(o.prices)
}
