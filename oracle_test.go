package ledger

import (
	"errors"
	"strings"
	"testing"
)

func TestStaticOraclePriceOf(t *testing.T) {
	oracle := quotes()

	price, err := oracle.PriceOf("AAPL")
	if err != nil {
		t.Fatalf("PriceOf(AAPL): %v", err)
	}
	checkMoney(t, "PriceOf(AAPL)", price, usd(150))

	_, err = oracle.PriceOf("MSFT")
	if !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("PriceOf(MSFT) error = %v, want ErrUnknownSymbol", err)
	}
	if !strings.Contains(err.Error(), "MSFT") {
		t.Errorf("error %q does not name the symbol", err)
	}
}

func TestStaticOracleSet(t *testing.T) {
	oracle := NewStaticOracle(nil)
	if _, err := oracle.PriceOf("AAPL"); !errors.Is(err, ErrUnknownSymbol) {
		t.Fatalf("PriceOf on empty oracle error = %v, want ErrUnknownSymbol", err)
	}

	oracle.Set("AAPL", usd(150))
	oracle.Set("AAPL", usd(155)) // re-quote

	price, err := oracle.PriceOf("AAPL")
	if err != nil {
		t.Fatalf("PriceOf(AAPL): %v", err)
	}
	checkMoney(t, "PriceOf(AAPL)", price, usd(155))
}

func TestStaticOracleIsolation(t *testing.T) {
	table := map[string]Money{"AAPL": usd(150)}
	oracle := NewStaticOracle(table)

	table["AAPL"] = usd(1) // caller keeps mutating its own table
	price, err := oracle.PriceOf("AAPL")
	if err != nil {
		t.Fatalf("PriceOf(AAPL): %v", err)
	}
	checkMoney(t, "PriceOf(AAPL)", price, usd(150))

	oracle.Prices()["AAPL"] = usd(2)
	price, _ = oracle.PriceOf("AAPL")
	checkMoney(t, "PriceOf(AAPL) after Prices mutation", price, usd(150))
}

func TestStaticOracleSymbols(t *testing.T) {
	got := quotes().Symbols()
	want := []string{"AAPL", "GOOGL", "TSLA"}
	if len(got) != len(want) {
		t.Fatalf("Symbols = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Symbols = %v, want %v", got, want)
		}
	}
}
