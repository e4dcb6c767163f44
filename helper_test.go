package ledger

import (
	"testing"
	"time"
)

var testStart = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func usd(v float64) Money { return M(v, "USD") }

// quotes returns the fixed quote table the tests trade against.
func quotes() *StaticOracle {
	return NewStaticOracle(map[string]Money{
		"AAPL":  usd(150),
		"TSLA":  usd(250),
		"GOOGL": usd(2800),
	})
}

// tick returns a deterministic clock starting after start and advancing by
// step on every call.
func tick(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

// newTestAccount opens an account on a deterministic clock, funded with an
// opening deposit. Every record gets a distinct, increasing timestamp.
func newTestAccount(t *testing.T, opening float64, oracle PriceOracle) *Account {
	t.Helper()
	a, err := NewAccount(usd(0), oracle)
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}
	a.now = tick(testStart, time.Minute)
	if opening > 0 {
		if _, err := a.Deposit(usd(opening)); err != nil {
			t.Fatalf("opening deposit of %v: %v", opening, err)
		}
	}
	return a
}

// failingOracle fails every quote with a fixed error.
type failingOracle struct{ err error }

func (o failingOracle) PriceOf(string) (Money, error) { return Money{}, o.err }

// countingOracle counts quote requests on its way to the wrapped oracle.
type countingOracle struct {
	PriceOracle
	calls int
}

func (o *countingOracle) PriceOf(symbol string) (Money, error) {
	o.calls++
	return o.PriceOracle.PriceOf(symbol)
}

func checkMoney(t *testing.T, label string, got, want Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}
