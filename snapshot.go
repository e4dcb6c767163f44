package ledger

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// state is the part of an account that transaction effects mutate. It is
// the lowest-level view from which replays rebuild an account.
type state struct {
	cash           Money
	initialCapital Money
	holdings       map[string]Quantity
}

func emptyState(currency string) *state {
	return &state{
		cash:           M(0, currency),
		initialCapital: M(0, currency),
		holdings:       make(map[string]Quantity),
	}
}

// apply replays one record's effect, using the recorded amounts only. It
// rejects any record whose effect would break an invariant: a valid log can
// never produce a negative balance or a non-positive holding.
func (s *state) apply(tx Transaction) error {
	switch v := tx.(type) {
	case Deposit:
		s.cash = s.cash.Add(v.Amount)
		s.initialCapital = s.initialCapital.Add(v.Amount)
	case Withdrawal:
		s.cash = s.cash.Sub(v.Amount)
		s.initialCapital = s.initialCapital.Sub(v.Amount)
	case Buy:
		s.cash = s.cash.Sub(v.Amount)
		s.holdings[v.Symbol] += v.Quantity
	case Sell:
		s.cash = s.cash.Add(v.Amount)
		held := s.holdings[v.Symbol]
		if held < v.Quantity {
			return fmt.Errorf("sell of %d %s exceeds %d held", v.Quantity, v.Symbol, held)
		}
		s.holdings[v.Symbol] -= v.Quantity
		if s.holdings[v.Symbol] == 0 {
			delete(s.holdings, v.Symbol)
		}
	default:
		return fmt.Errorf("unsupported transaction kind %q", tx.What())
	}
	if s.cash.IsNegative() {
		return fmt.Errorf("%s on %s drives cash balance negative (%s)", tx.What(), tx.When().Format(time.RFC3339), s.cash)
	}
	return nil
}

// Replay rebuilds an account from a chronological transaction log, applying
// each record's effect from the empty state. Replaying an account's own log
// reproduces its cash balance and holdings exactly.
//
// The log must be in chronological order and every effect must keep the
// invariants; otherwise the log is corrupt and an error is returned.
func Replay(txs []Transaction, oracle PriceOracle) (*Account, error) {
	currency := DefaultCurrency
	if len(txs) > 0 && txs[0].Cash().Currency() != "" {
		currency = txs[0].Cash().Currency()
	}

	s := emptyState(currency)
	var last time.Time
	for i, tx := range txs {
		if tx.When().Before(last) {
			return nil, fmt.Errorf("replay: transaction %d (%s) is out of order", i, tx.What())
		}
		last = tx.When()
		if err := s.apply(tx); err != nil {
			return nil, fmt.Errorf("replay: transaction %d: %w", i, err)
		}
	}

	return &Account{
		oracle:         oracle,
		cash:           s.cash,
		initialCapital: s.initialCapital,
		holdings:       s.holdings,
		transactions:   slices.Clone(txs),
		now:            time.Now,
		last:           last,
	}, nil
}

// Snapshot is the account state reconstructed at a past instant: every
// recorded transaction with a timestamp at or before the cutoff is applied,
// at its recorded amounts, and later activity is ignored. Valuation uses
// current prices, since no historical price series is modeled.
type Snapshot struct {
	at     time.Time
	state  *state
	oracle PriceOracle
}

// SnapshotAt reconstructs the account state as of the given instant.
func (a *Account) SnapshotAt(at time.Time) *Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := emptyState(a.cash.Currency())
	for _, tx := range a.transactions {
		if tx.When().After(at) {
			break
		}
		// The log was appended by validated operations, effects cannot fail.
		s.apply(tx)
	}
	return &Snapshot{at: at, state: s, oracle: a.oracle}
}

// At returns the snapshot's cutoff instant.
func (s *Snapshot) At() time.Time { return s.at }

// CashBalance returns the cash balance as of the snapshot instant.
func (s *Snapshot) CashBalance() Money { return s.state.cash }

// InitialCapital returns the net external funding as of the snapshot instant.
func (s *Snapshot) InitialCapital() Money { return s.state.initialCapital }

// Holdings returns a copy of the holdings as of the snapshot instant.
func (s *Snapshot) Holdings() map[string]Quantity { return maps.Clone(s.state.holdings) }

// PortfolioValue values the reconstructed holdings at current prices.
// A symbol the oracle no longer quotes contributes zero.
func (s *Snapshot) PortfolioValue() Money {
	return portfolioValue(s.state.holdings, s.oracle, s.state.cash.Currency())
}

// ProfitOrLoss returns cash + portfolio value - initial capital, all as of
// the snapshot instant except the valuation prices, which are current.
func (s *Snapshot) ProfitOrLoss() Money {
	return s.state.cash.Add(s.PortfolioValue()).Sub(s.state.initialCapital)
}

// Summary reports the snapshot as a point-in-time Summary.
func (s *Snapshot) Summary() Summary {
	pv := s.PortfolioValue()
	return Summary{
		At:             s.at,
		Cash:           s.state.cash,
		PortfolioValue: pv,
		InitialCapital: s.state.initialCapital,
		ProfitOrLoss:   s.state.cash.Add(pv).Sub(s.state.initialCapital),
		PointInTime:    true,
	}
}
