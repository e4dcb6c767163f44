package ledger

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"
)

// DefaultCurrency is assumed when an amount carries no currency code.
const DefaultCurrency = "USD"

// Account is a single-account trading ledger: it owns one cash balance, the
// map of current holdings and the append-only transaction log, and enforces
// every mutation rule.
//
// Each public operation is atomic with respect to itself: it validates its
// inputs, consults the price oracle at most once, mutates state fully or not
// at all, and appends exactly one transaction record on success. Operations
// against distinct Account instances are fully independent.
type Account struct {
	mu     sync.Mutex
	oracle PriceOracle

	cash           Money
	initialCapital Money
	holdings       map[string]Quantity
	transactions   []Transaction

	now  func() time.Time // clock for append timestamps, swappable in tests
	last time.Time        // last assigned timestamp, keeps the log monotonic
}

// NewAccount creates an account funded with an opening deposit.
//
// The opening deposit must be non-negative ([ErrInvalidAmount] otherwise);
// it seeds both the cash balance and the initial capital, and when positive
// it becomes the first transaction of the log.
func NewAccount(opening Money, oracle PriceOracle) (*Account, error) {
	if opening.IsNegative() {
		return nil, fmt.Errorf("open account: %w: opening deposit %s", ErrInvalidAmount, opening)
	}
	if opening.Currency() == "" {
		opening.cur = DefaultCurrency
	}

	a := &Account{
		oracle:   oracle,
		cash:     M(0, opening.Currency()),
		holdings: make(map[string]Quantity),
		now:      time.Now,
	}
	a.initialCapital = a.cash
	if opening.IsPositive() {
		a.cash = opening
		a.initialCapital = opening
		a.append(NewDeposit(a.stamp(), opening))
	}
	return a, nil
}

// stamp assigns the timestamp for the next record. Timestamps are
// monotonically non-decreasing across the log even if the clock steps back.
func (a *Account) stamp() time.Time {
	t := a.now()
	if t.Before(a.last) {
		t = a.last
	}
	a.last = t
	return t
}

func (a *Account) append(tx Transaction) {
	a.transactions = append(a.transactions, tx)
}

// adopt validates an amount's currency against the account's, filling in the
// account currency when the amount carries none. Cross-currency amounts are
// rejected with [ErrInvalidAmount]: multi-currency is not modeled.
func (a *Account) adopt(op string, amount Money) (Money, error) {
	switch c := amount.Currency(); {
	case c == "":
		amount.cur = a.cash.Currency()
	case c != a.cash.Currency():
		return Money{}, fmt.Errorf("%s: %w: amount in %s on a %s account",
			op, ErrInvalidAmount, c, a.cash.Currency())
	}
	return amount, nil
}

// Deposit adds external cash to the account and raises the profit/loss
// baseline by the same amount. The amount must be strictly positive.
func (a *Account) Deposit(amount Money) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !amount.IsPositive() {
		return nil, fmt.Errorf("deposit: %w: amount %s must be positive", ErrInvalidAmount, amount)
	}
	amount, err := a.adopt("deposit", amount)
	if err != nil {
		return nil, err
	}
	a.cash = a.cash.Add(amount)
	a.initialCapital = a.initialCapital.Add(amount)

	tx := NewDeposit(a.stamp(), amount)
	a.append(tx)
	return tx, nil
}

// Withdraw removes external cash from the account and lowers the profit/loss
// baseline by the same amount. The amount must be strictly positive and no
// greater than the cash balance; no negative balance is ever permitted.
func (a *Account) Withdraw(amount Money) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !amount.IsPositive() {
		return nil, fmt.Errorf("withdraw: %w: amount %s must be positive", ErrInvalidAmount, amount)
	}
	amount, err := a.adopt("withdraw", amount)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(a.cash) {
		return nil, fmt.Errorf("withdraw: %w: amount %s exceeds cash balance %s", ErrInsufficientFunds, amount, a.cash)
	}
	a.cash = a.cash.Sub(amount)
	a.initialCapital = a.initialCapital.Sub(amount)

	tx := NewWithdrawal(a.stamp(), amount)
	a.append(tx)
	return tx, nil
}

// Buy purchases quantity shares of symbol at the oracle's current price.
// The quoted price is used for both the cash debit and the recorded unit
// price. An oracle failure is propagated unchanged.
func (a *Account) Buy(symbol string, quantity Quantity) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !quantity.IsPositive() {
		return nil, fmt.Errorf("buy %s: %w: quantity %d must be positive", symbol, ErrInvalidQuantity, quantity)
	}
	price, err := a.oracle.PriceOf(symbol)
	if err != nil {
		return nil, err
	}
	cost := price.Mul(quantity)
	if cost.GreaterThan(a.cash) {
		return nil, fmt.Errorf("buy %d %s: %w: cost %s exceeds cash balance %s",
			quantity, symbol, ErrInsufficientFunds, cost, a.cash)
	}
	a.cash = a.cash.Sub(cost)
	a.holdings[symbol] += quantity

	tx := NewBuy(a.stamp(), symbol, quantity, price)
	a.append(tx)
	return tx, nil
}

// Sell sells quantity shares of symbol at the oracle's current price.
// The position must cover the quantity. An oracle that no longer quotes the
// symbol blocks the sale: pricing and tradability are coupled.
func (a *Account) Sell(symbol string, quantity Quantity) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !quantity.IsPositive() {
		return nil, fmt.Errorf("sell %s: %w: quantity %d must be positive", symbol, ErrInvalidQuantity, quantity)
	}
	if held := a.holdings[symbol]; held < quantity {
		return nil, fmt.Errorf("sell %d %s: %w: only %d held",
			quantity, symbol, ErrInsufficientHoldings, held)
	}
	price, err := a.oracle.PriceOf(symbol)
	if err != nil {
		return nil, err
	}
	revenue := price.Mul(quantity)
	a.cash = a.cash.Add(revenue)
	a.holdings[symbol] -= quantity
	if a.holdings[symbol] == 0 {
		delete(a.holdings, symbol)
	}

	tx := NewSell(a.stamp(), symbol, quantity, price)
	a.append(tx)
	return tx, nil
}

// CashBalance returns the current cash balance. It is never negative.
func (a *Account) CashBalance() Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cash
}

// InitialCapital returns the cumulative net external funding (deposits minus
// withdrawals), the baseline for profit/loss.
func (a *Account) InitialCapital() Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initialCapital
}

// Currency returns the account's currency code.
func (a *Account) Currency() string { return a.cash.Currency() }

// Holdings returns a copy of the holdings map. A symbol is present only
// while its quantity is strictly positive.
func (a *Account) Holdings() map[string]Quantity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return maps.Clone(a.holdings)
}

// Transactions returns a copy of the transaction log, in chronological
// order.
func (a *Account) Transactions() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.transactions)
}
