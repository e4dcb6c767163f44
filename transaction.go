package ledger

import (
	"time"
)

// Kind is a typed string identifying a transaction record.
type Kind string

// The four kinds of record the ledger appends. The set is closed: replaying
// these four effects from an empty account reproduces any reachable state.
const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindBuy        Kind = "buy"
	KindSell       Kind = "sell"
)

// Transaction is the common interface for the immutable records appended to
// an account's log, one per successful mutating operation.
type Transaction interface {
	What() Kind      // What returns the kind of the transaction (e.g. "buy").
	When() time.Time // When returns the instant assigned at append time.
	Cash() Money     // Cash returns the cash moved (amount or trade notional).
	Equal(Transaction) bool
}

type baseTx struct {
	Command Kind      `json:"command"`
	Time    time.Time `json:"time"`
	Amount  Money     `json:"-"`
}

func (t baseTx) What() Kind      { return t.Command }
func (t baseTx) When() time.Time { return t.Time }
func (t baseTx) Cash() Money     { return t.Amount }

// MarshalJSON implements the json.Marshaler interface for baseTx.
func (t baseTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("time", t.Time)
	w.EmbedFrom(t.Amount)
	return w.MarshalJSON()
}

// tradeTx is the component shared by the two trading records.
type tradeTx struct {
	baseTx
	Symbol    string   `json:"symbol"`
	Quantity  Quantity `json:"quantity"`
	UnitPrice Money    `json:"-"`
}

// MarshalJSON implements the json.Marshaler interface for tradeTx.
func (t tradeTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Append("symbol", t.Symbol)
	w.Append("quantity", t.Quantity)
	w.Append("unitPrice", t.UnitPrice.value)
	return w.MarshalJSON()
}

// Deposit records external cash added to the account.
type Deposit struct {
	baseTx
}

// NewDeposit creates a new Deposit record.
func NewDeposit(at time.Time, amount Money) Deposit {
	return Deposit{baseTx: baseTx{Command: KindDeposit, Time: at, Amount: amount}}
}

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.Command == o.Command && t.Time.Equal(o.Time) && t.Amount.Equal(o.Amount)
}

// Withdrawal records external cash removed from the account.
type Withdrawal struct {
	baseTx
}

// NewWithdrawal creates a new Withdrawal record.
func NewWithdrawal(at time.Time, amount Money) Withdrawal {
	return Withdrawal{baseTx: baseTx{Command: KindWithdrawal, Time: at, Amount: amount}}
}

func (t Withdrawal) Equal(other Transaction) bool {
	o, ok := other.(Withdrawal)
	return ok && t.Command == o.Command && t.Time.Equal(o.Time) && t.Amount.Equal(o.Amount)
}

// Buy records the purchase of shares: Amount is the notional
// (UnitPrice × Quantity) debited from cash.
type Buy struct {
	tradeTx
}

// NewBuy creates a new Buy record. The recorded amount is the notional at
// the quoted unit price.
func NewBuy(at time.Time, symbol string, quantity Quantity, unitPrice Money) Buy {
	return Buy{tradeTx: tradeTx{
		baseTx:    baseTx{Command: KindBuy, Time: at, Amount: unitPrice.Mul(quantity)},
		Symbol:    symbol,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}}
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.equalTrade(o.tradeTx)
}

// Sell records the sale of shares: Amount is the notional
// (UnitPrice × Quantity) credited to cash.
type Sell struct {
	tradeTx
}

// NewSell creates a new Sell record. The recorded amount is the notional at
// the quoted unit price.
func NewSell(at time.Time, symbol string, quantity Quantity, unitPrice Money) Sell {
	return Sell{tradeTx: tradeTx{
		baseTx:    baseTx{Command: KindSell, Time: at, Amount: unitPrice.Mul(quantity)},
		Symbol:    symbol,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}}
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.equalTrade(o.tradeTx)
}

func (t tradeTx) equalTrade(o tradeTx) bool {
	return t.Command == o.Command && t.Time.Equal(o.Time) && t.Amount.Equal(o.Amount) &&
		t.Symbol == o.Symbol && t.Quantity == o.Quantity && t.UnitPrice.Equal(o.UnitPrice)
}
