package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// amountTx is a specialized struct to decode the two fields a Money
// serializes to.
type amountTx struct {
	Command  Kind            `json:"command"`
	Time     time.Time       `json:"time"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a amountTx) base() baseTx {
	return baseTx{Command: a.Command, Time: a.Time, Amount: M(a.Amount, a.Currency)}
}

// tradeTxFields adds the trade-only fields for decoding buy and sell lines.
type tradeTxFields struct {
	amountTx
	Symbol    string          `json:"symbol"`
	Quantity  Quantity        `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (a tradeTxFields) trade() tradeTx {
	return tradeTx{
		baseTx:    a.base(),
		Symbol:    a.Symbol,
		Quantity:  a.Quantity,
		UnitPrice: M(a.UnitPrice, a.Currency),
	}
}

// EncodeTransaction marshals a single transaction to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLog writes a transaction log to an io.Writer in JSONL format, one
// ordered-key JSON object per line, in log order.
func EncodeLog(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLog reads a stream of JSONL data, decodes each line into the
// appropriate transaction record, and returns them in the order read, which
// for a well-formed log is chronological order.
//
// Decoded records carry their recorded amounts verbatim: historical cash
// flows are fixed facts and are never recomputed from prices.
func DecodeLog(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command Kind `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var decodedTx Transaction
		switch identifier.Command {
		case KindDeposit:
			var temp amountTx
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decodedTx = Deposit{baseTx: temp.base()}
		case KindWithdrawal:
			var temp amountTx
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decodedTx = Withdrawal{baseTx: temp.base()}
		case KindBuy:
			var temp tradeTxFields
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decodedTx = Buy{tradeTx: temp.trade()}
		case KindSell:
			var temp tradeTxFields
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, err
			}
			decodedTx = Sell{tradeTx: temp.trade()}
		default:
			return nil, fmt.Errorf("unknown transaction command: %q", identifier.Command)
		}

		txs = append(txs, decodedTx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return txs, nil
}
