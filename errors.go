package ledger

import "errors"

// Every failure is a rejection of the requested operation, returned to the
// immediate caller with no partial state change. Callers match with
// errors.Is; the wrapping message carries the operation context.
var (
	// ErrInvalidAmount rejects a non-positive deposit or withdrawal amount,
	// or a negative opening deposit.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidQuantity rejects a non-positive trade quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInsufficientFunds rejects a withdrawal or purchase whose cost
	// exceeds the cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientHoldings rejects a sell of more shares than held.
	ErrInsufficientHoldings = errors.New("insufficient holdings")

	// ErrUnknownSymbol is reported by a PriceOracle that has no quote for
	// the requested symbol, and surfaced verbatim by trading operations.
	ErrUnknownSymbol = errors.New("unknown symbol")
)
