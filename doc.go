// Package ledger implements a single-account trading ledger for a simulated
// brokerage account.
//
// An [Account] owns a cash balance, a map of share holdings and an
// append-only transaction log. It is mutated exclusively through five
// operations (create, deposit, withdraw, buy, sell); every other query is
// derived from that state, and the transaction log alone is sufficient to
// rebuild it (see [Replay]).
//
// Current unit prices come from a [PriceOracle], an external collaborator.
// [StaticOracle] is the fixed-table reference implementation used in tests
// and simulations; [TradegateOracle] fetches live quotes.
package ledger
