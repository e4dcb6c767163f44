package ledger

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// cannedTransport serves a fixed JSON body to every request.
type cannedTransport struct{ body string }

func (c cannedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Body:       io.NopCloser(strings.NewReader(c.body)),
		Request:    req,
	}, nil
}

func cannedOracle(body string) *TradegateOracle {
	return &TradegateOracle{
		client:   &http.Client{Transport: cannedTransport{body: body}},
		currency: "EUR",
		isins:    map[string]string{"SAP": "DE0007164600"},
	}
}

func TestTradegateOraclePriceOf(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Money
	}{
		{
			name: "plain last",
			body: `{"bid": 181.10, "ask": 181.30, "last": 181.22}`,
			want: M(181.22, "EUR"),
		},
		{
			name: "empty last falls back to bid",
			body: `{"bid": 181.10, "ask": 181.30, "last": "./."}`,
			want: M(181.10, "EUR"),
		},
		{
			name: "comma decimal string",
			body: `{"bid": 0, "ask": 0, "last": "1 181,22"}`,
			want: M(1181.22, "EUR"),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			price, err := cannedOracle(tc.body).PriceOf("SAP")
			if err != nil {
				t.Fatalf("PriceOf: %v", err)
			}
			checkMoney(t, "PriceOf(SAP)", price, tc.want)
		})
	}
}

func TestTradegateOracleFailures(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		body   string
	}{
		{"no isin mapping", "AAPL", `{"last": 181.22}`},
		{"zero quote", "SAP", `{"bid": 0, "last": "./."}`},
		{"unreadable value", "SAP", `{"last": true}`},
		{"not json", "SAP", `<html>maintenance</html>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cannedOracle(tc.body).PriceOf(tc.symbol)
			if !errors.Is(err, ErrUnknownSymbol) {
				t.Errorf("PriceOf(%s) error = %v, want ErrUnknownSymbol", tc.symbol, err)
			}
		})
	}
}
