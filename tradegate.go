package ledger

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// TradegateOracle is a PriceOracle that fetches the latest traded price from
// Tradegate for symbols mapped to their ISIN. Any fetch or parse failure for
// a symbol surfaces as ErrUnknownSymbol: a symbol the exchange cannot quote
// is, for the ledger, unquoted.
type TradegateOracle struct {
	client   *http.Client
	currency string
	isins    map[string]string // symbol → ISIN
}

// NewTradegateOracle creates a live oracle for the given symbol→ISIN table.
// Responses are cached on disk with a daily expiry.
func NewTradegateOracle(isins map[string]string, currency string) *TradegateOracle {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &TradegateOracle{
		client:   daily(),
		currency: currency,
		isins:    maps.Clone(isins),
	}
}

// PriceOf fetches the latest traded price for symbol.
func (o *TradegateOracle) PriceOf(symbol string) (Money, error) {
	isin, ok := o.isins[symbol]
	if !ok {
		return Money{}, fmt.Errorf("%w: %q has no ISIN mapping", ErrUnknownSymbol, symbol)
	}
	val, err := o.latest(symbol, isin)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q: %v", ErrUnknownSymbol, symbol, err)
	}
	return M(val, o.currency), nil
}

// latest reads the last exchanged price for an ISIN. 'last' moves slower
// than the bid, but the bid can be 0, so 'last' is preferred.
func (o *TradegateOracle) latest(name, isin string) (float64, error) {
	addr := "https://www.tradegate.de/refresh.php?isin=" + isin

	var jobj any
	if err := jwget(o.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error retrieving %q: %w", name, err)
	}

	jval, err := jsonpath.Get("$.last", jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", name, err)
	}
	if s, ok := jval.(string); ok && s == "./." {
		// Tradegate shows an empty last this way, use the bid instead.
		if jval, err = jsonpath.Get("$.bid", jobj); err != nil {
			return 0, fmt.Errorf("error parsing %q: %w", name, err)
		}
	}

	val, ok := jval.(float64)
	if !ok {
		// sometimes, this weird API returns the value as a string
		sval, ok := jval.(string)
		if !ok {
			return 0, fmt.Errorf("cannot read value from %q: neither a float nor a string", name)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot read value from %q: invalid string %q: %w", name, sval, err)
		}
	}
	if val == 0 {
		// sometimes the bid is empty and returns 0
		return 0, fmt.Errorf("empty quote for %s, no value to return", name)
	}
	return val, nil
}

// diskCache implements a simple disk cache for HTTP responses.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	// best effort, a missed write is refetched next time
	_ = c.put(key, resp)
	return resp, nil
}

// get retrieves a cached response from disk.
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache.
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// daily returns a client with a cache all with daily expire.
func daily() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
