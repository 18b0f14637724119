// Package clients contains exchange API clients.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/valyala/fastjson"

	"dcxbot/internal/domain"
	"dcxbot/internal/signer"
)

const (
	// DefaultBaseURL is the production exchange endpoint.
	DefaultBaseURL = "https://api.coindcx.com"

	tickerPath      = "/exchange/ticker"
	orderCreatePath = "/exchange/v1/orders/create"

	requestTimeout = 10 * time.Second
)

// CoinDCXClient talks to the exchange REST API: the public ticker endpoint and
// the authenticated order-create endpoint share one HTTP transport.
type CoinDCXClient struct {
	baseURL string
	http    *http.Client
	signer  *signer.Signer
	parser  fastjson.Parser
}

// NewCoinDCXClient creates a client. The signer may be nil only for callers
// that never submit orders.
func NewCoinDCXClient(baseURL string, sig *signer.Signer) *CoinDCXClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &CoinDCXClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
		signer:  sig,
	}
}

// Tickers fetches last-traded prices for all markets on the exchange.
func (c *CoinDCXClient) Tickers(ctx context.Context) ([]domain.TickerSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+tickerPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build ticker request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: "fetch tickers", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Op: "read ticker response", Err: err}
	}

	return c.parseTickers(body)
}

func (c *CoinDCXClient) parseTickers(body []byte) ([]domain.TickerSnapshot, error) {
	v, err := c.parser.ParseBytes(body)
	if err != nil {
		return nil, &domain.ParseError{Op: "parse ticker response", Err: err}
	}

	items, err := v.Array()
	if err != nil {
		return nil, &domain.ParseError{Op: "parse ticker response", Err: errors.New("ticker response is not a list")}
	}

	snapshots := make([]domain.TickerSnapshot, 0, len(items))
	for _, item := range items {
		market := string(item.GetStringBytes("market"))
		if market == "" {
			continue
		}

		// last_price comes back as a string on most markets but some
		// endpoints return a bare number.
		var priceStr string
		if raw := item.GetStringBytes("last_price"); raw != nil {
			priceStr = string(raw)
		} else if num := item.Get("last_price"); num != nil {
			priceStr = num.String()
		} else {
			continue
		}

		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, &domain.ParseError{Op: "parse ticker response", Err: errors.Wrapf(err, "bad last_price for %s", market)}
		}

		snapshots = append(snapshots, domain.TickerSnapshot{Market: market, LastPrice: price})
	}

	return snapshots, nil
}

// CreateOrder submits a limit order. The request body is serialized once and
// those exact bytes are both signed and sent. HTTP 200 means accepted; any
// other status is reported as a failed result with the raw body attached, not
// as an error.
func (c *CoinDCXClient) CreateOrder(ctx context.Context, order domain.OrderRequest) (domain.OrderResult, error) {
	if c.signer == nil {
		return domain.OrderResult{}, errors.New("client has no signer, cannot submit orders")
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return domain.OrderResult{}, errors.Wrap(err, "marshal order request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+orderCreatePath, bytes.NewReader(payload))
	if err != nil {
		return domain.OrderResult{}, errors.Wrap(err, "build order request")
	}
	c.signer.AuthHeaders(req.Header, payload)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.OrderResult{}, &domain.TransportError{Op: "submit order", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.OrderResult{}, &domain.TransportError{Op: "read order response", Err: err}
	}

	return domain.OrderResult{
		Success:    resp.StatusCode == http.StatusOK,
		StatusCode: resp.StatusCode,
		RawBody:    string(body),
	}, nil
}
