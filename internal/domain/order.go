package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Side of a limit order.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

// String returns the wire representation of the side.
func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unknown"
	}
}

// Exchange tick and lot precisions for the traded pair.
const (
	// PricePrecision decimal places for price_per_unit.
	PricePrecision = 2
	// QuantityPrecision decimal places for total_quantity.
	QuantityPrecision = 3
)

// OrderRequest is the body of an order-create call. Immutable once built;
// the serialized bytes are signed as-is, so the JSON field order here is
// exactly what goes on the wire.
type OrderRequest struct {
	Market        string `json:"market"`
	Side          string `json:"side"`
	OrderType     string `json:"order_type"`
	PricePerUnit  string `json:"price_per_unit"`
	TotalQuantity string `json:"total_quantity"`
	Timestamp     int64  `json:"timestamp"`
	ClientOrderID string `json:"client_order_id"`
}

// NewOrderRequest builds a limit order body with price and quantity quantized
// to the pair's tick and lot precisions.
func NewOrderRequest(pair Pair, side Side, price, quantity decimal.Decimal, timestampMillis int64, clientOrderID string) OrderRequest {
	return OrderRequest{
		Market:        pair.Symbol(),
		Side:          side.String(),
		OrderType:     "limit_order",
		PricePerUnit:  price.StringFixed(PricePrecision),
		TotalQuantity: quantity.StringFixed(QuantityPrecision),
		Timestamp:     timestampMillis,
		ClientOrderID: clientOrderID,
	}
}

// OrderResult is the outcome of a single order submission.
type OrderResult struct {
	// Success true only for HTTP 200 from the exchange.
	Success bool
	// StatusCode is the HTTP status the exchange answered with.
	StatusCode int
	// RawBody is the exchange response body, kept verbatim for diagnostics.
	RawBody string
}

// Rejection returns the ExchangeRejection for a failed result, nil otherwise.
func (r OrderResult) Rejection() *ExchangeRejection {
	if r.Success {
		return nil
	}
	return &ExchangeRejection{Status: r.StatusCode, Body: r.RawBody}
}

// TickerSnapshot one market's last-traded price, produced per poll.
type TickerSnapshot struct {
	Market    string
	LastPrice decimal.Decimal
}

// String returns a human-readable representation.
func (t *TickerSnapshot) String() string {
	return fmt.Sprintf("%s last_price: %s", t.Market, t.LastPrice.String())
}
