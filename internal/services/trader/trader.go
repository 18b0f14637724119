// Package trader submits limit orders to the exchange.
package trader

import (
	"context"

	"github.com/shopspring/decimal"

	"dcxbot/internal/domain"
)

// Trader places limit orders for a specific trading pair. Implementations
// record every submission outcome in the trade ledger before returning, so
// callers never need to log order results themselves.
type Trader interface {
	PlaceLimitOrder(ctx context.Context, side domain.Side, price, quantity decimal.Decimal) (domain.OrderResult, error)
}
