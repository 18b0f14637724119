// Package pricer provides current market prices.
package pricer

import (
	"context"

	"github.com/shopspring/decimal"

	"dcxbot/internal/domain"
)

// Pricer provides the last-traded price of a trading pair. found is false when
// the exchange does not list the pair in its ticker response; that is a normal
// polling miss, not an error.
type Pricer interface {
	GetPrice(ctx context.Context, pair domain.Pair) (price decimal.Decimal, found bool, err error)
}
