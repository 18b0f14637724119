package pricer

import (
	"context"

	"github.com/shopspring/decimal"

	"dcxbot/internal/domain"
	"dcxbot/pkg/retrier"
)

// tickerClient is the slice of the exchange client the pricer needs.
type tickerClient interface {
	Tickers(ctx context.Context) ([]domain.TickerSnapshot, error)
}

// CoinDCXPricer scans the exchange's full ticker list for one pair. The GET is
// idempotent, so transient transport failures are retried with backoff before
// the cycle is given up.
type CoinDCXPricer struct {
	client  tickerClient
	retrier *retrier.Retrier
}

// NewCoinDCXPricer creates a pricer on top of the exchange client.
func NewCoinDCXPricer(client tickerClient) *CoinDCXPricer {
	return &CoinDCXPricer{
		client:  client,
		retrier: retrier.New(),
	}
}

// GetPrice returns the last-traded price for pair, or found=false when the
// pair is absent from the ticker list.
func (p *CoinDCXPricer) GetPrice(ctx context.Context, pair domain.Pair) (decimal.Decimal, bool, error) {
	var tickers []domain.TickerSnapshot
	err := p.retrier.Do(ctx, func(ctx context.Context) error {
		var e error
		tickers, e = p.client.Tickers(ctx)
		return e
	})
	if err != nil {
		return decimal.Decimal{}, false, err
	}

	symbol := pair.Symbol()
	for _, t := range tickers {
		if t.Market == symbol {
			return t.LastPrice, true, nil
		}
	}

	return decimal.Decimal{}, false, nil
}
