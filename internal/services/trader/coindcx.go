package trader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dcxbot/internal/domain"
)

// orderClient is the slice of the exchange client the trader needs.
type orderClient interface {
	CreateOrder(ctx context.Context, order domain.OrderRequest) (domain.OrderResult, error)
}

// ledgerWriter records order outcomes.
type ledgerWriter interface {
	Record(entry domain.Entry) error
}

// CoinDCXTrader builds, signs and submits limit orders. Orders are
// fire-and-forget: there is no cancellation, amendment or post-restart
// reconciliation.
type CoinDCXTrader struct {
	pair   domain.Pair
	client orderClient
	ledger ledgerWriter
	logger *zap.Logger
}

// NewCoinDCXTrader creates a trader for one pair.
func NewCoinDCXTrader(pair domain.Pair, client orderClient, ledger ledgerWriter, logger *zap.Logger) *CoinDCXTrader {
	return &CoinDCXTrader{
		pair:   pair,
		client: client,
		ledger: ledger,
		logger: logger,
	}
}

// PlaceLimitOrder submits one limit order and records exactly one ledger
// entry: ORDER on success, ERROR on rejection or transport failure. The
// returned error, when non-nil, has already been ledgered.
func (t *CoinDCXTrader) PlaceLimitOrder(ctx context.Context, side domain.Side, price, quantity decimal.Decimal) (domain.OrderResult, error) {
	order := domain.NewOrderRequest(
		t.pair,
		side,
		price.Round(domain.PricePrecision),
		quantity.Round(domain.QuantityPrecision),
		time.Now().UnixMilli(),
		uuid.NewString(),
	)

	result, err := t.client.CreateOrder(ctx, order)
	if err != nil {
		if lerr := t.ledger.Record(domain.Error(fmt.Sprintf("order failed: %v", err))); lerr != nil {
			t.logger.Error("failed to record order error", zap.Error(lerr))
		}
		return domain.OrderResult{}, errors.Wrapf(err, "%s order for %s", side, t.pair.String())
	}

	if rejection := result.Rejection(); rejection != nil {
		if lerr := t.ledger.Record(domain.Error("order failed: " + rejection.Body)); lerr != nil {
			t.logger.Error("failed to record order rejection", zap.Error(lerr))
		}
		t.logger.Warn("limit order rejected",
			zap.String("pair", t.pair.String()),
			zap.String("side", side.String()),
			zap.Int("status", rejection.Status))
		return result, nil
	}

	entry := domain.Order(fmt.Sprintf("%s order placed at %s", strings.ToUpper(side.String()), order.PricePerUnit)).
		WithQuantity(quantity)
	switch side {
	case domain.SideBuy:
		entry = entry.WithBuyPrice(price)
	case domain.SideSell:
		entry = entry.WithSellPrice(price)
	}
	if lerr := t.ledger.Record(entry); lerr != nil {
		t.logger.Error("failed to record order entry", zap.Error(lerr))
	}

	t.logger.Info("limit order accepted",
		zap.String("pair", t.pair.String()),
		zap.String("side", side.String()),
		zap.String("price", order.PricePerUnit),
		zap.String("quantity", order.TotalQuantity),
		zap.String("client_order_id", order.ClientOrderID))

	return result, nil
}
