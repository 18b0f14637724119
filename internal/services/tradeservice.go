// Package services contains the trade loop orchestrating price polling,
// threshold evaluation and order sequencing.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dcxbot/config"
	"dcxbot/internal/domain"
	"dcxbot/internal/services/pricer"
	"dcxbot/internal/services/trader"
)

var oneHundred = decimal.NewFromInt(100)

// ledgerWriter records trade loop decisions.
type ledgerWriter interface {
	Record(entry domain.Entry) error
}

// TradeService runs the polling loop for one trading pair: fetch price,
// compare against the threshold, and on a breach place a limit buy followed by
// a limit sell at the profit target. One sequential loop, no concurrent cycles
// in flight.
type TradeService struct {
	conf   config.Config
	pricer pricer.Pricer
	trader trader.Trader
	ledger ledgerWriter
	logger *zap.Logger

	// suspended blocks the buying branch after a failed sell when the
	// halt-on-sell-failure policy is enabled. Cleared only by restart.
	suspended bool
}

// NewTradeService creates the trade loop.
func NewTradeService(conf config.Config, p pricer.Pricer, t trader.Trader, l ledgerWriter, logger *zap.Logger) *TradeService {
	return &TradeService{
		conf:   conf,
		pricer: p,
		trader: t,
		ledger: l,
		logger: logger,
	}
}

// Run executes poll cycles until ctx is cancelled. Every error escaping a
// cycle is converted to an ERROR ledger entry here, at the loop's outermost
// boundary; a single cycle's failure never terminates the process.
func (t *TradeService) Run(ctx context.Context) error {
	t.logger.Info("trade loop started",
		zap.String("pair", t.conf.Pair.String()),
		zap.String("threshold", t.conf.PriceThreshold.String()),
		zap.Duration("poll_interval", t.conf.PollInterval))

	for {
		cooldown, err := t.cycle(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			t.record(domain.Error(err.Error()))
		}

		wait := t.conf.PollInterval
		if cooldown {
			// extended pause so the bot does not fire repeated buys against a
			// price that has not yet recovered above the threshold
			wait = t.conf.Cooldown
		}

		select {
		case <-ctx.Done():
			t.logger.Info("trade loop stopped", zap.String("pair", t.conf.Pair.String()))
			return nil
		case <-time.After(wait):
		}
	}
}

// cycle runs one POLLING → EVALUATING → {BUYING → SELLING} | WAITING pass.
// It reports whether the post-buy cooldown should follow.
func (t *TradeService) cycle(ctx context.Context) (bool, error) {
	price, found, err := t.pricer.GetPrice(ctx, t.conf.Pair)
	if err != nil {
		return false, errors.Wrapf(err, "pricer failed for pair %s", t.conf.Pair.String())
	}
	if !found {
		// normal polling miss, not an error
		t.record(domain.Info(fmt.Sprintf("price for %s unavailable, skipping cycle", t.conf.Pair.Symbol())))
		return false, nil
	}

	t.record(domain.Info(fmt.Sprintf("current %s price: %s", t.conf.Pair.Symbol(), price.StringFixed(domain.PricePrecision))))

	// strict less-than: a price equal to the threshold waits
	if !price.LessThan(t.conf.PriceThreshold) {
		t.record(domain.Info("price above threshold, waiting"))
		return false, nil
	}

	if t.suspended {
		t.record(domain.Info("buying suspended after failed sell, waiting"))
		return false, nil
	}

	return t.buyThenSell(ctx, price)
}

func (t *TradeService) buyThenSell(ctx context.Context, price decimal.Decimal) (bool, error) {
	buyPrice := price.Sub(t.conf.BuyMarkdown).Round(domain.PricePrecision)
	if !buyPrice.IsPositive() {
		return false, fmt.Errorf("computed buy price %s is not positive (price %s, markdown %s)",
			buyPrice, price, t.conf.BuyMarkdown)
	}
	quantity := t.conf.BuyAmount.Div(buyPrice).Round(domain.QuantityPrecision)

	// One buy attempt per cycle. A failed buy is not retried, only superseded
	// by the next natural poll.
	buyResult, err := t.trader.PlaceLimitOrder(ctx, domain.SideBuy, buyPrice, quantity)
	if err != nil || !buyResult.Success {
		// already ledgered by the trader; no sell follows a failed buy
		return false, nil
	}

	sellPrice := buyPrice.Mul(decimal.NewFromInt(1).Add(t.conf.ProfitPercent.Div(oneHundred))).Round(domain.PricePrecision)
	profit := sellPrice.Sub(buyPrice).Mul(quantity).Round(domain.PricePrecision)

	// The sell's own outcome is ledgered by the trader; the summary entry
	// below is written regardless of it.
	sellResult, sellErr := t.trader.PlaceLimitOrder(ctx, domain.SideSell, sellPrice, quantity)
	if (sellErr != nil || !sellResult.Success) && t.conf.HaltOnSellFailure {
		t.suspended = true
		t.record(domain.Info("sell failed, suspending further buys until restart"))
	}

	t.record(domain.Order("buy cycle complete").
		WithBuyPrice(buyPrice).
		WithSellPrice(sellPrice).
		WithQuantity(quantity).
		WithProfit(profit))

	return true, nil
}

func (t *TradeService) record(entry domain.Entry) {
	if err := t.ledger.Record(entry); err != nil {
		t.logger.Error("failed to record ledger entry",
			zap.Error(err),
			zap.String("action", string(entry.Action)),
			zap.String("message", entry.Message))
	}
}
