// Command dcxbot runs an automated spot-trading agent for a single currency
// pair: it polls the market price and, when the price drops below the
// configured threshold, places a limit buy immediately followed by a limit
// sell at the profit target, recording every decision in the trade ledger.
//
// Usage:
//
//	dcxbot --config config.yaml
//	dcxbot --pair SOL_INR --threshold 13300 --buyamount 500
//
// Required environment variables (a .env file is honored):
//
//	COINDCX_API_KEY, COINDCX_API_SECRET
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dcxbot/config"
	"dcxbot/internal/clients"
	"dcxbot/internal/ledger"
	"dcxbot/internal/services"
	"dcxbot/internal/services/pricer"
	"dcxbot/internal/services/trader"
	"dcxbot/internal/signer"
	"dcxbot/internal/storage/journal"
)

func main() {
	// secrets may live in a local .env file; a missing file is fine
	_ = godotenv.Load()

	conf, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	zapConf := zap.NewProductionConfig()
	zapConf.OutputPaths = []string{"stdout"}
	logger, err := zapConf.Build()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	sig, err := signer.New(conf.APIKey, conf.APISecret)
	if err != nil {
		logger.Fatal("failed to create request signer", zap.Error(err))
	}

	journalStore, err := journal.NewWALStore(conf.JournalDir)
	if err != nil {
		logger.Fatal("failed to open ledger journal", zap.Error(err))
	}
	defer journalStore.Close()

	tradeLedger, err := ledger.New(conf.LedgerFile, journalStore, logger)
	if err != nil {
		logger.Fatal("failed to open trade ledger", zap.Error(err))
	}
	defer tradeLedger.Close()

	client := clients.NewCoinDCXClient(conf.BaseURL, sig)
	tradeService := services.NewTradeService(
		conf,
		pricer.NewCoinDCXPricer(client),
		trader.NewCoinDCXTrader(conf.Pair, client, tradeLedger, logger),
		tradeLedger,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tradeService.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("trade loop failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
