// Package config loads the immutable process configuration from a YAML file
// or CLI flags. Credentials come from the environment only and are validated
// at startup; the loop never starts on bad config.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"dcxbot/internal/domain"
)

// Environment variables holding the exchange credentials.
const (
	EnvAPIKey    = "COINDCX_API_KEY"
	EnvAPISecret = "COINDCX_API_SECRET"
)

// Config is built once at startup and passed by value into the loop and each
// client; there are no process-wide mutable globals.
type Config struct {
	Pair              domain.Pair
	PriceThreshold    decimal.Decimal
	BuyAmount         decimal.Decimal // quote currency spent per buy order
	BuyMarkdown       decimal.Decimal // subtracted from current price to bias toward fill
	ProfitPercent     decimal.Decimal
	PollInterval      time.Duration
	Cooldown          time.Duration // pause after a successful buy cycle
	HaltOnSellFailure bool
	LedgerFile        string
	JournalDir        string
	BaseURL           string
	APIKey            string
	APISecret         string
}

type configTmp struct {
	Pair              string        `yaml:"pair"`
	PriceThreshold    string        `yaml:"price_threshold"`
	BuyAmount         string        `yaml:"buy_amount"`
	BuyMarkdown       string        `yaml:"buy_markdown,omitempty"`
	ProfitPercent     string        `yaml:"profit_percent,omitempty"`
	PollInterval      time.Duration `yaml:"poll_interval"`
	Cooldown          time.Duration `yaml:"cooldown"`
	HaltOnSellFailure bool          `yaml:"halt_on_sell_failure,omitempty"`
	LedgerFile        string        `yaml:"ledger_file,omitempty"`
	JournalDir        string        `yaml:"journal_dir,omitempty"`
	BaseURL           string        `yaml:"base_url,omitempty"`
}

// Defaults for optional knobs.
var (
	defaultBuyMarkdown   = decimal.NewFromInt(5)
	defaultProfitPercent = decimal.NewFromInt(10)
)

const (
	defaultPollInterval = 30 * time.Second
	defaultCooldown     = 60 * time.Second
	defaultLedgerFile   = "trade_log.csv"
	defaultJournalDir   = "./journal"
)

// Get parses the configuration from --config yaml or individual flags, then
// attaches credentials from the environment.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	pairFlag := flag.String("pair", "SOL_INR", "trade pair, example: SOL_INR")
	threshold := flag.String("threshold", "", "price threshold that triggers a buy, in quote currency")
	buyAmount := flag.String("buyamount", "", "amount of quote currency to spend per buy order")
	markdown := flag.String("markdown", defaultBuyMarkdown.String(), "offset subtracted from current price for the buy order")
	profit := flag.String("profit", defaultProfitPercent.String(), "profit target percent for the sell order")
	pollInterval := flag.Duration("pollinterval", defaultPollInterval, "market price poll interval")
	cooldown := flag.Duration("cooldown", defaultCooldown, "pause after a successful buy cycle")
	haltOnSellFailure := flag.Bool("haltonsellfailure", false, "suspend further buys after a failed sell")
	ledgerFile := flag.String("ledgerfile", defaultLedgerFile, "path to the trade ledger file")
	journalDir := flag.String("journaldir", defaultJournalDir, "directory for the durable ledger journal")
	flag.Parse()

	var (
		conf Config
		err  error
	)
	if *configPath != "" {
		conf, err = getYaml(*configPath)
	} else {
		conf, err = fromFlags(*pairFlag, *threshold, *buyAmount, *markdown, *profit,
			*pollInterval, *cooldown, *haltOnSellFailure, *ledgerFile, *journalDir)
	}
	if err != nil {
		return Config{}, err
	}

	conf.APIKey = os.Getenv(EnvAPIKey)
	conf.APISecret = os.Getenv(EnvAPISecret)

	if err := conf.validate(); err != nil {
		return Config{}, err
	}

	return conf, nil
}

func fromFlags(pairStr, threshold, buyAmount, markdown, profit string,
	pollInterval, cooldown time.Duration, haltOnSellFailure bool, ledgerFile, journalDir string) (Config, error) {
	pair, err := pairFromString(pairStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --pair provided, --pair=%s", pairStr)
	}

	if threshold == "" {
		return Config{}, fmt.Errorf("--threshold is required")
	}
	thresholdDec, err := decimal.NewFromString(threshold)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --threshold provided, --threshold=%s", threshold)
	}

	if buyAmount == "" {
		return Config{}, fmt.Errorf("--buyamount is required")
	}
	buyAmountDec, err := decimal.NewFromString(buyAmount)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --buyamount provided, --buyamount=%s", buyAmount)
	}

	markdownDec, err := decimal.NewFromString(markdown)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --markdown provided, --markdown=%s", markdown)
	}

	profitDec, err := decimal.NewFromString(profit)
	if err != nil {
		return Config{}, fmt.Errorf("invalid --profit provided, --profit=%s", profit)
	}

	return Config{
		Pair:              pair,
		PriceThreshold:    thresholdDec,
		BuyAmount:         buyAmountDec,
		BuyMarkdown:       markdownDec,
		ProfitPercent:     profitDec,
		PollInterval:      pollInterval,
		Cooldown:          cooldown,
		HaltOnSellFailure: haltOnSellFailure,
		LedgerFile:        ledgerFile,
		JournalDir:        journalDir,
	}, nil
}

func getYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, err
	}

	pair, err := pairFromString(tmp.Pair)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'pair' param in yaml config: %s, error: %w", tmp.Pair, err)
	}

	threshold, err := decimal.NewFromString(tmp.PriceThreshold)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'price_threshold' param in yaml config, error: %w", err)
	}

	buyAmount, err := decimal.NewFromString(tmp.BuyAmount)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'buy_amount' param in yaml config, error: %w", err)
	}

	conf := Config{
		Pair:              pair,
		PriceThreshold:    threshold,
		BuyAmount:         buyAmount,
		BuyMarkdown:       defaultBuyMarkdown,
		ProfitPercent:     defaultProfitPercent,
		PollInterval:      tmp.PollInterval,
		Cooldown:          tmp.Cooldown,
		HaltOnSellFailure: tmp.HaltOnSellFailure,
		LedgerFile:        tmp.LedgerFile,
		JournalDir:        tmp.JournalDir,
		BaseURL:           tmp.BaseURL,
	}

	if tmp.BuyMarkdown != "" {
		conf.BuyMarkdown, err = decimal.NewFromString(tmp.BuyMarkdown)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'buy_markdown' param in yaml config, error: %w", err)
		}
	}
	if tmp.ProfitPercent != "" {
		conf.ProfitPercent, err = decimal.NewFromString(tmp.ProfitPercent)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'profit_percent' param in yaml config, error: %w", err)
		}
	}
	if conf.PollInterval == 0 {
		conf.PollInterval = defaultPollInterval
	}
	if conf.Cooldown == 0 {
		conf.Cooldown = defaultCooldown
	}
	if conf.LedgerFile == "" {
		conf.LedgerFile = defaultLedgerFile
	}
	if conf.JournalDir == "" {
		conf.JournalDir = defaultJournalDir
	}

	return conf, nil
}

func (c Config) validate() error {
	if !c.PriceThreshold.IsPositive() {
		return fmt.Errorf("price threshold must be positive, got %s", c.PriceThreshold)
	}
	if !c.BuyAmount.IsPositive() {
		return fmt.Errorf("buy amount must be positive, got %s", c.BuyAmount)
	}
	if c.BuyMarkdown.IsNegative() {
		return fmt.Errorf("buy markdown must not be negative, got %s", c.BuyMarkdown)
	}
	if !c.ProfitPercent.IsPositive() {
		return fmt.Errorf("profit percent must be positive, got %s", c.ProfitPercent)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.Cooldown < c.PollInterval {
		return fmt.Errorf("cooldown %s must be at least the poll interval %s", c.Cooldown, c.PollInterval)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%s environment variable must be set", EnvAPIKey)
	}
	if c.APISecret == "" {
		return fmt.Errorf("%s environment variable must be set", EnvAPISecret)
	}
	return nil
}

func pairFromString(pairStr string) (domain.Pair, error) {
	elements := strings.Split(pairStr, "_")
	if len(elements) != 2 || elements[0] == "" || elements[1] == "" {
		return domain.Pair{}, fmt.Errorf("invalid pair param")
	}
	return domain.Pair{From: elements[0], To: elements[1]}, nil
}
