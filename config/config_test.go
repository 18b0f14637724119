package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcxbot/internal/domain"
)

func validConfig() Config {
	return Config{
		Pair:           domain.Pair{From: "SOL", To: "INR"},
		PriceThreshold: decimal.RequireFromString("13300.00"),
		BuyAmount:      decimal.RequireFromString("500.00"),
		BuyMarkdown:    decimal.NewFromInt(5),
		ProfitPercent:  decimal.NewFromInt(10),
		PollInterval:   30 * time.Second,
		Cooldown:       60 * time.Second,
		APIKey:         "key",
		APISecret:      "secret",
	}
}

func TestPairFromString(t *testing.T) {
	pair, err := pairFromString("SOL_INR")
	require.NoError(t, err)
	assert.Equal(t, "SOL", pair.From)
	assert.Equal(t, "INR", pair.To)
	assert.Equal(t, "SOLINR", pair.Symbol())

	for _, bad := range []string{"SOLINR", "SOL_", "_INR", "SOL_INR_X", ""} {
		_, err := pairFromString(bad)
		assert.Error(t, err, bad)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero threshold", mutate: func(c *Config) { c.PriceThreshold = decimal.Zero }, errMsg: "price threshold"},
		{name: "zero buy amount", mutate: func(c *Config) { c.BuyAmount = decimal.Zero }, errMsg: "buy amount"},
		{name: "negative markdown", mutate: func(c *Config) { c.BuyMarkdown = decimal.NewFromInt(-1) }, errMsg: "markdown"},
		{name: "zero profit", mutate: func(c *Config) { c.ProfitPercent = decimal.Zero }, errMsg: "profit percent"},
		{name: "zero poll interval", mutate: func(c *Config) { c.PollInterval = 0 }, errMsg: "poll interval"},
		{name: "cooldown shorter than poll", mutate: func(c *Config) { c.Cooldown = time.Second }, errMsg: "cooldown"},
		{name: "missing api key", mutate: func(c *Config) { c.APIKey = "" }, errMsg: EnvAPIKey},
		{name: "missing api secret", mutate: func(c *Config) { c.APISecret = "" }, errMsg: EnvAPISecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := validConfig()
			tt.mutate(&conf)
			err := conf.validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestGetYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pair: SOL_INR
price_threshold: "13300.00"
buy_amount: "500.00"
profit_percent: "10"
poll_interval: 30s
cooldown: 60s
halt_on_sell_failure: true
ledger_file: /tmp/trades.csv
`), 0o644))

	conf, err := getYaml(path)
	require.NoError(t, err)

	assert.Equal(t, "SOL_INR", conf.Pair.String())
	assert.True(t, conf.PriceThreshold.Equal(decimal.RequireFromString("13300")))
	assert.True(t, conf.BuyAmount.Equal(decimal.RequireFromString("500")))
	assert.True(t, conf.BuyMarkdown.Equal(decimal.NewFromInt(5)), "markdown defaults when omitted")
	assert.True(t, conf.ProfitPercent.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 30*time.Second, conf.PollInterval)
	assert.Equal(t, 60*time.Second, conf.Cooldown)
	assert.True(t, conf.HaltOnSellFailure)
	assert.Equal(t, "/tmp/trades.csv", conf.LedgerFile)
	assert.Equal(t, defaultJournalDir, conf.JournalDir)
}

func TestGetYaml_BadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad pair", body: "pair: SOLINR\nprice_threshold: \"1\"\nbuy_amount: \"1\"\n"},
		{name: "bad threshold", body: "pair: SOL_INR\nprice_threshold: \"abc\"\nbuy_amount: \"1\"\n"},
		{name: "bad buy amount", body: "pair: SOL_INR\nprice_threshold: \"1\"\nbuy_amount: \"abc\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := getYaml(path)
			require.Error(t, err)
		})
	}
}

func TestFromFlags(t *testing.T) {
	conf, err := fromFlags("SOL_INR", "13300.00", "500.00", "5", "10",
		30*time.Second, 60*time.Second, false, "trades.csv", "./journal")
	require.NoError(t, err)
	assert.Equal(t, "SOLINR", conf.Pair.Symbol())
	assert.True(t, conf.PriceThreshold.Equal(decimal.RequireFromString("13300")))

	_, err = fromFlags("SOL_INR", "", "500", "5", "10", time.Second, time.Second, false, "t.csv", "j")
	assert.Error(t, err, "threshold is required")

	_, err = fromFlags("SOL_INR", "13300", "", "5", "10", time.Second, time.Second, false, "t.csv", "j")
	assert.Error(t, err, "buy amount is required")
}
