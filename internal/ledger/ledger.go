// Package ledger implements the append-only trade log: one CSV row per
// decision, order or error, flushed to disk before the call returns, with a
// human-readable mirror on stdout.
package ledger

import (
	"encoding/csv"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dcxbot/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

var header = []string{"Timestamp", "Action", "Buy Price", "Sell Price", "Quantity", "Profit", "Message"}

// journalWriter is the durable journal the ledger fans out to.
type journalWriter interface {
	Append(entry domain.Entry) error
}

// Ledger is the sole writer of the trade log file. The file, once it exists,
// is only ever appended to.
type Ledger struct {
	mu      sync.Mutex
	file    *os.File
	csv     *csv.Writer
	journal journalWriter
	logger  *zap.Logger
}

// New opens (or creates with the schema header) the ledger file at path.
// journal may be nil when no durable journal is configured.
func New(path string, journal journalWriter, logger *zap.Logger) (*Ledger, error) {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open ledger file")
	}

	l := &Ledger{
		file:    f,
		csv:     csv.NewWriter(f),
		journal: journal,
		logger:  logger,
	}

	if fresh {
		if err := l.writeRow(header); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "write ledger header")
		}
	}

	return l, nil
}

// Record appends one entry and syncs it to durable storage before returning.
func (l *Ledger) Record(entry domain.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := []string{
		entry.Timestamp.Format(timeLayout),
		string(entry.Action),
		formatOptional(entry.BuyPrice, domain.PricePrecision),
		formatOptional(entry.SellPrice, domain.PricePrecision),
		formatOptional(entry.Quantity, domain.QuantityPrecision),
		formatOptional(entry.Profit, domain.PricePrecision),
		entry.Message,
	}

	if err := l.writeRow(row); err != nil {
		return errors.Wrap(err, "append ledger row")
	}

	if l.journal != nil {
		if err := l.journal.Append(entry); err != nil {
			return errors.Wrap(err, "journal ledger entry")
		}
	}

	l.logger.Info(entry.Message,
		zap.String("action", string(entry.Action)),
		zap.String("time", entry.Timestamp.Format(timeLayout)))

	return nil
}

func (l *Ledger) writeRow(row []string) error {
	if err := l.csv.Write(row); err != nil {
		return err
	}
	l.csv.Flush()
	if err := l.csv.Error(); err != nil {
		return err
	}
	return l.file.Sync()
}

// Close closes the ledger file. Rows already recorded are on disk.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// Absent numeric fields are recorded as empty, never zero: zero is a valid
// price and must not be confused with "not applicable".
func formatOptional(v *decimal.Decimal, places int32) string {
	if v == nil {
		return ""
	}
	return v.StringFixed(places)
}
