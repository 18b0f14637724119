// Package journal persists ledger entries in a write-ahead log so the event
// stream survives crashes and can be replayed by index after restart.
package journal

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"

	"dcxbot/internal/domain"
)

const (
	// DefaultDir is where the journal segments live.
	DefaultDir = "./journal"

	segmentThreshold = 1000
	maxSegments      = 100

	entryKey = "ledger_entry"
)

// WALStore appends ledger entries to a durable WAL in sync-disk mode: a crash
// must not lose the last recorded event.
type WALStore struct {
	wal *gowal.Wal
	mu  sync.RWMutex
}

// NewWALStore initializes a WAL-backed journal in dir.
func NewWALStore(dir string) (*WALStore, error) {
	if dir == "" {
		dir = DefaultDir
	}

	cfg := gowal.Config{
		Dir:              dir,
		Prefix:           "ledger_",
		SegmentThreshold: segmentThreshold,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	}

	wal, err := gowal.NewWAL(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "init ledger journal")
	}

	return &WALStore{wal: wal}, nil
}

// Append writes one ledger entry to the journal.
func (s *WALStore) Append(entry domain.Entry) error {
	if s == nil || s.wal == nil {
		return errors.New("journal is not initialized")
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "marshal ledger entry")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextIndex := s.wal.CurrentIndex() + 1
	return s.wal.Write(nextIndex, entryKey, payload)
}

// EntriesAfter returns all entries written after the provided index.
func (s *WALStore) EntriesAfter(index uint64) ([]domain.Entry, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("journal is not initialized")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.wal.CurrentIndex()
	if current <= index {
		return nil, nil
	}

	entries := make([]domain.Entry, 0, current-index)
	for idx := index + 1; idx <= current; idx++ {
		key, payload, err := s.wal.Get(idx)
		if err != nil {
			continue
		}
		if key != entryKey {
			continue
		}

		var entry domain.Entry
		if err := json.Unmarshal(payload, &entry); err != nil {
			return nil, errors.Wrap(err, "decode ledger entry")
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// CurrentIndex returns the latest journal index stored.
func (s *WALStore) CurrentIndex() uint64 {
	if s == nil || s.wal == nil {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.wal.CurrentIndex()
}

// Close closes the underlying WAL.
func (s *WALStore) Close() error {
	if s == nil || s.wal == nil {
		return errors.New("journal is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
