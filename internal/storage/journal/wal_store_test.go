package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcxbot/internal/domain"
)

func TestWALStore_AppendAndReplay(t *testing.T) {
	dir := t.TempDir()

	s, err := NewWALStore(dir)
	require.NoError(t, err)

	buyPrice := decimal.RequireFromString("13285")
	entry := domain.Entry{
		Timestamp: time.Now().UTC(),
		Action:    domain.ActionOrder,
		BuyPrice:  &buyPrice,
		Message:   "BUY order placed at 13285.00",
	}
	require.NoError(t, s.Append(entry))
	require.NoError(t, s.Append(domain.Info("tick")))

	entries, err := s.EntriesAfter(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionOrder, entries[0].Action)
	require.NotNil(t, entries[0].BuyPrice)
	assert.True(t, entries[0].BuyPrice.Equal(buyPrice))
	assert.Equal(t, "tick", entries[1].Message)

	require.NoError(t, s.Close())
}

func TestWALStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewWALStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Append(domain.Info("before restart")))
	index := s.CurrentIndex()
	require.NoError(t, s.Close())

	s, err = NewWALStore(dir)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, index, s.CurrentIndex())

	require.NoError(t, s.Append(domain.Info("after restart")))
	entries, err := s.EntriesAfter(index)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "after restart", entries[0].Message)
}

func TestWALStore_EntriesAfterCurrentIsEmpty(t *testing.T) {
	s, err := NewWALStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.EntriesAfter(s.CurrentIndex())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
