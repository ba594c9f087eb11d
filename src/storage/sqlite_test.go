package storage

import (
	"path/filepath"
	"testing"

	"mt5-bridge/src/logger"
	"mt5-bridge/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func newTestJournal(t *testing.T) *SQLiteJournal {
	t.Helper()

	cfg := &models.MConfig{
		Name:     "bridge-test",
		LogLevel: "CRITICAL",
		Journal: models.MJournalConfig{
			Enabled: true,
			DBType:  "sqlite",
			DBPath:  filepath.Join(t.TempDir(), "journal.db"),
		},
	}
	journal, err := NewSQLiteJournal(cfg, logger.NewLogger(cfg, cfg.Name))
	require.NoError(t, err)
	require.NoError(t, journal.Initialize())
	t.Cleanup(func() { journal.Close() })
	return journal
}

// -----------------------------------------------------------------------------

func TestSQLiteJournalRecordAndRecent(t *testing.T) {
	journal := newTestJournal(t)

	entries := []models.MJournalEntry{
		{Command: "test_connection", Args: []string{}, Success: true, ElapsedMS: 1.2, CreatedAt: 100},
		{Command: "get_tick", Args: []string{"EURUSD"}, Success: true, ElapsedMS: 0.4, CreatedAt: 101},
		{Command: "close_position", Args: []string{"424242"}, Success: false, Error: "Position 424242 not found", ElapsedMS: 0.3, CreatedAt: 102},
	}
	for _, e := range entries {
		require.NoError(t, journal.Record(e))
	}

	recent, err := journal.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Newest first.
	assert.Equal(t, "close_position", recent[0].Command)
	assert.False(t, recent[0].Success)
	assert.Equal(t, "Position 424242 not found", recent[0].Error)
	assert.Equal(t, []string{"424242"}, recent[0].Args)

	assert.Equal(t, "get_tick", recent[1].Command)
	assert.Equal(t, []string{"EURUSD"}, recent[1].Args)
	assert.Equal(t, "test_connection", recent[2].Command)
}

// -----------------------------------------------------------------------------

func TestSQLiteJournalRecentLimit(t *testing.T) {
	journal := newTestJournal(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, journal.Record(models.MJournalEntry{Command: "get_positions", Success: true}))
	}

	recent, err := journal.Recent(2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

// -----------------------------------------------------------------------------

func TestSQLiteJournalSurvivesReopen(t *testing.T) {
	cfg := &models.MConfig{
		Name:     "bridge-test",
		LogLevel: "CRITICAL",
		Journal: models.MJournalConfig{
			Enabled: true,
			DBType:  "sqlite",
			DBPath:  filepath.Join(t.TempDir(), "journal.db"),
		},
	}
	log := logger.NewLogger(cfg, cfg.Name)

	first, err := NewSQLiteJournal(cfg, log)
	require.NoError(t, err)
	require.NoError(t, first.Initialize())
	require.NoError(t, first.Record(models.MJournalEntry{Command: "shutdown", Success: true}))
	require.NoError(t, first.Close())

	second, err := NewSQLiteJournal(cfg, log)
	require.NoError(t, err)
	require.NoError(t, second.Initialize())
	defer second.Close()

	recent, err := second.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "shutdown", recent[0].Command)
}

// -----------------------------------------------------------------------------

func TestSQLiteJournalRecordBeforeInitialize(t *testing.T) {
	journal, err := NewSQLiteJournal(&models.MConfig{}, logger.NewLogger(nil, "x"))
	require.NoError(t, err)

	err = journal.Record(models.MJournalEntry{Command: "get_tick"})
	assert.Error(t, err)
}
