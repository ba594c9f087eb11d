package bridge

import (
	"testing"
	"time"

	"mt5-bridge/src/interfaces"
	"mt5-bridge/src/models"
	"mt5-bridge/src/terminal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

type memJournal struct {
	entries []models.MJournalEntry
}

func (m *memJournal) Initialize() error { return nil }

func (m *memJournal) Record(entry models.MJournalEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memJournal) Recent(limit int) ([]models.MJournalEntry, error) {
	return m.entries, nil
}

func (m *memJournal) Close() error { return nil }

var _ interfaces.IJournal = (*memJournal)(nil)

// -----------------------------------------------------------------------------

func newRunAdapter(t *testing.T) *Adapter {
	t.Helper()
	sim := terminal.NewSimTerminal(nil)
	sim.Clock = func() time.Time { return time.Unix(1_700_000_000, 0) }
	adapter := NewAdapter(sim, nil, nil, nil)
	_, err := adapter.Connect()
	require.NoError(t, err)
	return adapter
}

// -----------------------------------------------------------------------------
// Dispatch
// -----------------------------------------------------------------------------

func TestRunCommands(t *testing.T) {
	tests := []struct {
		name    string
		command string
		args    []string
		wantKey string
		wantErr string
	}{
		{name: "test_connection", command: "test_connection", wantKey: "account"},
		{name: "get_symbols", command: "get_symbols", wantKey: "symbols"},
		{name: "get_market_data with args", command: "get_market_data", args: []string{"EURUSD", "M5", "10"}, wantKey: "data"},
		{name: "get_market_data defaults", command: "get_market_data", wantKey: "data"},
		{name: "get_tick default symbol", command: "get_tick", wantKey: "tick"},
		{name: "get_positions", command: "get_positions", wantKey: "positions"},
		{name: "place_order", command: "place_order", args: []string{"EURUSD", "0", "0.1"}, wantKey: "order"},
		{name: "shutdown", command: "shutdown", wantKey: "message"},

		{name: "unknown command", command: "get_quotes", wantErr: "Unknown command: get_quotes"},
		{name: "place_order missing args", command: "place_order", args: []string{"EURUSD"}, wantErr: "place_order requires symbol, side, volume"},
		{name: "place_order bad side", command: "place_order", args: []string{"EURUSD", "buy", "0.1"}, wantErr: `invalid side: "buy"`},
		{name: "place_order bad volume", command: "place_order", args: []string{"EURUSD", "0", "lots"}, wantErr: `invalid volume: "lots"`},
		{name: "get_market_data bad count", command: "get_market_data", args: []string{"EURUSD", "M1", "many"}, wantErr: `invalid count: "many"`},
		{name: "close_position missing ticket", command: "close_position", wantErr: "close_position requires ticket"},
		{name: "close_position bad ticket", command: "close_position", args: []string{"abc"}, wantErr: `invalid ticket: "abc"`},
		{name: "connect_with_credentials missing args", command: "connect_with_credentials", args: []string{"5000001"}, wantErr: "connect_with_credentials requires login, password, server"},
		{name: "connect_with_credentials bad login", command: "connect_with_credentials", args: []string{"me", "demo", "BridgeSim-Demo"}, wantErr: `invalid login: "me"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adapter := newRunAdapter(t)

			payload, err := adapter.Run(tc.command, tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, err.Error())
				assert.Nil(t, payload)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, payload, tc.wantKey)
		})
	}
}

// -----------------------------------------------------------------------------

func TestRunMarketDataDefaults(t *testing.T) {
	adapter := newRunAdapter(t)

	payload, err := adapter.Run("get_market_data", nil)
	require.NoError(t, err)

	bars, ok := payload["data"].([]models.MBar)
	require.True(t, ok)
	// Built-in defaults: EURUSD, M1, 100 bars.
	assert.Len(t, bars, 100)
	assert.Equal(t, int64(60), bars[1].Time-bars[0].Time)
}

// -----------------------------------------------------------------------------

func TestRunConfiguredDefaults(t *testing.T) {
	cfg := &models.MConfig{
		Symbols:  models.MSymbolsConfig{Filter: "USD", VisibleOnly: true},
		Defaults: models.MDefaultsConfig{Symbol: "GBPUSD", Timeframe: "M5", Bars: 7},
	}
	adapter := NewAdapter(terminal.NewSimTerminal(nil), cfg, nil, nil)
	_, err := adapter.Connect()
	require.NoError(t, err)

	payload, err := adapter.Run("get_market_data", nil)
	require.NoError(t, err)

	bars, ok := payload["data"].([]models.MBar)
	require.True(t, ok)
	assert.Len(t, bars, 7)
	assert.Equal(t, int64(300), bars[1].Time-bars[0].Time)
}

// -----------------------------------------------------------------------------

func TestRunShutdownPayload(t *testing.T) {
	adapter := newRunAdapter(t)

	payload, err := adapter.Run("shutdown", nil)
	require.NoError(t, err)
	assert.Equal(t, "terminal connection closed", payload["message"])
	assert.False(t, adapter.Connected())
}

// -----------------------------------------------------------------------------
// Journal
// -----------------------------------------------------------------------------

func TestRunRecordsJournalEntries(t *testing.T) {
	journal := &memJournal{}
	sim := terminal.NewSimTerminal(nil)
	adapter := NewAdapter(sim, nil, nil, journal)
	_, err := adapter.Connect()
	require.NoError(t, err)

	_, err = adapter.Run("get_tick", []string{"EURUSD"})
	require.NoError(t, err)
	_, err = adapter.Run("get_tick", []string{"NOPE"})
	require.Error(t, err)

	require.Len(t, journal.entries, 2)
	assert.Equal(t, "get_tick", journal.entries[0].Command)
	assert.True(t, journal.entries[0].Success)
	assert.False(t, journal.entries[1].Success)
	assert.Equal(t, "Failed to get tick for NOPE", journal.entries[1].Error)
}

// -----------------------------------------------------------------------------

func TestCommandsTable(t *testing.T) {
	commands := Commands()
	require.Len(t, commands, 9)

	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{
		"test_connection",
		"connect_with_credentials",
		"get_symbols",
		"get_market_data",
		"get_tick",
		"place_order",
		"get_positions",
		"close_position",
		"shutdown",
	}, names)
}
