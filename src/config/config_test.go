package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// -----------------------------------------------------------------------------

func TestNewConfigLoadsYAML(t *testing.T) {
	path := writeConfig(t, `
name: "mt5-bridge"
log_level: "DEBUG"
host: "127.0.0.1"
port: 9100
terminal:
  mode: "sim"
  login: 5000001
  password: "demo"
  server: "BridgeSim-Demo"
symbols:
  filter: "USD"
  visible_only: true
defaults:
  symbol: "GBPUSD"
  timeframe: "M5"
  bars: 50
journal:
  enabled: true
  db_type: "sqlite"
  db_path: "./journal.db"
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mt5-bridge", cfg.Name)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "sim", cfg.Terminal.Mode)
	assert.Equal(t, int64(5000001), cfg.Terminal.Login)
	assert.Equal(t, "USD", cfg.Symbols.Filter)
	assert.True(t, cfg.Symbols.VisibleOnly)
	assert.Equal(t, "GBPUSD", cfg.Defaults.Symbol)
	assert.Equal(t, "M5", cfg.Defaults.Timeframe)
	assert.Equal(t, 50, cfg.Defaults.Bars)
	assert.True(t, cfg.Journal.Enabled)
}

// -----------------------------------------------------------------------------

func TestNewConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `name: "mt5-bridge"`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8765, cfg.Port)
	assert.Equal(t, "sim", cfg.Terminal.Mode)
	assert.Equal(t, "EURUSD", cfg.Defaults.Symbol)
	assert.Equal(t, "M1", cfg.Defaults.Timeframe)
	assert.Equal(t, 100, cfg.Defaults.Bars)
	assert.False(t, cfg.Journal.Enabled)
}

// -----------------------------------------------------------------------------

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("BRIDGE_LOGIN", "7000042")
	t.Setenv("BRIDGE_PASSWORD", "secret")
	t.Setenv("BRIDGE_SERVER", "Broker-Live")

	path := writeConfig(t, `
name: "mt5-bridge"
terminal:
  login: 5000001
  password: "demo"
  server: "BridgeSim-Demo"
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7000042), cfg.Terminal.Login)
	assert.Equal(t, "secret", cfg.Terminal.Password)
	assert.Equal(t, "Broker-Live", cfg.Terminal.Server)
}

// -----------------------------------------------------------------------------

func TestNewConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: `port: 9100`,
			wantErr: "application name cannot be empty",
		},
		{
			name:    "port out of range",
			content: "name: x\nport: 80",
			wantErr: "invalid server port number",
		},
		{
			name:    "bad terminal mode",
			content: "name: x\nterminal:\n  mode: live",
			wantErr: "invalid terminal mode",
		},
		{
			name:    "journal enabled without path",
			content: "name: x\njournal:\n  enabled: true\n  db_type: sqlite",
			wantErr: "journal db path cannot be empty",
		},
		{
			name:    "journal postgres without connection string",
			content: "name: x\njournal:\n  enabled: true\n  db_type: postgres",
			wantErr: "journal connection string cannot be empty",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.content)
			_, err := NewConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// -----------------------------------------------------------------------------

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// -----------------------------------------------------------------------------

func TestConfigSaveRoundTrip(t *testing.T) {
	path := writeConfig(t, `
name: "mt5-bridge"
port: 9200
`)
	cfg, err := NewConfig(path)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(out))

	reloaded, err := NewConfig(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Name, reloaded.Name)
	assert.Equal(t, cfg.Port, reloaded.Port)
}
