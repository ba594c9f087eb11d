package config

import (
	"fmt"
	"os"
	"strconv"

	"mt5-bridge/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()
	config.applyEnvOverrides()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8765
	}
	if c.Terminal.Mode == "" {
		c.Terminal.Mode = "sim"
	}
	if c.Defaults.Symbol == "" {
		c.Defaults.Symbol = "EURUSD"
	}
	if c.Defaults.Timeframe == "" {
		c.Defaults.Timeframe = "M1"
	}
	if c.Defaults.Bars == 0 {
		c.Defaults.Bars = 100
	}
	if c.Journal.DBType == "" {
		c.Journal.DBType = "sqlite"
	}
}

// -----------------------------------------------------------------------------

// applyEnvOverrides lets terminal credentials come from the environment (or
// a .env file loaded by the entrypoint) instead of the YAML file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BRIDGE_LOGIN"); v != "" {
		if login, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Terminal.Login = login
		}
	}
	if v := os.Getenv("BRIDGE_PASSWORD"); v != "" {
		c.Terminal.Password = v
	}
	if v := os.Getenv("BRIDGE_SERVER"); v != "" {
		c.Terminal.Server = v
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	if c.Terminal.Mode != "sim" && c.Terminal.Mode != "none" {
		return fmt.Errorf("invalid terminal mode: %q (use sim or none)", c.Terminal.Mode)
	}

	if c.Journal.Enabled {
		if c.Journal.DBType != "sqlite" && c.Journal.DBType != "postgres" {
			return fmt.Errorf("invalid journal db type: %q (use sqlite or postgres)", c.Journal.DBType)
		}
		if c.Journal.DBType == "sqlite" && c.Journal.DBPath == "" {
			return fmt.Errorf("journal db path cannot be empty for sqlite")
		}
		if c.Journal.DBType == "postgres" && c.Journal.DBConnectionString == "" {
			return fmt.Errorf("journal connection string cannot be empty for postgres")
		}
	}

	if c.Defaults.Bars < 0 {
		return fmt.Errorf("default bar count cannot be negative")
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
