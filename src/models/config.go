package models

// MConfig Structure
type MConfig struct {
	Name     string          `yaml:"name"`
	Host     string          `yaml:"host"`
	Port     int             `yaml:"port"`
	LogLevel string          `yaml:"log_level"`
	Terminal MTerminalConfig `yaml:"terminal"`
	Symbols  MSymbolsConfig  `yaml:"symbols"`
	Defaults MDefaultsConfig `yaml:"defaults"`
	Journal  MJournalConfig  `yaml:"journal"`
}

type MTerminalConfig struct {
	Mode     string `yaml:"mode"` // "sim" or "none"
	Login    int64  `yaml:"login"`
	Password string `yaml:"password"`
	Server   string `yaml:"server"`
}

type MSymbolsConfig struct {
	Filter      string `yaml:"filter"` // substring match on symbol name, "" matches all
	VisibleOnly bool   `yaml:"visible_only"`
}

type MDefaultsConfig struct {
	Symbol    string `yaml:"symbol"`
	Timeframe string `yaml:"timeframe"`
	Bars      int    `yaml:"bars"`
}

type MJournalConfig struct {
	Enabled            bool   `yaml:"enabled"`
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}
