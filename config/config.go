package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Store backend types.
const (
	StoreCSV    = "csv"
	StoreSQLite = "sqlite"
)

// Config represents the complete ledger configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Display DisplayConfig `json:"display" yaml:"display"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}

// AccountConfig contains the account baseline parameters
type AccountConfig struct {
	Currency string `json:"currency" yaml:"currency"`
	// StartingBalance is the baseline the analytics add realized P/L to.
	StartingBalance float64 `json:"starting_balance" yaml:"starting_balance"`
	// CurrentBalance is the last balance the user entered, kept for display.
	CurrentBalance float64 `json:"current_balance,omitempty" yaml:"current_balance,omitempty"`
}

// DisplayConfig contains presentation preferences
type DisplayConfig struct {
	Theme       string `json:"theme" yaml:"theme"`
	ProfitColor string `json:"profit_color" yaml:"profit_color"`
	LossColor   string `json:"loss_color" yaml:"loss_color"`
	ChartStyle  string `json:"chart_style" yaml:"chart_style"`
}

// StoreConfig selects and locates the storage backend
type StoreConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile  string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	HistoryFile string `json:"history_file,omitempty" yaml:"history_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Load reads the configuration from path. A missing file is not an error:
// the documented defaults apply, as do defaults for any missing keys.
func Load(path string) (*Config, error) {
	cfg, err := LoadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content),
// with defaults filled in for missing keys.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Unmarshal over the defaults so missing keys keep their documented values.
	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if len(path) > 5 && path[len(path)-5:] == ".json" {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.StartingBalance < 0 {
		return fmt.Errorf("account.starting_balance must not be negative")
	}
	if c.Store.Type != StoreCSV && c.Store.Type != StoreSQLite {
		return fmt.Errorf("store.type must be 'csv' or 'sqlite'")
	}
	if c.Store.Type == StoreCSV && (c.Store.TradesFile == "" || c.Store.HistoryFile == "") {
		return fmt.Errorf("store trades_file and history_file required for CSV type")
	}
	if c.Store.Type == StoreSQLite && c.Store.DBPath == "" {
		return fmt.Errorf("store db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency:        "USD",
			StartingBalance: 0,
		},
		Display: DisplayConfig{
			Theme:       "arc",
			ProfitColor: "#22bb33",
			LossColor:   "#bb2124",
			ChartStyle:  "default",
		},
		Store: StoreConfig{
			Type:        StoreCSV,
			TradesFile:  "./trades.csv",
			HistoryFile: "./account_history.csv",
			DBPath:      "./tradelog.sqlite",
		},
	}
}
