package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration of the fintrack tool. User-edited
// feature settings (DCA, macro, theme) live in the store, not here.
type Config struct {
	Store   StoreConfig   `json:"store" yaml:"store"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Risk    RiskConfig    `json:"risk" yaml:"risk"`
	Display DisplayConfig `json:"display" yaml:"display"`
}

// StoreConfig selects the key-value store back end.
type StoreConfig struct {
	Driver string `json:"driver" yaml:"driver"` // "sqlite"
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Encoding    string `json:"encoding" yaml:"encoding"` // "console" or "json"
	Development bool   `json:"development" yaml:"development"`
}

// RiskConfig holds the stress test parameters.
type RiskConfig struct {
	RiskFreeRate  float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	ShockFraction float64 `json:"shock_fraction" yaml:"shock_fraction"` // 0.2 = -20% on the last value
}

// DisplayConfig controls report formatting.
type DisplayConfig struct {
	Currency string `json:"currency" yaml:"currency"` // ISO 4217 code
}

// LoadFromFile loads configuration from a file (YAML, or JSON as fallback).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
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

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
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
	// Every command opens the store anew, so a non-persistent driver would
	// drop each write as soon as the command exits.
	if c.Store.Driver != "sqlite" {
		return fmt.Errorf("store.driver must be 'sqlite'")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path required for sqlite driver")
	}
	if c.Log.Encoding != "console" && c.Log.Encoding != "json" {
		return fmt.Errorf("log.encoding must be 'console' or 'json'")
	}
	if c.Risk.ShockFraction < 0 || c.Risk.ShockFraction >= 1 {
		return fmt.Errorf("risk.shock_fraction must be in [0, 1)")
	}
	if c.Display.Currency == "" {
		return fmt.Errorf("display.currency is required")
	}
	if money.GetCurrency(c.Display.Currency) == nil {
		return fmt.Errorf("unknown currency: %s", c.Display.Currency)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "./fintrack.sqlite",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
		Risk: RiskConfig{
			RiskFreeRate:  0,
			ShockFraction: 0.2,
		},
		Display: DisplayConfig{
			Currency: money.EUR,
		},
	}
}
