package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/tradelog/internal/logger"
	"github.com/rustyeddy/tradelog/market"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvConfig   = "TRADELOG_CONFIG"
	EnvDB       = "TRADELOG_DB"
	EnvLogLevel = "TRADELOG_LOG_LEVEL"
	EnvAddr     = "TRADELOG_ADDR"
)

// Config is everything tradelog reads at startup.
type Config struct {
	Settlement  string         `json:"settlement" yaml:"settlement"`
	Instruments market.Catalog `json:"instruments" yaml:"instruments"`
	Rates       market.Rates   `json:"rates" yaml:"rates"`
	Journal     JournalConfig  `json:"journal" yaml:"journal"`
	Log         LogConfig      `json:"log" yaml:"log"`
	Server      ServerConfig   `json:"server" yaml:"server"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
	// StrictSymbols rejects trades on symbols missing from instruments.
	StrictSymbols bool `json:"strict_symbols" yaml:"strict_symbols"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none
// are named) into the process environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
		logger.Debugf("loaded environment from %s", p)
	}
	return nil
}

// Load builds the effective configuration: defaults, then the file at
// path if one is given, then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON) on top of
// the defaults. Instruments and rates in the file extend the built-in
// tables.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.decodeFile(path); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, c); err != nil {
		if jerr := json.Unmarshal(data, c); jerr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): %w", errors.Join(err, jerr))
		}
	}
	return nil
}

// ApplyEnv overrides fields from TRADELOG_* variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.Journal.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
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
	if c.Settlement == "" {
		return fmt.Errorf("settlement is required")
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("at least one instrument is required")
	}
	for _, sym := range c.Instruments.Symbols() {
		spec := c.Instruments[sym]
		if !spec.PipUnitSize.IsPositive() {
			return fmt.Errorf("instruments.%s.pip_unit_size must be positive", sym)
		}
		if !spec.ContractSize.IsPositive() {
			return fmt.Errorf("instruments.%s.contract_size must be positive", sym)
		}
		if spec.QuoteCurrency == "" {
			return fmt.Errorf("instruments.%s.quote_currency is required", sym)
		}
	}
	for cur, rate := range c.Rates {
		if !rate.IsPositive() {
			return fmt.Errorf("rates.%s must be positive", cur)
		}
	}
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// Reference returns the lookup tables the calculators are built with.
func (c *Config) Reference() market.Reference {
	return market.Reference{
		Settlement: c.Settlement,
		Catalog:    c.Instruments,
		Rates:      c.Rates,
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Settlement:  market.SettlementCurrency,
		Instruments: market.DefaultCatalog(),
		Rates:       market.DefaultRates(),
		Journal: JournalConfig{
			DBPath: "./tradelog.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}
