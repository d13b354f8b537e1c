// Package config provides configuration management for the strategy
// engine CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Trading     TradingConfig               `mapstructure:"trading"`
	Risk        RiskConfig                  `mapstructure:"risk"`
	Underlyings map[string]UnderlyingConfig `mapstructure:"underlyings"`
	Storage     StorageConfig               `mapstructure:"storage"`
	UI          UIConfig                    `mapstructure:"ui"`
	Logging     LoggingConfig               `mapstructure:"logging"`
	Credentials Credentials                 `mapstructure:"-" json:"-"` // Loaded separately, never serialized
}

// TradingConfig holds evaluation defaults.
type TradingConfig struct {
	DefaultSymbol   string `mapstructure:"default_symbol"`
	DefaultLots     int    `mapstructure:"default_lots"`
	DefaultExchange string `mapstructure:"default_exchange"` // NSE, BSE
}

// RiskConfig holds the business-rule gates applied before strategy
// construction.
type RiskConfig struct {
	MaxVIX        float64 `mapstructure:"max_vix"`
	MinRiskReward float64 `mapstructure:"min_risk_reward"`
}

// UnderlyingConfig overrides the built-in per-symbol strategy geometry
// and lot size.
type UnderlyingConfig struct {
	Width    float64 `mapstructure:"width"`
	Interval float64 `mapstructure:"interval"`
	LotSize  int     `mapstructure:"lot_size"`
}

// StorageConfig holds the evaluation journal location.
type StorageConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// Credentials holds API credentials.
type Credentials struct {
	Zerodha ZerodhaCredentials `mapstructure:"zerodha"`
}

// ZerodhaCredentials holds Zerodha Kite Connect credentials.
type ZerodhaCredentials struct {
	APIKey      string `mapstructure:"api_key"`
	APISecret   string `mapstructure:"api_secret"`
	AccessToken string `mapstructure:"access_token"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-strategist"
	}
	return filepath.Join(home, ".config", "options-strategist")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	// Load main config
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Load credentials
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	applyDefaults(cfg, configDir)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template
			return createTemplateConfig(configDir, name)
		}
		return err
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return createTemplateCredentials(configDir)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ZERODHA_API_KEY"); v != "" {
		cfg.Credentials.Zerodha.APIKey = v
	}
	if v := os.Getenv("ZERODHA_API_SECRET"); v != "" {
		cfg.Credentials.Zerodha.APISecret = v
	}
	if v := os.Getenv("ZERODHA_ACCESS_TOKEN"); v != "" {
		cfg.Credentials.Zerodha.AccessToken = v
	}
	if v := os.Getenv("STRATEGIST_SYMBOL"); v != "" {
		cfg.Trading.DefaultSymbol = v
	}
}

func applyDefaults(cfg *Config, configDir string) {
	if cfg.Trading.DefaultSymbol == "" {
		cfg.Trading.DefaultSymbol = "NIFTY"
	}
	if cfg.Trading.DefaultLots == 0 {
		cfg.Trading.DefaultLots = 1
	}
	if cfg.Trading.DefaultExchange == "" {
		cfg.Trading.DefaultExchange = "NSE"
	}
	if cfg.Risk.MaxVIX == 0 {
		cfg.Risk.MaxVIX = 20
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = filepath.Join(configDir, "strategist.db")
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	// Log to the rotating file by default, keeping stdout for command
	// output.
	if !cfg.Logging.Console && !cfg.Logging.File {
		cfg.Logging.File = true
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Risk.MaxVIX < 0 || c.Risk.MaxVIX > 100 {
		return fmt.Errorf("max_vix must be between 0 and 100")
	}
	if c.Risk.MinRiskReward < 0 {
		return fmt.Errorf("min_risk_reward must be non-negative")
	}
	if c.Trading.DefaultLots < 1 {
		return fmt.Errorf("default_lots must be at least 1")
	}
	for symbol, u := range c.Underlyings {
		if u.Width < 0 || u.Interval < 0 || u.LotSize < 0 {
			return fmt.Errorf("underlying %s: width, interval and lot_size must be non-negative", symbol)
		}
	}
	return nil
}

// HasBrokerCredentials reports whether live chain fetching is possible.
func (c *Config) HasBrokerCredentials() bool {
	return c.Credentials.Zerodha.APIKey != "" && c.Credentials.Zerodha.AccessToken != ""
}
