package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Options strategist configuration
# This file was auto-generated. Edit as needed.

[trading]
default_symbol = "NIFTY"
default_lots = 1
default_exchange = "NSE"

[risk]
# Strategy construction halts when India VIX is above this level.
max_vix = 20.0
min_risk_reward = 0.0

[storage]
# Evaluation journal. Defaults to strategist.db next to this file.
database_path = ""

[ui]
color_enabled = true
date_format = "2006-01-02"
time_format = "15:04:05"

[logging]
level = "info"
console = false
file = true
max_size = 100
max_backups = 7
max_age = 30

# Per-symbol overrides for strike interval, spread width and lot size.
# Uncomment and adjust to override the built-in tables.
#
# [underlyings.BANKNIFTY]
# width = 500.0
# interval = 100.0
# lot_size = 15
#
# [underlyings.NIFTY]
# width = 200.0
# interval = 50.0
# lot_size = 75
`

const credentialsTemplate = `# Options strategist credentials
# KEEP THIS FILE SECURE - DO NOT COMMIT TO VERSION CONTROL

[zerodha]
api_key = ""
api_secret = ""
access_token = ""
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing template config: %w", err)
	}

	fmt.Printf("Created template config at %s\n", path)
	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing template credentials: %w", err)
	}

	fmt.Printf("Created template credentials at %s\n", path)
	fmt.Println("Set ZERODHA_API_KEY and ZERODHA_ACCESS_TOKEN to fetch live chains.")
	return nil
}

// UnderlyingFor returns the override for a symbol, if one is configured.
func (c *Config) UnderlyingFor(symbol string) (UnderlyingConfig, bool) {
	u, ok := c.Underlyings[symbol]
	return u, ok
}
