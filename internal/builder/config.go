// Package builder assembles concrete named strategies from a live
// option chain at a detected at-the-money strike.
package builder

import "strings"

// Config is the per-underlying strategy geometry: Interval is the
// chain's strike spacing, Width the default single-leg offset used
// when auto-building spreads and condors.
type Config struct {
	Width    float64 `json:"width"`
	Interval float64 `json:"interval"`
}

// DefaultConfig covers NIFTY and anything not matched by pattern.
var DefaultConfig = Config{Width: 200, Interval: 50}

type symbolRule struct {
	patterns []string
	config   Config
}

// Ordered: first match wins. FINNIFTY and MIDCPNIFTY must be checked
// before the generic NIFTY-ish default applies.
var symbolRules = []symbolRule{
	{[]string{"BANKNIFTY", "NIFTYBANK", "NIFTY BANK"}, Config{Width: 500, Interval: 100}},
	{[]string{"FINNIFTY", "FINANCIAL", "FIN SERVICE"}, Config{Width: 200, Interval: 50}},
	{[]string{"MIDCP", "MIDCAP", "MID CP"}, Config{Width: 100, Interval: 25}},
	{[]string{"SENSEX"}, Config{Width: 400, Interval: 100}},
	{[]string{"RELIANCE"}, Config{Width: 20, Interval: 10}},
	{[]string{"HDFCBANK", "HDFC BANK"}, Config{Width: 10, Interval: 5}},
	{[]string{"ICICIBANK"}, Config{Width: 20, Interval: 10}},
	{[]string{"SBIN"}, Config{Width: 10, Interval: 10}},
	{[]string{"INFY"}, Config{Width: 40, Interval: 100}},
	{[]string{"TCS"}, Config{Width: 20, Interval: 10}},
	{[]string{"BHARTIARTL"}, Config{Width: 20, Interval: 10}},
}

// ConfigFor resolves the strategy config for an underlying by symbol
// pattern matching, falling back to the NIFTY default.
func ConfigFor(symbol string) Config {
	s := strings.ToUpper(symbol)
	for _, rule := range symbolRules {
		for _, p := range rule.patterns {
			if strings.Contains(s, p) {
				return rule.config
			}
		}
	}
	return DefaultConfig
}
