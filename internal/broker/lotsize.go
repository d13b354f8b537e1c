package broker

import "strings"

// lotSizeRule pairs a symbol fragment with its contract lot size.
// Order matters: MIDCPNIFTY and BANKNIFTY must match before NIFTY.
type lotSizeRule struct {
	fragment string
	lotSize  int
}

var lotSizeRules = []lotSizeRule{
	{"MIDCPNIFTY", 50},
	{"FINNIFTY", 25},
	{"BANKNIFTY", 15},
	{"NIFTY", 75},
	{"BANKEX", 15},
	{"SENSEX", 10},
	{"M&M", 350},
}

// LotSizeFor returns the contract lot size for a symbol, falling back
// to 1 for unknown underlyings (cash equities). Used when the
// instrument dump does not carry a lot size, such as snapshot files.
func LotSizeFor(symbol string) int {
	s := strings.ToUpper(symbol)
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	for _, rule := range lotSizeRules {
		if strings.Contains(s, rule.fragment) {
			return rule.lotSize
		}
	}
	return 1
}
