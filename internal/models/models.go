// Package models provides domain models for the strategy engine.
package models

import (
	"fmt"
	"strings"
)

// Signal represents a market-direction view supplied by the caller.
type Signal string

const (
	SignalBullish Signal = "BULL"
	SignalBearish Signal = "BEAR"
	SignalNeutral Signal = "NEUTRAL"
)

// ParseSignal parses a signal string, case-insensitively.
func ParseSignal(s string) (Signal, error) {
	switch Signal(strings.ToUpper(strings.TrimSpace(s))) {
	case SignalBullish:
		return SignalBullish, nil
	case SignalBearish:
		return SignalBearish, nil
	case SignalNeutral, "":
		return SignalNeutral, nil
	}
	return "", fmt.Errorf("invalid signal %q (want BULL, BEAR or NEUTRAL)", s)
}
