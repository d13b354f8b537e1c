// Package selection picks concrete strikes from a live option chain
// using expected-move targeting, open-interest/delta scoring and
// delta-targeting fallbacks.
package selection

import (
	"math"

	"options-strategist/internal/models"
)

// DefaultInterval is assumed when the chain is too thin to measure.
const DefaultInterval = 50.0

// DetectInterval infers the chain's strike spacing: the minimum
// positive gap between consecutive strikes. A chain with fewer than two
// distinct strikes reports the default. The minimum, not the mode, so a
// chain mixing 50 and 100 point gaps reads as 50.
func DetectInterval(strikes []models.OptionStrike) float64 {
	interval := math.Inf(1)
	for i := 1; i < len(strikes); i++ {
		d := math.Abs(strikes[i].Strike - strikes[i-1].Strike)
		if d > 0 && d < interval {
			interval = d
		}
	}
	if math.IsInf(interval, 1) {
		return DefaultInterval
	}
	return interval
}

// RoundToStrike rounds a price target onto the strike grid.
func RoundToStrike(target, interval float64) float64 {
	if interval <= 0 {
		return target
	}
	return math.Round(target/interval) * interval
}
