package selection

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: for any valid chain and spot, the short strikes come back
// properly ordered (put below call) unless the selection explicitly
// reports the crossed terminal case.
func TestProperty_ShortStrikeOrdering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("sellPut.strike < sellCall.strike unless crossed", prop.ForAll(
		func(startK int, n int, spotOffset int, dte float64) bool {
			start := float64(startK) * 50
			chain := testChain(start, 50, n, start+float64(spotOffset))
			spot := start + float64(spotOffset)

			sel, err := SelectStrikes(chain, spot, dte)
			if err != nil {
				return false
			}
			if sel.Crossed {
				return true
			}
			return sel.SellPut.Strike < sel.SellCall.Strike
		},
		gen.IntRange(200, 800),
		gen.IntRange(5, 60),
		gen.IntRange(0, 1000),
		gen.Float64Range(0, 45),
	))

	properties.TestingRun(t)
}

// Property: detected interval divides every consecutive gap of a
// uniform chain and rounding lands on the grid.
func TestProperty_IntervalRounding(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("rounded targets are grid multiples", prop.ForAll(
		func(target float64, intervalSteps int) bool {
			interval := float64(intervalSteps) * 5
			rounded := RoundToStrike(target, interval)
			ratio := rounded / interval
			return math.Abs(ratio-math.Round(ratio)) < 1e-9
		},
		gen.Float64Range(100, 90000),
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t)
}
