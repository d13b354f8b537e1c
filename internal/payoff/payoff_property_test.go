package payoff

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"options-strategist/internal/models"
)

// Property: SELL legs are the exact negation of the corresponding BUY
// leg at every spot, for equal strike/premium/quantity.
func TestProperty_SellNegatesBuy(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("SELL payoff is -BUY payoff at every spot", prop.ForAll(
		func(strike, premium, spot float64, qty int, isPut bool) bool {
			kind := models.CallOption
			if isPut {
				kind = models.PutOption
			}
			buy := models.Leg{Kind: kind, Action: models.Buy, Strike: strike, Price: premium, Quantity: qty}
			sell := buy
			sell.Action = models.Sell
			return LegPayoff(buy, spot) == -LegPayoff(sell, spot)
		},
		gen.Float64Range(100, 50000),
		gen.Float64Range(0.05, 2000),
		gen.Float64Range(0, 60000),
		gen.IntRange(1, 10),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: long call payoff never decreases and long put payoff never
// increases as spot rises.
func TestProperty_PayoffMonotonicity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("long call non-decreasing, long put non-increasing", prop.ForAll(
		func(strike, premium, spotA, spotB float64) bool {
			lo, hi := math.Min(spotA, spotB), math.Max(spotA, spotB)
			call := models.Leg{Kind: models.CallOption, Action: models.Buy, Strike: strike, Price: premium, Quantity: 1}
			put := models.Leg{Kind: models.PutOption, Action: models.Buy, Strike: strike, Price: premium, Quantity: 1}
			if LegPayoff(call, hi) < LegPayoff(call, lo) {
				return false
			}
			return LegPayoff(put, hi) <= LegPayoff(put, lo)
		},
		gen.Float64Range(100, 50000),
		gen.Float64Range(0.05, 2000),
		gen.Float64Range(0, 60000),
		gen.Float64Range(0, 60000),
	))

	properties.TestingRun(t)
}

// Property: the fold's extremes bound every sample on the curve, and
// every reported crossing is a sampled spot.
func TestProperty_FoldBoundsCurve(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("fold extremes bound all samples", prop.ForAll(
		func(strike, premium float64) bool {
			legs, err := Legs(LongStraddle, Params{
				Strike:   strike,
				Premium1: premium,
				Premium2: premium,
				Lots:     1,
			})
			if err != nil {
				return false
			}
			curve := Sweep(legs, 50)
			maxProfit, maxLoss, crossings := FoldCurve(curve)

			sampled := make(map[float64]bool, len(curve))
			for _, pt := range curve {
				if pt.Payoff > maxProfit || pt.Payoff < maxLoss {
					return false
				}
				sampled[pt.Spot] = true
			}
			for _, c := range crossings {
				if !sampled[c] {
					return false
				}
			}
			return true
		},
		gen.Float64Range(1000, 50000),
		gen.Float64Range(1, 500),
	))

	properties.TestingRun(t)
}

// Property: the scanner's breakeven lands within one step of the
// closed-form breakeven for a long call whose crossing lies inside the
// 20% band.
func TestProperty_ScannerFormulaBreakevenAgreement(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("scanner breakeven within one step of formula", prop.ForAll(
		func(strike, premium float64) bool {
			p := Params{Strike: strike, Premium: premium, Lots: 1, LotSize: 50}
			scan, err := Evaluate(LongCall, p)
			if err != nil || len(scan.Curve) < 2 {
				return false
			}
			form, err := Formula(LongCall, p, nil)
			if err != nil || form.Breakeven.Kind != BreakevenPoints {
				return false
			}
			if scan.Breakeven.Kind != BreakevenPoints || len(scan.Breakeven.Points) != 1 {
				return false
			}
			step := scan.Curve[1].Spot - scan.Curve[0].Spot
			return math.Abs(scan.Breakeven.Points[0]-form.Breakeven.Points[0]) <= step
		},
		gen.Float64Range(5000, 40000).Map(func(v float64) float64 { return math.Round(v) }),
		gen.Float64Range(10, 400).Map(func(v float64) float64 { return math.Round(v*20) / 20 }),
	))

	properties.TestingRun(t)
}
