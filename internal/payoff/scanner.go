package payoff

import (
	"math"

	"options-strategist/internal/models"
)

// unboundedThreshold is where a sampled extreme is reported as
// structurally unlimited instead of a number. The sampling approach
// cannot evaluate infinity, so the sentinel is range-dependent.
const unboundedThreshold = 1e9

// maxSamples caps the scan at roughly this many points regardless of
// the price range.
const maxSamples = 200

// Evaluate maps the strategy to legs and builds its payoff curve by
// scanning a band of hypothetical settlement prices. Calendar spreads
// bypass the leg model entirely (see EvaluateCalendar).
func Evaluate(strategy Strategy, p Params) (*Result, error) {
	p = p.WithDefaults()
	if strategy == CalendarSpread {
		if err := p.Validate(strategy); err != nil {
			return nil, err
		}
		return EvaluateCalendar(p), nil
	}
	legs, err := Legs(strategy, p)
	if err != nil {
		return nil, err
	}
	res := EvaluateLegs(legs, p.LotSize)
	res.Strategy = strategy
	return res, nil
}

// EvaluateLegs scans an arbitrary leg list. The curve is a pure sweep;
// max profit, max loss and breakevens are derived from it by a separate
// fold, so each half is testable on its own.
func EvaluateLegs(legs []models.Leg, lotSize int) *Result {
	if lotSize < 1 {
		lotSize = 1
	}
	curve := Sweep(legs, lotSize)
	maxProfit, maxLoss, crossings := FoldCurve(curve)

	res := &Result{Curve: curve}
	if maxProfit > unboundedThreshold {
		res.MaxProfit = Unbounded()
	} else {
		res.MaxProfit = Bounded(maxProfit)
	}
	if maxLoss < -unboundedThreshold {
		res.MaxLoss = Unbounded()
	} else {
		res.MaxLoss = Bounded(maxLoss)
	}
	res.Breakeven = BreakevenAt(crossings...)
	res.RiskReward = riskReward(res.MaxProfit, res.MaxLoss)
	return res
}

// Sweep samples the total payoff of the legs across a band of
// settlement prices: +/-20% around the midpoint of the legs' reference
// prices, with the step sized so the band holds at most ~200 samples
// and is never finer than one price unit.
func Sweep(legs []models.Leg, lotSize int) []Point {
	if len(legs) == 0 {
		return nil
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, leg := range legs {
		ref := leg.ReferencePrice()
		lo = math.Min(lo, ref)
		hi = math.Max(hi, ref)
	}
	center := (lo + hi) / 2
	if center == 0 {
		center = lo
	}
	return sweepBand(center, func(spot float64) float64 {
		total := 0.0
		for _, leg := range legs {
			total += LegPayoff(leg, spot)
		}
		return total * float64(lotSize)
	})
}

func sweepBand(center float64, pnl func(spot float64) float64) []Point {
	start := math.Floor(center * 0.80)
	end := math.Ceil(center * 1.20)
	step := math.Max(1, math.Ceil((end-start)/maxSamples))

	curve := make([]Point, 0, maxSamples+1)
	for spot := start; spot <= end; spot += step {
		curve = append(curve, Point{Spot: spot, Payoff: round2(pnl(spot))})
	}
	return curve
}

// FoldCurve reduces a sampled curve to its extremes and zero crossings.
// A crossing is recorded at the later sample of any adjacent pair whose
// payoff sign flips; resolution is therefore bounded by the scan step.
func FoldCurve(curve []Point) (maxProfit, maxLoss float64, crossings []float64) {
	maxProfit = math.Inf(-1)
	maxLoss = math.Inf(1)
	for i, pt := range curve {
		if pt.Payoff > maxProfit {
			maxProfit = pt.Payoff
		}
		if pt.Payoff < maxLoss {
			maxLoss = pt.Payoff
		}
		if i == 0 {
			continue
		}
		prev := curve[i-1].Payoff
		if (prev < 0 && pt.Payoff >= 0) || (prev > 0 && pt.Payoff <= 0) {
			crossings = append(crossings, pt.Spot)
		}
	}
	if len(curve) == 0 {
		return 0, 0, nil
	}
	return maxProfit, maxLoss, crossings
}
