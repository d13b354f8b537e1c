package payoff

import "math"

// EvaluateCalendar prices a calendar spread. Near/far-month expiry
// dynamics cannot be represented by single-expiry intrinsic legs, so
// only the max loss (the net debit) is exact; the profit curve is a
// decay-shaped estimate peaking at the strike and floored at the max
// loss, and the breakeven depends on IV and time. Callers must not
// treat the curve as precise.
func EvaluateCalendar(p Params) *Result {
	p = p.WithDefaults()
	return calendarResult(p, spotBand(p.Strike))
}

func calendarResult(p Params, spots []float64) *Result {
	netPremium := p.Premium1 - p.Premium2 // debit
	maxLoss := -netPremium * p.scale()
	risk := -maxLoss
	estMaxProfit := risk * 1.5

	curve := make([]Point, 0, len(spots))
	peak := math.Inf(-1)
	for _, spot := range spots {
		dist := math.Abs(spot - p.Strike)
		decay := (dist * dist) / math.Pow(p.Strike*0.1, 2)
		pnl := estMaxProfit - decay*estMaxProfit
		if pnl < maxLoss {
			pnl = maxLoss
		}
		pnl = round2(pnl)
		if pnl > peak {
			peak = pnl
		}
		curve = append(curve, Point{Spot: spot, Payoff: pnl})
	}

	res := &Result{
		Strategy:   CalendarSpread,
		Curve:      curve,
		MaxLoss:    Bounded(maxLoss),
		Breakeven:  Breakeven{Kind: BreakevenVariable},
		RiskReward: "N/A",
	}
	if len(curve) > 0 && peak > 0 {
		res.MaxProfit = Bounded(peak)
	} else {
		res.MaxProfit = VariableAmount()
	}
	res.MaxProfitPct = VariableAmount()
	if risk > 0 {
		res.MaxLossPct = Bounded(-100)
	} else {
		res.MaxLossPct = Indeterminate()
	}
	return res
}

// spotBand generates the scanner's sampling grid centered on a price.
func spotBand(center float64) []float64 {
	start := math.Floor(center * 0.80)
	end := math.Ceil(center * 1.20)
	step := math.Max(1, math.Ceil((end-start)/maxSamples))
	spots := make([]float64, 0, maxSamples+1)
	for spot := start; spot <= end; spot += step {
		spots = append(spots, spot)
	}
	return spots
}
