package payoff

import (
	"math"

	apperrors "options-strategist/internal/errors"
)

// Formula computes a strategy result by closed-form algebra instead of
// scanning. The curve is still sampled over the supplied spots (the
// scanner's band when spots is nil), but max profit, max loss and
// breakevens come from the algebraic identities, making this path an
// independent cross-check of the scanner. Ratio spreads and jade
// lizards have no closed form here and report unsupported.
func Formula(strategy Strategy, p Params, spots []float64) (*Result, error) {
	p = p.WithDefaults()
	if err := p.Validate(strategy); err != nil {
		return nil, err
	}
	if spots == nil {
		spots = DefaultSpotRange(strategy, p)
	}

	var res *Result
	switch strategy {
	case LongCall:
		res = longCallFormula(p, spots)
	case LongPut:
		res = longPutFormula(p, spots)
	case ShortCall:
		res = shortCallFormula(p, spots)
	case ShortPut:
		res = shortPutFormula(p, spots)
	case BullCallSpread:
		res = bullCallSpreadFormula(p, spots)
	case BullPutSpread:
		res = bullPutSpreadFormula(p, spots)
	case BearCallSpread:
		res = bearCallSpreadFormula(p, spots)
	case BearPutSpread:
		res = bearPutSpreadFormula(p, spots)
	case ProtectivePut:
		res = protectivePutFormula(p, spots)
	case ProtectiveCall:
		res = protectiveCallFormula(p, spots)
	case SyntheticLongStock:
		res = syntheticLongFormula(p, spots)
	case SyntheticShortStock:
		res = syntheticShortFormula(p, spots)
	case LongStraddle:
		res = longStraddleFormula(p, spots)
	case ShortStraddle:
		res = shortStraddleFormula(p, spots)
	case LongStrangle:
		res = longStrangleFormula(p, spots)
	case ShortStrangle:
		res = shortStrangleFormula(p, spots)
	case IronCondor:
		res = ironCondorFormula(p, spots)
	case IronButterfly:
		res = ironButterflyFormula(p, spots)
	case CallButterfly:
		res = callButterflyFormula(p, spots)
	case CalendarSpread:
		res = calendarResult(p, spots)
	default:
		return nil, apperrors.ErrStrategyNotSupported
	}
	res.Strategy = strategy
	if strategy != CalendarSpread {
		res.RiskReward = riskReward(res.MaxProfit, res.MaxLoss)
	}
	return res, nil
}

// DefaultSpotRange builds the scanner's sampling band for the
// strategy's strikes, so the two paths sample comparable curves.
func DefaultSpotRange(strategy Strategy, p Params) []float64 {
	p = p.WithDefaults()
	if strategy == CalendarSpread {
		return spotBand(p.Strike)
	}
	legs, err := Legs(strategy, p)
	if err != nil || len(legs) == 0 {
		return spotBand(p.Strike)
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
	return spotBand(center)
}

func sampleCurve(spots []float64, pnl func(spot float64) float64) []Point {
	curve := make([]Point, 0, len(spots))
	for _, spot := range spots {
		curve = append(curve, Point{Spot: spot, Payoff: round2(pnl(spot))})
	}
	return curve
}

// pctOf guards the denominator: N/A instead of dividing by zero.
func pctOf(numerator, denominator float64) Amount {
	if denominator > 0 {
		return Bounded(numerator / denominator * 100)
	}
	return Indeterminate()
}

func lossPctVs(risk float64) Amount {
	if risk > 0 {
		return Bounded(-100)
	}
	return Indeterminate()
}

func longCallFormula(p Params, spots []float64) *Result {
	totalPremium := p.Premium * p.scale()
	curve := sampleCurve(spots, func(spot float64) float64 {
		return math.Max(0, spot-p.Strike)*p.scale() - totalPremium
	})
	return &Result{
		Curve:        curve,
		MaxProfit:    Unbounded(),
		MaxLoss:      Bounded(-totalPremium),
		Breakeven:    BreakevenAt(p.Strike + p.Premium),
		MaxProfitPct: Unbounded(),
		MaxLossPct:   Bounded(-100),
	}
}

func longPutFormula(p Params, spots []float64) *Result {
	totalPremium := p.Premium * p.scale()
	curve := sampleCurve(spots, func(spot float64) float64 {
		return math.Max(0, p.Strike-spot)*p.scale() - totalPremium
	})
	maxProfit := p.Strike*p.scale() - totalPremium
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(maxProfit),
		MaxLoss:      Bounded(-totalPremium),
		Breakeven:    BreakevenAt(p.Strike - p.Premium),
		MaxProfitPct: pctOf(maxProfit, totalPremium),
		MaxLossPct:   Bounded(-100),
	}
}

func shortCallFormula(p Params, spots []float64) *Result {
	totalPremium := p.Premium * p.scale()
	curve := sampleCurve(spots, func(spot float64) float64 {
		return totalPremium - math.Max(0, spot-p.Strike)*p.scale()
	})
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(totalPremium),
		MaxLoss:      Unbounded(),
		Breakeven:    BreakevenAt(p.Strike + p.Premium),
		MaxProfitPct: Indeterminate(),
		MaxLossPct:   Unbounded(),
	}
}

func shortPutFormula(p Params, spots []float64) *Result {
	totalPremium := p.Premium * p.scale()
	curve := sampleCurve(spots, func(spot float64) float64 {
		return totalPremium - math.Max(0, p.Strike-spot)*p.scale()
	})
	// Worst case is the underlying going to zero.
	risk := p.Strike*p.scale() - totalPremium
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(totalPremium),
		MaxLoss:      Bounded(-risk),
		Breakeven:    BreakevenAt(p.Strike - p.Premium),
		MaxProfitPct: pctOf(totalPremium, risk),
		MaxLossPct:   lossPctVs(risk),
	}
}

func bullCallSpreadFormula(p Params, spots []float64) *Result {
	net := p.Premium1 - p.Premium2 // debit
	curve := sampleCurve(spots, func(spot float64) float64 {
		return (math.Max(0, spot-p.Strike1) - math.Max(0, spot-p.Strike2) - net) * p.scale()
	})
	maxProfit := ((p.Strike2 - p.Strike1) - net) * p.scale()
	maxLoss := -net * p.scale()
	risk := -maxLoss
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(maxProfit),
		MaxLoss:      Bounded(maxLoss),
		Breakeven:    BreakevenAt(p.Strike1 + net),
		MaxProfitPct: pctOf(maxProfit, risk),
		MaxLossPct:   lossPctVs(risk),
	}
}

func bullPutSpreadFormula(p Params, spots []float64) *Result {
	net := p.Premium1 - p.Premium2 // credit received
	curve := sampleCurve(spots, func(spot float64) float64 {
		return (-math.Max(0, p.Strike1-spot) + math.Max(0, p.Strike2-spot) + net) * p.scale()
	})
	maxProfit := net * p.scale()
	maxLoss := -((p.Strike1 - p.Strike2) - net) * p.scale()
	risk := -maxLoss
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(maxProfit),
		MaxLoss:      Bounded(maxLoss),
		Breakeven:    BreakevenAt(p.Strike1 - net),
		MaxProfitPct: pctOf(maxProfit, risk),
		MaxLossPct:   lossPctVs(risk),
	}
}

func bearCallSpreadFormula(p Params, spots []float64) *Result {
	net := p.Premium1 - p.Premium2 // credit received
	curve := sampleCurve(spots, func(spot float64) float64 {
		return (-math.Max(0, spot-p.Strike1) + math.Max(0, spot-p.Strike2) + net) * p.scale()
	})
	maxProfit := net * p.scale()
	maxLoss := -((p.Strike2 - p.Strike1) - net) * p.scale()
	risk := -maxLoss
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(maxProfit),
		MaxLoss:      Bounded(maxLoss),
		Breakeven:    BreakevenAt(p.Strike1 + net),
		MaxProfitPct: pctOf(maxProfit, risk),
		MaxLossPct:   lossPctVs(risk),
	}
}

func bearPutSpreadFormula(p Params, spots []float64) *Result {
	net := p.Premium1 - p.Premium2 // debit
	curve := sampleCurve(spots, func(spot float64) float64 {
		return (math.Max(0, p.Strike1-spot) - math.Max(0, p.Strike2-spot) - net) * p.scale()
	})
	maxProfit := ((p.Strike1 - p.Strike2) - net) * p.scale()
	maxLoss := -net * p.scale()
	risk := -maxLoss
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(maxProfit),
		MaxLoss:      Bounded(maxLoss),
		Breakeven:    BreakevenAt(p.Strike1 - net),
		MaxProfitPct: pctOf(maxProfit, risk),
		MaxLossPct:   lossPctVs(risk),
	}
}

func protectivePutFormula(p Params, spots []float64) *Result {
	curve := sampleCurve(spots, func(spot float64) float64 {
		stockPnl := spot - p.StockPrice
		putPnl := math.Max(0, p.Strike-spot) - p.Premium
		return (stockPnl + putPnl) * p.scale()
	})
	maxLoss := (p.Strike - p.StockPrice - p.Premium) * p.scale()
	invested := p.StockPrice * p.scale()
	return &Result{
		Curve:        curve,
		MaxProfit:    Unbounded(),
		MaxLoss:      Bounded(maxLoss),
		Breakeven:    BreakevenAt(p.StockPrice + p.Premium),
		MaxProfitPct: Unbounded(),
		MaxLossPct:   pctOf(maxLoss, invested),
	}
}

func protectiveCallFormula(p Params, spots []float64) *Result {
	curve := sampleCurve(spots, func(spot float64) float64 {
		stockPnl := spot - p.StockPrice
		shortCallPnl := p.Premium - math.Max(0, spot-p.Strike)
		return (stockPnl + shortCallPnl) * p.scale()
	})
	maxProfit := (p.Strike - p.StockPrice + p.Premium) * p.scale()
	maxLoss := (p.Premium - p.StockPrice) * p.scale()
	invested := p.StockPrice * p.scale()
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(maxProfit),
		MaxLoss:      Bounded(maxLoss),
		Breakeven:    BreakevenAt(p.StockPrice - p.Premium),
		MaxProfitPct: pctOf(maxProfit, invested),
		MaxLossPct:   pctOf(maxLoss, invested),
	}
}

func syntheticLongFormula(p Params, spots []float64) *Result {
	net := p.Premium - p.Premium2
	curve := sampleCurve(spots, func(spot float64) float64 {
		longCall := math.Max(0, spot-p.Strike) - p.Premium
		shortPut := p.Premium2 - math.Max(0, p.Strike-spot)
		return (longCall + shortPut) * p.scale()
	})
	return &Result{
		Curve:        curve,
		MaxProfit:    Unbounded(),
		MaxLoss:      Bounded(-(p.Strike + net) * p.scale()),
		Breakeven:    BreakevenAt(p.Strike + net),
		MaxProfitPct: Unbounded(),
		MaxLossPct:   Indeterminate(),
	}
}

func syntheticShortFormula(p Params, spots []float64) *Result {
	net := p.Premium - p.Premium2
	curve := sampleCurve(spots, func(spot float64) float64 {
		shortCall := p.Premium - math.Max(0, spot-p.Strike)
		longPut := math.Max(0, p.Strike-spot) - p.Premium2
		return (shortCall + longPut) * p.scale()
	})
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded((p.Strike - net) * p.scale()),
		MaxLoss:      Unbounded(),
		Breakeven:    BreakevenAt(p.Strike + net),
		MaxProfitPct: Indeterminate(),
		MaxLossPct:   Unbounded(),
	}
}

func longStraddleFormula(p Params, spots []float64) *Result {
	totalPremium := p.Premium1 + p.Premium2
	curve := sampleCurve(spots, func(spot float64) float64 {
		callPnl := math.Max(0, spot-p.Strike) - p.Premium1
		putPnl := math.Max(0, p.Strike-spot) - p.Premium2
		return (callPnl + putPnl) * p.scale()
	})
	risk := totalPremium * p.scale()
	return &Result{
		Curve:        curve,
		MaxProfit:    Unbounded(),
		MaxLoss:      Bounded(-risk),
		Breakeven:    BreakevenAt(p.Strike-totalPremium, p.Strike+totalPremium),
		MaxProfitPct: Unbounded(),
		MaxLossPct:   Bounded(-100),
	}
}

func shortStraddleFormula(p Params, spots []float64) *Result {
	totalPremium := p.Premium1 + p.Premium2
	curve := sampleCurve(spots, func(spot float64) float64 {
		shortCall := p.Premium1 - math.Max(0, spot-p.Strike)
		shortPut := p.Premium2 - math.Max(0, p.Strike-spot)
		return (shortCall + shortPut) * p.scale()
	})
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(totalPremium * p.scale()),
		MaxLoss:      Unbounded(),
		Breakeven:    BreakevenAt(p.Strike-totalPremium, p.Strike+totalPremium),
		MaxProfitPct: Indeterminate(),
		MaxLossPct:   Unbounded(),
	}
}

func longStrangleFormula(p Params, spots []float64) *Result {
	totalPremium := p.Premium1 + p.Premium2
	curve := sampleCurve(spots, func(spot float64) float64 {
		putPnl := math.Max(0, p.Strike1-spot) - p.Premium1
		callPnl := math.Max(0, spot-p.Strike2) - p.Premium2
		return (putPnl + callPnl) * p.scale()
	})
	risk := totalPremium * p.scale()
	return &Result{
		Curve:        curve,
		MaxProfit:    Unbounded(),
		MaxLoss:      Bounded(-risk),
		Breakeven:    BreakevenAt(p.Strike1-totalPremium, p.Strike2+totalPremium),
		MaxProfitPct: Unbounded(),
		MaxLossPct:   Bounded(-100),
	}
}

func shortStrangleFormula(p Params, spots []float64) *Result {
	totalPremium := p.Premium1 + p.Premium2
	curve := sampleCurve(spots, func(spot float64) float64 {
		shortPut := p.Premium1 - math.Max(0, p.Strike1-spot)
		shortCall := p.Premium2 - math.Max(0, spot-p.Strike2)
		return (shortPut + shortCall) * p.scale()
	})
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(totalPremium * p.scale()),
		MaxLoss:      Unbounded(),
		Breakeven:    BreakevenAt(p.Strike1-totalPremium, p.Strike2+totalPremium),
		MaxProfitPct: Indeterminate(),
		MaxLossPct:   Unbounded(),
	}
}

func ironCondorFormula(p Params, spots []float64) *Result {
	net := (p.Premium2 + p.Premium3) - (p.Premium1 + p.Premium4) // credit
	curve := sampleCurve(spots, func(spot float64) float64 {
		intrinsic := -math.Max(0, p.Strike2-spot) + math.Max(0, p.Strike1-spot) -
			math.Max(0, spot-p.Strike3) + math.Max(0, spot-p.Strike4)
		return (intrinsic + net) * p.scale()
	})
	maxProfit := net * p.scale()
	maxLoss := -((p.Strike2 - p.Strike1) - net) * p.scale()
	risk := -maxLoss
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(maxProfit),
		MaxLoss:      Bounded(maxLoss),
		Breakeven:    BreakevenAt(p.Strike2-net, p.Strike3+net),
		MaxProfitPct: pctOf(maxProfit, risk),
		MaxLossPct:   lossPctVs(risk),
	}
}

func ironButterflyFormula(p Params, spots []float64) *Result {
	net := (p.Premium2 + p.Premium3) - (p.Premium1 + p.Premium4) // credit
	curve := sampleCurve(spots, func(spot float64) float64 {
		intrinsic := math.Max(0, p.Strike1-spot) - math.Max(0, p.Strike2-spot) -
			math.Max(0, spot-p.Strike2) + math.Max(0, spot-p.Strike3)
		return (intrinsic + net) * p.scale()
	})
	maxProfit := net * p.scale()
	maxLoss := -((p.Strike2 - p.Strike1) - net) * p.scale()
	risk := -maxLoss
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(maxProfit),
		MaxLoss:      Bounded(maxLoss),
		Breakeven:    BreakevenAt(p.Strike2-net, p.Strike2+net),
		MaxProfitPct: pctOf(maxProfit, risk),
		MaxLossPct:   lossPctVs(risk),
	}
}

func callButterflyFormula(p Params, spots []float64) *Result {
	net := p.Premium1 + p.Premium3 - 2*p.Premium2 // debit
	curve := sampleCurve(spots, func(spot float64) float64 {
		body := math.Max(0, spot-p.Strike1) - 2*math.Max(0, spot-p.Strike2) + math.Max(0, spot-p.Strike3)
		return (body - net) * p.scale()
	})
	maxLoss := -net * p.scale()
	maxProfit := ((p.Strike2 - p.Strike1) - net) * p.scale()
	risk := -maxLoss
	return &Result{
		Curve:        curve,
		MaxProfit:    Bounded(maxProfit),
		MaxLoss:      Bounded(maxLoss),
		Breakeven:    BreakevenAt(p.Strike1+net, p.Strike3-net),
		MaxProfitPct: pctOf(maxProfit, risk),
		MaxLossPct:   lossPctVs(risk),
	}
}
