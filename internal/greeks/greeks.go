// Package greeks estimates Black-Scholes option Greeks. The selection
// engine consumes the output as an opaque per-strike annotation; the
// estimator degrades to all-zero values on invalid inputs instead of
// failing.
package greeks

import (
	"math"

	"options-strategist/internal/models"
)

const (
	riskFreeRate = 0.10
	minYears     = 0.002
	defaultVol   = 0.15
)

// normCDF is the Hastings polynomial approximation of the standard
// normal CDF, accurate to about 7.5e-8.
func normCDF(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	t := 1 / (1 + 0.2316419*math.Abs(x))
	d := 0.39894228 * math.Exp(-x*x/2)
	p := d * t * (0.31938153 + t*(-0.356563782+t*(1.781477937+t*(-1.821255978+t*1.330274429))))
	if x > 0 {
		return 1 - p
	}
	return p
}

func normPDF(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
}

// Calculate computes Black-Scholes Greeks for one option. Time t is in
// years, volatility v is a fraction (0.15 for 15%). Invalid spot or
// strike yields the zero value rather than an error; IV is reported as
// a percentage.
func Calculate(spot, strike, t, v, r float64, kind models.InstrumentKind) models.OptionGreeks {
	if spot <= 0 || strike <= 0 {
		return models.OptionGreeks{}
	}
	if t <= minYears {
		t = minYears
	}
	if v <= 0 {
		v = defaultVol
	}

	sqt := math.Sqrt(t)
	d1 := (math.Log(spot/strike) + (r+v*v/2)*t) / (v * sqt)
	d2 := d1 - v*sqt

	g := models.OptionGreeks{
		Gamma: normPDF(d1) / (spot * v * sqt),
		Vega:  spot * normPDF(d1) * sqt / 100,
		IV:    v * 100,
	}
	if kind == models.CallOption {
		g.Delta = normCDF(d1)
		g.Theta = (-(spot*normPDF(d1)*v)/(2*sqt) - r*strike*math.Exp(-r*t)*normCDF(d2)) / 365
	} else {
		g.Delta = normCDF(d1) - 1
		g.Theta = (-(spot*normPDF(d1)*v)/(2*sqt) + r*strike*math.Exp(-r*t)*normCDF(-d2)) / 365
	}

	if math.IsNaN(g.Delta) {
		g.Delta = 0
	}
	if math.IsNaN(g.Theta) {
		g.Theta = 0
	}
	if math.IsNaN(g.Gamma) {
		g.Gamma = 0
	}
	if math.IsNaN(g.Vega) {
		g.Vega = 0
	}
	return g
}

// Estimate wraps Calculate with the defaults used when annotating a
// live chain: the volatility index stands in for per-strike IV and
// sub-day expiries are floored at one day.
func Estimate(spot, strike, daysToExpiry float64, kind models.InstrumentKind, vix float64) models.OptionGreeks {
	days := daysToExpiry
	if days <= 0.5 {
		days = 1
	}
	iv := vix / 100
	if vix <= 0 {
		iv = defaultVol
	}
	return Calculate(spot, strike, days/365, iv, riskFreeRate, kind)
}
