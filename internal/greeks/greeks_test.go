package greeks

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"options-strategist/internal/models"
)

func TestEstimateInvalidInputsYieldZeros(t *testing.T) {
	cases := []struct {
		spot, strike float64
	}{
		{0, 23500},
		{23500, 0},
		{-1, 23500},
	}
	for _, tc := range cases {
		g := Estimate(tc.spot, tc.strike, 7, models.CallOption, 15)
		if g != (models.OptionGreeks{}) {
			t.Errorf("Estimate(%.0f, %.0f) = %+v, want zero value", tc.spot, tc.strike, g)
		}
	}
}

func TestEstimateATMCallDelta(t *testing.T) {
	g := Estimate(23500, 23500, 7, models.CallOption, 15)
	// ATM call delta sits slightly above 0.5 with a positive drift.
	if g.Delta < 0.5 || g.Delta > 0.6 {
		t.Errorf("ATM call delta = %.4f, want in (0.5, 0.6)", g.Delta)
	}
	if g.IV != 15 {
		t.Errorf("iv = %.2f, want 15 (percent)", g.IV)
	}
	if g.Theta >= 0 {
		t.Errorf("theta = %.4f, want negative for a long call", g.Theta)
	}
}

func TestEstimatePutCallDeltaParity(t *testing.T) {
	call := Estimate(23500, 23500, 7, models.CallOption, 15)
	put := Estimate(23500, 23500, 7, models.PutOption, 15)
	if d := call.Delta - put.Delta; math.Abs(d-1) > 1e-12 {
		t.Errorf("call delta - put delta = %.6f, want 1", d)
	}
	if call.Gamma != put.Gamma {
		t.Errorf("gamma differs between call and put: %.8f vs %.8f", call.Gamma, put.Gamma)
	}
	if call.Vega != put.Vega {
		t.Errorf("vega differs between call and put: %.8f vs %.8f", call.Vega, put.Vega)
	}
}

func TestEstimateDefaultsVolAndExpiry(t *testing.T) {
	g := Estimate(23500, 23500, 0, models.CallOption, 0)
	if g.IV != defaultVol*100 {
		t.Errorf("iv = %.2f, want default %.0f", g.IV, defaultVol*100)
	}
	if g.Delta == 0 {
		t.Error("expected non-zero delta with floored expiry")
	}
}

func TestDeepMoneyness(t *testing.T) {
	deepITM := Estimate(23500, 18000, 7, models.CallOption, 15)
	deepOTM := Estimate(23500, 29000, 7, models.CallOption, 15)
	if deepITM.Delta < 0.99 {
		t.Errorf("deep ITM call delta = %.4f, want ~1", deepITM.Delta)
	}
	if deepOTM.Delta > 0.01 {
		t.Errorf("deep OTM call delta = %.4f, want ~0", deepOTM.Delta)
	}
}

// Property: for all valid inputs, call delta stays in [0, 1], put delta
// in [-1, 0], and gamma/vega are non-negative.
func TestProperty_GreeksWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("greeks within mathematical bounds", prop.ForAll(
		func(spot, strike, days, vix float64) bool {
			call := Estimate(spot, strike, days, models.CallOption, vix)
			put := Estimate(spot, strike, days, models.PutOption, vix)
			if call.Delta < 0 || call.Delta > 1 {
				return false
			}
			if put.Delta < -1 || put.Delta > 0 {
				return false
			}
			return call.Gamma >= 0 && call.Vega >= 0 && put.Gamma >= 0 && put.Vega >= 0
		},
		gen.Float64Range(100, 80000),
		gen.Float64Range(100, 80000),
		gen.Float64Range(0, 90),
		gen.Float64Range(1, 60),
	))

	properties.TestingRun(t)
}
