package selection

import (
	"math"
	"testing"

	apperrors "options-strategist/internal/errors"
	"options-strategist/internal/greeks"
	"options-strategist/internal/models"
)

func strikeRow(strike, spot float64, oi int64) models.OptionStrike {
	return models.OptionStrike{
		Strike: strike,
		Call: &models.OptionData{
			LTP:    math.Max(0.05, (spot-strike)+120),
			OI:     oi,
			Greeks: greeks.Estimate(spot, strike, 7, models.CallOption, 15),
		},
		Put: &models.OptionData{
			LTP:    math.Max(0.05, (strike-spot)+120),
			OI:     oi,
			Greeks: greeks.Estimate(spot, strike, 7, models.PutOption, 15),
		},
	}
}

func testChain(start, interval float64, n int, spot float64) []models.OptionStrike {
	chain := make([]models.OptionStrike, 0, n)
	for i := 0; i < n; i++ {
		chain = append(chain, strikeRow(start+float64(i)*interval, spot, 50000))
	}
	return chain
}

func TestDetectIntervalMinimumGap(t *testing.T) {
	chain := []models.OptionStrike{
		{Strike: 23400}, {Strike: 23450}, {Strike: 23500}, {Strike: 23600},
	}
	if got := DetectInterval(chain); got != 50 {
		t.Errorf("DetectInterval = %.0f, want 50 (minimum gap, not 100)", got)
	}
}

func TestDetectIntervalDefault(t *testing.T) {
	if got := DetectInterval([]models.OptionStrike{{Strike: 23500}}); got != DefaultInterval {
		t.Errorf("DetectInterval(single) = %.0f, want default %.0f", got, DefaultInterval)
	}
	if got := DetectInterval(nil); got != DefaultInterval {
		t.Errorf("DetectInterval(nil) = %.0f, want default %.0f", got, DefaultInterval)
	}
}

func TestRoundToStrike(t *testing.T) {
	tests := []struct {
		target, interval, want float64
	}{
		{23011.8, 50, 23000},
		{23988.2, 50, 24000},
		{23525, 50, 23550},
		{23524, 50, 23500},
		{23512, 0, 23512}, // degenerate interval passes through
	}
	for _, tt := range tests {
		if got := RoundToStrike(tt.target, tt.interval); got != tt.want {
			t.Errorf("RoundToStrike(%.1f, %.0f) = %.1f, want %.1f", tt.target, tt.interval, got, tt.want)
		}
	}
}

func TestSelectStrikesEmptyChain(t *testing.T) {
	_, err := SelectStrikes(nil, 23500, 7)
	if !apperrors.Is(err, apperrors.ErrEmptyChain) {
		t.Errorf("err = %v, want ErrEmptyChain", err)
	}
}

func TestSelectStrikesShortStrikesBracketSpot(t *testing.T) {
	spot := 23500.0
	chain := testChain(22500, 50, 41, spot)

	sel, err := SelectStrikes(chain, spot, 7)
	if err != nil {
		t.Fatalf("SelectStrikes: %v", err)
	}
	if sel.Interval != 50 {
		t.Errorf("interval = %.0f, want 50", sel.Interval)
	}
	if sel.ATM.Strike != 23500 {
		t.Errorf("atm strike = %.0f, want 23500", sel.ATM.Strike)
	}
	if sel.SellPut.Strike >= sel.SellCall.Strike {
		t.Errorf("short strikes crossed: put %.0f >= call %.0f", sel.SellPut.Strike, sel.SellCall.Strike)
	}
	if sel.Crossed {
		t.Error("crossed flag set on a well-formed chain")
	}

	// em = 23500 * 0.15 * sqrt(7/365) ~ 488
	if sel.ExpectedMove < 400 || sel.ExpectedMove > 600 {
		t.Errorf("expected move = %.0f, want ~488", sel.ExpectedMove)
	}
}

func TestSelectStrikesWingsAreTwoStepsOut(t *testing.T) {
	spot := 23500.0
	chain := testChain(22500, 50, 41, spot)

	sel, err := SelectStrikes(chain, spot, 7)
	if err != nil {
		t.Fatalf("SelectStrikes: %v", err)
	}
	if want := sel.SellPut.Strike - 2*sel.Interval; sel.BuyPut.Strike != want {
		t.Errorf("buyPut = %.0f, want %.0f (two indices below short put)", sel.BuyPut.Strike, want)
	}
	if want := sel.SellCall.Strike + 2*sel.Interval; sel.BuyCall.Strike != want {
		t.Errorf("buyCall = %.0f, want %.0f (two indices above short call)", sel.BuyCall.Strike, want)
	}
}

func TestSelectStrikesWingsClampedAtChainEdges(t *testing.T) {
	spot := 23500.0
	chain := testChain(23400, 50, 5, spot) // 23400..23600

	sel, err := SelectStrikes(chain, spot, 7)
	if err != nil {
		t.Fatalf("SelectStrikes: %v", err)
	}
	if sel.BuyPut.Strike < chain[0].Strike || sel.BuyCall.Strike > chain[len(chain)-1].Strike {
		t.Errorf("wings escaped the chain: %.0f / %.0f", sel.BuyPut.Strike, sel.BuyCall.Strike)
	}
}

func TestSelectStrikesDeltaFallback(t *testing.T) {
	spot := 23500.0
	chain := testChain(22500, 50, 41, spot)
	// Make every put untradeable so the scored search finds nothing on
	// that side; deltas remain, so the delta fallback must kick in.
	for i := range chain {
		chain[i].Put.LTP = 0
	}

	sel, err := SelectStrikes(chain, spot, 7)
	if err != nil {
		t.Fatalf("SelectStrikes: %v", err)
	}
	if sel.SellPut == nil {
		t.Fatal("no sellPut despite delta fallback")
	}
	d := math.Abs(sel.SellPut.Put.Greeks.Delta)
	// The fallback targets |delta| 0.16 within its window around ATM.
	if d > 0.45 {
		t.Errorf("fallback put delta = %.2f, want OTM-ish near 0.16", d)
	}
}

func TestSelectStrikesIndexFallback(t *testing.T) {
	spot := 23500.0
	chain := testChain(22500, 50, 41, spot)
	for i := range chain {
		chain[i].Put = nil // no puts at all
	}

	sel, err := SelectStrikes(chain, spot, 7)
	if err != nil {
		t.Fatalf("SelectStrikes: %v", err)
	}
	atm := sel.ATMIndex
	if sel.SellPut.Strike != chain[atm-2].Strike {
		t.Errorf("sellPut = %.0f, want ATM-2 index strike %.0f", sel.SellPut.Strike, chain[atm-2].Strike)
	}
}

func TestSelectStrikesCrossedCorrection(t *testing.T) {
	spot := 23500.0
	chain := testChain(22500, 50, 41, spot)
	// Concentrate put liquidity above call liquidity so the scored
	// searches produce an inverted pair.
	for i := range chain {
		chain[i].Call.OI = 0
		chain[i].Put.OI = 0
	}
	hotPut := models.NearestStrikeIndex(chain, 23600)
	hotCall := models.NearestStrikeIndex(chain, 23400)
	chain[hotPut].Put.OI = 10_000_000
	chain[hotCall].Call.OI = 10_000_000

	sel, err := SelectStrikes(chain, spot, 7)
	if err != nil {
		t.Fatalf("SelectStrikes: %v", err)
	}
	if sel.Crossed {
		t.Fatal("correction should have produced an ordered pair")
	}
	if sel.SellPut.Strike >= sel.SellCall.Strike {
		t.Errorf("still crossed after correction: %.0f >= %.0f", sel.SellPut.Strike, sel.SellCall.Strike)
	}
	atm := sel.ATMIndex
	if sel.SellPut.Strike != chain[atm-4].Strike || sel.SellCall.Strike != chain[atm+4].Strike {
		t.Errorf("correction not at ATM+/-4: %.0f / %.0f", sel.SellPut.Strike, sel.SellCall.Strike)
	}
}

func TestSelectStrikesCrossedTerminalCase(t *testing.T) {
	spot := 23500.0
	chain := testChain(23500, 50, 1, spot) // single strike: nothing to order

	sel, err := SelectStrikes(chain, spot, 7)
	if err != nil {
		t.Fatalf("SelectStrikes: %v", err)
	}
	if !sel.Crossed {
		t.Error("single-strike chain must surface the crossed flag")
	}
}

func TestSelectStrikesToleratesMissingSides(t *testing.T) {
	spot := 23500.0
	chain := testChain(22500, 50, 41, spot)
	// Thin out alternating sides; lookups must not panic.
	for i := range chain {
		if i%3 == 0 {
			chain[i].Call = nil
		}
		if i%4 == 0 {
			chain[i].Put = nil
		}
	}
	if _, err := SelectStrikes(chain, spot, 7); err != nil {
		t.Fatalf("SelectStrikes on thin chain: %v", err)
	}
}
