// Package integration holds end-to-end tests wiring the snapshot
// provider, strike selection, strategy building, payoff evaluation and
// the journal together.
package integration

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"options-strategist/internal/broker"
	"options-strategist/internal/builder"
	apperrors "options-strategist/internal/errors"
	"options-strategist/internal/greeks"
	"options-strategist/internal/models"
	"options-strategist/internal/payoff"
	"options-strategist/internal/selection"
	"options-strategist/internal/store"
)

// syntheticChain builds a plausible NIFTY chain: 21 strikes at a 100
// interval around spot, OI peaking at the money and premiums decaying
// away from it.
func syntheticChain(spot, vix, days float64) *models.OptionChain {
	atm := math.Round(spot/100) * 100

	var strikes []models.OptionStrike
	for k := atm - 1000; k <= atm+1000; k += 100 {
		dist := math.Abs(k - spot)
		timeValue := 140 * math.Exp(-dist/500)
		oi := int64(5000000 - dist*3000)
		if oi < 100000 {
			oi = 100000
		}

		callG := greeks.Estimate(spot, k, days, models.CallOption, vix)
		putG := greeks.Estimate(spot, k, days, models.PutOption, vix)

		strikes = append(strikes, models.OptionStrike{
			Strike: k,
			Call: &models.OptionData{
				Symbol: fmt.Sprintf("NIFTY%07.0fCE", k),
				LTP:    math.Max(spot-k, 0) + timeValue,
				OI:     oi,
				Volume: oi / 10,
				Greeks: callG,
			},
			Put: &models.OptionData{
				Symbol: fmt.Sprintf("NIFTY%07.0fPE", k),
				LTP:    math.Max(k-spot, 0) + timeValue,
				OI:     oi,
				Volume: oi / 10,
				Greeks: putG,
			},
		})
	}

	return &models.OptionChain{
		Symbol:       "NIFTY",
		SpotPrice:    spot,
		VIX:          vix,
		Expiry:       time.Now().AddDate(0, 0, int(days)),
		DaysToExpiry: days,
		LotSize:      75,
		Strikes:      strikes,
	}
}

func TestSnapshotToEvaluationPipeline(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	chain := syntheticChain(23517, 14, 7)

	// Round-trip through a snapshot file, the offline data path
	snapPath := filepath.Join(dir, "nifty.json")
	if err := broker.WriteSnapshot(snapPath, chain); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	provider := broker.NewSnapshotProvider(snapPath)
	loaded, err := provider.GetOptionChain(ctx, "NIFTY", time.Time{})
	if err != nil {
		t.Fatalf("GetOptionChain: %v", err)
	}
	if loaded.LotSize != 75 {
		t.Errorf("lot size = %d, want 75", loaded.LotSize)
	}
	if len(loaded.Strikes) != len(chain.Strikes) {
		t.Fatalf("strikes = %d, want %d", len(loaded.Strikes), len(chain.Strikes))
	}

	// Strike selection on the loaded chain
	sel, err := selection.SelectStrikes(loaded.Strikes, loaded.SpotPrice, loaded.DaysToExpiry)
	if err != nil {
		t.Fatalf("SelectStrikes: %v", err)
	}
	if sel.SellPut == nil || sel.BuyPut == nil || sel.SellCall == nil || sel.BuyCall == nil {
		t.Fatal("selection returned nil legs")
	}
	if sel.Crossed {
		t.Fatal("selection crossed on a healthy chain")
	}
	if sel.SellPut.Strike >= loaded.SpotPrice {
		t.Errorf("sell put %.0f not below spot %.2f", sel.SellPut.Strike, loaded.SpotPrice)
	}
	if sel.SellCall.Strike <= loaded.SpotPrice {
		t.Errorf("sell call %.0f not above spot %.2f", sel.SellCall.Strike, loaded.SpotPrice)
	}
	if sel.BuyPut.Strike >= sel.SellPut.Strike {
		t.Errorf("buy put %.0f not below sell put %.0f", sel.BuyPut.Strike, sel.SellPut.Strike)
	}
	if sel.BuyCall.Strike <= sel.SellCall.Strike {
		t.Errorf("buy call %.0f not above sell call %.0f", sel.BuyCall.Strike, sel.SellCall.Strike)
	}

	// Evaluate the iron condor the selection implies
	params := payoff.Params{
		Strike1: sel.BuyPut.Strike, Premium1: sel.BuyPut.Put.LTP,
		Strike2: sel.SellPut.Strike, Premium2: sel.SellPut.Put.LTP,
		Strike3: sel.SellCall.Strike, Premium3: sel.SellCall.Call.LTP,
		Strike4: sel.BuyCall.Strike, Premium4: sel.BuyCall.Call.LTP,
		Lots:    1, LotSize: loaded.LotSize,
	}
	result, err := payoff.Evaluate(payoff.IronCondor, params)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if _, ok := result.MaxProfit.Bounded(); !ok {
		t.Errorf("iron condor max profit not bounded: %s", result.MaxProfit)
	}
	if _, ok := result.MaxLoss.Bounded(); !ok {
		t.Errorf("iron condor max loss not bounded: %s", result.MaxLoss)
	}
	if !strings.HasPrefix(result.RiskReward, "1:") {
		t.Errorf("risk reward = %q, want 1:x form", result.RiskReward)
	}

	// Journal the evaluation and read it back
	st, err := store.NewSQLiteStore(filepath.Join(dir, "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer st.Close()

	err = st.SaveEvaluation(ctx, &store.EvaluationRecord{
		Symbol:    "NIFTY",
		Strategy:  string(result.Strategy),
		Method:    "scan",
		Lots:      1,
		LotSize:   loaded.LotSize,
		Spot:      loaded.SpotPrice,
		MaxProfit: result.MaxProfit.String(),
		MaxLoss:   result.MaxLoss.String(),
	})
	if err != nil {
		t.Fatalf("SaveEvaluation: %v", err)
	}

	recs, err := st.GetEvaluations(ctx, store.EvaluationFilter{Symbol: "NIFTY"})
	if err != nil {
		t.Fatalf("GetEvaluations: %v", err)
	}
	if len(recs) != 1 || recs[0].Strategy != string(payoff.IronCondor) {
		t.Fatalf("journal round-trip failed: %+v", recs)
	}
}

func TestBuilderOverSnapshotChain(t *testing.T) {
	chain := syntheticChain(23517, 14, 7)

	rec, err := builder.Recommend(chain, models.SignalNeutral)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if rec.ATMStrike <= 0 {
		t.Errorf("ATM strike = %.0f", rec.ATMStrike)
	}
	if len(rec.All) == 0 || len(rec.Recommended) == 0 {
		t.Fatalf("no strategies built: all=%d recommended=%d", len(rec.All), len(rec.Recommended))
	}
	for _, b := range rec.All {
		if len(b.Legs) == 0 {
			t.Errorf("%s built with no legs", b.Name)
		}
	}
}

func TestBuilderHaltsOnHighVIX(t *testing.T) {
	chain := syntheticChain(23517, 25, 7)

	_, err := builder.Recommend(chain, models.SignalNeutral)
	if err == nil {
		t.Fatal("expected volatility halt")
	}
	if !apperrors.Is(err, apperrors.ErrVolatilityHalted) {
		t.Errorf("error = %v, want ErrVolatilityHalted", err)
	}
}
