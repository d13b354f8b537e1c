package payoff

import (
	"math"
	"testing"

	"options-strategist/internal/models"
)

func TestLegPayoffCallIntrinsic(t *testing.T) {
	leg := models.Leg{Kind: models.CallOption, Action: models.Buy, Strike: 23600, Price: 100, Quantity: 1}

	tests := []struct {
		spot float64
		want float64
	}{
		{23000, -100}, // OTM, premium lost
		{23600, -100}, // ATM
		{23700, 0},    // breakeven
		{24000, 300},
	}
	for _, tt := range tests {
		if got := LegPayoff(leg, tt.spot); got != tt.want {
			t.Errorf("LegPayoff(call, %.0f) = %.2f, want %.2f", tt.spot, got, tt.want)
		}
	}
}

func TestLegPayoffPutIntrinsic(t *testing.T) {
	leg := models.Leg{Kind: models.PutOption, Action: models.Buy, Strike: 23300, Price: 75, Quantity: 1}

	tests := []struct {
		spot float64
		want float64
	}{
		{24000, -75},
		{23300, -75},
		{23225, 0},
		{23000, 225},
	}
	for _, tt := range tests {
		if got := LegPayoff(leg, tt.spot); got != tt.want {
			t.Errorf("LegPayoff(put, %.0f) = %.2f, want %.2f", tt.spot, got, tt.want)
		}
	}
}

func TestLegPayoffUnderlyingLinear(t *testing.T) {
	long := models.Leg{Kind: models.Underlying, Action: models.Buy, Price: 2500, Quantity: 1}
	short := models.Leg{Kind: models.Underlying, Action: models.Sell, Price: 2500, Quantity: 1}

	if got := LegPayoff(long, 2600); got != 100 {
		t.Errorf("long stock payoff = %.2f, want 100", got)
	}
	if got := LegPayoff(short, 2600); got != -100 {
		t.Errorf("short stock payoff = %.2f, want -100", got)
	}
	if got := LegPayoff(long, 2400); got != -100 {
		t.Errorf("long stock payoff below entry = %.2f, want -100", got)
	}
}

func TestLegPayoffQuantityMultiplier(t *testing.T) {
	leg := models.Leg{Kind: models.CallOption, Action: models.Sell, Strike: 23600, Price: 100, Quantity: 2}
	if got := LegPayoff(leg, 23800); got != -200 {
		t.Errorf("x2 short call payoff = %.2f, want -200", got)
	}
}

func TestLegPayoffSellNegatesBuy(t *testing.T) {
	for _, kind := range []models.InstrumentKind{models.CallOption, models.PutOption} {
		buy := models.Leg{Kind: kind, Action: models.Buy, Strike: 23500, Price: 120, Quantity: 3}
		sell := buy
		sell.Action = models.Sell
		for spot := 20000.0; spot <= 27000; spot += 250 {
			if b, s := LegPayoff(buy, spot), LegPayoff(sell, spot); b != -s {
				t.Fatalf("%s at %.0f: buy %.2f, sell %.2f, want exact negation", kind, spot, b, s)
			}
		}
	}
}

func TestLegsRatioSpreadDoublesShortQuantity(t *testing.T) {
	legs, err := Legs(CallRatioSpread, Params{Strike1: 23500, Premium1: 150, Strike2: 23700, Premium2: 60, Lots: 2})
	if err != nil {
		t.Fatalf("Legs: %v", err)
	}
	if len(legs) != 2 {
		t.Fatalf("got %d legs, want 2", len(legs))
	}
	if legs[0].Quantity != 2 || legs[1].Quantity != 4 {
		t.Errorf("quantities = %d, %d; want 2, 4", legs[0].Quantity, legs[1].Quantity)
	}
	if legs[1].Action != models.Sell {
		t.Errorf("second leg action = %s, want SELL", legs[1].Action)
	}
}

func TestLegsCallButterflyMiddleIsDoubled(t *testing.T) {
	legs, err := Legs(CallButterfly, Params{
		Strike1: 23400, Premium1: 250,
		Strike2: 23500, Premium2: 180,
		Strike3: 23600, Premium3: 130,
	})
	if err != nil {
		t.Fatalf("Legs: %v", err)
	}
	if legs[1].Quantity != 2 {
		t.Errorf("middle quantity = %d, want 2", legs[1].Quantity)
	}
}

func TestLegsProtectivePutEmitsStockLeg(t *testing.T) {
	legs, err := Legs(ProtectivePut, Params{StockPrice: 2500, Strike: 2450, Premium: 40})
	if err != nil {
		t.Fatalf("Legs: %v", err)
	}
	if legs[0].Kind != models.Underlying || legs[0].Action != models.Buy {
		t.Errorf("first leg = %+v, want BUY STOCK", legs[0])
	}
	if legs[0].Strike != 0 {
		t.Errorf("stock leg strike = %.2f, want 0", legs[0].Strike)
	}
	if legs[0].ReferencePrice() != 2500 {
		t.Errorf("stock leg reference price = %.2f, want entry price", legs[0].ReferencePrice())
	}
}

func TestLegsIronCondorOrder(t *testing.T) {
	legs, err := Legs(IronCondor, Params{
		Strike1: 23300, Premium1: 40,
		Strike2: 23400, Premium2: 70,
		Strike3: 23600, Premium3: 65,
		Strike4: 23700, Premium4: 35,
	})
	if err != nil {
		t.Fatalf("Legs: %v", err)
	}
	wantKinds := []models.InstrumentKind{models.PutOption, models.PutOption, models.CallOption, models.CallOption}
	wantActions := []models.Action{models.Buy, models.Sell, models.Sell, models.Buy}
	for i, leg := range legs {
		if leg.Kind != wantKinds[i] || leg.Action != wantActions[i] {
			t.Errorf("leg %d = %s %s, want %s %s", i, leg.Action, leg.Kind, wantActions[i], wantKinds[i])
		}
	}
}

func TestLegsRejectsMissingRequiredField(t *testing.T) {
	_, err := Legs(BullCallSpread, Params{Strike1: 23500, Premium1: 150})
	if err == nil {
		t.Fatal("expected validation error for missing strike2/premium2")
	}
}

func TestLegsCalendarSpreadNotMappable(t *testing.T) {
	_, err := Legs(CalendarSpread, Params{Strike: 23500, Premium1: 200, Premium2: 120})
	if err == nil {
		t.Fatal("expected error: calendar spread has no single-expiry legs")
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Iron-Condor ")
	if err != nil {
		t.Fatalf("ParseStrategy: %v", err)
	}
	if s != IronCondor {
		t.Errorf("got %s, want %s", s, IronCondor)
	}
	if _, err := ParseStrategy("covered-strangle"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestAllStrategiesHaveRequiredFields(t *testing.T) {
	for _, s := range All() {
		if _, ok := requiredFields[s]; !ok {
			t.Errorf("strategy %s has no required-field set", s)
		}
	}
	if len(All()) != len(requiredFields) {
		t.Errorf("strategy set (%d) and validation table (%d) disagree", len(All()), len(requiredFields))
	}
}

func TestBuyCallMonotonicInSpot(t *testing.T) {
	leg := models.Leg{Kind: models.CallOption, Action: models.Buy, Strike: 23500, Price: 100, Quantity: 1}
	prev := math.Inf(-1)
	for spot := 18000.0; spot <= 29000; spot += 100 {
		p := LegPayoff(leg, spot)
		if p < prev {
			t.Fatalf("long call payoff decreased at spot %.0f", spot)
		}
		prev = p
	}
}

func TestBuyPutMonotonicInSpot(t *testing.T) {
	leg := models.Leg{Kind: models.PutOption, Action: models.Buy, Strike: 23500, Price: 100, Quantity: 1}
	prev := math.Inf(1)
	for spot := 18000.0; spot <= 29000; spot += 100 {
		p := LegPayoff(leg, spot)
		if p > prev {
			t.Fatalf("long put payoff increased at spot %.0f", spot)
		}
		prev = p
	}
}
