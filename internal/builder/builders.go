package builder

import (
	"options-strategist/internal/models"
)

// Bias classifies a built strategy by the market view it expresses.
type Bias string

const (
	Bullish Bias = "BULLISH"
	Bearish Bias = "BEARISH"
	Neutral Bias = "NEUTRAL"
)

// Built is one concrete strategy assembled from the chain. Its legs
// are ready to feed straight into the payoff engine.
type Built struct {
	Name string       `json:"name"`
	Bias Bias         `json:"bias"`
	Legs []models.Leg `json:"legs"`
}

// legAt resolves a leg from the chain at the exact target strike, or
// the nearest one when the exact strike is absent. It fails only when
// the matched row is missing the requested side.
func legAt(chain []models.OptionStrike, target float64, kind models.InstrumentKind, action models.Action, qty int) (models.Leg, bool) {
	node := models.NearestStrike(chain, target)
	if node == nil {
		return models.Leg{}, false
	}
	side := node.Side(kind)
	if side == nil {
		return models.Leg{}, false
	}
	return models.Leg{
		Kind:     kind,
		Action:   action,
		Strike:   node.Strike,
		Price:    side.LTP,
		Quantity: qty,
	}, true
}

func stockLeg(spot float64) models.Leg {
	return models.Leg{Kind: models.Underlying, Action: models.Buy, Price: spot, Quantity: 1}
}

func assemble(name string, bias Bias, legs ...func() (models.Leg, bool)) (Built, bool) {
	b := Built{Name: name, Bias: bias, Legs: make([]models.Leg, 0, len(legs))}
	for _, fn := range legs {
		leg, ok := fn()
		if !ok {
			return Built{}, false
		}
		b.Legs = append(b.Legs, leg)
	}
	return b, true
}

func buy(chain []models.OptionStrike, target float64, kind models.InstrumentKind) func() (models.Leg, bool) {
	return func() (models.Leg, bool) { return legAt(chain, target, kind, models.Buy, 1) }
}

func sell(chain []models.OptionStrike, target float64, kind models.InstrumentKind) func() (models.Leg, bool) {
	return func() (models.Leg, bool) { return legAt(chain, target, kind, models.Sell, 1) }
}

func sellN(chain []models.OptionStrike, target float64, kind models.InstrumentKind, qty int) func() (models.Leg, bool) {
	return func() (models.Leg, bool) { return legAt(chain, target, kind, models.Sell, qty) }
}

func buyN(chain []models.OptionStrike, target float64, kind models.InstrumentKind, qty int) func() (models.Leg, bool) {
	return func() (models.Leg, bool) { return legAt(chain, target, kind, models.Buy, qty) }
}

func fixed(leg models.Leg) func() (models.Leg, bool) {
	return func() (models.Leg, bool) { return leg, true }
}

func LongCall(chain []models.OptionStrike, atm float64) (Built, bool) {
	return assemble("Long Call", Bullish, buy(chain, atm, models.CallOption))
}

func ShortCall(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Short Call", Bearish, sell(chain, atm+cfg.Width, models.CallOption))
}

func LongPut(chain []models.OptionStrike, atm float64) (Built, bool) {
	return assemble("Long Put", Bearish, buy(chain, atm, models.PutOption))
}

func ShortPut(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Short Put", Bullish, sell(chain, atm-cfg.Width, models.PutOption))
}

func BullCallSpread(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Bull Call Spread", Bullish,
		buy(chain, atm, models.CallOption),
		sell(chain, atm+cfg.Width, models.CallOption),
	)
}

func BullPutSpread(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Bull Put Spread", Bullish,
		sell(chain, atm, models.PutOption),
		buy(chain, atm-cfg.Width, models.PutOption),
	)
}

func BearCallSpread(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Bear Call Spread", Bearish,
		sell(chain, atm, models.CallOption),
		buy(chain, atm+cfg.Width, models.CallOption),
	)
}

func BearPutSpread(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Bear Put Spread", Bearish,
		buy(chain, atm, models.PutOption),
		sell(chain, atm-cfg.Width, models.PutOption),
	)
}

func CallRatioBackSpread(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Call Ratio Back Spread", Bullish,
		sell(chain, atm, models.CallOption),
		buyN(chain, atm+cfg.Width, models.CallOption, 2),
	)
}

func PutRatioBackSpread(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Put Ratio Back Spread", Bearish,
		sell(chain, atm, models.PutOption),
		buyN(chain, atm-cfg.Width, models.PutOption, 2),
	)
}

func ShortStraddle(chain []models.OptionStrike, atm float64) (Built, bool) {
	return assemble("Short Straddle", Neutral,
		sell(chain, atm, models.CallOption),
		sell(chain, atm, models.PutOption),
	)
}

func LongStraddle(chain []models.OptionStrike, atm float64) (Built, bool) {
	return assemble("Long Straddle", Neutral,
		buy(chain, atm, models.CallOption),
		buy(chain, atm, models.PutOption),
	)
}

func ShortStrangle(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Short Strangle", Neutral,
		sell(chain, atm-cfg.Width, models.PutOption),
		sell(chain, atm+cfg.Width, models.CallOption),
	)
}

func LongStrangle(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Long Strangle", Neutral,
		buy(chain, atm-cfg.Width, models.PutOption),
		buy(chain, atm+cfg.Width, models.CallOption),
	)
}

func IronCondor(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Iron Condor", Neutral,
		sell(chain, atm-cfg.Width, models.PutOption),
		buy(chain, atm-2*cfg.Width, models.PutOption),
		sell(chain, atm+cfg.Width, models.CallOption),
		buy(chain, atm+2*cfg.Width, models.CallOption),
	)
}

func IronButterfly(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Iron Butterfly", Neutral,
		buy(chain, atm-cfg.Width, models.PutOption),
		sell(chain, atm, models.PutOption),
		sell(chain, atm, models.CallOption),
		buy(chain, atm+cfg.Width, models.CallOption),
	)
}

func CallButterfly(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Call Butterfly", Neutral,
		buy(chain, atm-cfg.Width, models.CallOption),
		sellN(chain, atm, models.CallOption, 2),
		buy(chain, atm+cfg.Width, models.CallOption),
	)
}

func JadeLizard(chain []models.OptionStrike, atm float64, cfg Config) (Built, bool) {
	return assemble("Jade Lizard", Neutral,
		sell(chain, atm-cfg.Width, models.PutOption),
		sell(chain, atm+cfg.Width, models.CallOption),
		buy(chain, atm+2*cfg.Width, models.CallOption),
	)
}

func SyntheticLong(chain []models.OptionStrike, atm float64) (Built, bool) {
	return assemble("Synthetic Long", Bullish,
		buy(chain, atm, models.CallOption),
		sell(chain, atm, models.PutOption),
	)
}

func SyntheticShort(chain []models.OptionStrike, atm float64) (Built, bool) {
	return assemble("Synthetic Short", Bearish,
		sell(chain, atm, models.CallOption),
		buy(chain, atm, models.PutOption),
	)
}

func ProtectivePut(chain []models.OptionStrike, spot, atm float64) (Built, bool) {
	return assemble("Protective Put", Bullish,
		fixed(stockLeg(spot)),
		buy(chain, atm, models.PutOption),
	)
}

func CoveredCall(chain []models.OptionStrike, spot, atm float64, cfg Config) (Built, bool) {
	return assemble("Covered Call", Bullish,
		fixed(stockLeg(spot)),
		sell(chain, atm+cfg.Width, models.CallOption),
	)
}
