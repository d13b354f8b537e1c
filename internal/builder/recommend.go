package builder

import (
	"math"

	apperrors "options-strategist/internal/errors"
	"options-strategist/internal/models"
)

// MaxVIX is the volatility safety gate: above it no strategies are
// constructed at all.
const MaxVIX = 20.0

// minChainLength is the smallest chain worth building strategies from.
const minChainLength = 5

// Recommendation is the output of one selector pass: every strategy
// buildable at the detected ATM strike, plus the subset matching the
// caller's market view.
type Recommendation struct {
	Symbol       string  `json:"symbol"`
	Spot         float64 `json:"spot"`
	ATMStrike    float64 `json:"atm_strike"`
	DaysToExpiry float64 `json:"days_to_expiry"`
	Config       Config  `json:"config_used"`
	Signal       models.Signal `json:"market_condition"`

	Recommended []Built `json:"recommended_strategies"`
	All         []Built `json:"all_strategies"`
}

// Recommend builds the full strategy suite at the chain's ATM strike
// and filters it down to the signal-appropriate subset. The VIX gate is
// a business rule, not an exceptional condition: callers must check the
// error before using the recommendation.
func Recommend(chain *models.OptionChain, signal models.Signal) (*Recommendation, error) {
	if chain == nil || chain.SpotPrice <= 0 || len(chain.Strikes) < minChainLength {
		return nil, apperrors.ErrInsufficientChain
	}
	if chain.VIX > MaxVIX {
		return nil, apperrors.NewRiskError("vix", chain.VIX, MaxVIX, "volatility too high to construct strategies")
	}

	cfg := ConfigFor(chain.Symbol)
	atm := math.Round(chain.SpotPrice/cfg.Interval) * cfg.Interval

	strikes := chain.Strikes
	all := make([]Built, 0, 16)
	add := func(b Built, ok bool) {
		if ok {
			all = append(all, b)
		}
	}

	add(BullCallSpread(strikes, atm, cfg))
	add(BullPutSpread(strikes, atm, cfg))
	add(CallRatioBackSpread(strikes, atm, cfg))
	add(LongCall(strikes, atm))

	add(BearPutSpread(strikes, atm, cfg))
	add(BearCallSpread(strikes, atm, cfg))
	add(PutRatioBackSpread(strikes, atm, cfg))
	add(LongPut(strikes, atm))

	add(ShortStraddle(strikes, atm))
	add(LongStraddle(strikes, atm))
	add(ShortStrangle(strikes, atm, cfg))
	add(LongStrangle(strikes, atm, cfg))
	add(IronCondor(strikes, atm, cfg))
	add(IronButterfly(strikes, atm, cfg))
	add(CallButterfly(strikes, atm, cfg))

	var want Bias
	switch signal {
	case models.SignalBullish:
		want = Bullish
	case models.SignalBearish:
		want = Bearish
	default:
		want = Neutral
	}

	recommended := make([]Built, 0, len(all))
	for _, b := range all {
		if b.Bias == want {
			recommended = append(recommended, b)
		}
	}

	return &Recommendation{
		Symbol:       chain.Symbol,
		Spot:         chain.SpotPrice,
		ATMStrike:    atm,
		DaysToExpiry: chain.DaysToExpiry,
		Config:       cfg,
		Signal:       signal,
		Recommended:  recommended,
		All:          all,
	}, nil
}
