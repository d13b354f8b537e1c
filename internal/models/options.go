package models

import (
	"math"
	"time"
)

// OptionChain represents a fully-materialized option chain snapshot.
// Strikes are sorted ascending; the core assumes exclusive read access
// for the duration of one call.
type OptionChain struct {
	Symbol       string         `json:"symbol"`
	SpotPrice    float64        `json:"spot_price"`
	VIX          float64        `json:"vix"`
	Expiry       time.Time      `json:"expiry"`
	DaysToExpiry float64        `json:"days_to_expiry"`
	LotSize      int            `json:"lot_size"`
	Strikes      []OptionStrike `json:"strikes"`
}

// OptionStrike represents a single strike row of the chain. Either side
// may be absent on thin strikes; lookups must tolerate that.
type OptionStrike struct {
	Strike float64     `json:"strike"`
	Call   *OptionData `json:"call,omitempty"`
	Put    *OptionData `json:"put,omitempty"`
}

// Side returns the CE or PE record for the given option kind, or nil.
func (s *OptionStrike) Side(kind InstrumentKind) *OptionData {
	switch kind {
	case CallOption:
		return s.Call
	case PutOption:
		return s.Put
	}
	return nil
}

// OptionData represents quote data for one side of a strike.
type OptionData struct {
	Symbol string       `json:"symbol,omitempty"`
	LTP    float64      `json:"ltp"`
	OI     int64        `json:"oi"`
	Volume int64        `json:"volume"`
	Greeks OptionGreeks `json:"greeks"`
}

// OptionGreeks represents estimated option Greeks. IV is a percentage
// (15.0 means 15%).
type OptionGreeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	IV    float64 `json:"iv"`
}

// ATMIndex returns the index of the strike nearest to spot, or -1 for an
// empty chain.
func (c *OptionChain) ATMIndex() int {
	return NearestStrikeIndex(c.Strikes, c.SpotPrice)
}

// NearestStrikeIndex returns the index of the strike nearest to target,
// or -1 for an empty slice.
func NearestStrikeIndex(strikes []OptionStrike, target float64) int {
	best := -1
	minDiff := math.Inf(1)
	for i := range strikes {
		d := math.Abs(strikes[i].Strike - target)
		if d < minDiff {
			minDiff = d
			best = i
		}
	}
	return best
}

// NearestStrike returns the strike row nearest to target, or nil for an
// empty slice.
func NearestStrike(strikes []OptionStrike, target float64) *OptionStrike {
	i := NearestStrikeIndex(strikes, target)
	if i < 0 {
		return nil
	}
	return &strikes[i]
}
