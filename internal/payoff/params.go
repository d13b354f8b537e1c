package payoff

import (
	apperrors "options-strategist/internal/errors"
)

// Params carries the flat numeric inputs for every strategy. Which
// fields are required depends on the strategy; Validate enforces the
// per-strategy subset so a missing strike or premium is reported
// instead of silently computing with zero.
type Params struct {
	Strike  float64 `json:"strike,omitempty"`
	Strike1 float64 `json:"strike1,omitempty"`
	Strike2 float64 `json:"strike2,omitempty"`
	Strike3 float64 `json:"strike3,omitempty"`
	Strike4 float64 `json:"strike4,omitempty"`

	Premium  float64 `json:"premium,omitempty"`
	Premium1 float64 `json:"premium1,omitempty"`
	Premium2 float64 `json:"premium2,omitempty"`
	Premium3 float64 `json:"premium3,omitempty"`
	Premium4 float64 `json:"premium4,omitempty"`

	StockPrice float64 `json:"stock_price,omitempty"`

	Lots    int `json:"lots,omitempty"`
	LotSize int `json:"lot_size,omitempty"`
}

// WithDefaults returns a copy with lots and lot size floored at 1.
func (p Params) WithDefaults() Params {
	if p.Lots < 1 {
		p.Lots = 1
	}
	if p.LotSize < 1 {
		p.LotSize = 1
	}
	return p
}

func (p Params) scale() float64 {
	return float64(p.Lots) * float64(p.LotSize)
}

func (p Params) field(name string) float64 {
	switch name {
	case "strike":
		return p.Strike
	case "strike1":
		return p.Strike1
	case "strike2":
		return p.Strike2
	case "strike3":
		return p.Strike3
	case "strike4":
		return p.Strike4
	case "premium":
		return p.Premium
	case "premium1":
		return p.Premium1
	case "premium2":
		return p.Premium2
	case "premium3":
		return p.Premium3
	case "premium4":
		return p.Premium4
	case "stockPrice":
		return p.StockPrice
	}
	return 0
}

// requiredFields lists, per strategy, the fields that must be positive.
var requiredFields = map[Strategy][]string{
	LongCall:  {"strike", "premium"},
	ShortCall: {"strike", "premium"},
	LongPut:   {"strike", "premium"},
	ShortPut:  {"strike", "premium"},

	BullCallSpread:  {"strike1", "premium1", "strike2", "premium2"},
	BullPutSpread:   {"strike1", "premium1", "strike2", "premium2"},
	BearCallSpread:  {"strike1", "premium1", "strike2", "premium2"},
	BearPutSpread:   {"strike1", "premium1", "strike2", "premium2"},
	CallRatioSpread: {"strike1", "premium1", "strike2", "premium2"},
	JadeLizard:      {"strike1", "premium1", "strike2", "premium2", "strike3", "premium3"},

	LongStraddle:  {"strike", "premium1", "premium2"},
	ShortStraddle: {"strike", "premium1", "premium2"},
	LongStrangle:  {"strike1", "premium1", "strike2", "premium2"},
	ShortStrangle: {"strike1", "premium1", "strike2", "premium2"},
	IronCondor:    {"strike1", "premium1", "strike2", "premium2", "strike3", "premium3", "strike4", "premium4"},
	IronButterfly: {"strike1", "premium1", "strike2", "premium2", "premium3", "strike3", "premium4"},
	CallButterfly: {"strike1", "premium1", "strike2", "premium2", "strike3", "premium3"},

	CalendarSpread: {"strike", "premium1", "premium2"},

	ProtectivePut:  {"stockPrice", "strike", "premium"},
	ProtectiveCall: {"stockPrice", "strike", "premium"},

	SyntheticLongStock:  {"strike", "premium", "premium2"},
	SyntheticShortStock: {"strike", "premium", "premium2"},
}

// Validate checks that every field the strategy requires is positive.
func (p Params) Validate(strategy Strategy) error {
	fields, ok := requiredFields[strategy]
	if !ok {
		return apperrors.ErrStrategyNotSupported
	}
	for _, f := range fields {
		if v := p.field(f); v <= 0 {
			return apperrors.NewValidationError(string(strategy), f, v, "must be positive")
		}
	}
	return nil
}
