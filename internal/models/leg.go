package models

// InstrumentKind identifies what a strategy leg trades.
type InstrumentKind string

const (
	CallOption InstrumentKind = "CE"
	PutOption  InstrumentKind = "PE"
	Underlying InstrumentKind = "STOCK"
)

// Action is the direction of a leg.
type Action string

const (
	Buy  Action = "BUY"
	Sell Action = "SELL"
)

// DirectionSign returns +1 for BUY, -1 for SELL.
func (a Action) DirectionSign() float64 {
	if a == Sell {
		return -1
	}
	return 1
}

// Leg is one tradable unit within a strategy. For option legs Price is
// the premium paid or received; for underlying legs it is the entry
// price and Strike is zero. Legs are immutable once built.
type Leg struct {
	Kind     InstrumentKind `json:"kind"`
	Action   Action         `json:"action"`
	Strike   float64        `json:"strike,omitempty"`
	Price    float64        `json:"price"`
	Quantity int            `json:"quantity"`
}

// ReferencePrice returns the price the payoff scan centers on: the
// strike for option legs, the entry price for underlying legs.
func (l Leg) ReferencePrice() float64 {
	if l.Kind == Underlying || l.Strike == 0 {
		return l.Price
	}
	return l.Strike
}
