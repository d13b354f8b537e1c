package payoff

import (
	"encoding/json"
	"fmt"
	"math"
)

// AmountKind discriminates the Amount union.
type AmountKind uint8

const (
	// AmountIndeterminate means the value is not computable by this
	// method. Rendered as "N/A".
	AmountIndeterminate AmountKind = iota
	// AmountBounded carries a concrete currency or percentage value.
	AmountBounded
	// AmountUnbounded marks structurally unlimited profit or loss.
	// Rendered as "Unlimited".
	AmountUnbounded
	// AmountVariable marks a time/IV-dependent value with no fixed
	// number, used by calendar spreads. Rendered as "Variable".
	AmountVariable
)

// Amount is a tagged union for profit/loss figures, so sentinel cases
// cannot be mistaken for numbers by consumers. The zero value is
// indeterminate.
type Amount struct {
	Kind  AmountKind
	Value float64
}

func Bounded(v float64) Amount { return Amount{Kind: AmountBounded, Value: v} }
func Unbounded() Amount        { return Amount{Kind: AmountUnbounded} }
func Indeterminate() Amount    { return Amount{Kind: AmountIndeterminate} }
func VariableAmount() Amount   { return Amount{Kind: AmountVariable} }

// Bounded returns the value and true when the amount is a concrete
// number.
func (a Amount) Bounded() (float64, bool) {
	return a.Value, a.Kind == AmountBounded
}

func (a Amount) String() string {
	switch a.Kind {
	case AmountBounded:
		return fmt.Sprintf("%.2f", a.Value)
	case AmountUnbounded:
		return "Unlimited"
	case AmountVariable:
		return "Variable"
	}
	return "N/A"
}

// MarshalJSON renders bounded amounts as numbers and sentinels as the
// strings the report surface expects.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Kind == AmountBounded {
		return json.Marshal(round2(a.Value))
	}
	return json.Marshal(a.String())
}

// BreakevenKind discriminates the Breakeven union.
type BreakevenKind uint8

const (
	// BreakevenNone means no zero crossing was found. Rendered as
	// "None".
	BreakevenNone BreakevenKind = iota
	// BreakevenPoints carries one or more crossing spots, ascending.
	BreakevenPoints
	// BreakevenVariable marks a crossing that depends on IV and time,
	// used by calendar spreads. Rendered as "Variable".
	BreakevenVariable
)

// Breakeven is the set of spot prices where the strategy payoff crosses
// zero, or a sentinel when no fixed crossing exists.
type Breakeven struct {
	Kind   BreakevenKind
	Points []float64
}

func BreakevenAt(points ...float64) Breakeven {
	if len(points) == 0 {
		return Breakeven{Kind: BreakevenNone}
	}
	return Breakeven{Kind: BreakevenPoints, Points: points}
}

func (b Breakeven) String() string {
	switch b.Kind {
	case BreakevenPoints:
		if len(b.Points) == 1 {
			return fmt.Sprintf("%.2f", b.Points[0])
		}
		s := ""
		for i, p := range b.Points {
			if i > 0 {
				s += ", "
			}
			s += fmt.Sprintf("%.2f", p)
		}
		return s
	case BreakevenVariable:
		return "Variable"
	}
	return "None"
}

// MarshalJSON renders a single crossing as a number, multiple crossings
// as an array, and sentinels as strings.
func (b Breakeven) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case BreakevenPoints:
		if len(b.Points) == 1 {
			return json.Marshal(b.Points[0])
		}
		return json.Marshal(b.Points)
	case BreakevenVariable:
		return json.Marshal("Variable")
	}
	return json.Marshal("None")
}

// Point is one sample of the payoff curve.
type Point struct {
	Spot   float64 `json:"spot" csv:"spot"`
	Payoff float64 `json:"payoff" csv:"payoff"`
}

// Result is the common output of the scanner and of every closed-form
// formula.
type Result struct {
	Strategy     Strategy  `json:"strategy"`
	Curve        []Point   `json:"payoffCurve"`
	MaxProfit    Amount    `json:"maxProfit"`
	MaxLoss      Amount    `json:"maxLoss"`
	Breakeven    Breakeven `json:"breakeven"`
	RiskReward   string    `json:"riskRewardRatio"`
	MaxProfitPct Amount    `json:"maxProfitPercentage"`
	MaxLossPct   Amount    `json:"maxLossPercentage"`
}

// riskReward formats "1:x.xx" when both sides are bounded, the loss is
// nonzero and the profit positive; otherwise "N/A".
func riskReward(maxProfit, maxLoss Amount) string {
	profit, pok := maxProfit.Bounded()
	loss, lok := maxLoss.Bounded()
	if pok && lok && loss != 0 && profit > 0 {
		return fmt.Sprintf("1:%.2f", math.Abs(profit/loss))
	}
	return "N/A"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
