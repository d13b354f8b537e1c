package payoff

import (
	"math"

	"options-strategist/internal/models"
)

// LegPayoff returns the signed currency payoff of one leg at expiry,
// per contract unit, using the intrinsic-value method. Underlying legs
// are linear in spot; option legs are (intrinsic - premium) for BUY and
// the exact negation for SELL. The same rule applies to every strategy;
// composite payoffs are always the sum of independent per-leg payoffs.
func LegPayoff(leg models.Leg, spot float64) float64 {
	qty := float64(leg.Quantity)

	if leg.Kind == models.Underlying {
		return (spot - leg.Price) * leg.Action.DirectionSign() * qty
	}

	var intrinsic float64
	switch leg.Kind {
	case models.CallOption:
		intrinsic = math.Max(0, spot-leg.Strike)
	case models.PutOption:
		intrinsic = math.Max(0, leg.Strike-spot)
	}

	if leg.Action == models.Buy {
		return (intrinsic - leg.Price) * qty
	}
	return (leg.Price - intrinsic) * qty
}
