package payoff

import (
	apperrors "options-strategist/internal/errors"
	"options-strategist/internal/models"
)

func ce(action models.Action, strike, price float64, qty int) models.Leg {
	return models.Leg{Kind: models.CallOption, Action: action, Strike: strike, Price: price, Quantity: qty}
}

func pe(action models.Action, strike, price float64, qty int) models.Leg {
	return models.Leg{Kind: models.PutOption, Action: action, Strike: strike, Price: price, Quantity: qty}
}

func stock(action models.Action, price float64, qty int) models.Leg {
	return models.Leg{Kind: models.Underlying, Action: action, Price: price, Quantity: qty}
}

// Legs maps a strategy plus its parameters into the ordered leg list
// the scanner consumes. Params are validated first, so a missing
// required field surfaces as an error rather than a zero-strike leg.
// Calendar spreads have no single-expiry leg representation and are
// rejected here; the scanner handles them separately.
func Legs(strategy Strategy, p Params) ([]models.Leg, error) {
	p = p.WithDefaults()
	if err := p.Validate(strategy); err != nil {
		return nil, err
	}
	qty := p.Lots

	switch strategy {
	case LongCall:
		return []models.Leg{ce(models.Buy, p.Strike, p.Premium, qty)}, nil
	case ShortCall:
		return []models.Leg{ce(models.Sell, p.Strike, p.Premium, qty)}, nil
	case LongPut:
		return []models.Leg{pe(models.Buy, p.Strike, p.Premium, qty)}, nil
	case ShortPut:
		return []models.Leg{pe(models.Sell, p.Strike, p.Premium, qty)}, nil

	case BullCallSpread:
		return []models.Leg{
			ce(models.Buy, p.Strike1, p.Premium1, qty),
			ce(models.Sell, p.Strike2, p.Premium2, qty),
		}, nil
	case BullPutSpread:
		// Sell the higher strike, buy the lower.
		return []models.Leg{
			pe(models.Sell, p.Strike1, p.Premium1, qty),
			pe(models.Buy, p.Strike2, p.Premium2, qty),
		}, nil
	case BearCallSpread:
		return []models.Leg{
			ce(models.Sell, p.Strike1, p.Premium1, qty),
			ce(models.Buy, p.Strike2, p.Premium2, qty),
		}, nil
	case BearPutSpread:
		return []models.Leg{
			pe(models.Buy, p.Strike1, p.Premium1, qty),
			pe(models.Sell, p.Strike2, p.Premium2, qty),
		}, nil
	case CallRatioSpread:
		// The x2 short quantity is the defining ratio property.
		return []models.Leg{
			ce(models.Buy, p.Strike1, p.Premium1, qty),
			ce(models.Sell, p.Strike2, p.Premium2, qty*2),
		}, nil
	case JadeLizard:
		return []models.Leg{
			pe(models.Sell, p.Strike1, p.Premium1, qty),
			ce(models.Sell, p.Strike2, p.Premium2, qty),
			ce(models.Buy, p.Strike3, p.Premium3, qty),
		}, nil

	case LongStraddle:
		return []models.Leg{
			ce(models.Buy, p.Strike, p.Premium1, qty),
			pe(models.Buy, p.Strike, p.Premium2, qty),
		}, nil
	case ShortStraddle:
		return []models.Leg{
			ce(models.Sell, p.Strike, p.Premium1, qty),
			pe(models.Sell, p.Strike, p.Premium2, qty),
		}, nil
	case LongStrangle:
		return []models.Leg{
			pe(models.Buy, p.Strike1, p.Premium1, qty),
			ce(models.Buy, p.Strike2, p.Premium2, qty),
		}, nil
	case ShortStrangle:
		return []models.Leg{
			pe(models.Sell, p.Strike1, p.Premium1, qty),
			ce(models.Sell, p.Strike2, p.Premium2, qty),
		}, nil
	case IronCondor:
		return []models.Leg{
			pe(models.Buy, p.Strike1, p.Premium1, qty),
			pe(models.Sell, p.Strike2, p.Premium2, qty),
			ce(models.Sell, p.Strike3, p.Premium3, qty),
			ce(models.Buy, p.Strike4, p.Premium4, qty),
		}, nil
	case IronButterfly:
		return []models.Leg{
			pe(models.Buy, p.Strike1, p.Premium1, qty),
			pe(models.Sell, p.Strike2, p.Premium2, qty),
			ce(models.Sell, p.Strike2, p.Premium3, qty),
			ce(models.Buy, p.Strike3, p.Premium4, qty),
		}, nil
	case CallButterfly:
		return []models.Leg{
			ce(models.Buy, p.Strike1, p.Premium1, qty),
			ce(models.Sell, p.Strike2, p.Premium2, qty*2),
			ce(models.Buy, p.Strike3, p.Premium3, qty),
		}, nil

	case ProtectivePut:
		return []models.Leg{
			stock(models.Buy, p.StockPrice, qty),
			pe(models.Buy, p.Strike, p.Premium, qty),
		}, nil
	case ProtectiveCall:
		return []models.Leg{
			stock(models.Buy, p.StockPrice, qty),
			ce(models.Sell, p.Strike, p.Premium, qty),
		}, nil

	case SyntheticLongStock:
		return []models.Leg{
			ce(models.Buy, p.Strike, p.Premium, qty),
			pe(models.Sell, p.Strike, p.Premium2, qty),
		}, nil
	case SyntheticShortStock:
		return []models.Leg{
			ce(models.Sell, p.Strike, p.Premium, qty),
			pe(models.Buy, p.Strike, p.Premium2, qty),
		}, nil

	case CalendarSpread:
		return nil, apperrors.ErrCalendarNotMappable
	}
	return nil, apperrors.ErrStrategyNotSupported
}
