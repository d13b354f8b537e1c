package selection

import (
	"math"

	apperrors "options-strategist/internal/errors"
	"options-strategist/internal/models"
)

const (
	// scoredWindow bounds the scored search around the rounded target.
	scoredWindow = 12
	// deltaWindow bounds the delta-targeting fallback around ATM.
	deltaWindow = 15
	// targetDelta is the canonical short-strike delta for credit
	// structures.
	targetDelta = 0.16
	// scoreDelta is the delta the scored search rewards proximity to.
	scoreDelta = 0.15
	// defaultATMIV stands in when neither side of the ATM strike
	// carries an IV annotation.
	defaultATMIV = 15.0
)

// Selection is the outcome of one strike-selection pass. Indices refer
// to the chain the selection was computed from. Crossed reports the
// tolerated terminal case where even the fallback could not order the
// short strikes; callers should log it and treat the selection with
// suspicion rather than fail.
type Selection struct {
	ATMIndex     int     `json:"atm_index"`
	Interval     float64 `json:"interval"`
	ExpectedMove float64 `json:"expected_move"`
	Crossed      bool    `json:"crossed,omitempty"`

	ATM      *models.OptionStrike `json:"atm"`
	SellPut  *models.OptionStrike `json:"sell_put"`
	BuyPut   *models.OptionStrike `json:"buy_put"`
	SellCall *models.OptionStrike `json:"sell_call"`
	BuyCall  *models.OptionStrike `json:"buy_call"`
}

// SelectStrikes picks short strikes at roughly +/- one expected move
// from spot and wing strikes two chain positions further out. The
// primary search scores open interest against delta proximity; when it
// finds nothing it falls back to delta targeting, then to fixed
// chain-index offsets from ATM.
func SelectStrikes(chain []models.OptionStrike, spot, daysToExpiry float64) (*Selection, error) {
	if len(chain) == 0 {
		return nil, apperrors.ErrEmptyChain
	}

	interval := DetectInterval(chain)
	atmIndex := models.NearestStrikeIndex(chain, spot)
	atm := &chain[atmIndex]

	atmIV := defaultATMIV
	if atm.Call != nil && atm.Call.Greeks.IV > 0 {
		atmIV = atm.Call.Greeks.IV
	} else if atm.Put != nil && atm.Put.Greeks.IV > 0 {
		atmIV = atm.Put.Greeks.IV
	}

	days := daysToExpiry
	if days < 1 {
		days = 1
	}
	em := spot * (atmIV / 100) * math.Sqrt(days/365)

	lowerTarget := RoundToStrike(spot-em, interval)
	upperTarget := RoundToStrike(spot+em, interval)

	sellPut := chooseWithPreferences(chain, lowerTarget, models.PutOption)
	sellCall := chooseWithPreferences(chain, upperTarget, models.CallOption)

	if sellPut < 0 {
		sellPut = chooseByDelta(chain, models.PutOption, targetDelta, atmIndex)
	}
	if sellPut < 0 {
		sellPut = clamp(atmIndex-2, len(chain))
	}
	if sellCall < 0 {
		sellCall = chooseByDelta(chain, models.CallOption, targetDelta, atmIndex)
	}
	if sellCall < 0 {
		sellCall = clamp(atmIndex+2, len(chain))
	}

	crossed := false
	if chain[sellPut].Strike >= chain[sellCall].Strike {
		lower := clamp(atmIndex-4, len(chain))
		upper := clamp(atmIndex+4, len(chain))
		if chain[lower].Strike < chain[upper].Strike {
			sellPut, sellCall = lower, upper
		} else {
			// No better alternative exists; surface the crossed pair.
			crossed = true
		}
	}

	buyPut := clamp(sellPut-2, len(chain))
	buyCall := clamp(sellCall+2, len(chain))

	return &Selection{
		ATMIndex:     atmIndex,
		Interval:     interval,
		ExpectedMove: math.Round(em),
		Crossed:      crossed,
		ATM:          atm,
		SellPut:      &chain[sellPut],
		BuyPut:       &chain[buyPut],
		SellCall:     &chain[sellCall],
		BuyCall:      &chain[buyCall],
	}, nil
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// chooseWithPreferences scans a window around the strike nearest the
// rounded target and scores every candidate with a tradeable price:
// open interest plus a bonus for sitting near the canonical 0.15 delta.
// Ties break toward the target. Returns -1 when the window holds no
// valid candidate.
func chooseWithPreferences(chain []models.OptionStrike, target float64, kind models.InstrumentKind) int {
	nearest := models.NearestStrikeIndex(chain, target)
	if nearest < 0 {
		return -1
	}

	start := clamp(nearest-scoredWindow, len(chain))
	end := clamp(nearest+scoredWindow, len(chain))

	best := -1
	bestScore := math.Inf(-1)
	bestDist := math.Inf(1)
	for i := start; i <= end; i++ {
		side := chain[i].Side(kind)
		if side == nil || side.LTP <= 0 {
			continue
		}
		oi := math.Abs(float64(side.OI))
		deltaAbs := math.Abs(side.Greeks.Delta)
		score := oi + (1-math.Abs(deltaAbs-scoreDelta))*100
		dist := math.Abs(chain[i].Strike - target)
		if score > bestScore || (score == bestScore && dist < bestDist) {
			best, bestScore, bestDist = i, score, dist
		}
	}
	return best
}

// chooseByDelta picks the strike whose side delta is closest to the
// target magnitude, within a window around ATM. Entries without a delta
// annotation are skipped. Returns -1 when nothing qualifies.
func chooseByDelta(chain []models.OptionStrike, kind models.InstrumentKind, target float64, atmIndex int) int {
	start := clamp(atmIndex-deltaWindow, len(chain))
	end := clamp(atmIndex+deltaWindow, len(chain))

	best := -1
	minDiff := math.Inf(1)
	for i := start; i <= end; i++ {
		side := chain[i].Side(kind)
		if side == nil || side.Greeks.Delta == 0 {
			continue
		}
		diff := math.Abs(math.Abs(side.Greeks.Delta) - target)
		if diff < minDiff {
			minDiff = diff
			best = i
		}
	}
	return best
}
