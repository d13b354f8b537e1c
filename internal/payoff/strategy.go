// Package payoff implements the strategy payoff engine: leg construction
// for named option strategies, intrinsic-value payoff math, the scanning
// curve builder and a parallel closed-form formula library.
package payoff

import (
	"fmt"
	"sort"
	"strings"
)

// Strategy identifies a named option strategy. The set is closed;
// ParseStrategy rejects anything outside it.
type Strategy string

const (
	LongCall  Strategy = "long-call"
	ShortCall Strategy = "short-call"
	LongPut   Strategy = "long-put"
	ShortPut  Strategy = "short-put"

	BullCallSpread  Strategy = "bull-call-spread"
	BullPutSpread   Strategy = "bull-put-spread"
	BearCallSpread  Strategy = "bear-call-spread"
	BearPutSpread   Strategy = "bear-put-spread"
	CallRatioSpread Strategy = "call-ratio-spread"
	JadeLizard      Strategy = "jade-lizard"

	LongStraddle  Strategy = "long-straddle"
	ShortStraddle Strategy = "short-straddle"
	LongStrangle  Strategy = "long-strangle"
	ShortStrangle Strategy = "short-strangle"
	IronCondor    Strategy = "iron-condor"
	IronButterfly Strategy = "iron-butterfly"
	CallButterfly Strategy = "call-butterfly"

	CalendarSpread Strategy = "calendar-spread"

	ProtectivePut  Strategy = "protective-put"
	ProtectiveCall Strategy = "protective-call"

	SyntheticLongStock  Strategy = "synthetic-long-stock"
	SyntheticShortStock Strategy = "synthetic-short-stock"
)

var strategySet = map[Strategy]struct{}{
	LongCall: {}, ShortCall: {}, LongPut: {}, ShortPut: {},
	BullCallSpread: {}, BullPutSpread: {}, BearCallSpread: {}, BearPutSpread: {},
	CallRatioSpread: {}, JadeLizard: {},
	LongStraddle: {}, ShortStraddle: {}, LongStrangle: {}, ShortStrangle: {},
	IronCondor: {}, IronButterfly: {}, CallButterfly: {},
	CalendarSpread: {},
	ProtectivePut:  {}, ProtectiveCall: {},
	SyntheticLongStock: {}, SyntheticShortStock: {},
}

// ParseStrategy parses a strategy identifier, case-insensitively.
func ParseStrategy(s string) (Strategy, error) {
	id := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := strategySet[id]; ok {
		return id, nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// All returns every supported strategy identifier, sorted.
func All() []Strategy {
	out := make([]Strategy, 0, len(strategySet))
	for s := range strategySet {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s Strategy) String() string {
	return string(s)
}
