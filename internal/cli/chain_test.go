package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"options-strategist/internal/models"
	"options-strategist/pkg/utils"
)

func testOutput(t *testing.T) (*Output, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().Bool("json", false, "")
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	return NewOutput(cmd), buf
}

func testChain() *models.OptionChain {
	var strikes []models.OptionStrike
	for k := 23300.0; k <= 23700; k += 100 {
		strikes = append(strikes, models.OptionStrike{
			Strike: k,
			Call:   &models.OptionData{LTP: 120, OI: 500000, Greeks: models.OptionGreeks{Delta: 0.5}},
			Put:    &models.OptionData{LTP: 110, OI: 400000, Greeks: models.OptionGreeks{Delta: -0.5}},
		})
	}
	return &models.OptionChain{
		Symbol:       "NIFTY",
		SpotPrice:    23517,
		VIX:          14,
		Expiry:       time.Now().AddDate(0, 0, 7),
		DaysToExpiry: 7,
		LotSize:      75,
		Strikes:      strikes,
	}
}

func TestRenderChain(t *testing.T) {
	output, buf := testOutput(t)

	renderChain(output, testChain(), 2)

	got := buf.String()
	for _, want := range []string{"NIFTY", "VIX 14.00", "lot 75", "23500 *", "* ATM strike"} {
		if !strings.Contains(got, want) {
			t.Errorf("render missing %q:\n%s", want, got)
		}
	}
}

func TestMarketNote(t *testing.T) {
	nextOpen := time.Date(2026, 9, 2, 9, 15, 0, 0, utils.IndiaLocation)

	if note := marketNote(utils.SessionOpen, nextOpen); note != "" {
		t.Errorf("open session should carry no note, got %q", note)
	}

	note := marketNote(utils.SessionClosed, nextOpen)
	if !strings.Contains(note, "closed") || !strings.Contains(note, "02-Sep-2026") {
		t.Errorf("closed note = %q, want session and next open", note)
	}
	if !strings.Contains(marketNote(utils.SessionPreOpen, nextOpen), "pre-open") {
		t.Errorf("pre-open note missing session name")
	}
}
