package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-strategist/internal/logging"
	"options-strategist/internal/models"
	"options-strategist/internal/selection"
	"options-strategist/internal/store"
)

func newSelectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select <symbol>",
		Short: "Select short and wing strikes from the option chain",
		Long: `Select short strikes at roughly one expected move from spot and
wing strikes two chain positions further out. The search scores open
interest against delta proximity, with delta-targeting and fixed-offset
fallbacks for thin chains.`,
		Example: `  strategist select NIFTY
  strategist select BANKNIFTY --expiry 2026-09-03
  strategist select NIFTY --snapshot nifty.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			chain, err := app.fetchChain(cmd, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			sel, err := selection.SelectStrikes(chain.Strikes, chain.SpotPrice, chain.DaysToExpiry)
			if err != nil {
				output.Error("Strike selection failed: %v", err)
				return err
			}

			logging.LogSelection(app.Logger, symbol,
				strikeOf(sel.SellPut), strikeOf(sel.SellCall), sel.ExpectedMove, sel.Crossed)
			app.journalSelection(symbol, chain, sel)

			if output.IsJSON() {
				return output.JSON(sel)
			}

			renderSelection(output, symbol, chain, sel)
			return nil
		},
	}

	cmd.Flags().String("expiry", "", "expiry date (YYYY-MM-DD, default: nearest)")

	return cmd
}

func strikeOf(row *models.OptionStrike) float64 {
	if row == nil {
		return 0
	}
	return row.Strike
}

func (app *App) journalSelection(symbol string, chain *models.OptionChain, sel *selection.Selection) {
	if app.Store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := app.Store.SaveSelection(ctx, &store.SelectionRecord{
		Symbol:       symbol,
		Spot:         chain.SpotPrice,
		Expiry:       chain.Expiry,
		SellPut:      strikeOf(sel.SellPut),
		BuyPut:       strikeOf(sel.BuyPut),
		SellCall:     strikeOf(sel.SellCall),
		BuyCall:      strikeOf(sel.BuyCall),
		ExpectedMove: sel.ExpectedMove,
		Interval:     sel.Interval,
		Crossed:      sel.Crossed,
	})
	if err != nil {
		app.Logger.Warn().Err(err).Msg("Failed to journal selection")
	}
}

func renderSelection(output *Output, symbol string, chain *models.OptionChain, sel *selection.Selection) {
	output.Bold("%s strike selection", symbol)
	output.Printf("  Spot:          %s\n", FormatIndianCurrency(chain.SpotPrice))
	output.Printf("  Interval:      %.0f\n", sel.Interval)
	output.Printf("  Expected Move: ±%.0f\n", sel.ExpectedMove)
	output.Println()

	table := NewTable(output, "LEG", "STRIKE", "LTP", "OI", "Δ")
	addLegRow := func(name string, row *models.OptionStrike, kind models.InstrumentKind) {
		if row == nil {
			table.AddRow(name, "-", "-", "-", "-")
			return
		}
		side := row.Side(kind)
		if side == nil {
			table.AddRow(name, fmt.Sprintf("%.0f", row.Strike), "-", "-", "-")
			return
		}
		table.AddRow(name,
			fmt.Sprintf("%.0f", row.Strike),
			fmt.Sprintf("%.2f", side.LTP),
			FormatOI(side.OI),
			fmt.Sprintf("%.2f", side.Greeks.Delta))
	}

	addLegRow("SELL PUT", sel.SellPut, models.PutOption)
	addLegRow("BUY PUT", sel.BuyPut, models.PutOption)
	addLegRow("SELL CALL", sel.SellCall, models.CallOption)
	addLegRow("BUY CALL", sel.BuyCall, models.CallOption)
	table.Render()

	if sel.Crossed {
		output.Println()
		output.Warning("⚠ Short strikes are crossed (put above call); review before trading")
	}
}
