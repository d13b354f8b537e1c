package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"options-strategist/internal/builder"
	apperrors "options-strategist/internal/errors"
	"options-strategist/internal/logging"
	"options-strategist/internal/models"
)

func newBuildCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <symbol>",
		Short: "Build strategies at the ATM strike for a market view",
		Long: `Build the full strategy suite at the chain's ATM strike, then filter
it down to the strategies matching your market view (--signal BULL, BEAR
or NEUTRAL).

Construction halts when the India VIX is above the volatility gate.`,
		Example: `  strategist build NIFTY --signal BULL
  strategist build BANKNIFTY --signal NEUTRAL --all
  strategist build NIFTY --snapshot nifty.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			signalStr, _ := cmd.Flags().GetString("signal")
			signal, err := models.ParseSignal(signalStr)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			chain, err := app.fetchChain(cmd, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if vix, _ := cmd.Flags().GetFloat64("vix"); vix > 0 {
				chain.VIX = vix
			}

			rec, err := builder.Recommend(chain, signal)
			if err != nil {
				var riskErr *apperrors.RiskError
				if apperrors.As(err, &riskErr) {
					output.Error("✗ %s", riskErr.Message)
					output.Printf("  VIX %.2f is above the %.0f gate; wait for volatility to settle.\n",
						riskErr.Current, riskErr.Limit)
					return err
				}
				output.Error("Strategy construction failed: %v", err)
				return err
			}

			logging.LogRecommendation(app.Logger, symbol, string(signal), rec.ATMStrike, len(rec.Recommended))

			if output.IsJSON() {
				return output.JSON(rec)
			}

			showAll, _ := cmd.Flags().GetBool("all")
			renderRecommendation(output, rec, showAll)
			return nil
		},
	}

	cmd.Flags().String("signal", "NEUTRAL", "market view: BULL, BEAR or NEUTRAL")
	cmd.Flags().Bool("all", false, "show every buildable strategy, not just the matching subset")
	cmd.Flags().Float64("vix", 0, "override the chain's VIX level for the volatility gate")

	return cmd
}

func renderRecommendation(output *Output, rec *builder.Recommendation, showAll bool) {
	output.Bold("%s strategies", rec.Symbol)
	output.Printf("  Spot:       %s\n", FormatIndianCurrency(rec.Spot))
	output.Printf("  ATM Strike: %.0f\n", rec.ATMStrike)
	output.Printf("  Signal:     %s\n", renderSignal(output, rec.Signal))
	output.Printf("  Geometry:   width %.0f, interval %.0f\n", rec.Config.Width, rec.Config.Interval)
	output.Println()

	list := rec.Recommended
	if showAll {
		list = rec.All
	}

	if len(list) == 0 {
		output.Warning("No strategies could be built from this chain")
		return
	}

	for _, b := range list {
		output.Printf("%s %s\n", output.BoldText(b.Name), output.DimText("("+string(b.Bias)+")"))
		for _, leg := range b.Legs {
			output.Printf("  %s\n", renderLeg(output, leg))
		}
		output.Println()
	}
}

func renderSignal(output *Output, signal models.Signal) string {
	switch signal {
	case models.SignalBullish:
		return output.Green("↑ BULLISH")
	case models.SignalBearish:
		return output.Red("↓ BEARISH")
	default:
		return output.Yellow("→ NEUTRAL")
	}
}

func renderLeg(output *Output, leg models.Leg) string {
	action := output.Red(string(leg.Action))
	if leg.Action == models.Buy {
		action = output.Green(string(leg.Action))
	}

	qty := ""
	if leg.Quantity > 1 {
		qty = fmt.Sprintf(" x%d", leg.Quantity)
	}

	if leg.Kind == models.Underlying {
		return fmt.Sprintf("%s STOCK @ %.2f%s", action, leg.Price, qty)
	}
	return fmt.Sprintf("%s %.0f %s @ %.2f%s", action, leg.Strike, leg.Kind, leg.Price, qty)
}
