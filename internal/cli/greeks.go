package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"options-strategist/internal/greeks"
	"options-strategist/internal/models"
)

func newGreeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeks",
		Short: "Estimate option Greeks with Black-Scholes",
		Long: `Estimate delta, gamma, theta, vega and implied volatility for a
single option using the Black-Scholes model. The India VIX level stands
in for implied volatility when no --iv is supplied.`,
		Example: `  strategist greeks --spot 23500 --strike 23600 --days 7 --kind CE
  strategist greeks --spot 23500 --strike 23200 --days 14 --kind PE --iv 18`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			spot, _ := cmd.Flags().GetFloat64("spot")
			strike, _ := cmd.Flags().GetFloat64("strike")
			days, _ := cmd.Flags().GetFloat64("days")
			iv, _ := cmd.Flags().GetFloat64("iv")
			kindStr, _ := cmd.Flags().GetString("kind")

			var kind models.InstrumentKind
			switch strings.ToUpper(kindStr) {
			case "CE", "CALL":
				kind = models.CallOption
			case "PE", "PUT":
				kind = models.PutOption
			default:
				err := fmt.Errorf("invalid option kind %q (want CE or PE)", kindStr)
				output.Error("%v", err)
				return err
			}

			g := greeks.Estimate(spot, strike, days, kind, iv)

			if output.IsJSON() {
				return output.JSON(g)
			}

			output.Bold("%s %.0f (spot %.2f, %.1f days)", strings.ToUpper(kindStr), strike, spot, days)
			output.Printf("  %s\n", FormatGreeks(g.Delta, g.Gamma, g.Theta, g.Vega))
			output.Printf("  IV: %s\n", FormatIV(g.IV))
			return nil
		},
	}

	cmd.Flags().Float64("spot", 0, "spot price")
	cmd.Flags().Float64("strike", 0, "strike price")
	cmd.Flags().Float64("days", 7, "days to expiry")
	cmd.Flags().Float64("iv", 0, "implied volatility percent (default: model default)")
	cmd.Flags().String("kind", "CE", "option kind: CE or PE")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")

	return cmd
}
