package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"options-strategist/internal/broker"
	"options-strategist/internal/models"
	"options-strategist/pkg/utils"
)

func newChainCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain <symbol>",
		Short: "Display an option chain",
		Long: `Fetch and display the option chain for an underlying, centered on
the ATM strike. Greeks are Black-Scholes estimates from the India VIX.

Use --save to capture the chain as a snapshot file for offline work.`,
		Example: `  strategist chain NIFTY
  strategist chain BANKNIFTY --rows 6 --expiry 2026-09-03
  strategist chain NIFTY --save nifty.json
  strategist chain NIFTY --snapshot nifty.json   # offline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			symbol := strings.ToUpper(args[0])

			chain, err := app.fetchChain(cmd, symbol)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
				if err := broker.WriteSnapshot(savePath, chain); err != nil {
					output.Warning("Snapshot save failed: %v", err)
				} else {
					output.Dim("Snapshot saved to %s", savePath)
				}
			}

			if output.IsJSON() {
				return output.JSON(chain)
			}

			rows, _ := cmd.Flags().GetInt("rows")
			renderChain(output, chain, rows)
			return nil
		},
	}

	cmd.Flags().String("expiry", "", "expiry date (YYYY-MM-DD, default: nearest)")
	cmd.Flags().Int("rows", 10, "strikes to show on each side of ATM")
	cmd.Flags().String("save", "", "save the chain as a snapshot file")

	return cmd
}

// fetchChain resolves the provider and fetches the chain, honoring the
// --expiry flag when the command declares it.
func (app *App) fetchChain(cmd *cobra.Command, symbol string) (*models.OptionChain, error) {
	provider, err := app.chainProvider(cmd)
	if err != nil {
		return nil, err
	}

	var expiry time.Time
	if expiryStr, ferr := cmd.Flags().GetString("expiry"); ferr == nil && expiryStr != "" {
		expiry, err = time.Parse("2006-01-02", expiryStr)
		if err != nil {
			return nil, fmt.Errorf("invalid expiry %q (want YYYY-MM-DD)", expiryStr)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	return provider.GetOptionChain(ctx, symbol, expiry)
}

func renderChain(output *Output, chain *models.OptionChain, rows int) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	output.Printf("%s  spot %s", bold(chain.Symbol), FormatIndianCurrency(chain.SpotPrice))
	if chain.VIX > 0 {
		output.Printf("  VIX %.2f", chain.VIX)
	}
	if !chain.Expiry.IsZero() {
		output.Printf("  exp %s (%.0fd)", FormatDate(chain.Expiry), chain.DaysToExpiry)
	}
	output.Printf("  lot %d\n\n", chain.LotSize)

	atm := chain.ATMIndex()
	lo, hi := atm-rows, atm+rows
	if lo < 0 {
		lo = 0
	}
	if hi > len(chain.Strikes)-1 {
		hi = len(chain.Strikes) - 1
	}

	table := NewTable(output,
		green("CALL OI"), green("LTP"), green("Δ"),
		"STRIKE",
		red("Δ"), red("LTP"), red("PUT OI"))

	for i := lo; i <= hi; i++ {
		row := chain.Strikes[i]

		callOI, callLTP, callDelta := "-", "-", "-"
		if row.Call != nil {
			callOI = FormatOI(row.Call.OI)
			callLTP = fmt.Sprintf("%.2f", row.Call.LTP)
			callDelta = fmt.Sprintf("%.2f", row.Call.Greeks.Delta)
		}
		putOI, putLTP, putDelta := "-", "-", "-"
		if row.Put != nil {
			putOI = FormatOI(row.Put.OI)
			putLTP = fmt.Sprintf("%.2f", row.Put.LTP)
			putDelta = fmt.Sprintf("%.2f", row.Put.Greeks.Delta)
		}

		strike := fmt.Sprintf("%.0f", row.Strike)
		if i == atm {
			strike = bold(strike + " *")
		} else {
			strike = dim(strike)
		}

		table.AddRow(callOI, callLTP, callDelta, strike, putDelta, putLTP, putOI)
	}

	table.Render()
	output.Println()
	output.Dim("* ATM strike")
	if note := marketNote(utils.CurrentSession(), utils.NextMarketOpen()); note != "" {
		output.Dim(note)
	}
}

// marketNote renders the stale-quote hint shown outside trading hours.
func marketNote(session utils.Session, nextOpen time.Time) string {
	if session == utils.SessionOpen {
		return ""
	}
	return fmt.Sprintf("Market %s; quotes are from the last session (next open %s)",
		session, FormatDateTime(nextOpen))
}
