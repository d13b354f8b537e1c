package cli

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"options-strategist/internal/broker"
	"options-strategist/internal/logging"
	"options-strategist/internal/payoff"
	"options-strategist/internal/store"
)

// addParamFlags registers the shared strategy parameter flags.
func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("strike", 0, "primary strike")
	cmd.Flags().Float64("strike1", 0, "first strike (4-leg strategies)")
	cmd.Flags().Float64("strike2", 0, "second strike")
	cmd.Flags().Float64("strike3", 0, "third strike")
	cmd.Flags().Float64("strike4", 0, "fourth strike")
	cmd.Flags().Float64("premium", 0, "primary premium")
	cmd.Flags().Float64("premium1", 0, "first premium (4-leg strategies)")
	cmd.Flags().Float64("premium2", 0, "second premium")
	cmd.Flags().Float64("premium3", 0, "third premium")
	cmd.Flags().Float64("premium4", 0, "fourth premium")
	cmd.Flags().Float64("stock-price", 0, "stock entry price (covered/protective strategies)")
	cmd.Flags().Int("lots", 0, "number of lots")
	cmd.Flags().Int("lot-size", 0, "contract lot size (default: from symbol)")
	cmd.Flags().String("symbol", "", "underlying symbol (for lot size and journal)")
}

// paramsFromFlags assembles Params from the shared flags, applying
// config and symbol defaults.
func (app *App) paramsFromFlags(cmd *cobra.Command) (payoff.Params, string) {
	f := func(name string) float64 {
		v, _ := cmd.Flags().GetFloat64(name)
		return v
	}

	symbol, _ := cmd.Flags().GetString("symbol")
	if symbol == "" {
		symbol = app.Config.Trading.DefaultSymbol
	}
	symbol = strings.ToUpper(symbol)

	lots, _ := cmd.Flags().GetInt("lots")
	if lots == 0 {
		lots = app.Config.Trading.DefaultLots
	}

	lotSize, _ := cmd.Flags().GetInt("lot-size")
	if lotSize == 0 {
		if u, ok := app.Config.UnderlyingFor(symbol); ok && u.LotSize > 0 {
			lotSize = u.LotSize
		} else {
			lotSize = broker.LotSizeFor(symbol)
		}
	}

	return payoff.Params{
		Strike:     f("strike"),
		Strike1:    f("strike1"),
		Strike2:    f("strike2"),
		Strike3:    f("strike3"),
		Strike4:    f("strike4"),
		Premium:    f("premium"),
		Premium1:   f("premium1"),
		Premium2:   f("premium2"),
		Premium3:   f("premium3"),
		Premium4:   f("premium4"),
		StockPrice: f("stock-price"),
		Lots:       lots,
		LotSize:    lotSize,
	}, symbol
}

func newPayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payoff <strategy>",
		Short: "Evaluate a strategy payoff by scanning the spot range",
		Long: `Evaluate a strategy payoff by sweeping spot prices across a band
around the leg strikes and folding the sampled curve into max profit,
max loss, breakevens and risk/reward.

Use 'strategist strategies' to list strategy names.`,
		Example: `  strategist payoff long-call --strike 23500 --premium 150
  strategist payoff bull-call-spread --strike 23500 --premium 150 --strike2 23700 --premium2 60 --lots 2
  strategist payoff iron-condor --strike1 23100 --premium1 40 --strike2 23300 --premium2 90 \
      --strike3 23700 --premium3 85 --strike4 23900 --premium4 35 --diagram`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			strategy, err := payoff.ParseStrategy(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			params, symbol := app.paramsFromFlags(cmd)

			result, err := payoff.Evaluate(strategy, params)
			if err != nil {
				output.Error("Evaluation failed: %v", err)
				return err
			}

			logging.LogEvaluation(app.Logger, string(strategy), "scan",
				result.MaxProfit.String(), result.MaxLoss.String())
			app.journalEvaluation(symbol, "scan", params, result)

			if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
				if err := exportCurve(csvPath, result.Curve); err != nil {
					output.Warning("CSV export failed: %v", err)
				} else {
					output.Dim("Curve exported to %s", csvPath)
				}
			}

			if output.IsJSON() {
				return output.JSON(result)
			}

			renderResult(output, result, params)

			if diagram, _ := cmd.Flags().GetBool("diagram"); diagram {
				output.Println()
				renderDiagram(output, result.Curve)
			}
			return nil
		},
	}

	addParamFlags(cmd)
	cmd.Flags().String("csv", "", "export the payoff curve to a CSV file")
	cmd.Flags().Bool("diagram", false, "render an ASCII payoff diagram")

	return cmd
}

func newFormulaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formula <strategy>",
		Short: "Evaluate a strategy with its closed-form formula",
		Long: `Evaluate a strategy using exact closed-form expressions for max
profit, max loss and breakevens instead of the numeric scan. Not every
strategy has a closed form; the scan path covers the rest.`,
		Example: `  strategist formula short-straddle --strike 23500 --premium 140 --premium2 130
  strategist formula iron-condor --strike1 23100 --premium1 40 --strike2 23300 --premium2 90 \
      --strike3 23700 --premium3 85 --strike4 23900 --premium4 35`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			strategy, err := payoff.ParseStrategy(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			params, symbol := app.paramsFromFlags(cmd)

			result, err := payoff.Formula(strategy, params, nil)
			if err != nil {
				output.Error("Formula evaluation failed: %v", err)
				return err
			}

			logging.LogEvaluation(app.Logger, string(strategy), "formula",
				result.MaxProfit.String(), result.MaxLoss.String())
			app.journalEvaluation(symbol, "formula", params, result)

			if output.IsJSON() {
				return output.JSON(result)
			}

			renderResult(output, result, params)
			return nil
		},
	}

	addParamFlags(cmd)

	return cmd
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List supported strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			all := payoff.All()
			if output.IsJSON() {
				return output.JSON(all)
			}
			output.Bold("Supported strategies")
			for _, s := range all {
				output.Printf("  %s\n", s)
			}
			return nil
		},
	}
}

// journalEvaluation saves one evaluation to the journal, best effort.
func (app *App) journalEvaluation(symbol, method string, params payoff.Params, result *payoff.Result) {
	if app.Store == nil {
		return
	}

	paramsJSON, _ := json.Marshal(params)
	resultJSON, _ := json.Marshal(result)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := app.Store.SaveEvaluation(ctx, &store.EvaluationRecord{
		Symbol:     symbol,
		Strategy:   string(result.Strategy),
		Method:     method,
		Lots:       params.Lots,
		LotSize:    params.LotSize,
		Spot:       params.StockPrice,
		MaxProfit:  result.MaxProfit.String(),
		MaxLoss:    result.MaxLoss.String(),
		Breakeven:  result.Breakeven.String(),
		RiskReward: result.RiskReward,
		ParamsJSON: string(paramsJSON),
		ResultJSON: string(resultJSON),
	})
	if err != nil {
		app.Logger.Warn().Err(err).Msg("Failed to journal evaluation")
	}
}

// renderResult prints the result summary box.
func renderResult(output *Output, result *payoff.Result, params payoff.Params) {
	content := []string{
		"Max Profit:  " + formatAmount(output, result.MaxProfit, true),
		"Max Loss:    " + formatAmount(output, result.MaxLoss, false),
		"Breakeven:   " + result.Breakeven.String(),
		"Risk/Reward: " + result.RiskReward,
	}
	if _, ok := result.MaxProfitPct.Bounded(); ok {
		content = append(content, "Max Profit %: "+result.MaxProfitPct.String()+"%")
	}
	if _, ok := result.MaxLossPct.Bounded(); ok {
		content = append(content, "Max Loss %:   "+result.MaxLossPct.String()+"%")
	}
	content = append(content, "")
	content = append(content, output.DimText(
		"Lots: "+FormatQuantity(int64(params.Lots))+" x "+FormatQuantity(int64(params.LotSize))))

	output.Box(strategyTitle(result.Strategy), content)
}

// formatAmount renders a payoff amount with currency formatting and
// directional color; sentinels pass through as-is.
func formatAmount(output *Output, a payoff.Amount, positive bool) string {
	if v, ok := a.Bounded(); ok {
		color := output.Red
		if positive {
			color = output.Green
		}
		return color(FormatIndianCurrency(v))
	}
	return a.String()
}

// strategyTitle turns a slug into a display title.
func strategyTitle(s payoff.Strategy) string {
	words := strings.Split(string(s), "-")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// exportCurve writes the payoff curve to a CSV file.
func exportCurve(path string, curve []payoff.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&curve, f)
}
