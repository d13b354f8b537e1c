package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"options-strategist/internal/store"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and export the evaluation journal",
		Long: `Browse past payoff evaluations and strike selections from the local
journal, or export them to CSV.`,
	}

	cmd.AddCommand(newHistoryListCmd(app))
	cmd.AddCommand(newHistorySelectionsCmd(app))
	cmd.AddCommand(newHistoryExportCmd(app))

	return cmd
}

func (app *App) requireStore(output *Output) error {
	if app.Store == nil {
		output.Error("Journal unavailable; check the database path in config")
		return fmt.Errorf("journal unavailable")
	}
	return nil
}

func evaluationFilterFromFlags(cmd *cobra.Command) store.EvaluationFilter {
	symbol, _ := cmd.Flags().GetString("symbol")
	strategy, _ := cmd.Flags().GetString("strategy")
	method, _ := cmd.Flags().GetString("method")
	limit, _ := cmd.Flags().GetInt("limit")
	return store.EvaluationFilter{
		Symbol:   symbol,
		Strategy: strategy,
		Method:   method,
		Limit:    limit,
	}
}

func newHistoryListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled evaluations",
		Example: `  strategist history list
  strategist history list --symbol NIFTY --strategy short-straddle --limit 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.requireStore(output); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			recs, err := app.Store.GetEvaluations(ctx, evaluationFilterFromFlags(cmd))
			if err != nil {
				output.Error("Query failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(recs)
			}

			if len(recs) == 0 {
				output.Dim("No evaluations journaled yet.")
				return nil
			}

			table := NewTable(output, "WHEN", "SYMBOL", "STRATEGY", "METHOD", "MAX PROFIT", "MAX LOSS", "R/R")
			for _, r := range recs {
				table.AddRow(
					FormatDateTime(r.Timestamp),
					r.Symbol,
					r.Strategy,
					r.Method,
					r.MaxProfit,
					r.MaxLoss,
					r.RiskReward,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("strategy", "", "filter by strategy")
	cmd.Flags().String("method", "", "filter by method (scan, formula)")
	cmd.Flags().Int("limit", 20, "maximum rows")

	return cmd
}

func newHistorySelectionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selections",
		Short: "List journaled strike selections",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.requireStore(output); err != nil {
				return err
			}

			symbol, _ := cmd.Flags().GetString("symbol")
			limit, _ := cmd.Flags().GetInt("limit")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			recs, err := app.Store.GetSelections(ctx, store.SelectionFilter{Symbol: symbol, Limit: limit})
			if err != nil {
				output.Error("Query failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(recs)
			}

			if len(recs) == 0 {
				output.Dim("No selections journaled yet.")
				return nil
			}

			table := NewTable(output, "WHEN", "SYMBOL", "SPOT", "SELL PUT", "SELL CALL", "EM", "CROSSED")
			for _, r := range recs {
				crossed := ""
				if r.Crossed {
					crossed = output.Yellow("yes")
				}
				table.AddRow(
					FormatDateTime(r.Timestamp),
					r.Symbol,
					fmt.Sprintf("%.2f", r.Spot),
					fmt.Sprintf("%.0f", r.SellPut),
					fmt.Sprintf("%.0f", r.SellCall),
					fmt.Sprintf("±%.0f", r.ExpectedMove),
					crossed,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().Int("limit", 20, "maximum rows")

	return cmd
}

func newHistoryExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export journaled evaluations to CSV",
		Example: `  strategist history export --out evaluations.csv --symbol NIFTY`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.requireStore(output); err != nil {
				return err
			}

			outPath, _ := cmd.Flags().GetString("out")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			filter := evaluationFilterFromFlags(cmd)
			filter.Limit = 0 // Export everything that matches
			recs, err := app.Store.GetEvaluations(ctx, filter)
			if err != nil {
				output.Error("Query failed: %v", err)
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				output.Error("Cannot create %s: %v", outPath, err)
				return err
			}
			defer f.Close()

			if err := gocsv.MarshalFile(&recs, f); err != nil {
				output.Error("CSV export failed: %v", err)
				return err
			}

			output.Success("✓ Exported %d evaluations to %s", len(recs), outPath)
			return nil
		},
	}

	cmd.Flags().String("out", "evaluations.csv", "output CSV file")
	cmd.Flags().String("symbol", "", "filter by symbol")
	cmd.Flags().String("strategy", "", "filter by strategy")
	cmd.Flags().String("method", "", "filter by method (scan, formula)")

	return cmd
}
